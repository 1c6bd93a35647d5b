package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-track/internal/carrier"
	"github.com/noah-isme/backend-track/internal/scrape"
	"github.com/noah-isme/backend-track/internal/track"
)

// trackprobe runs a single tracking lookup from the command line, bypassing
// the HTTP surface and the result cache. Useful for tuning extraction rules
// against a live carrier page.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	carrierID := flag.String("carrier", "", "carrier id (dhl, fedex, ups, delta-cargo, expeditors)")
	code := flag.String("code", "", "tracking code")
	doScrape := flag.Bool("scrape", false, "fetch and extract from the live tracking page")
	navTimeout := flag.Duration("nav-timeout", 25*time.Second, "page navigation timeout")
	flag.Parse()

	if *carrierID == "" || *code == "" {
		fmt.Fprintln(os.Stderr, "usage: trackprobe --carrier dhl --code 1234567890 [--scrape]")
		os.Exit(2)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	svc := &track.Service{
		Registry:      carrier.NewRegistry(),
		ScrapeEnabled: *doScrape,
		Log:           logger,
	}
	if *doScrape {
		browser, closeBrowser, err := scrape.Connect(os.Getenv("BROWSER_CONTROL_URL"), true)
		if err != nil {
			log.Fatalf("start browser: %v", err)
		}
		defer closeBrowser()
		svc.Fetcher = &scrape.Fetcher{Browser: browser, NavTimeout: *navTimeout, Log: logger}
	}

	result, err := svc.Track(context.Background(), *carrierID, *code)
	if err != nil {
		log.Fatalf("track: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
