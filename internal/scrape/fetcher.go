package scrape

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-track/internal/track"
)

const (
	defaultNavTimeout    = 25 * time.Second
	defaultSettleTimeout = 3 * time.Second
)

// Fetcher loads carrier tracking pages in a headless browser and returns the
// rendered visible text. It implements track.PageFetcher.
type Fetcher struct {
	Browser *rod.Browser
	// NavTimeout bounds navigation plus document load.
	NavTimeout time.Duration
	// SettleTimeout bounds the extra network-idle wait. That wait is best
	// effort: a page that never settles is still worth extracting from.
	SettleTimeout time.Duration
	Log           zerolog.Logger
}

// Fetch navigates to url and returns the page's visible body text and title.
func (f *Fetcher) Fetch(ctx context.Context, url string) (track.Page, error) {
	if f.Browser == nil {
		return track.Page{}, errors.New("browser not configured")
	}
	fetchID := uuid.NewString()[:8]

	page, err := f.Browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return track.Page{}, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()
	page = page.Context(ctx)

	nav := page.Timeout(f.navTimeout())
	if err := nav.Navigate(url); err != nil {
		return track.Page{}, fmt.Errorf("navigate: %w", err)
	}
	if err := nav.WaitLoad(); err != nil {
		return track.Page{}, fmt.Errorf("wait load: %w", err)
	}

	settle := page.Timeout(f.settleTimeout())
	settle.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)()

	obj, err := page.Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return track.Page{}, fmt.Errorf("read body text: %w", err)
	}
	body := obj.Value.Str()

	title := ""
	if info, err := page.Info(); err == nil {
		title = info.Title
	}

	f.Log.Debug().
		Str("fetch_id", fetchID).
		Str("url", url).
		Int("body_chars", len(body)).
		Msg("tracking page fetched")
	return track.Page{Body: body, Title: title}, nil
}

func (f *Fetcher) navTimeout() time.Duration {
	if f.NavTimeout <= 0 {
		return defaultNavTimeout
	}
	return f.NavTimeout
}

func (f *Fetcher) settleTimeout() time.Duration {
	if f.SettleTimeout <= 0 {
		return defaultSettleTimeout
	}
	return f.SettleTimeout
}

// Connect attaches to the browser at controlURL, or launches a local headless
// Chromium when controlURL is empty. The returned closer shuts the browser
// down and cleans up any launcher temp state.
func Connect(controlURL string, noSandbox bool) (*rod.Browser, func(), error) {
	cleanup := func() {}
	if strings.TrimSpace(controlURL) == "" {
		l := launcher.New().Headless(true)
		if noSandbox {
			l = l.NoSandbox(true)
		}
		launched, err := l.Launch()
		if err != nil {
			return nil, nil, fmt.Errorf("launch browser: %w", err)
		}
		controlURL = launched
		cleanup = l.Cleanup
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("connect browser: %w", err)
	}
	closer := func() {
		_ = browser.Close()
		cleanup()
	}
	return browser, closer, nil
}
