package track

import "context"

// Page is the visible content of a fetched tracking page.
type Page struct {
	Body  string
	Title string
}

// PageFetcher loads a carrier tracking page and returns its rendered visible
// text. Implementations are expected to enforce their own navigation timeout;
// the orchestrator treats any error as a recoverable scrape failure.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}
