package docfold

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the URL and returns the rendered HTML together
	// with the final URL after redirects. Callers must re-evaluate
	// scope and dedup identity against finalURL when it differs from
	// the requested URL. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, finalURL string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
