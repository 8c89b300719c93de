// Package http provides an HTTP-based implementation of docfold.Fetcher
// for fetching content from static sites that don't require JavaScript
// rendering, plus sitemap-based seed discovery.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/docfold/docfold"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements docfold.Fetcher at compile time.
var _ docfold.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static sites only.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. The client
// follows redirects; the URL of the last response is returned so the
// caller can re-evaluate scope and dedup identity.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", docfold.Errorf(docfold.EINVALID, "invalid URL %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", docfold.Errorf(docfold.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code := docfold.EUNAVAILABLE
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			code = docfold.ENOTFOUND
		}
		return "", finalURL, docfold.Errorf(code, "HTTP %d for %s", resp.StatusCode, finalURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", finalURL, docfold.Errorf(docfold.EUNAVAILABLE, "reading %s: %v", finalURL, err)
	}

	return string(body), finalURL, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
