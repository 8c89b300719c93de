// Package rod provides a browser-based implementation of docfold.Fetcher
// using Chrome automation. It renders JavaScript before returning HTML,
// which many documentation sites require for their navigation and content.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/docfold/docfold"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRecycleAfter is the default number of pages fetched before the
// browser process is recycled. Chrome accumulates memory under load and
// never returns to its baseline, so long crawls restart it periodically.
const DefaultRecycleAfter = 75

// Ensure Fetcher implements docfold.Fetcher at compile time.
var _ docfold.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using a headless Chrome
// browser. The browser process is recycled after a configurable number
// of fetches. Fetcher is safe for concurrent use.
type Fetcher struct {
	mu           sync.Mutex
	browser      *rod.Browser
	launcher     *launcher.Launcher
	fetched      int64
	recycleAfter int64
	closed       bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRecycleAfter sets how many pages are fetched before the browser
// process is restarted. Defaults to DefaultRecycleAfter.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher creates a new Fetcher and launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		recycleAfter: DefaultRecycleAfter,
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.launchBrowser(); err != nil {
		return nil, err
	}

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML together
// with the URL the browser ended up on after any redirects.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	browser, err := f.acquireBrowser()
	if err != nil {
		return "", "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", "", err
	}

	// The page address after load reflects HTTP redirects and any
	// JS-driven replaceState the site performed while loading.
	finalURL := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	html, err := page.HTML()
	if err != nil {
		return "", finalURL, err
	}

	return html, finalURL, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	return f.closeBrowser()
}

// acquireBrowser returns the current browser, recycling it first when
// the fetch count reaches the recycle threshold.
func (f *Fetcher) acquireBrowser() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, docfold.Errorf(docfold.EINTERNAL, "fetcher is closed")
	}

	f.fetched++
	if f.fetched > f.recycleAfter {
		f.recycleBrowser()
		f.fetched = 1
	}

	return f.browser, nil
}

// launchBrowser starts a new browser instance with stability flags.
// Must be called with mu held, except from NewFetcher.
func (f *Fetcher) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (f *Fetcher) closeBrowser() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one. If the
// new launch fails the old browser is kept so fetching can continue.
// Must be called with mu held.
func (f *Fetcher) recycleBrowser() {
	oldBrowser := f.browser
	oldLauncher := f.launcher
	f.browser = nil
	f.launcher = nil

	if err := f.launchBrowser(); err != nil {
		f.browser = oldBrowser
		f.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
}
