// Package crawl provides breadth-first documentation crawling.
// It coordinates frontier traversal, fetching, content extraction, and
// markdown conversion, producing one immutable page record per URL.
package crawl

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/docfold/docfold"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing and safety limits.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// defaultMaxPages bounds a crawl with no explicit page ceiling.
	defaultMaxPages = 1000
)

// Crawler walks a documentation tree breadth-first from a seed URL.
// All crawl state (frontier, visited set) is local to a Crawl call, so
// one Crawler can run independent crawls and a process can hold several
// Crawlers.
type Crawler struct {
	Fetcher   docfold.Fetcher
	Extractor docfold.Extractor
	Converter docfold.Converter
	Links     docfold.LinkExtractor
	Limiter   docfold.DomainLimiter
	Logger    *slog.Logger

	// Concurrency is the number of fetch workers. Defaults to 4.
	Concurrency int

	// MaxDepth is the link-distance ceiling. Negative means unlimited;
	// 0 crawls only the seed.
	MaxDepth int

	// MaxPages caps the number of fetched pages. Zero or negative uses
	// defaultMaxPages. Reaching the cap is normal termination.
	MaxPages int

	// KeepQuery makes query strings part of URL dedup identity.
	KeepQuery bool

	// Seeds are additional URLs admitted at depth 0 (e.g. from a
	// sitemap). Out-of-scope entries are silently dropped.
	Seeds []string

	// RetryDelays are the backoff delays between fetch attempts.
	// Defaults to DefaultRetryDelays.
	RetryDelays []time.Duration
}

// Result summarizes a crawl.
type Result struct {
	Cleaned int // pages with extracted content
	Empty   int // pages fetched but with no extractable content
	Failed  int // pages that failed after retries
	Skipped int // redirects out of scope or onto already-crawled pages
	Bytes   int // total markdown bytes produced
}

// Total returns the number of processed targets.
func (r *Result) Total() int {
	return r.Cleaned + r.Empty + r.Failed + r.Skipped
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Queued    int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult carries one processed target from a worker back to the
// coordinator.
type pageResult struct {
	target docfold.Target
	page   *docfold.Page
	links  []string
}

// Crawl walks the documentation tree under seedURL and returns the page
// records in discovery order together with a summary.
//
// Only an invalid seed URL is a fatal error. Per-page failures are
// recorded on the page and never abort the crawl; cancellation returns
// whatever was collected so far.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, progress ProgressFunc) ([]*docfold.Page, *Result, error) {
	var scopeOpts []docfold.ScopeOption
	if c.KeepQuery {
		scopeOpts = append(scopeOpts, docfold.KeepQuery())
	}
	scope, err := docfold.NewScope(seedURL, scopeOpts...)
	if err != nil {
		return nil, nil, err
	}
	seed, err := scope.Normalize(seedURL)
	if err != nil {
		return nil, nil, err
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(docfold.Target{URL: seed, Depth: 0})
	for _, extra := range c.Seeds {
		if !scope.Contains(extra) {
			continue
		}
		norm, err := scope.Normalize(extra)
		if err != nil {
			continue
		}
		frontier.Push(docfold.Target{URL: norm, Depth: 0})
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Queued: frontier.Len(), URL: seed})
	}

	// Worker pool. Workers block on the work channel and hand results
	// back to the coordinator; all frontier mutation stays in the
	// coordinator except the atomic redirect marking in process.
	workCh := make(chan docfold.Target, concurrency)
	resultCh := make(chan *pageResult)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for t := range workCh {
				res := c.process(gctx, scope, frontier, t)
				select {
				case resultCh <- res:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	var (
		pages     []*docfold.Page
		result    Result
		completed int
	)

	handle := func(res *pageResult) {
		completed++

		// Feed in-scope child links back to the frontier.
		if c.MaxDepth < 0 || res.target.Depth < c.MaxDepth {
			for _, raw := range res.links {
				if !scope.Contains(raw) {
					continue
				}
				norm, err := scope.Normalize(raw)
				if err != nil {
					continue
				}
				frontier.Push(docfold.Target{URL: norm, Depth: res.target.Depth + 1})
			}
		}

		page := res.page
		pages = append(pages, page)
		switch page.Status {
		case docfold.StatusCleaned:
			result.Cleaned++
			result.Bytes += len(page.Content)
		case docfold.StatusEmpty:
			result.Empty++
		case docfold.StatusSkipped:
			result.Skipped++
		case docfold.StatusFailed:
			result.Failed++
		}

		if c.Logger != nil {
			c.Logger.Debug("page processed",
				"url", page.URL,
				"depth", page.Depth,
				"status", string(page.Status),
				"queued", frontier.Len())
		}

		if progress == nil {
			return
		}
		if page.Status == docfold.StatusFailed {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: completed,
				Queued:    frontier.Len(),
				URL:       page.URL,
				Error:     fmt.Errorf("%s", page.FetchError),
			})
		} else {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Queued:    frontier.Len(),
				URL:       page.URL,
			})
		}
	}

	// Coordinator loop: alternate between dispatching the next frontier
	// target and receiving results, until the frontier is drained with
	// nothing in flight or a ceiling hits.
	dispatched := 0
	pending := 0
	pendingByDepth := make(map[int]int)
	var next *docfold.Target

	// minPendingDepth returns the shallowest depth still in flight.
	minPendingDepth := func() (int, bool) {
		min, ok := 0, false
		for d, n := range pendingByDepth {
			if n > 0 && (!ok || d < min) {
				min, ok = d, true
			}
		}
		return min, ok
	}

	// popNext takes the next target off the frontier, holding back a
	// deeper target while any shallower fetch is still in flight. That
	// fetch may discover links at the held-back depth, so dispatching
	// past it would break the breadth-first barrier: a page at depth d
	// is fetched only after every depth <d page has been processed and
	// its links enqueued. It also keeps discovery order, and with it
	// the document order, independent of fetch timing.
	popNext := func() {
		if next != nil || dispatched >= maxPages {
			return
		}
		depth, ok := frontier.PeekDepth()
		if !ok {
			return
		}
		if min, busy := minPendingDepth(); busy && depth > min {
			return
		}
		t, _ := frontier.Pop()
		next = &t
	}

	popNext()

coordinatorLoop:
	for {
		// Nothing dispatchable and nothing in flight: the frontier is
		// empty, blocked behind the page ceiling, or both. Normal
		// termination either way.
		if next == nil && pending == 0 {
			break coordinatorLoop
		}
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		if next != nil {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *next:
				dispatched++
				pending++
				pendingByDepth[next.Depth]++
				next = nil
			case res := <-resultCh:
				pending--
				pendingByDepth[res.target.Depth]--
				handle(res)
			}
		} else {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				pendingByDepth[res.target.Depth]--
				handle(res)
			}
		}

		popNext()
	}

	close(workCh)

	// Drain results from workers that were already in flight.
	drainTimeout := time.After(5 * time.Second)
drainLoop:
	for {
		select {
		case res, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			handle(res)
		case <-drainTimeout:
			break drainLoop
		}
	}

	// Output order is discovery order, not completion order.
	sort.Slice(pages, func(i, j int) bool { return pages[i].Seq < pages[j].Seq })

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed})
	}

	return pages, &result, nil
}

// process fetches and processes a single target. Every outcome is a
// page record; failures are recorded, never returned.
func (c *Crawler) process(ctx context.Context, scope *docfold.Scope, frontier *Frontier, t docfold.Target) *pageResult {
	page := &docfold.Page{
		URL:       t.URL,
		Depth:     t.Depth,
		Seq:       t.Seq,
		FetchedAt: time.Now().UTC(),
	}
	res := &pageResult{target: t, page: page}

	fail := func(err error) *pageResult {
		page.Status = docfold.StatusFailed
		page.FetchError = err.Error()
		return res
	}

	if c.Limiter != nil {
		if u, err := url.Parse(t.URL); err == nil {
			if err := c.Limiter.Wait(ctx, u.Host); err != nil {
				return fail(err)
			}
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	var logf LogFunc
	if c.Logger != nil {
		logger := c.Logger
		logf = func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		}
	}
	html, finalURL, err := FetchWithRetryDelays(ctx, t.URL, c.Fetcher.Fetch, logf, delays)
	if err != nil {
		return fail(err)
	}

	// A redirect changes the page's identity: re-evaluate scope and
	// dedup against the final URL.
	if finalURL != "" {
		if norm, err := scope.Normalize(finalURL); err == nil && norm != t.URL {
			if !scope.Contains(finalURL) {
				page.Status = docfold.StatusSkipped
				page.FetchError = fmt.Sprintf("redirected out of scope to %s", finalURL)
				return res
			}
			if !frontier.MarkSeen(norm) {
				page.Status = docfold.StatusSkipped
				page.FetchError = fmt.Sprintf("redirected to already crawled %s", norm)
				return res
			}
			page.URL = norm
		}
	}

	// Links are discovered even when content extraction comes up empty;
	// a navigation-only page still leads somewhere.
	base := finalURL
	if base == "" {
		base = t.URL
	}
	links, lerr := c.Links.ExtractLinks(html, base)
	if lerr != nil {
		// The page itself is still usable; losing its outbound edges
		// truncates the crawl, so leave a trace.
		if c.Logger != nil {
			c.Logger.Warn("link extraction failed", "url", page.URL, "err", lerr)
		}
	} else {
		res.links = links
	}

	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		return fail(err)
	}
	page.Title = extracted.Title

	if strings.TrimSpace(extracted.ContentHTML) == "" {
		page.Status = docfold.StatusEmpty
		return res
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return fail(err)
	}

	page.Content = strings.TrimSpace(markdown)
	if page.Content == "" {
		page.Status = docfold.StatusEmpty
		return res
	}
	page.ContentHash = ContentHash(page.Content)
	page.Status = docfold.StatusCleaned
	return res
}

// ContentHash computes the xxHash of content as a hex string.
// Identical markdown always hashes identically, which the consolidator
// uses to flag duplicate pages.
func ContentHash(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}
