package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/consolidate"
	"github.com/docfold/docfold/crawl"
	"github.com/docfold/docfold/fs"
	"github.com/docfold/docfold/goquery"
	"github.com/docfold/docfold/htmltomarkdown"
	dochttp "github.com/docfold/docfold/http"
	"github.com/docfold/docfold/readability"
	"github.com/docfold/docfold/rod"
	docslog "github.com/docfold/docfold/slog"
	"github.com/docfold/docfold/trafilatura"
	"github.com/google/uuid"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	var scopeOpts []docfold.ScopeOption
	if c.KeepQuery {
		scopeOpts = append(scopeOpts, docfold.KeepQuery())
	}
	scope, err := docfold.NewScope(c.URL, scopeOpts...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docfold.ErrorMessage(err))
		return err
	}

	logger := slog.New(slog.NewTextHandler(deps.Stderr, nil))

	fetcher := deps.Fetcher
	if fetcher == nil {
		if c.Browser {
			fetcher, err = rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
		} else {
			fetcher = dochttp.NewFetcher(dochttp.WithTimeout(c.Timeout))
		}
		defer fetcher.Close()
	}
	if c.Verbose {
		fetcher = docslog.NewLoggingFetcher(fetcher, logger)
	}

	extractor := deps.Extractor
	if extractor == nil {
		extractor = &docfold.FallbackExtractor{
			Primary:  trafilatura.NewExtractor(),
			Fallback: readability.NewExtractor(),
		}
	}

	converter := deps.Converter
	if converter == nil {
		converter = htmltomarkdown.NewConverter()
	}

	links := deps.Links
	if links == nil {
		links = goquery.NewLinkExtractor()
	}

	// Optional sitemap pre-seed.
	var extraSeeds []string
	if c.Sitemap {
		sitemaps := deps.Sitemaps
		if sitemaps == nil {
			sitemaps = dochttp.NewSitemap(nil)
		}
		extraSeeds, err = sitemaps.Discover(deps.Ctx, scope)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: sitemap discovery failed: %s\n", docfold.ErrorMessage(err))
		} else if len(extraSeeds) > 0 {
			fmt.Fprintf(deps.Stdout, "Found %d sitemap URLs\n", len(extraSeeds))
		}
	}

	// Optional archive.
	archive := deps.Archive
	if archive == nil && c.Archive != "" {
		opened, closeArchive, err := deps.OpenArchive(c.Archive)
		if err != nil {
			return err
		}
		defer closeArchive()
		archive = opened
	}

	var run *docfold.Run
	if archive != nil {
		run = &docfold.Run{Seed: c.URL}
		if err := archive.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docfold.ErrorMessage(err))
			return err
		}
	}

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   extractor,
		Converter:   converter,
		Links:       links,
		Limiter:     crawl.NewDomainLimiter(c.RPS),
		Logger:      logger,
		Concurrency: c.Concurrency,
		MaxDepth:    c.MaxDepth,
		MaxPages:    c.MaxPages,
		KeepQuery:   c.KeepQuery,
		Seeds:       extraSeeds,
		RetryDelays: crawl.BackoffDelays(c.Retries - 1),
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d] %s\n", event.Completed, event.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "  [%d] %s (failed: %v)\n", event.Completed, event.URL, event.Error)
		}
	}

	pages, result, err := crawler.Crawl(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docfold.ErrorMessage(err))
		return err
	}

	runID := ""
	if run != nil {
		runID = run.ID
	} else {
		runID = uuid.New().String()
	}

	builder := &consolidate.Builder{
		Title:       c.Title,
		Seed:        c.URL,
		GeneratedAt: time.Now().UTC(),
		RunID:       runID,
		KeepQuery:   c.KeepQuery,
	}
	doc := builder.Build(pages)

	if err := fs.NewWriter(c.Output).Write([]byte(doc)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docfold.ErrorMessage(err))
		return err
	}

	if run != nil {
		if err := archive.SavePages(deps.Ctx, run.ID, pages); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: archiving pages failed: %s\n", docfold.ErrorMessage(err))
		}
		run.Cleaned = result.Cleaned
		run.Empty = result.Empty
		run.Failed = result.Failed
		run.Skipped = result.Skipped
		if err := archive.FinishRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: finishing run failed: %s\n", docfold.ErrorMessage(err))
		}
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s: %d pages (%d with content, %d empty, %d failed, %d skipped)\n",
		c.Output, result.Total(), result.Cleaned, result.Empty, result.Failed, result.Skipped)

	return nil
}
