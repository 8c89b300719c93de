// Package slog provides logging middleware for docfold interfaces
// using the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docfold/docfold"
)

// Ensure LoggingFetcher implements docfold.Fetcher.
var _ docfold.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   docfold.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docfold.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, finalURL string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"final_url", finalURL,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
