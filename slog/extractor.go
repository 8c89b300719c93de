package slog

import (
	"log/slog"
	"time"

	"github.com/docfold/docfold"
)

// Ensure LoggingExtractor implements docfold.Extractor.
var _ docfold.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   docfold.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next docfold.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(rawHTML string) (result *docfold.ExtractResult, err error) {
	defer func(begin time.Time) {
		var title string
		var bytes int
		if result != nil {
			title = result.Title
			bytes = len(result.ContentHTML)
		}
		e.logger.Info("extract",
			"title", title,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(rawHTML)
}
