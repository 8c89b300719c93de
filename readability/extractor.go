// Package readability implements docfold.Extractor using go-readability.
// It serves as the fallback when trafilatura finds no content region.
package readability

import (
	"strings"

	"github.com/docfold/docfold"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docfold.Extractor at compile time.
var _ docfold.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*docfold.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docfold.Errorf(docfold.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return &docfold.ExtractResult{}, nil
	}

	return &docfold.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
