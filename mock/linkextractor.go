package mock

import "github.com/docfold/docfold"

var _ docfold.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docfold.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
