package mock

import "github.com/docfold/docfold"

var _ docfold.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docfold.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docfold.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docfold.ExtractResult, error) {
	return e.ExtractFn(html)
}
