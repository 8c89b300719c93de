package mock

import "github.com/docfold/docfold"

var _ docfold.Converter = (*Converter)(nil)

// Converter is a mock implementation of docfold.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
