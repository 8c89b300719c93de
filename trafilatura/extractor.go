// Package trafilatura implements docfold.Extractor using
// go-trafilatura's landmark and text-density heuristics.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/docfold/docfold"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docfold.Extractor at compile time.
var _ docfold.Extractor = (*Extractor)(nil)

// Extractor isolates main page content, discarding navigation,
// sidebars, footers and other recurring chrome.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. A page in
// which no region scores as content yields an empty result, not an
// error; only unusable input is an error.
func (e *Extractor) Extract(rawHTML string) (*docfold.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docfold.Errorf(docfold.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		// Trafilatura reports "nothing extractable" as an error; for a
		// crawl that is a normal per-page outcome.
		return &docfold.ExtractResult{}, nil
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &docfold.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
