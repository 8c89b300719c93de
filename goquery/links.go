// Package goquery provides a CSS-selector based implementation of
// docfold.LinkExtractor.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docfold/docfold"
)

// Compile-time interface verification.
var _ docfold.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects hyperlink targets from rendered HTML.
// Extraction is exhaustive and unscoped: every http(s) anchor target is
// returned, resolved to an absolute URL; the crawl frontier applies
// scope policy.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns the absolute URLs of all
// hyperlinks, resolved against baseURL, in document order without
// duplicates. Non-http(s) schemes and anchor-only self references are
// discarded.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docfold.Errorf(docfold.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docfold.Errorf(docfold.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []string
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		href = strings.TrimSpace(href)
		if strings.HasPrefix(href, "#") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if resolved.Host == "" {
			return
		}

		target := resolved.String()
		if seen[target] {
			return
		}
		seen[target] = true
		links = append(links, target)
	})

	return links, nil
}
