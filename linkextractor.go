package docfold

// LinkExtractor discovers outbound hyperlink targets in rendered HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns the absolute http(s) URLs
	// of all hyperlinks, resolved against baseURL (handling relative,
	// protocol-relative, and anchor-only forms). Non-http(s) schemes
	// (mailto, javascript, ...) are discarded. The result preserves
	// document order and contains no duplicates.
	//
	// Extraction is pure parsing: scope filtering is the frontier's
	// responsibility, not the extractor's.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
