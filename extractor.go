package docfold

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed. Empty when no content
	// region scored above the extractor's threshold; that is a normal
	// outcome, not an error.
	ContentHTML string
}

// Extractor isolates main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// A page with no extractable content yields a result with an empty
	// ContentHTML and a nil error. An error means the HTML could not
	// be processed at all (malformed or empty input).
	Extract(html string) (*ExtractResult, error)
}

// FallbackExtractor chains a primary extractor with a fallback that is
// consulted when the primary errors or finds no content.
type FallbackExtractor struct {
	Primary  Extractor
	Fallback Extractor
}

// Extract runs the primary extractor and falls back when it produces no
// content. The fallback's errors are ignored if the primary produced a
// usable (possibly empty) result.
func (e *FallbackExtractor) Extract(html string) (*ExtractResult, error) {
	primary, perr := e.Primary.Extract(html)
	if perr == nil && primary.ContentHTML != "" {
		return primary, nil
	}
	if e.Fallback == nil {
		return primary, perr
	}

	fallback, ferr := e.Fallback.Extract(html)
	if ferr == nil && fallback.ContentHTML != "" {
		// Prefer the primary's title when it found one.
		if primary != nil && primary.Title != "" {
			fallback.Title = primary.Title
		}
		return fallback, nil
	}
	if perr == nil {
		return primary, nil
	}
	return nil, perr
}
