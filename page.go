package docfold

import "time"

// Target is a URL queued for crawling.
type Target struct {
	// URL is the normalized absolute URL; it is the target's identity.
	URL string

	// Depth is the link distance from the seed. The seed has depth 0.
	Depth int

	// Seq is the discovery sequence number, assigned by the frontier
	// when the target is first admitted. Consolidation order is Seq
	// order regardless of fetch completion order.
	Seq int
}

// PageStatus is the terminal state of a crawled page.
type PageStatus string

// Terminal page states.
const (
	// StatusCleaned means content was extracted and converted.
	StatusCleaned PageStatus = "cleaned"

	// StatusEmpty means the page was fetched but no content region was
	// found. Not a failure: the page is listed without body text.
	StatusEmpty PageStatus = "empty"

	// StatusFailed means fetching or rendering failed after retries.
	StatusFailed PageStatus = "failed"

	// StatusSkipped means the fetch redirected to a URL that is out of
	// scope or already represented by another page.
	StatusSkipped PageStatus = "skipped"
)

// Page is the cleaned, structured record of one crawled page.
// Once produced by the crawler it is immutable and freely shared.
type Page struct {
	URL         string     `json:"url"`
	Depth       int        `json:"depth"`
	Seq         int        `json:"seq"`
	Title       string     `json:"title"`
	Content     string     `json:"content"` // Markdown
	ContentHash string     `json:"contentHash"`
	Status      PageStatus `json:"status"`
	FetchError  string     `json:"fetchError,omitempty"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	switch p.Status {
	case StatusCleaned, StatusEmpty, StatusFailed, StatusSkipped:
		return nil
	default:
		return Errorf(EINVALID, "unknown page status %q", p.Status)
	}
}
