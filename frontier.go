package docfold

import "context"

// URLFrontier manages a breadth-first crawl queue with deduplication.
// Implementations must make the membership-test-and-insert in Push
// atomic with respect to concurrent discovery: a URL is admitted at
// most once per crawl.
type URLFrontier interface {
	// Push admits a target to the frontier, assigning its discovery
	// sequence number. Returns false if the URL has already been seen.
	Push(t Target) bool

	// Pop returns the next target in breadth-first order: lowest depth
	// first, discovery order within a depth. The bool result is false
	// when the frontier is empty.
	Pop() (Target, bool)

	// PeekDepth returns the depth of the next target without removing
	// it. The bool result is false when the frontier is empty.
	PeekDepth() (int, bool)

	// MarkSeen records a URL as seen without queueing it, e.g. the
	// final URL of a redirect. Returns false if it was already seen.
	MarkSeen(url string) bool

	// Len returns the number of queued targets.
	Len() int

	// Seen returns true if the URL has been admitted or processed.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
