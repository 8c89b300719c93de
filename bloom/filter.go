// Package bloom provides the probabilistic seen-set backing frontier
// deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks URLs a crawl has already admitted. A positive answer
// may rarely be wrong (skipping a never-seen URL); a negative answer
// never is, so no URL is ever fetched twice.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL might have been added.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
