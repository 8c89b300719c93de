package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/bloom"
)

// Compile-time interface verification.
var _ docfold.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory breadth-first crawl queue with Bloom filter
// deduplication. Targets pop in (depth, discovery order) order, so all
// depth-d targets drain before any depth-d+1 target.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *targetHeap
	next  int // next discovery sequence number
}

// NewFrontier creates a Frontier sized for n expected URLs with the
// given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &targetHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push admits a target and assigns its discovery sequence number.
// Returns false if the URL has already been seen. The seen-test and
// insert happen under one lock, so concurrent discovery of the same URL
// admits it exactly once. URL fragments are stripped before
// deduplication.
func (f *Frontier) Push(t docfold.Target) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	t.URL = stripFragment(t.URL)

	if f.seen.Test(t.URL) {
		return false
	}
	f.seen.Add(t.URL)

	t.Seq = f.next
	f.next++
	heap.Push(f.queue, t)
	return true
}

// Pop returns the next target in breadth-first order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (docfold.Target, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return docfold.Target{}, false
	}
	t, _ := heap.Pop(f.queue).(docfold.Target)
	return t, true
}

// PeekDepth returns the depth of the next target without removing it.
// The bool result is false if the frontier is empty.
func (f *Frontier) PeekDepth() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return 0, false
	}
	return (*f.queue)[0].Depth, true
}

// Len returns the number of queued targets.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been admitted or marked.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

// MarkSeen records a URL as seen without queueing it. Used when a fetch
// redirects to a new identity that must not be fetched again. Returns
// false if the URL was already seen.
func (f *Frontier) MarkSeen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(rawURL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)
	return true
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// targetHeap implements heap.Interface ordered by (depth, seq).
type targetHeap []docfold.Target

func (h targetHeap) Len() int { return len(h) }

func (h targetHeap) Less(i, j int) bool {
	if h[i].Depth != h[j].Depth {
		return h[i].Depth < h[j].Depth
	}
	return h[i].Seq < h[j].Seq
}

func (h targetHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *targetHeap) Push(x any) {
	t, _ := x.(docfold.Target)
	*h = append(*h, t)
}

func (h *targetHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
