package bloom_test

import (
	"fmt"
	"testing"

	"github.com/docfold/docfold/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://example.com/docs/intro"))

	f.Add("https://example.com/docs/intro")

	assert.True(t, f.Test("https://example.com/docs/intro"))
	assert.False(t, f.Test("https://example.com/docs/guide"))
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	f.Add("https://example.com/docs/intro")
	countAfterFirst := f.EstimatedCount()

	f.Add("https://example.com/docs/intro")
	f.Add("https://example.com/docs/intro")

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	urls := make([]string, 500)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/docs/page-%d", i)
		f.Add(urls[i])
	}

	// Every added URL must test positive.
	for _, u := range urls {
		assert.True(t, f.Test(u), "false negative for %s", u)
	}
}
