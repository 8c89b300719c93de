package goquery_test

import (
	"testing"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure LinkExtractor implements docfold.LinkExtractor at compile time.
var _ docfold.LinkExtractor = (*goquery.LinkExtractor)(nil)

const baseURL = "https://docs.example.com/v2/intro"

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against the page URL", func(t *testing.T) {
		t.Parallel()

		html := `<body>
			<a href="/v2/guide">Guide</a>
			<a href="api">API</a>
			<a href="../v1/old">Old</a>
		</body>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, baseURL)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://docs.example.com/v2/guide",
			"https://docs.example.com/v2/api",
			"https://docs.example.com/v1/old",
		}, links)
	})

	t.Run("resolves protocol-relative links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="//cdn.example.com/v2/asset">Asset</a>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, baseURL)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn.example.com/v2/asset"}, links)
	})

	t.Run("discards non-http schemes", func(t *testing.T) {
		t.Parallel()

		html := `<body>
			<a href="mailto:team@example.com">Mail</a>
			<a href="javascript:void(0)">JS</a>
			<a href="ftp://example.com/file">FTP</a>
			<a href="https://docs.example.com/v2/guide">Guide</a>
		</body>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, baseURL)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/v2/guide"}, links)
	})

	t.Run("discards anchor-only self references", func(t *testing.T) {
		t.Parallel()

		html := `<a href="#install">Jump</a><a href="/v2/guide#install">Guide</a>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, baseURL)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/v2/guide#install"}, links)
	})

	t.Run("does not apply scope filtering", func(t *testing.T) {
		t.Parallel()

		// Scoping is policy and belongs to the frontier; extraction
		// reports everything it parses.
		html := `<a href="https://other.com/x">Elsewhere</a>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, baseURL)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://other.com/x"}, links)
	})

	t.Run("deduplicates preserving document order", func(t *testing.T) {
		t.Parallel()

		html := `<nav><a href="/v2/guide">Guide</a></nav>
			<main><a href="/v2/api">API</a><a href="/v2/guide">Guide again</a></main>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, baseURL)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://docs.example.com/v2/guide",
			"https://docs.example.com/v2/api",
		}, links)
	})

	t.Run("empty page yields no links", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks("<body><p>No links here.</p></body>", baseURL)

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewLinkExtractor()
		_, err := e.ExtractLinks("<a href='/x'>x</a>", "https://docs.example.com/%zz")

		require.Error(t, err)
		assert.Equal(t, docfold.EINVALID, docfold.ErrorCode(err))
	})
}
