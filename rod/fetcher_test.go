//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements docfold.Fetcher.
var _ docfold.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("renders JavaScript content", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><body><div id="out"></div>
				<script>document.getElementById("out").textContent = "rendered";</script>
				</body></html>`))
		}))
		defer srv.Close()

		f, err := rod.NewFetcher()
		require.NoError(t, err)
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		html, finalURL, err := f.Fetch(ctx, srv.URL)
		require.NoError(t, err)
		assert.Contains(t, html, "rendered")
		assert.Contains(t, finalURL, srv.URL)
	})

	t.Run("reports redirect target as final URL", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body>moved</body></html>"))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f, err := rod.NewFetcher()
		require.NoError(t, err)
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, finalURL, err := f.Fetch(ctx, srv.URL+"/old")
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/new", finalURL)
	})

	t.Run("recycles browser after threshold", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body>ok</body></html>"))
		}))
		defer srv.Close()

		f, err := rod.NewFetcher(rod.WithRecycleAfter(2))
		require.NoError(t, err)
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		for i := 0; i < 5; i++ {
			html, _, err := f.Fetch(ctx, srv.URL)
			require.NoError(t, err)
			assert.Contains(t, html, "ok")
		}
	})
}
