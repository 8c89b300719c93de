package docfold_test

import (
	"errors"
	"testing"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackExtractor(t *testing.T) {
	t.Parallel()

	t.Run("uses primary result when it has content", func(t *testing.T) {
		t.Parallel()

		e := &docfold.FallbackExtractor{
			Primary: &mock.Extractor{
				ExtractFn: func(html string) (*docfold.ExtractResult, error) {
					return &docfold.ExtractResult{Title: "T", ContentHTML: "<p>main</p>"}, nil
				},
			},
			Fallback: &mock.Extractor{
				ExtractFn: func(html string) (*docfold.ExtractResult, error) {
					t.Fatal("fallback should not be called")
					return nil, nil
				},
			},
		}

		res, err := e.Extract("<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "<p>main</p>", res.ContentHTML)
	})

	t.Run("falls back when primary finds nothing", func(t *testing.T) {
		t.Parallel()

		e := &docfold.FallbackExtractor{
			Primary: &mock.Extractor{
				ExtractFn: func(html string) (*docfold.ExtractResult, error) {
					return &docfold.ExtractResult{Title: "Primary Title"}, nil
				},
			},
			Fallback: &mock.Extractor{
				ExtractFn: func(html string) (*docfold.ExtractResult, error) {
					return &docfold.ExtractResult{Title: "Fallback Title", ContentHTML: "<p>rescued</p>"}, nil
				},
			},
		}

		res, err := e.Extract("<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "<p>rescued</p>", res.ContentHTML)
		assert.Equal(t, "Primary Title", res.Title, "primary title wins when present")
	})

	t.Run("falls back when primary errors", func(t *testing.T) {
		t.Parallel()

		e := &docfold.FallbackExtractor{
			Primary: &mock.Extractor{
				ExtractFn: func(html string) (*docfold.ExtractResult, error) {
					return nil, errors.New("parse failure")
				},
			},
			Fallback: &mock.Extractor{
				ExtractFn: func(html string) (*docfold.ExtractResult, error) {
					return &docfold.ExtractResult{Title: "F", ContentHTML: "<p>ok</p>"}, nil
				},
			},
		}

		res, err := e.Extract("<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "<p>ok</p>", res.ContentHTML)
		assert.Equal(t, "F", res.Title)
	})

	t.Run("empty everywhere is a valid empty result", func(t *testing.T) {
		t.Parallel()

		empty := &mock.Extractor{
			ExtractFn: func(html string) (*docfold.ExtractResult, error) {
				return &docfold.ExtractResult{}, nil
			},
		}
		e := &docfold.FallbackExtractor{Primary: empty, Fallback: empty}

		res, err := e.Extract("<html></html>")

		require.NoError(t, err)
		assert.Empty(t, res.ContentHTML)
	})

	t.Run("both failing returns the primary error", func(t *testing.T) {
		t.Parallel()

		primaryErr := errors.New("primary broke")
		e := &docfold.FallbackExtractor{
			Primary: &mock.Extractor{
				ExtractFn: func(html string) (*docfold.ExtractResult, error) {
					return nil, primaryErr
				},
			},
			Fallback: &mock.Extractor{
				ExtractFn: func(html string) (*docfold.ExtractResult, error) {
					return nil, errors.New("fallback broke")
				},
			},
		}

		_, err := e.Extract("<html></html>")

		assert.ErrorIs(t, err, primaryErr)
	})
}
