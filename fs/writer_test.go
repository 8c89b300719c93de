package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docfold/docfold/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes content to the target path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docs.md")
		w := fs.NewWriter(path)

		require.NoError(t, w.Write([]byte("# Title\n\nbody\n")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Title\n\nbody\n", string(got))
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "nested", "docs.md")
		w := fs.NewWriter(path)

		require.NoError(t, w.Write([]byte("content")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "content", string(got))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docs.md")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		w := fs.NewWriter(path)
		require.NoError(t, w.Write([]byte("new")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "docs.md")
		w := fs.NewWriter(path)

		require.NoError(t, w.Write([]byte("content")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "docs.md", entries[0].Name())
	})
}
