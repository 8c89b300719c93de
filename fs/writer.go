// Package fs writes the consolidated document to disk.
package fs

import (
	"os"
	"path/filepath"

	"github.com/docfold/docfold"
)

// Writer writes the consolidated Markdown document to a single file.
// The write is atomic: content goes to a temporary file in the target
// directory first and is renamed into place, so a crash mid-write never
// leaves a truncated document behind.
type Writer struct {
	path string
}

// NewWriter creates a Writer targeting the given output path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the output path the Writer targets.
func (w *Writer) Path() string {
	return w.path
}

// Write stores the document at the configured path, creating parent
// directories as needed.
func (w *Writer) Write(content []byte) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return docfold.Errorf(docfold.EINTERNAL, "creating output directory %s: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".tmp-*")
	if err != nil {
		return docfold.Errorf(docfold.EINTERNAL, "creating temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return docfold.Errorf(docfold.EINTERNAL, "writing %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return docfold.Errorf(docfold.EINTERNAL, "closing %s: %v", tmpName, err)
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return docfold.Errorf(docfold.EINTERNAL, "renaming %s to %s: %v", tmpName, w.path, err)
	}

	return nil
}
