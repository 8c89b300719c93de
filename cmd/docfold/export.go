package main

import (
	"fmt"
	"time"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/consolidate"
	"github.com/docfold/docfold/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	archive := deps.Archive
	if archive == nil {
		opened, closeArchive, err := deps.OpenArchive(c.Archive)
		if err != nil {
			return err
		}
		defer closeArchive()
		archive = opened
	}

	run, err := archive.FindRun(deps.Ctx, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docfold.ErrorMessage(err))
		return err
	}

	pages, err := archive.FindPagesByRun(deps.Ctx, run.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docfold.ErrorMessage(err))
		return err
	}

	builder := &consolidate.Builder{
		Title:       c.Title,
		Seed:        run.Seed,
		GeneratedAt: time.Now().UTC(),
		RunID:       run.ID,
	}
	doc := builder.Build(pages)

	if err := fs.NewWriter(c.Output).Write([]byte(doc)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docfold.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s: %d pages from run %s\n", c.Output, len(pages), run.ID)

	return nil
}
