package main

import (
	"fmt"

	"github.com/docfold/docfold"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	archive := deps.Archive
	if archive == nil {
		opened, closeArchive, err := deps.OpenArchive(c.Archive)
		if err != nil {
			return err
		}
		defer closeArchive()
		archive = opened
	}

	runs, err := archive.FindRuns(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docfold.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs archived.")
		return nil
	}

	for _, run := range runs {
		status := "running"
		if !run.FinishedAt.IsZero() {
			status = fmt.Sprintf("%d pages (%d with content, %d empty, %d failed, %d skipped)",
				run.Cleaned+run.Empty+run.Failed+run.Skipped,
				run.Cleaned, run.Empty, run.Failed, run.Skipped)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Seed, status)
	}

	return nil
}
