package docfold

import (
	"context"
	"time"
)

// Run records one crawl execution. Pages are attached to a run so
// successive crawls of the same site can be compared or re-exported.
type Run struct {
	ID         string    `json:"id"`
	Seed       string    `json:"seed"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`

	// Page counts by terminal status, filled in when the run finishes.
	Cleaned int `json:"cleaned"`
	Empty   int `json:"empty"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Seed == "" {
		return Errorf(EINVALID, "run seed required")
	}
	return nil
}

// Archive persists crawl runs and their pages.
type Archive interface {
	// CreateRun stores a new run, assigning its ID and start time.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun records the run's end time and page counts.
	FinishRun(ctx context.Context, run *Run) error

	// SavePages stores the pages produced by a run.
	SavePages(ctx context.Context, runID string, pages []*Page) error

	// FindRun retrieves a run by ID. Returns ENOTFOUND if missing.
	FindRun(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves all runs, most recent first.
	FindRuns(ctx context.Context) ([]*Run, error)

	// FindPagesByRun retrieves a run's pages in discovery order.
	FindPagesByRun(ctx context.Context, runID string) ([]*Page, error)
}
