package mock

import (
	"context"

	"github.com/docfold/docfold"
)

var _ docfold.Archive = (*Archive)(nil)

// Archive is a mock implementation of docfold.Archive.
type Archive struct {
	CreateRunFn      func(ctx context.Context, run *docfold.Run) error
	FinishRunFn      func(ctx context.Context, run *docfold.Run) error
	SavePagesFn      func(ctx context.Context, runID string, pages []*docfold.Page) error
	FindRunFn        func(ctx context.Context, id string) (*docfold.Run, error)
	FindRunsFn       func(ctx context.Context) ([]*docfold.Run, error)
	FindPagesByRunFn func(ctx context.Context, runID string) ([]*docfold.Page, error)
}

func (a *Archive) CreateRun(ctx context.Context, run *docfold.Run) error {
	return a.CreateRunFn(ctx, run)
}

func (a *Archive) FinishRun(ctx context.Context, run *docfold.Run) error {
	return a.FinishRunFn(ctx, run)
}

func (a *Archive) SavePages(ctx context.Context, runID string, pages []*docfold.Page) error {
	return a.SavePagesFn(ctx, runID, pages)
}

func (a *Archive) FindRun(ctx context.Context, id string) (*docfold.Run, error) {
	return a.FindRunFn(ctx, id)
}

func (a *Archive) FindRuns(ctx context.Context) ([]*docfold.Run, error) {
	return a.FindRunsFn(ctx)
}

func (a *Archive) FindPagesByRun(ctx context.Context, runID string) ([]*docfold.Page, error) {
	return a.FindPagesByRunFn(ctx, runID)
}
