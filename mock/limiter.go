package mock

import (
	"context"

	"github.com/docfold/docfold"
)

var _ docfold.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docfold.DomainLimiter.
// A zero value never blocks.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
