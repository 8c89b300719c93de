package mock

import (
	"context"

	"github.com/docfold/docfold"
)

var _ docfold.SeedDiscoverer = (*SeedDiscoverer)(nil)

// SeedDiscoverer is a mock implementation of docfold.SeedDiscoverer.
type SeedDiscoverer struct {
	DiscoverFn func(ctx context.Context, scope *docfold.Scope) ([]string, error)
}

func (s *SeedDiscoverer) Discover(ctx context.Context, scope *docfold.Scope) ([]string, error) {
	return s.DiscoverFn(ctx, scope)
}
