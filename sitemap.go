package docfold

import "context"

// SeedDiscoverer finds additional in-scope seed URLs for a crawl, for
// example from a site's sitemaps. Discovered URLs join the frontier at
// depth 0 so pages unreachable through links are still collected.
type SeedDiscoverer interface {
	Discover(ctx context.Context, scope *Scope) ([]string, error)
}
