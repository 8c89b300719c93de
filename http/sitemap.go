package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/docfold/docfold"
)

// Ensure Sitemap implements docfold.SeedDiscoverer at compile time.
var _ docfold.SeedDiscoverer = (*Sitemap)(nil)

// Sitemap discovers crawl seeds from a site's sitemaps. Discovered URLs
// that fall inside the crawl scope can pre-seed the frontier so pages
// unreachable through links are still collected.
type Sitemap struct {
	client *http.Client
}

// NewSitemap creates a new Sitemap discoverer with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemap(client *http.Client) *Sitemap {
	if client == nil {
		client = http.DefaultClient
	}
	return &Sitemap{client: client}
}

// Discover finds all in-scope URLs from the site's sitemaps. Sitemap
// locations come from robots.txt Sitemap directives, falling back to
// /sitemap.xml. Sitemap index files are followed recursively. Returns
// an empty slice (not nil) when the site publishes no sitemap.
func (s *Sitemap) Discover(ctx context.Context, scope *docfold.Scope) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := &url.URL{Scheme: scope.Scheme(), Host: scope.Host()}

	sitemapURLs, err := s.findSitemapURLs(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	var inScope []string
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, sitemapURL := range sitemapURLs {
		urls, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if !scope.Contains(u) {
				continue
			}
			norm, err := scope.Normalize(u)
			if err != nil {
				continue
			}
			if !seenURLs[norm] {
				seenURLs[norm] = true
				inScope = append(inScope, norm)
			}
		}
	}

	if inScope == nil {
		inScope = []string{}
	}
	return inScope, nil
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back
// to /sitemap.xml.
func (s *Sitemap) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	sitemapURL := root.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.urlExists(ctx, sitemapURL.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{sitemapURL.String()}, nil
	}

	return nil, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *Sitemap) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Directive name is case-insensitive per the robots.txt convention.
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[len("sitemap:"):])
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, docfold.Errorf(docfold.EINTERNAL, "reading robots.txt: %v", err)
	}

	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and
// sitemapindex documents.
func (s *Sitemap) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Index files can reference each other; process each sitemap once.
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, docfold.Errorf(docfold.EINTERNAL, "parsing sitemap XML from %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, docfold.Errorf(docfold.EINTERNAL, "empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, seen)
	}

	return s.parseURLSet(root), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
func (s *Sitemap) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var allURLs []string

	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		sitemapURL := strings.TrimSpace(loc.Text())
		if sitemapURL == "" {
			continue
		}

		urls, err := s.processSitemap(ctx, sitemapURL, seen)
		if err != nil {
			return nil, err
		}
		allURLs = append(allURLs, urls...)
	}

	return allURLs, nil
}

// parseURLSet extracts URLs from a <urlset> element.
func (s *Sitemap) parseURLSet(root *etree.Element) []string {
	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// fetchURL fetches a URL and returns the response body.
func (s *Sitemap) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, docfold.Errorf(docfold.EINVALID, "creating request for %s: %v", targetURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, docfold.Errorf(docfold.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *Sitemap) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, docfold.Errorf(docfold.EINVALID, "creating request for %s: %v", targetURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
