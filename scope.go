package docfold

import (
	"net/url"
	"strings"
)

// Scope is the URL boundary confining a crawl to one documentation tree.
// It is derived from the seed URL at crawl start and never mutated after.
//
// A URL is in scope iff its scheme and host match the seed exactly and
// its path falls under the seed's directory prefix, with the prefix
// boundary on a path segment: a scope of /docs/v2 admits /docs/v2 and
// /docs/v2/intro but not /docs/v20.
type Scope struct {
	scheme    string
	host      string
	prefix    string // segment-aligned path prefix, no trailing slash, "" for root
	keepQuery bool
}

// ScopeOption configures a Scope.
type ScopeOption func(*Scope)

// KeepQuery makes query strings part of a URL's dedup identity.
// By default they are dropped during normalization.
func KeepQuery() ScopeOption {
	return func(s *Scope) {
		s.keepQuery = true
	}
}

// NewScope derives a Scope from the seed URL.
//
// The path prefix is the seed's directory: a seed of /v2/intro scopes
// the crawl to /v2/, while a seed ending in / scopes the crawl to that
// directory itself. Returns EINVALID if the seed is not an absolute
// http(s) URL.
func NewScope(seedURL string, opts ...ScopeOption) (*Scope, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid seed URL %q: %v", seedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "seed URL must be http or https, got %q", seedURL)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "seed URL has no host: %q", seedURL)
	}

	p := u.Path
	if !strings.HasSuffix(p, "/") {
		p = p[:strings.LastIndex(p, "/")+1]
	}

	s := &Scope{
		scheme: strings.ToLower(u.Scheme),
		host:   strings.ToLower(u.Host),
		prefix: strings.TrimSuffix(p, "/"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Contains reports whether the URL is in scope. It is a pure function
// of the URL and the fixed scope rule. Query strings and fragments are
// ignored for the decision.
func (s *Scope) Contains(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if strings.ToLower(u.Scheme) != s.scheme || strings.ToLower(u.Host) != s.host {
		return false
	}
	if s.prefix == "" {
		return true
	}
	path := strings.TrimSuffix(u.Path, "/")
	if path == s.prefix {
		return true
	}
	return strings.HasPrefix(path, s.prefix+"/")
}

// Normalize returns the dedup identity of a URL: lowercased scheme and
// host, fragment stripped, trailing slash removed, and the query string
// dropped unless the scope was built with KeepQuery. Returns EINVALID
// for URLs that are not absolute http(s).
func (s *Scope) Normalize(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", Errorf(EINVALID, "not an absolute http(s) URL: %q", rawURL)
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(u.Scheme))
	b.WriteString("://")
	b.WriteString(strings.ToLower(u.Host))
	b.WriteString(strings.TrimSuffix(u.Path, "/"))
	if s.keepQuery && u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}
	return b.String(), nil
}

// Scheme returns the scope's URL scheme, "http" or "https".
func (s *Scope) Scheme() string {
	return s.scheme
}

// Host returns the scope's host.
func (s *Scope) Host() string {
	return s.host
}

// Prefix returns the scope's path prefix without a trailing slash.
// It is empty when the scope covers the whole host.
func (s *Scope) Prefix() string {
	return s.prefix
}
