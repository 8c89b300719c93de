// Package consolidate merges crawled page records into a single ordered
// Markdown document with a table of contents and internal
// cross-references.
package consolidate

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/docfold/docfold"
)

// Builder assembles the consolidated document. Fields configure the
// document header; the zero value produces a document with no header
// metadata beyond the title.
type Builder struct {
	// Title is the document title. Falls back to Seed when empty.
	Title string

	// Seed is the crawl's seed URL, shown in the header.
	Seed string

	// GeneratedAt stamps the header when non-zero.
	GeneratedAt time.Time

	// RunID tags the document with the crawl run when non-empty.
	RunID string

	// KeepQuery mirrors the crawl's URL identity policy: when set,
	// query strings distinguish pages for cross-link rewriting.
	KeepQuery bool
}

// entry is one page's slot in the document.
type entry struct {
	page        *docfold.Page
	heading     string
	anchor      string
	duplicateOf *entry // first entry with identical content, if any
}

// Build renders the consolidated document from page records in
// discovery order. Pages are never re-ordered or dropped: pages without
// extractable content and failed pages keep their table-of-contents
// slot with an explicit marker. Links pointing at pages represented in
// the document are rewritten to internal anchors. Skipped pages
// (redirects onto content already represented) contribute only to the
// summary counts.
//
// Build is deterministic: the same pages and configuration yield
// byte-identical output.
func (b *Builder) Build(pages []*docfold.Page) string {
	var entries []*entry
	anchorCounts := make(map[string]int)
	byHash := make(map[string]*entry)
	anchorByURL := make(map[string]string)

	var cleaned, empty, failed, skipped int

	for _, p := range pages {
		switch p.Status {
		case docfold.StatusSkipped:
			skipped++
			continue
		case docfold.StatusCleaned:
			cleaned++
		case docfold.StatusEmpty:
			empty++
		case docfold.StatusFailed:
			failed++
		}

		heading := p.Title
		if heading == "" {
			heading = p.URL
		}

		base := docfold.Anchor(heading)
		if base == "" {
			base = "page"
		}
		anchor := base
		if n, exists := anchorCounts[base]; exists {
			anchor = base + "-" + strconv.Itoa(n)
			anchorCounts[base]++
		} else {
			anchorCounts[base] = 1
		}

		e := &entry{page: p, heading: heading, anchor: anchor}
		if p.Status == docfold.StatusCleaned {
			hash := p.ContentHash
			if hash == "" {
				hash = fmt.Sprintf("%x", xxhash.Sum64String(p.Content))
			}
			if first, ok := byHash[hash]; ok {
				e.duplicateOf = first
			} else {
				byHash[hash] = e
			}
		}
		entries = append(entries, e)
		anchorByURL[b.canonical(p.URL)] = anchor
	}

	var sb strings.Builder

	// Header.
	title := b.Title
	if title == "" {
		title = b.Seed
	}
	if title == "" {
		title = "Consolidated Documentation"
	}
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
	if b.Seed != "" {
		sb.WriteString("Source: ")
		sb.WriteString(b.Seed)
		sb.WriteString("\n")
	}
	if !b.GeneratedAt.IsZero() {
		sb.WriteString("Generated: ")
		sb.WriteString(b.GeneratedAt.UTC().Format(time.RFC3339))
		sb.WriteString("\n")
	}
	if b.RunID != "" {
		sb.WriteString("Run: ")
		sb.WriteString(b.RunID)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Pages: %d crawled, %d with content, %d without extractable content, %d failed",
		len(entries), cleaned, empty, failed)
	if skipped > 0 {
		fmt.Fprintf(&sb, ", %d skipped", skipped)
	}
	sb.WriteString(".\n\n")

	// Table of contents.
	sb.WriteString("## Contents\n\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "- [%s](#%s)", e.heading, e.anchor)
		switch {
		case e.page.Status == docfold.StatusFailed:
			sb.WriteString(" *(fetch failed)*")
		case e.page.Status == docfold.StatusEmpty:
			sb.WriteString(" *(no content extracted)*")
		case e.duplicateOf != nil:
			fmt.Fprintf(&sb, " *(duplicate of [%s](#%s))*", e.duplicateOf.heading, e.duplicateOf.anchor)
		}
		sb.WriteString("\n")
	}

	// Sections.
	for _, e := range entries {
		sb.WriteString("\n---\n\n")
		fmt.Fprintf(&sb, "## %s\n\n", e.heading)
		fmt.Fprintf(&sb, "Source: %s\n\n", e.page.URL)

		switch {
		case e.page.Status == docfold.StatusFailed:
			fmt.Fprintf(&sb, "*Fetch failed: %s.*\n", e.page.FetchError)
		case e.page.Status == docfold.StatusEmpty:
			sb.WriteString("*No content extracted from this page.*\n")
		case e.duplicateOf != nil:
			fmt.Fprintf(&sb, "*Content identical to [%s](#%s).*\n", e.duplicateOf.heading, e.duplicateOf.anchor)
		default:
			body := b.rewriteLinks(e.page.Content, anchorByURL)
			body = demoteHeadings(body)
			sb.WriteString(body)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// canonical reduces a URL to the matching key used for cross-reference
// rewriting, mirroring the crawl's dedup identity: lowercased scheme
// and host, fragment and trailing slash stripped, query dropped unless
// KeepQuery is set.
func (b *Builder) canonical(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if idx := strings.Index(rawURL, "#"); idx != -1 {
			rawURL = rawURL[:idx]
		}
		return strings.TrimSuffix(rawURL, "/")
	}
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	if !b.KeepQuery {
		u.RawQuery = ""
	}
	return u.String()
}

// markdownLink matches inline markdown links with absolute targets.
// Image references carry a leading "!" and are left alone.
var markdownLink = regexp.MustCompile(`(!?)\[([^\]]*)\]\((https?://[^)\s]+)\)`)

// rewriteLinks replaces links targeting consolidated pages with internal
// anchor references. Fenced code blocks are left untouched.
func (b *Builder) rewriteLinks(markdown string, anchorByURL map[string]string) string {
	return mapOutsideCodeFences(markdown, func(segment string) string {
		return markdownLink.ReplaceAllStringFunc(segment, func(m string) string {
			parts := markdownLink.FindStringSubmatch(m)
			bang, text, target := parts[1], parts[2], parts[3]
			if bang != "" {
				return m
			}
			anchor, ok := anchorByURL[b.canonical(target)]
			if !ok {
				return m
			}
			return fmt.Sprintf("[%s](#%s)", text, anchor)
		})
	})
}

// headingLine matches an ATX heading at the start of a line.
var headingLine = regexp.MustCompile(`(?m)^(#{1,6})(\s)`)

// demoteHeadings shifts page headings one level down so they nest under
// the page's own section heading. Level 6 headings stay at 6.
func demoteHeadings(markdown string) string {
	return mapOutsideCodeFences(markdown, func(segment string) string {
		return headingLine.ReplaceAllStringFunc(segment, func(m string) string {
			sub := headingLine.FindStringSubmatch(m)
			hashes, space := sub[1], sub[2]
			if len(hashes) < 6 {
				hashes += "#"
			}
			return hashes + space
		})
	})
}

// mapOutsideCodeFences applies fn to the markdown outside ``` fenced
// blocks, preserving the fenced content verbatim.
func mapOutsideCodeFences(markdown string, fn func(string) string) string {
	parts := strings.Split(markdown, "```")
	for i := range parts {
		// Even indexes are outside fences.
		if i%2 == 0 {
			parts[i] = fn(parts[i])
		}
	}
	return strings.Join(parts, "```")
}
