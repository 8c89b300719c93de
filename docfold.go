// Package docfold turns a documentation website into a single Markdown
// document. It crawls pages breadth-first within a URL path scope,
// extracts the main content of each page, converts it to Markdown, and
// consolidates the results into one ordered document with a table of
// contents and internal cross-references.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g. goquery/,
// trafilatura/, rod/).
package docfold
