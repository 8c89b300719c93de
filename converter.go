package docfold

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g. from an Extractor) into
	// Markdown. The mapping is deterministic: converting the same
	// input twice yields byte-identical output. Empty input yields
	// empty output.
	Convert(html string) (string, error)
}
