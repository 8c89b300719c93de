package docfold

import (
	"strings"
	"unicode"
)

// Anchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces space runs with single hyphens, and
// drops everything that is not a letter or digit. The mapping is
// deterministic so cross-references derived from it are stable.
func Anchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' || r == '/' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
