package skillname

import "strings"

// Normalize is the single normalization applied everywhere skill names are
// compared: trim surrounding whitespace, lowercase the rest.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsBlank reports whether a name normalizes to the empty string.
func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
