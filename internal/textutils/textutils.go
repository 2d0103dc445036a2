// Package textutils provides text normalization for matching locale-variant
// spreadsheet labels.
package textutils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeLabel lowercases a header label, strips accents and collapses
// whitespace, so "Fecha Elaboración " and "fecha elaboracion" compare equal.
func NormalizeLabel(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return CollapseSpaces(strings.ToLower(result))
}

// CollapseSpaces replaces runs of whitespace with a single space and trims.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}
