// Package idents renders project identifiers into the naming conventions
// shared by the schema compiler and the code generator: upper-camel case
// for type names, lower-snake case for member names. Both components must
// go through this package so generated names always line up.
package idents

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pascal renders an identifier in upper-camel case.
func Pascal(s string) string {
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Snake renders an identifier in lower-snake case.
func Snake(s string) string {
	lower := cases.Lower(language.Und)
	words := splitWords(s)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, "_")
}

// splitWords cuts an identifier on separators and camel-case boundaries.
// An uppercase run stays one word until a lowercase letter follows, so
// "HTTPServer" splits into "HTTP", "Server".
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r):
			prevCased := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevCased || (nextLower && len(cur) > 0) {
				flush()
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}
