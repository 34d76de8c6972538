// Package text canonicalizes raw chat utterances and extracts quantities
// from them.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented runes and drops the combining marks, so
// "é" becomes "e" before the ASCII filter runs.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes free text into a matchable form: diacritics
// stripped, lowercased, everything outside [a-z0-9_ ] replaced by a space,
// whitespace collapsed and trimmed. It is pure and idempotent; symbol-only
// input yields "".
func Normalize(s string) string {
	decomposed, _, err := transform.String(stripMarks, s)
	if err != nil {
		decomposed = s
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range strings.ToLower(decomposed) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Slug is the underscore-joined form of Normalize, the shape catalog keys
// are stored in.
func Slug(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "_")
}
