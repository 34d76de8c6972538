// Package match resolves a normalized utterance to a canonical menu item
// key using an ordered cascade of matching strategies.
package match

import "strings"

// Strategy is one rule in the cascade. TryMatch reports the first catalog
// key the rule can pin the input to. Key iteration order breaks ties; there
// is no scoring.
type Strategy interface {
	TryMatch(normalized string, keys []string) (string, bool)
}

// stopWords are ordering and filler words that never name a menu item.
// Closed set; extend only when a real utterance shows a new filler.
var stopWords = map[string]struct{}{
	"pesan":  {},
	"mau":    {},
	"minta":  {},
	"beli":   {},
	"tolong": {},
	"dong":   {},
	"ya":     {},
	"dan":    {},
	"sama":   {},
	"please": {},
	"kak":    {},
	"bang":   {},
	"saya":   {},
	"aku":    {},
	"kamu":   {},
}

// filterTokens splits normalized text on spaces and drops pure-digit tokens
// and stop words.
func filterTokens(normalized string) []string {
	var out []string
	for _, tok := range strings.Fields(normalized) {
		if tok == "" || isDigits(tok) {
			continue
		}
		if _, ok := stopWords[tok]; ok {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// SlugContainment matches when the whole utterance, slug-formed, contains a
// catalog key as a substring.
type SlugContainment struct{}

func (SlugContainment) TryMatch(normalized string, keys []string) (string, bool) {
	slug := strings.ReplaceAll(normalized, " ", "_")
	if slug == "" {
		return "", false
	}
	for _, key := range keys {
		if key != "" && strings.Contains(slug, key) {
			return key, true
		}
	}
	return "", false
}

// TokenContainment matches when a catalog key contains one of the filtered
// utterance tokens (key contains token, not the reverse).
type TokenContainment struct{}

func (TokenContainment) TryMatch(normalized string, keys []string) (string, bool) {
	tokens := filterTokens(normalized)
	if len(tokens) == 0 {
		return "", false
	}
	for _, key := range keys {
		for _, tok := range tokens {
			if strings.Contains(key, tok) {
				return key, true
			}
		}
	}
	return "", false
}

// WindowContainment slides contiguous windows over the filtered tokens,
// longest window first and offsets left to right, and matches when a catalog
// key contains the underscore-joined window. This recovers multi-word item
// names typed with filler words interspersed.
type WindowContainment struct{}

func (WindowContainment) TryMatch(normalized string, keys []string) (string, bool) {
	tokens := filterTokens(normalized)
	for size := len(tokens); size >= 1; size-- {
		for start := 0; start+size <= len(tokens); start++ {
			window := strings.Join(tokens[start:start+size], "_")
			for _, key := range keys {
				if strings.Contains(key, window) {
					return key, true
				}
			}
		}
	}
	return "", false
}
