package text

import (
	"strconv"
	"strings"
)

// baseNumerals is the closed spoken-number vocabulary the bot accepts.
// Anything beyond it (ratus, ribu, puluh compounds) is out of range for a
// warung order and deliberately not parsed.
var baseNumerals = map[string]int{
	"nol":      0,
	"kosong":   0,
	"satu":     1,
	"se":       1,
	"dua":      2,
	"tiga":     3,
	"empat":    4,
	"lima":     5,
	"enam":     6,
	"tujuh":    7,
	"delapan":  8,
	"lapan":    8,
	"sembilan": 9,
	"sepuluh":  10,
	"sebelas":  11,
}

// numeralWord maps a single normalized word to its value, including the
// "belas" suffix composition: se+belas is 11, any base numeral 1..9 plus the
// suffix is that numeral + 10.
func numeralWord(word string) (int, bool) {
	if n, ok := baseNumerals[word]; ok {
		return n, true
	}
	const suffix = "belas"
	if strings.HasSuffix(word, suffix) && len(word) > len(suffix) {
		prefix := strings.TrimSpace(strings.TrimSuffix(word, suffix))
		if prefix == "se" {
			return 11, true
		}
		if n, ok := baseNumerals[prefix]; ok && n >= 1 && n <= 9 {
			return n + 10, true
		}
	}
	return 0, false
}

// ResolveQuantity extracts an explicit quantity from raw text. Digit
// literals win over number words even when a word appears earlier; only the
// first digit run counts. It reports false when the text carries no
// quantity signal at all; defaulting to 1 is the order builder's decision,
// not this function's.
func ResolveQuantity(s string) (int, bool) {
	if digits := firstDigitRun(s); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			return n, true
		}
	}

	cleaned := Normalize(s)
	if cleaned == "" {
		return 0, false
	}

	// Whole string as one compound word, e.g. "tiga belas".
	if n, ok := numeralWord(cleaned); ok {
		return n, true
	}

	tokens := strings.Split(cleaned, " ")
	for i, tok := range tokens {
		if n, ok := numeralWord(tok); ok {
			return n, true
		}
		// A bare "belas" right after a base numeral composes the same way
		// as the suffix form.
		if tok == "belas" && i > 0 {
			if n, ok := baseNumerals[tokens[i-1]]; ok {
				return n + 10, true
			}
		}
	}

	return 0, false
}

func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}
