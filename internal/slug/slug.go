// Package slug normalizes user-entered text: URL slugs for store handles,
// digit-only phone numbers, and accent-insensitive folding for matching.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowers, strips accents, and collapses every non-alphanumeric run
// into a single dash: "Café de la Esquina" -> "cafe-de-la-esquina".
func Slugify(input string) string {
	s := Norm(input)

	var b strings.Builder
	lastDash := true // swallow leading dashes
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Digits keeps only the decimal digits of s, for phone normalization.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Norm folds s for matching: lower-case, accents stripped, trimmed.
func Norm(s string) string {
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	return strings.TrimSpace(strings.ToLower(folded))
}
