package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text and strips diacritical marks so that
// "Transformación" matches "transformacion". Pure and total: empty in,
// empty out.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// The transform chain carries internal buffers, so a fresh one is built
	// per call to keep Normalize safe for concurrent callers.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		return strings.ToLower(text)
	}
	return strings.ToLower(stripped)
}

// Terms splits a query into normalized search terms. Tokens are delimited by
// anything that is not a letter or digit, so punctuation-only queries yield
// no terms at all.
func Terms(query string) []string {
	return strings.FieldsFunc(Normalize(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
