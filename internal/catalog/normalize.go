// Package catalog searches, prices and pages the product catalog.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize folds text for comparison: accents are decomposed and dropped,
// then the result is lower-cased ("Látex" -> "latex").
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	result, _, err := transform.String(stripMarks, text)
	if err != nil {
		result = text
	}
	return strings.ToLower(result)
}

// Tokenize normalizes a search term and splits it on whitespace.
func Tokenize(term string) []string {
	return strings.Fields(Normalize(term))
}
