package util

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText folds free text into a comparable form:
// diacritics stripped, case folded and whitespace collapsed.
// "  Praza de  España " and "praza de espana" normalise to the same value.
func NormalizeText(text string) string {
	stripper := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

	plain, _, err := transform.String(stripper, text)
	if err != nil {
		plain = text
	}

	return strings.Join(strings.Fields(cases.Fold().String(plain)), " ")
}

// TrimString cuts s to at most length bytes without splitting a rune
func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	for length > 0 && !utf8.RuneStart(s[length]) {
		length--
	}

	return s[:length]
}
