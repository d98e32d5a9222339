package importer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// letterFolder unifies the Arabic and Persian code points that spreadsheets
// mix freely, so "كرم" and "کرم" land on the same label.
var letterFolder = runes.Map(func(r rune) rune {
	switch r {
	case 'ي', 'ى':
		return 'ی'
	case 'ك':
		return 'ک'
	case '\u00a0', '\u200f':
		return ' '
	}
	return r
})

// cleanCell trims a cell, folds Arabic letters and collapses inner whitespace.
func cleanCell(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(letterFolder, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(out), " ")
}

// cleanCode is cleanCell plus digit folding; codes are compared as ASCII.
// A numeric code exported as a float ("60.0", "۴۲٫۰۰") loses its zero
// fraction; leading zeros stay.
func cleanCode(s string) string {
	code := foldDigits(cleanCell(s))
	i := strings.IndexAny(code, ".٫")
	if i <= 0 {
		return code
	}
	whole, frac := code[:i], code[i:]
	_, size := utf8.DecodeRuneInString(frac)
	frac = frac[size:]
	if frac == "" || strings.Trim(frac, "0") != "" || strings.TrimFunc(whole, isDigit) != "" {
		return code
	}
	return whole
}
