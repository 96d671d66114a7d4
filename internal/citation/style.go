// Package citation locates the in-text markers that cite a literature
// review and rewrites their paragraphs into REFERENCE/CITATION form.
package citation

import (
	"regexp"
	"unicode"
)

var bracketedYear = regexp.MustCompile(`\([1-3][0-9]{3}\)`)

// IsAlphanumeric reports whether a document cites numerically, judged from
// the texts of its bibliographic markers.
//
// Bracketed years are removed first. Each remaining text longer than one
// character votes numeric when it has more digits than ASCII letters. The
// document is numeric when numeric votes strictly outnumber the others.
func IsAlphanumeric(markerTexts []string) bool {
	numeric, other := 0, 0
	for _, text := range markerTexts {
		text = bracketedYear.ReplaceAllString(text, "")
		if len([]rune(text)) <= 1 {
			continue
		}
		digits, letters := 0, 0
		for _, r := range text {
			switch {
			case r >= '0' && r <= '9':
				digits++
			case r < unicode.MaxASCII && unicode.IsLetter(r):
				letters++
			}
		}
		if digits > letters {
			numeric++
		} else {
			other++
		}
	}
	return numeric > other
}
