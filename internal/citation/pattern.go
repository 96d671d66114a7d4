package citation

import (
	"fmt"
	"regexp"

	"github.com/matsen/citectx/internal/reference"
)

// ParseSurnames returns the surnames of an article's author string.
func ParseSurnames(author string) ([]string, error) {
	authors, err := reference.ParseAuthorString(author)
	if err != nil {
		return nil, fmt.Errorf("parsing authors: %w", err)
	}
	return reference.Surnames(authors), nil
}

// BuildPattern returns the author-year pattern of an in-text citation:
//
//	one author:    Surname'?s?,? (\(?YEAR\)?)?
//	two authors:   S1 (&|and|&amp;) S2'?s?,? (\(?YEAR\)?)?
//	three or more: S1 et al.?,? (\(?YEAR\)?)?
//
// Surnames and year are matched literally.
func BuildPattern(surnames []string, year string) string {
	y := regexp.QuoteMeta(year)
	switch len(surnames) {
	case 0:
		return ""
	case 1:
		return regexp.QuoteMeta(surnames[0]) + `'?s?,? (\(?` + y + `\)?)?`
	case 2:
		return regexp.QuoteMeta(surnames[0]) + ` (&|and|&amp;) ` + regexp.QuoteMeta(surnames[1]) +
			`'?s?,? (\(?` + y + `\)?)?`
	default:
		return regexp.QuoteMeta(surnames[0]) + ` et al.?,? (\(?` + y + `\)?)?`
	}
}

// CompilePattern compiles BuildPattern for matching marker texts.
func CompilePattern(surnames []string, year string) (*regexp.Regexp, error) {
	if len(surnames) == 0 {
		return nil, fmt.Errorf("building citation pattern: %w", reference.ErrMissingSurnameDelimiter)
	}
	re, err := regexp.Compile(`(?s)` + BuildPattern(surnames, year))
	if err != nil {
		return nil, fmt.Errorf("compiling citation pattern: %w", err)
	}
	return re, nil
}
