package reference

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingSurnameDelimiter is returned when an author in an author string
// is not written as "Surname, Forename".
var ErrMissingSurnameDelimiter = errors.New("author without surname delimiter")

// Author represents a paper author.
type Author struct {
	First string `json:"first"` // First/given name(s)
	Last  string `json:"last"`  // Last/family name
}

// ParseAuthorString splits an author string of the form
// "Surname1, Forename1 and Surname2, Forename2" into authors.
//
// Every author must carry a comma; the text before the first comma is the
// surname. An author without a comma makes the whole string ambiguous and
// returns ErrMissingSurnameDelimiter.
func ParseAuthorString(s string) ([]Author, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty author string", ErrMissingSurnameDelimiter)
	}

	parts := strings.Split(s, " and ")
	authors := make([]Author, 0, len(parts))
	for _, part := range parts {
		idx := strings.Index(part, ",")
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingSurnameDelimiter, part)
		}
		authors = append(authors, Author{
			Last:  part[:idx],
			First: strings.TrimSpace(part[idx+1:]),
		})
	}
	return authors, nil
}

// Surnames returns the last names of the authors, in order.
func Surnames(authors []Author) []string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Last
	}
	return names
}

// FormatBibliographyAuthor formats an author the way bibliography entries
// are compared: "Surname, Forename". When the surname is shorter than the
// forename the two are assumed to be swapped in the source and are
// written the other way round.
func FormatBibliographyAuthor(surname, forename string) string {
	if len(surname) < len(forename) {
		return forename + ", " + surname
	}
	return surname + ", " + forename
}
