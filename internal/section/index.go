package section

import "strings"

// introductionLimit is the relative document position before which a
// passage without a heading is taken to be part of the introduction.
const introductionLimit = 0.3

// Index maps the headings of one document to their categories.
type Index struct {
	headings []Heading
}

// NewIndex classifies the normalized heading titles of a document.
func NewIndex(titles []string) *Index {
	cats := Classify(titles)
	headings := make([]Heading, len(titles))
	for i, t := range titles {
		headings[i] = Heading{Title: t, Category: cats[i]}
	}
	return &Index{headings: headings}
}

// Headings returns the classified headings in document order.
func (x *Index) Headings() []Heading {
	return append([]Heading(nil), x.headings...)
}

// Category returns the category of a heading title. When several
// headings share the title the last one wins. A passage without a heading
// that lies early in the document counts as introduction; position is nil
// when the passage could not be located.
func (x *Index) Category(title string, position *float64) Category {
	title = strings.TrimSpace(title)
	if title == "" {
		if position != nil && *position < introductionLimit {
			return Introduction
		}
		return Unknown
	}

	cat := Unknown
	want := strings.ToLower(title)
	for _, h := range x.headings {
		if h.Title == want {
			cat = h.Category
		}
	}
	return cat
}
