// Package reference defines the core domain types for bibliographic references.
package reference

// Article is one row of the article metadata table.
type Article struct {
	CitationKey string `json:"citation_key"`
	Author      string `json:"author"` // "Surname1, Forename1 and Surname2, Forename2"
	Title       string `json:"title"`
	Year        string `json:"year"`
	Journal     string `json:"journal"`
}

// Query returns the bibliographic fields used to search for the article
// inside another document's bibliography.
func (a Article) Query() Query {
	return Query{
		Author:  a.Author,
		Title:   a.Title,
		Year:    a.Year,
		Journal: a.Journal,
	}
}

// Query is the target literature-review entry searched for in a document's
// bibliography. Any field may be empty.
type Query struct {
	Author  string `json:"author"`
	Title   string `json:"title"`
	Year    string `json:"year"`
	Journal string `json:"journal"`
}

// BibliographyEntry is one entry extracted from a document's bibliography.
type BibliographyEntry struct {
	ID      string `json:"id"`      // xml:id, unique per document
	Authors string `json:"authors"` // "Surname, Forename;Surname, Forename"
	Title   string `json:"title"`
	Year    string `json:"year"`
	Journal string `json:"journal"`
}

// Pair is one (literature review, citing paper) combination to process.
type Pair struct {
	Review Article `json:"review"`
	Citing Article `json:"citing"`
}

// Key returns the (review, citing paper) citation keys.
func (p Pair) Key() (string, string) {
	return p.Review.CitationKey, p.Citing.CitationKey
}
