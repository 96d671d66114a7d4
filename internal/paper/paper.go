// Package paper describes citing papers and (review, citing paper) pairs
// with document-level metadata.
package paper

import (
	"regexp"
	"slices"
	"strconv"

	"github.com/matsen/citectx/internal/citation"
	"github.com/matsen/citectx/internal/features"
	"github.com/matsen/citectx/internal/reference"
	"github.com/matsen/citectx/internal/storage"
	"github.com/matsen/citectx/internal/tei"
)

// Citing describes one citing paper.
type Citing struct {
	CitationKey     string `json:"citation_key_cp"`
	Title           string `json:"title"`
	TotalReferences int    `json:"total_references"`
	TotalCitations  int    `json:"total_citations"`
	Abstract        string `json:"abstract"`
}

// DescribeCiting builds the metadata of a citing paper. The title comes
// from the article table, or from the document when the table has none.
// A document without an abstract uses the text of its first body section.
func DescribeCiting(a reference.Article, doc *tei.Document) Citing {
	c := Citing{
		CitationKey:     a.CitationKey,
		Title:           a.Title,
		TotalReferences: doc.TotalReferences(),
		TotalCitations:  doc.TotalCitations(),
		Abstract:        doc.Abstract(),
	}
	if c.Title == "" {
		c.Title = doc.Title()
	}
	if c.Abstract == "" {
		c.Abstract = doc.FirstSectionText()
	}
	return c
}

// Pair describes the relation of a review and a citing paper.
type Pair struct {
	ReviewKey    string `json:"citation_key_lr"`
	CitingKey    string `json:"citation_key_cp"`
	SelfCitation bool   `json:"self_citation"`
	RefInTitle   bool   `json:"ref_in_title"`
}

// DescribePair builds the pair metadata. title is the citing paper's
// title as found in its document.
func DescribePair(p reference.Pair, title string) (Pair, error) {
	reviewSurnames, err := citation.ParseSurnames(p.Review.Author)
	if err != nil {
		return Pair{}, err
	}
	out := Pair{
		ReviewKey:  p.Review.CitationKey,
		CitingKey:  p.Citing.CitationKey,
		RefInTitle: RefInTitle(title, reviewSurnames),
	}
	if p.Citing.Author != "" {
		citingSurnames, err := citation.ParseSurnames(p.Citing.Author)
		if err != nil {
			return Pair{}, err
		}
		out.SelfCitation = IsSelfCitation(reviewSurnames, citingSurnames)
	}
	return out, nil
}

// IsSelfCitation reports whether any citing paper surname is a review
// surname.
func IsSelfCitation(review, citing []string) bool {
	for _, s := range citing {
		if slices.Contains(review, s) {
			return true
		}
	}
	return false
}

// TitlePattern returns the case-insensitive pattern of a review cited in
// a title: "S1", "S1 (&|and) S2" or "S1 et al.".
func TitlePattern(surnames []string) string {
	switch len(surnames) {
	case 0:
		return ""
	case 1:
		return regexp.QuoteMeta(surnames[0])
	case 2:
		return regexp.QuoteMeta(surnames[0]) + ` (&|and) ` + regexp.QuoteMeta(surnames[1])
	default:
		return regexp.QuoteMeta(surnames[0]) + ` et al.`
	}
}

// RefInTitle reports whether title cites the review by its authors.
func RefInTitle(title string, surnames []string) bool {
	if title == "" || len(surnames) == 0 {
		return false
	}
	re, err := regexp.Compile(`(?i)` + TitlePattern(surnames))
	if err != nil {
		return false
	}
	return re.MatchString(title)
}

// CitingColumns are the columns of the citing paper table.
var CitingColumns = []string{"citation_key_cp", "title", "total_references", "total_citations", "abstract"}

// CitingTable converts citing paper records into a table.
func CitingTable(records []Citing) *storage.Table {
	t := &storage.Table{Name: "citing_papers", Columns: CitingColumns}
	for _, c := range records {
		t.Rows = append(t.Rows, []string{
			c.CitationKey,
			c.Title,
			strconv.Itoa(c.TotalReferences),
			strconv.Itoa(c.TotalCitations),
			c.Abstract,
		})
	}
	return t
}

// PairColumns are the columns of the pair table.
var PairColumns = []string{"citation_key_lr", "citation_key_cp", "self_citation", "ref_in_title"}

// PairTable converts pair records into a table.
func PairTable(records []Pair) *storage.Table {
	t := &storage.Table{Name: "pairs", Columns: PairColumns}
	for _, p := range records {
		t.Rows = append(t.Rows, []string{
			p.ReviewKey,
			p.CitingKey,
			features.FormatBool(p.SelfCitation),
			features.FormatBool(p.RefInTitle),
		})
	}
	return t
}
