// Package match fuzzily matches a target reference against the entries of
// a document's bibliography.
package match

import (
	"regexp"
	"strings"

	"github.com/matsen/citectx/internal/fuzzy"
	"github.com/matsen/citectx/internal/reference"
)

// Weights of the per-field similarities. They sum to 1.
const (
	AuthorWeight  = 0.15
	TitleWeight   = 0.75
	YearWeight    = 0.05
	JournalWeight = 0.05
)

// misfiledTitleRatio is the ratio above which an entry's journal field is
// taken to hold the query's title.
const misfiledTitleRatio = 0.9

var (
	nonAuthorChars  = regexp.MustCompile(`[^a-z0-9, ]+`)
	nonJournalChars = regexp.MustCompile(`[^a-z0-9 ]+`)
	nonTitleChars   = regexp.MustCompile(`[^a-z0-9, ]+`)
	leadingReview   = regexp.MustCompile(`^review`)
)

var titleAbbreviations = strings.NewReplacer(
	"information technology", "it",
	"information systems", "is",
	"resource-based view", "rbv",
)

// Scores holds the per-field similarities of a query and an entry.
type Scores struct {
	Author  float64
	Title   float64
	Year    float64
	Journal float64
}

// Weighted returns the weighted average of the field scores.
func (s Scores) Weighted() float64 {
	return AuthorWeight*s.Author +
		TitleWeight*s.Title +
		YearWeight*s.Year +
		JournalWeight*s.Journal
}

// Compare computes the per-field similarities of a query and a
// bibliography entry. Missing fields lower the score but never fail.
func Compare(q reference.Query, e reference.BibliographyEntry) Scores {
	journalEntry := normalizeJournal(e.Journal)
	journalQuery := normalizeJournal(q.Journal)
	titleEntry := normalizeTitle(e.Title)
	titleQuery := normalizeTitle(q.Title)

	s := Scores{
		Author:  fuzzy.Ratio(normalizeAuthor(e.Authors), normalizeAuthor(q.Author)),
		Year:    fuzzy.PartialRatio(e.Year, q.Year),
		Journal: fuzzy.Ratio(journalEntry, journalQuery),
	}

	// Titles are sometimes filed as the journal.
	misfiled := fuzzy.Ratio(journalEntry, titleQuery)
	s.Title = max(fuzzy.Ratio(titleEntry, titleQuery), misfiled)
	if misfiled > misfiledTitleRatio {
		s.Journal = 1
	}
	return s
}

// Similarity returns the weighted similarity of a query and an entry in [0,1].
func Similarity(q reference.Query, e reference.BibliographyEntry) float64 {
	return Compare(q, e).Weighted()
}

func normalizeAuthor(s string) string {
	return nonAuthorChars.ReplaceAllString(strings.ToLower(s), "")
}

func normalizeJournal(s string) string {
	return nonJournalChars.ReplaceAllString(strings.ToLower(s), "")
}

func normalizeTitle(s string) string {
	s = titleAbbreviations.Replace(strings.ToLower(s))
	s = leadingReview.ReplaceAllString(s, "")
	return nonTitleChars.ReplaceAllString(s, "")
}
