package match

import (
	"errors"

	"github.com/matsen/citectx/internal/reference"
)

// Acceptance thresholds for a best-scoring bibliography entry.
const (
	// NumericThreshold must be exceeded to resolve the target in
	// numerically cited documents.
	NumericThreshold = 0.85
	// LookupThreshold is the minimum score of a reference-id lookup.
	LookupThreshold = 0.8
)

var (
	// ErrNoBibliography is returned when a document has no usable
	// bibliography entries.
	ErrNoBibliography = errors.New("no bibliography")
	// ErrNotFound is returned when no entry clears the acceptance threshold.
	ErrNotFound = errors.New("reference not found in bibliography")
)

// Thresholds are the acceptance thresholds of a matcher.
type Thresholds struct {
	Numeric float64
	Lookup  float64
}

// DefaultThresholds returns NumericThreshold and LookupThreshold.
func DefaultThresholds() Thresholds {
	return Thresholds{Numeric: NumericThreshold, Lookup: LookupThreshold}
}

// Result is a scored bibliography entry.
type Result struct {
	Entry reference.BibliographyEntry
	Score float64
}

// Best returns the highest scoring entry. Ties keep the earliest entry.
// The second return value is false when entries is empty.
func Best(q reference.Query, entries []reference.BibliographyEntry) (Result, bool) {
	var best Result
	found := false
	for _, e := range entries {
		score := Similarity(q, e)
		if !found || score > best.Score {
			best = Result{Entry: e, Score: score}
			found = true
		}
	}
	return best, found
}

// LookupID finds the id of the entry denoting the query using the
// default thresholds.
func LookupID(q reference.Query, entries []reference.BibliographyEntry) (string, error) {
	return DefaultThresholds().LookupID(q, entries)
}

// ResolveNumeric resolves the query in a numerically cited document using
// the default thresholds.
func ResolveNumeric(q reference.Query, entries []reference.BibliographyEntry) (Result, error) {
	return DefaultThresholds().ResolveNumeric(q, entries)
}

// LookupID finds the id of the entry denoting the query.
//
// Entries without a title use their journal as the title; entries with
// neither are ignored. The best entry must score at least th.Lookup.
func (th Thresholds) LookupID(q reference.Query, entries []reference.BibliographyEntry) (string, error) {
	candidates := make([]reference.BibliographyEntry, 0, len(entries))
	for _, e := range entries {
		if e.Title == "" {
			if e.Journal == "" {
				continue
			}
			e.Title = e.Journal
		}
		candidates = append(candidates, e)
	}

	best, ok := Best(q, candidates)
	if !ok {
		return "", ErrNoBibliography
	}
	if best.Score < th.Lookup {
		return "", ErrNotFound
	}
	return best.Entry.ID, nil
}

// ResolveNumeric finds the entry denoting the query for numerically cited
// documents. Entries without a title are skipped and the best score must
// exceed th.Numeric.
func (th Thresholds) ResolveNumeric(q reference.Query, entries []reference.BibliographyEntry) (Result, error) {
	candidates := make([]reference.BibliographyEntry, 0, len(entries))
	for _, e := range entries {
		if e.Title != "" {
			candidates = append(candidates, e)
		}
	}

	best, ok := Best(q, candidates)
	if !ok {
		return Result{}, ErrNoBibliography
	}
	if best.Score <= th.Numeric {
		return best, ErrNotFound
	}
	return best, nil
}
