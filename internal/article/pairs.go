package article

import (
	"fmt"
	"strings"

	"github.com/matsen/citectx/internal/storage"
)

// Column names of the pair table.
const (
	ColumnReview = "citation_key_lr"
	ColumnCiting = "citation_key_cp"
)

// Key identifies a (literature review, citing paper) pair.
type Key struct {
	Review string `json:"citation_key_lr"`
	Citing string `json:"citation_key_cp"`
}

// PairStats counts the rows of a pair table.
type PairStats struct {
	Rows       int `json:"rows"`
	Incomplete int `json:"incomplete"` // review or citing key empty
	Duplicate  int `json:"duplicate"`
}

// Skipped returns the number of rows that yield no pair.
func (s PairStats) Skipped() int {
	return s.Incomplete + s.Duplicate
}

// ReadPairs reads the pair table at path. Rows with an empty key are
// skipped and repeated pairs are kept once, in table order. The stats
// account for every row of the table.
func ReadPairs(path string) ([]Key, PairStats, error) {
	var stats PairStats
	t, err := storage.Read(path)
	if err != nil {
		return nil, stats, fmt.Errorf("reading pairs: %w", err)
	}
	for _, col := range []string{ColumnReview, ColumnCiting} {
		if t.Index(col) < 0 {
			return nil, stats, fmt.Errorf("pair table has no %q column", col)
		}
	}

	seen := make(map[Key]bool)
	var keys []Key
	stats.Rows = len(t.Rows)
	for i := range t.Rows {
		k := Key{
			Review: strings.TrimSpace(t.Get(i, ColumnReview)),
			Citing: strings.TrimSpace(t.Get(i, ColumnCiting)),
		}
		switch {
		case k.Review == "" || k.Citing == "":
			stats.Incomplete++
		case seen[k]:
			stats.Duplicate++
		default:
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys, stats, nil
}

// CitingKeys returns the distinct citing paper keys in order.
func CitingKeys(keys []Key) []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range keys {
		if !seen[k.Citing] {
			seen[k.Citing] = true
			out = append(out, k.Citing)
		}
	}
	return out
}
