// Package fuzzy provides matching-block string similarity ratios.
//
// Scores are 2*M/T over runes, where M is the number of characters in
// matching blocks and T the total length of both strings, rounded to whole
// percent with ties to even.
package fuzzy

import (
	"math"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the similarity of a and b in [0,1]. Identical strings
// score 1; a single empty string scores 0.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return percent(difflib.NewMatcher(runes(a), runes(b)).Ratio())
}

// PartialRatio returns the best Ratio of the shorter string against the
// window of the longer string aligned with each matching block. It
// tolerates one side containing extra text, e.g. "2010" against
// "2010-2012".
func PartialRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	short, long := runes(a), runes(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	best := 0.0
	for _, block := range difflib.NewMatcher(short, long).GetMatchingBlocks() {
		start := max(block.B-block.A, 0)
		end := min(start+len(short), len(long))
		r := difflib.NewMatcher(short, long[start:end]).Ratio()
		if r > 0.995 {
			return 1
		}
		best = max(best, r)
	}
	return percent(best)
}

// runes splits s into one-character elements for the sequence matcher.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func percent(r float64) float64 {
	return math.RoundToEven(r*100) / 100
}
