// Package sentiment scores the polarity of citation sentences with VADER.
package sentiment

import (
	"math"
	"strings"
	"sync"

	"github.com/jonreiter/govader"
)

// Scores are the polarity proportions of a text and its normalized
// compound score in [-1, 1].
type Scores struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Analyzer scores the sentiment of a text.
type Analyzer interface {
	PolarityScores(text string) Scores
}

// Vader is an Analyzer over the standard VADER lexicon. It is safe for
// concurrent use.
type Vader struct {
	mu       sync.Mutex
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader returns an analyzer with the embedded VADER lexicon.
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// PolarityScores scores text. Proportions are rounded to three decimals
// and the compound score to four. Blank text scores zero everywhere.
func (v *Vader) PolarityScores(text string) Scores {
	if strings.TrimSpace(text) == "" {
		return Scores{}
	}
	v.mu.Lock()
	s := v.analyzer.PolarityScores(text)
	v.mu.Unlock()
	return Scores{
		Neg:      round(s.Negative, 3),
		Neu:      round(s.Neutral, 3),
		Pos:      round(s.Positive, 3),
		Compound: round(s.Compound, 4),
	}
}

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}
