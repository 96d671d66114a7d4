package features

import (
	"strings"

	"github.com/matsen/citectx/internal/nlp"
	"github.com/matsen/citectx/internal/section"
	"github.com/matsen/citectx/internal/sentiment"
	"github.com/matsen/citectx/internal/window"
)

// Placement describes where a citing paragraph sits in its document.
type Placement struct {
	Numeric      bool           // document cites numerically
	Body         string         // serialized document body
	Headings     *section.Index // classified headings of the document
	HeadingTitle string         // heading of the paragraph's section, "" if unknown
	HostTag      string         // tag of the element holding the marker
	HostText     string         // leading text of that element
}

// Extractor computes feature rows. Its capabilities are shared read-only
// between goroutines.
type Extractor struct {
	Tagger    nlp.Tagger
	Sentiment sentiment.Analyzer
}

// NewExtractor returns an Extractor using tagger and analyzer.
func NewExtractor(tagger nlp.Tagger, analyzer sentiment.Analyzer) *Extractor {
	return &Extractor{Tagger: tagger, Sentiment: analyzer}
}

// Extract computes the feature row of one window.
func (e *Extractor) Extract(reviewKey, citingKey string, w window.Window, pl Placement) Row {
	context := w.Context()
	tokens := e.Tagger.Tag(w.Sentence)
	structure := Structure(tokens)
	position := PositionInDocument(pl.Body, w)

	row := Row{
		ReviewKey:          reviewKey,
		CitingKey:          citingKey,
		Window:             w,
		Textual:            !pl.Numeric && IsTextual(w.Sentence),
		Separate:           IsSeparate(w.Sentence),
		SentencePopularity: Popularity(w.Sentence),
		ContextPopularity:  Popularity(context),
		SentenceDensity:    Density(w.Sentence),
		ContextDensity:     Density(context),
		PositionInSentence: PositionInSentence(w.Sentence),
		SentenceSentiment:  e.Sentiment.PolarityScores(w.Sentence),
		ContextSentiment:   e.Sentiment.PolarityScores(context),
		CompSup:            HasComparative(structure),
		PRP:                HasFirstPerson(tokens),
		POSPattern:         structure,
		POS:                Patterns(structure),
		PositionInDocument: position,
		HeadingTitle:       pl.HeadingTitle,
		HeadingCategory:    section.Unknown,
		RefInHeading:       pl.HostTag == "head",
	}
	if pl.Headings != nil {
		row.HeadingCategory = pl.Headings.Category(pl.HeadingTitle, position)
	}
	row.RefInFigure = describes(pl, "figure")
	row.RefInTable = describes(pl, "table")
	return row
}

// describes reports whether the marker sits in the description or head of
// a figure or table, named by kind.
func describes(pl Placement, kind string) bool {
	switch pl.HostTag {
	case "figDesc":
		return strings.Contains(strings.ToLower(pl.HeadingTitle), kind)
	case "head":
		return strings.Contains(strings.ToLower(pl.HostText), kind)
	}
	return false
}
