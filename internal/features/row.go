// Package features turns citation windows into feature rows.
package features

import (
	"strconv"

	"github.com/matsen/citectx/internal/section"
	"github.com/matsen/citectx/internal/sentiment"
	"github.com/matsen/citectx/internal/window"
)

// Columns are the output columns, in order.
var Columns = []string{
	"citation_key_lr",
	"citation_key_cp",
	"citation_sentence",
	"predecessor",
	"successor",
	"textual",
	"separate",
	"sentence_popularity",
	"context_popularity",
	"sentence_density",
	"context_density",
	"position_in_sentence",
	"sentence_neg",
	"sentence_neu",
	"sentence_pos",
	"sentence_compound",
	"context_neg",
	"context_neu",
	"context_pos",
	"context_compound",
	"comp_sup",
	"prp",
	"pos_pattern",
	"pos_0",
	"pos_1",
	"pos_2",
	"pos_3",
	"pos_4",
	"pos_5",
	"position_in_document",
	"heading_title",
	"heading_category",
	"ref_in_figure_description",
	"ref_in_table_description",
	"ref_in_heading",
}

// Row is the feature vector of one citation window.
type Row struct {
	ReviewKey string
	CitingKey string
	window.Window

	Textual            bool
	Separate           bool
	SentencePopularity int
	ContextPopularity  int
	SentenceDensity    float64
	ContextDensity     float64
	PositionInSentence float64
	SentenceSentiment  sentiment.Scores
	ContextSentiment   sentiment.Scores
	CompSup            bool
	PRP                bool
	POSPattern         string
	POS                [6]bool
	PositionInDocument *float64 // nil when the window could not be located
	HeadingTitle       string
	HeadingCategory    section.Category
	RefInFigure        bool
	RefInTable         bool
	RefInHeading       bool

	empty bool
}

// Empty returns the row written for a pair without resolved mentions: the
// keys followed by empty feature columns.
func Empty(reviewKey, citingKey string) Row {
	return Row{ReviewKey: reviewKey, CitingKey: citingKey, empty: true}
}

// IsEmpty reports whether r is the row of an unresolved pair.
func (r Row) IsEmpty() bool {
	return r.empty
}

// Values renders the row in Columns order.
func (r Row) Values() []string {
	if r.empty {
		vals := make([]string, len(Columns))
		vals[0], vals[1] = r.ReviewKey, r.CitingKey
		return vals
	}

	position := ""
	if r.PositionInDocument != nil {
		position = formatFloat(*r.PositionInDocument)
	}
	vals := []string{
		r.ReviewKey,
		r.CitingKey,
		r.Sentence,
		r.Predecessor,
		r.Successor,
		FormatBool(r.Textual),
		FormatBool(r.Separate),
		strconv.Itoa(r.SentencePopularity),
		strconv.Itoa(r.ContextPopularity),
		formatFloat(r.SentenceDensity),
		formatFloat(r.ContextDensity),
		formatFloat(r.PositionInSentence),
		formatFloat(r.SentenceSentiment.Neg),
		formatFloat(r.SentenceSentiment.Neu),
		formatFloat(r.SentenceSentiment.Pos),
		formatFloat(r.SentenceSentiment.Compound),
		formatFloat(r.ContextSentiment.Neg),
		formatFloat(r.ContextSentiment.Neu),
		formatFloat(r.ContextSentiment.Pos),
		formatFloat(r.ContextSentiment.Compound),
		FormatBool(r.CompSup),
		FormatBool(r.PRP),
		r.POSPattern,
	}
	for _, p := range r.POS {
		vals = append(vals, FormatBool(p))
	}
	return append(vals,
		position,
		r.HeadingTitle,
		string(r.HeadingCategory),
		FormatBool(r.RefInFigure),
		FormatBool(r.RefInTable),
		FormatBool(r.RefInHeading),
	)
}

// FormatBool renders a boolean cell as True or False.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
