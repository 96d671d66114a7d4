package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/citectx/internal/nlp"
	"github.com/matsen/citectx/internal/section"
	"github.com/matsen/citectx/internal/sentiment"
	"github.com/matsen/citectx/internal/window"
)

func TestIsTextual(t *testing.T) {
	assert.True(t, IsTextual("REFERENCE argue that reviews matter."))
	assert.False(t, IsTextual("Reviews matter (REFERENCE)."))
	assert.False(t, IsTextual("Reviews matter (see REFERENCE; CITATION)."))
	assert.True(t, IsTextual("Reviews (which matter) help REFERENCE."))
}

func TestIsSeparate(t *testing.T) {
	assert.True(t, IsSeparate("REFERENCE argue this, unlike CITATION."))
	assert.False(t, IsSeparate("Reviews matter CITATION REFERENCE."))
	assert.False(t, IsSeparate("Reviews matter REFERENCECITATION."))
}

func TestPopularityAndDensity(t *testing.T) {
	s := "Reviews CITATION matter REFERENCE CITATION."
	assert.Equal(t, 2, Popularity(s))
	assert.InDelta(t, 1.0/3, Density(s), 1e-9)
	assert.Equal(t, 0.0, Density("no markers"))
}

func TestPositionInSentence(t *testing.T) {
	assert.Equal(t, 0.0, PositionInSentence("REFERENCE shows."))
	assert.Equal(t, 1.0, PositionInSentence("Shown by REFERENCE"))
	assert.Equal(t, 0.0, PositionInSentence("REFERENCE"))
	// Offsets count characters, not bytes
	assert.Equal(t, 0.5, PositionInSentence("ééREFERENCEéé"))
}

func TestDemarker(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Literature reviews are essential REFERENCE.", "Literature reviews are essential "},
		{"REFERENCE shows that platforms grow quickly.", " shows that platforms grow quickly."},
		{"A CITATION b REFERENCE the longer tail part.", " the longer tail part."},
		{"No markers here.", "No markers here."},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Demarker(tt.in))
	}
}

func TestPositionInDocument(t *testing.T) {
	body := "<body><p>Intro text here. Reviews &amp; more are essential <ref>x</ref>.</p></body>"
	w := window.Window{
		Predecessor: "Intro text here.",
		Sentence:    "Reviews & more are essential REFERENCE.",
	}
	pos := PositionInDocument(body, w)
	require.NotNil(t, pos)
	// "Intro text here." at 9, "Reviews &amp; more are essential " at 26
	assert.InDelta(t, 0.211, *pos, 1e-9)

	assert.Nil(t, PositionInDocument(body, window.Window{Sentence: "Absent REFERENCE"}))
	assert.Nil(t, PositionInDocument("", w))
}

func TestStructure(t *testing.T) {
	tokens := []nlp.Token{
		{Text: "REFERENCE", Tag: "NNP"},
		{Text: "argued", Tag: "VBD"},
		{Text: ",", Tag: ","},
		{Text: "``", Tag: "``"},
		{Text: "this", Tag: "DT"},
		{Text: ".", Tag: "."},
	}
	s := Structure(tokens)
	assert.Equal(t, "REFERENCE VBD `` DT", s)
	assert.Equal(t, [6]bool{true, false, false, false, false, false}, Patterns(s))
}

func TestPatterns(t *testing.T) {
	tests := []struct {
		structure string
		want      int
	}{
		{"REFERENCE VBZ DT NN", 0},
		{"NN VBZ VBG NN", 1},
		{"NNS VBP RB VBN IN REFERENCE", 2},
		{"PRP MD RB VB VBN", 3},
		{"RB PRP VBP DT NN", 4},
		{"VBG NNP CC NNP", 5},
	}
	for _, tt := range tests {
		assert.True(t, Patterns(tt.structure)[tt.want], tt.structure)
	}
	assert.Equal(t, [6]bool{}, Patterns("DT NN"))
}

func TestHasComparative(t *testing.T) {
	assert.True(t, HasComparative("DT NN VBZ RBR JJ"))
	assert.True(t, HasComparative("RBS JJ NN"))
	assert.False(t, HasComparative("DT NN RB JJ"))
}

func TestHasFirstPerson(t *testing.T) {
	assert.True(t, HasFirstPerson([]nlp.Token{{Text: "We", Tag: "PRP"}}))
	assert.True(t, HasFirstPerson([]nlp.Token{{Text: "i", Tag: "PRP"}}))
	assert.False(t, HasFirstPerson([]nlp.Token{{Text: "They", Tag: "PRP"}}))
	assert.False(t, HasFirstPerson([]nlp.Token{{Text: "we", Tag: "NN"}}))
}

// fixedTagger tags every whitespace token with the same tag, except
// REFERENCE.
type fixedTagger map[string]string

func (f fixedTagger) Tag(text string) []nlp.Token {
	var out []nlp.Token
	for _, w := range splitWords(text) {
		out = append(out, nlp.Token{Text: w, Tag: f[w]})
	}
	return out
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '.' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

func TestExtract(t *testing.T) {
	tagger := fixedTagger{"We": "PRP", "follow": "VBP", "REFERENCE": "NNP", "closely": "RB"}
	e := NewExtractor(tagger, sentiment.NewVader())

	body := "<body><div><head>Method</head><p>We searched. We follow <ref>x</ref> closely.</p></div></body>"
	w := window.Window{Predecessor: "We searched.", Sentence: "We follow REFERENCE closely."}
	pl := Placement{
		Body:         body,
		Headings:     section.NewIndex([]string{"method"}),
		HeadingTitle: "Method",
		HostTag:      "p",
	}

	row := e.Extract("Webster2002", "Smith2010", w, pl)
	assert.Equal(t, "Webster2002", row.ReviewKey)
	assert.Equal(t, "We follow REFERENCE closely.", row.Sentence)
	assert.True(t, row.Textual)
	assert.True(t, row.Separate)
	assert.Equal(t, 1.0, row.SentenceDensity)
	assert.Equal(t, "PRP VBP REFERENCE RB", row.POSPattern)
	assert.True(t, row.POS[4])
	assert.True(t, row.PRP)
	assert.False(t, row.CompSup)
	require.NotNil(t, row.PositionInDocument)
	assert.Equal(t, section.Method, row.HeadingCategory)
	assert.False(t, row.RefInHeading)
	assert.Len(t, row.Values(), len(Columns))
}

func TestExtract_NumericIsNeverTextual(t *testing.T) {
	e := NewExtractor(fixedTagger{}, sentiment.NewVader())
	row := e.Extract("lr", "cp", window.Window{Sentence: "REFERENCE shows this."}, Placement{Numeric: true})
	assert.False(t, row.Textual)
	assert.Equal(t, section.Unknown, row.HeadingCategory)
	assert.Nil(t, row.PositionInDocument)
}

func TestExtract_Descriptions(t *testing.T) {
	e := NewExtractor(fixedTagger{}, sentiment.NewVader())
	w := window.Window{Sentence: "Adapted from REFERENCE."}

	row := e.Extract("lr", "cp", w, Placement{HostTag: "figDesc", HeadingTitle: "Figure 1 Search process"})
	assert.True(t, row.RefInFigure)
	assert.False(t, row.RefInTable)

	row = e.Extract("lr", "cp", w, Placement{HostTag: "head", HostText: "Table 2 Constructs from "})
	assert.True(t, row.RefInTable)
	assert.True(t, row.RefInHeading)
	assert.False(t, row.RefInFigure)
}

func TestRow_Values(t *testing.T) {
	pos := 0.25
	row := Row{
		ReviewKey:          "lr",
		CitingKey:          "cp",
		Window:             window.Window{Sentence: "REFERENCE."},
		Textual:            true,
		SentenceDensity:    0.5,
		PositionInDocument: &pos,
		HeadingCategory:    section.Unknown,
	}
	vals := row.Values()
	require.Len(t, vals, len(Columns))
	assert.Equal(t, "True", vals[5])
	assert.Equal(t, "False", vals[6])
	assert.Equal(t, "0.5", vals[9])
	assert.Equal(t, "0.25", vals[29])
	assert.Equal(t, "-", vals[31])
}

func TestEmpty(t *testing.T) {
	row := Empty("lr", "cp")
	assert.True(t, row.IsEmpty())
	vals := row.Values()
	require.Len(t, vals, len(Columns))
	assert.Equal(t, []string{"lr", "cp"}, vals[:2])
	for _, v := range vals[2:] {
		assert.Empty(t, v)
	}
}
