package window

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/citectx/internal/nlp"
)

// periodSegmenter splits after every ". ".
type periodSegmenter struct{ calls int }

func (s *periodSegmenter) Sentences(text string) []string {
	s.calls++
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, ". ")
	return parts
}

func TestSplit(t *testing.T) {
	text := "First sentence. REFERENCE shows this. Middle. Last REFERENCE."
	got := slices.Collect(Split(text, &periodSegmenter{}))

	require.Len(t, got, 2)
	assert.Equal(t, Window{Predecessor: "First sentence.", Sentence: "REFERENCE shows this.", Successor: "Middle."}, got[0])
	assert.Equal(t, Window{Predecessor: "Middle.", Sentence: "Last REFERENCE.", Successor: ""}, got[1])
}

func TestSplit_SingleSentence(t *testing.T) {
	got := slices.Collect(Split("Only REFERENCE here.", &periodSegmenter{}))
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Predecessor)
	assert.Equal(t, "", got[0].Successor)
}

func TestSplit_NoReference(t *testing.T) {
	assert.Empty(t, slices.Collect(Split("Nothing. CITATION only.", &periodSegmenter{})))
	assert.Empty(t, slices.Collect(Split("", &periodSegmenter{})))
}

func TestSplit_Restartable(t *testing.T) {
	seg := &periodSegmenter{}
	seq := Split("A. REFERENCE b. C.", seg)
	assert.Equal(t, 0, seg.calls)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, seg.calls)
}

func TestSplit_EarlyStop(t *testing.T) {
	n := 0
	for range Split("REFERENCE a. REFERENCE b. REFERENCE c.", &periodSegmenter{}) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestWindow_Context(t *testing.T) {
	w := Window{Sentence: "REFERENCE shows this."}
	assert.Equal(t, " REFERENCE shows this. ", w.Context())
}

func TestSplit_Prose(t *testing.T) {
	got := slices.Collect(Split("Reviews matter REFERENCE. Platforms grow CITATION.", nlp.NewProse()))
	require.Len(t, got, 1)
	assert.Equal(t, "Reviews matter REFERENCE.", got[0].Sentence)
	assert.Equal(t, "Platforms grow CITATION.", got[0].Successor)
}
