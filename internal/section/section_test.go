package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const U = Unknown

func TestMatch(t *testing.T) {
	got := Match([]string{
		"1 introduction",
		"theoretical background",
		"research method and data",
		"results of the analysis",
		"discussion and conclusion",
		"appendix a",
		"acknowledgements",
	})
	assert.Equal(t, []Category{
		Introduction,
		TheoryFrontend, // "theoretical" overwrites "background"
		Method,
		Results,
		Implications,
		Appendix,
		U,
	}, got)
}

func TestMatch_LaterKeywordsWin(t *testing.T) {
	// "robustness" is both a method and a results keyword
	assert.Equal(t, []Category{Results}, Match([]string{"robustness checks"}))
	// "measur" matches measurement headings
	assert.Equal(t, []Category{Method}, Match([]string{"measurement model"}))
}

func TestFillGaps(t *testing.T) {
	tests := []struct {
		name string
		in   []Category
		want []Category
	}{
		{"gap between equal", []Category{Method, U, U, Method}, []Category{Method, Method, Method, Method}},
		{"gap between different", []Category{Method, U, Results}, []Category{Method, U, Results}},
		{"leading and trailing", []Category{U, Method, U}, []Category{U, Method, U}},
		{"empty", nil, []Category{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FillGaps(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFillGaps_DoesNotModifyInput(t *testing.T) {
	in := []Category{Method, U, Method}
	FillGaps(in)
	assert.Equal(t, U, in[1])
}

func TestPropagateTemplate(t *testing.T) {
	tests := []struct {
		name string
		in   []Category
		want []Category
	}{
		{"forward", []Category{Introduction, U, U, Method}, []Category{Introduction, Introduction, Introduction, Method}},
		{"adjacent steps", []Category{Method, U, Results, U, Implications}, []Category{Method, Method, Results, Results, Implications}},
		{"backward", []Category{Results, U, Method}, []Category{Results, U, Method}},
		{"appendix is outside the template", []Category{Implications, U, Appendix}, []Category{Implications, U, Appendix}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PropagateTemplate(tt.in))
		})
	}
}

func TestFloodAppendix(t *testing.T) {
	assert.Equal(t,
		[]Category{Implications, Appendix, Appendix, Appendix},
		FloodAppendix([]Category{Implications, Appendix, U, U}))
	assert.Equal(t,
		[]Category{Appendix, Implications, U},
		FloodAppendix([]Category{Appendix, Implications, U}))
	assert.Empty(t, FloodAppendix(nil))
}

func TestClassify(t *testing.T) {
	got := Classify([]string{
		"introduction",
		"platform ecosystems",
		"research design",
		"sample",
		"results",
		"discussion",
		"appendix a",
		"table a1",
	})
	assert.Equal(t, []Category{
		Introduction,
		Introduction,
		Method,
		Method,
		Results,
		Implications,
		Appendix,
		Appendix,
	}, got)
}

func TestClassify_LastHeadingIsMatched(t *testing.T) {
	assert.Equal(t, []Category{Introduction, Implications}, Classify([]string{"introduction", "conclusion"}))
}

func TestGapPasses_FullyCategorizedUnchanged(t *testing.T) {
	tests := []struct {
		name string
		cats []Category
	}{
		{"template order", []Category{Introduction, Background, Method, Results, Implications}},
		{"against template", []Category{Results, Method, Introduction}},
		{"repeated", []Category{Method, Method, Results, Method}},
		{"appendix last", []Category{Introduction, Method, Implications, Appendix}},
		{"appendix first", []Category{Appendix, Implications, Results}},
		{"single", []Category{Appendix}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := FloodAppendix(PropagateTemplate(FillGaps(tt.cats)))
			assert.Equal(t, tt.cats, once)
			assert.Equal(t, once, FloodAppendix(PropagateTemplate(FillGaps(once))))
		})
	}
}

func TestClassify_FullyMatchedTitles(t *testing.T) {
	titles := []string{"introduction", "literature review", "research method", "results", "discussion", "appendix a"}
	got := Classify(titles)
	assert.Equal(t, Match(titles), got)
	assert.NotContains(t, got, Unknown)
	assert.Equal(t, got, FloodAppendix(PropagateTemplate(FillGaps(got))))
}

func ptr(f float64) *float64 { return &f }

func TestIndex_Category(t *testing.T) {
	x := NewIndex([]string{"introduction", "method", "notes", "method"})

	assert.Equal(t, Method, x.Category("Method", nil))
	assert.Equal(t, Unknown, x.Category("Related Work", ptr(0.1)))
	assert.Equal(t, Introduction, x.Category("", ptr(0.1)))
	assert.Equal(t, Unknown, x.Category("", ptr(0.5)))
	assert.Equal(t, Unknown, x.Category("", nil))
	// "notes" lies between two method headings
	assert.Equal(t, Method, x.Category("notes", nil))
	assert.Len(t, x.Headings(), 4)
}
