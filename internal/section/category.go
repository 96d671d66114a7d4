// Package section classifies section headings into the canonical parts of
// a research article.
package section

// Category is the canonical part of an article a heading belongs to.
type Category string

const (
	Introduction   Category = "introduction"
	Background     Category = "background"
	TheoryFrontend Category = "theory_frontend"
	Method         Category = "method"
	Results        Category = "results"
	Implications   Category = "implications"
	Appendix       Category = "appendix"
	// Unknown marks a heading that matched no keyword.
	Unknown Category = "-"
)

// Heading is a normalized heading title with its category.
type Heading struct {
	Title    string   `json:"title"`
	Category Category `json:"category"`
}

// keywords are matched as substrings of lower-cased headings. Later
// categories overwrite earlier ones, so the order matters.
var keywords = []struct {
	category Category
	words    []string
}{
	{Introduction, []string{"introduction"}},
	{Background, []string{
		"background",
		"literature review",
		"review of",
		"critical review",
	}},
	{TheoryFrontend, []string{
		"conceptual development",
		"hypothesis development",
		"research hypotheses",
		"research model",
		"research questions",
		"theory",
		"theoretical background",
		"theoretical development",
		"theoretical model",
		"theoretical",
		"theoretical foundation",
		"conceptual foundation",
		"conceptual basis",
		"model and hypotheses",
		"prior research",
		"related research",
		"theoretical framing",
		"theoretical framework",
		"framework",
		"hypotheses",
		"conceptualizing",
		"defining",
		"hypotheses development",
		"related literature",
		"model development",
	}},
	{Method, []string{
		"data collection",
		"methodology",
		"methods",
		"model testing",
		"procedure",
		"research methodology",
		"method",
		"research design",
		"research framework",
		"research method",
		"robustness",
		"hypothesis testing",
		"literature survey",
		"scale validation",
		"measur",
		"control variable",
		"coding",
	}},
	{Results, []string{
		"analysis",
		"findings",
		"results",
		"robustness",
	}},
	{Implications, []string{
		"contribution",
		"discussion",
		"future research",
		"implications",
		"implications for future research",
		"implications for practice",
		"limitations",
		"practical implications",
		"recommendations",
		"theoretical implications",
		"conclusion",
		"further research",
		"concluding remarks",
		"research agenda",
	}},
	{Appendix, []string{
		"appendi",
		"electronic companion",
	}},
}

// templateRank orders the categories of the usual article template.
var templateRank = map[Category]int{
	Introduction:   1,
	Background:     2,
	TheoryFrontend: 3,
	Method:         4,
	Results:        5,
	Implications:   6,
}
