package features

import (
	"regexp"
	"strings"

	"github.com/matsen/citectx/internal/citation"
	"github.com/matsen/citectx/internal/nlp"
)

// asciiPunctuation holds the characters whose tags are dropped from a
// POS structure. A tag is dropped when it is a substring of this set.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// posPatterns are the syntactic patterns of citing sentences, matched
// against the POS structure.
var posPatterns = [6]*regexp.Regexp{
	regexp.MustCompile(`^.*REFERENCE VB[DPZN].*$`),
	regexp.MustCompile(`^.*VB[DPZ] VB[GN].*$`),
	regexp.MustCompile(`^.*VB[DGPZN]? (RB[RS]? )*VBN.*$`),
	regexp.MustCompile(`^.*MD (RB[RS]? )*VB (RB[RS]? )*VBN.*$`),
	regexp.MustCompile(`^(RB[RS]? )*PRP (RB[RS]? )*V.*$`),
	regexp.MustCompile(`^.*VBG (NNP )*(CC )*(NNP ).*$`),
}

var comparative = regexp.MustCompile(`RB[RS]`)

// Structure renders tagged tokens as a space-separated tag sequence. The
// REFERENCE token is kept literally and punctuation tags are dropped.
func Structure(tokens []nlp.Token) string {
	tags := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tag := t.Tag
		if t.Text == citation.ReferenceToken {
			tag = citation.ReferenceToken
		}
		if strings.Contains(asciiPunctuation, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return strings.Join(tags, " ")
}

// Patterns reports which syntactic patterns a POS structure matches.
func Patterns(structure string) [6]bool {
	var out [6]bool
	for i, re := range posPatterns {
		out[i] = re.MatchString(structure)
	}
	return out
}

// HasComparative reports whether a POS structure contains a comparative
// or superlative adverb.
func HasComparative(structure string) bool {
	return comparative.MatchString(structure)
}

// HasFirstPerson reports whether a personal pronoun is "I" or "we".
func HasFirstPerson(tokens []nlp.Token) bool {
	for _, t := range tokens {
		if t.Tag == "PRP" && (strings.EqualFold(t.Text, "i") || strings.EqualFold(t.Text, "we")) {
			return true
		}
	}
	return false
}
