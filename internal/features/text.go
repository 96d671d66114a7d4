package features

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/matsen/citectx/internal/citation"
	"github.com/matsen/citectx/internal/window"
)

var (
	parenthesizedReference = regexp.MustCompile(`\([^()|^]*?REFERENCE[^()|^]*?\)`)
	adjacentCitation       = regexp.MustCompile(`CITATION ?REFERENCE|REFERENCE ?CITATION`)
	xmlEscaper             = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// IsTextual reports whether the review is cited outside parentheses, i.e.
// as part of the sentence.
func IsTextual(sentence string) bool {
	return !parenthesizedReference.MatchString(sentence)
}

// IsSeparate reports whether the review is cited apart from other works.
func IsSeparate(sentence string) bool {
	return !adjacentCitation.MatchString(sentence)
}

// Popularity counts the other works cited in s.
func Popularity(s string) int {
	return strings.Count(s, citation.CitationToken)
}

// Density is the share of review citations among all citations in s.
func Density(s string) float64 {
	refs := strings.Count(s, citation.ReferenceToken)
	total := refs + Popularity(s)
	if total == 0 {
		return 0
	}
	return float64(refs) / float64(total)
}

// PositionInSentence is the relative character offset of the first
// REFERENCE token, 0 at the start and 1 at the end of the sentence.
func PositionInSentence(sentence string) float64 {
	idx := strings.Index(sentence, citation.ReferenceToken)
	if idx < 0 {
		return 0
	}
	denom := utf8.RuneCountInString(sentence) - len(citation.ReferenceToken)
	if denom == 0 {
		return 0
	}
	return float64(utf8.RuneCountInString(sentence[:idx])) / float64(denom)
}

// Demarker returns the longest marker-free part of s: the text before the
// first marker token or after the last one. Text without markers is
// returned whole.
func Demarker(s string) string {
	first, lastEnd := -1, -1
	for _, tok := range []string{citation.ReferenceToken, citation.CitationToken} {
		if i := strings.Index(s, tok); i >= 0 && (first < 0 || i < first) {
			first = i
		}
		if i := strings.LastIndex(s, tok); i >= 0 && i+len(tok) > lastEnd {
			lastEnd = i + len(tok)
		}
	}
	if first < 0 {
		return s
	}
	left, right := s[:first], s[lastEnd:]
	if len(left) > len(right) {
		return left
	}
	return right
}

// PositionInDocument locates the marker-free parts of a window in the
// serialized body and returns their mean offset relative to the body
// length, rounded to three decimals. Offsets of one or less are ignored;
// nil means nothing was located.
func PositionInDocument(body string, w window.Window) *float64 {
	bodyLen := utf8.RuneCountInString(body)
	if bodyLen == 0 {
		return nil
	}
	var sum float64
	n := 0
	for _, s := range []string{w.Predecessor, w.Sentence, w.Successor} {
		part := xmlEscaper.Replace(Demarker(s))
		idx := strings.Index(body, part)
		if idx < 0 {
			continue
		}
		if pos := utf8.RuneCountInString(body[:idx]); pos > 1 {
			sum += float64(pos)
			n++
		}
	}
	if n == 0 {
		return nil
	}
	pos := math.Round(sum/float64(n)/float64(bodyLen)*1000) / 1000
	return &pos
}
