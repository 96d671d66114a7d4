// Package nlp wraps the sentence segmenter and part-of-speech tagger used
// for citation contexts.
package nlp

import (
	"github.com/jdkato/prose/v2"
)

// Token is a word with its Penn Treebank tag.
type Token struct {
	Text string
	Tag  string
}

// Segmenter splits text into sentences.
type Segmenter interface {
	Sentences(text string) []string
}

// Tagger tokenizes text and tags every token.
type Tagger interface {
	Tag(text string) []Token
}

// Prose implements Segmenter and Tagger with prose's punkt segmenter and
// averaged perceptron tagger. It is safe for concurrent use.
type Prose struct {
	model *prose.Model
}

// NewProse loads the tagger model once and returns the prose-backed
// Segmenter and Tagger.
func NewProse() *Prose {
	return &Prose{model: prose.ModelFromData("citectx")}
}

// Sentences returns the sentences of text. Text that cannot be processed
// is returned as a single sentence.
func (p *Prose) Sentences(text string) []string {
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return []string{text}
	}
	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out
}

// Tag returns the tagged tokens of text.
func (p *Prose) Tag(text string) []Token {
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil
	}
	toks := doc.Tokens()
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		out = append(out, Token{Text: t.Text, Tag: t.Tag})
	}
	return out
}
