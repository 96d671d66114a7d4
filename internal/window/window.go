// Package window builds citation windows: the sentence that cites the
// review together with its neighbours.
package window

import (
	"iter"
	"strings"

	"github.com/matsen/citectx/internal/nlp"
)

const marker = "REFERENCE"

// Window is a citing sentence with the sentences around it. Neighbours
// are empty at paragraph boundaries.
type Window struct {
	Predecessor string `json:"predecessor"`
	Sentence    string `json:"sentence"`
	Successor   string `json:"successor"`
}

// Context joins predecessor, sentence and successor with single spaces.
func (w Window) Context() string {
	return w.Predecessor + " " + w.Sentence + " " + w.Successor
}

// Split yields one window per sentence of text that contains the
// REFERENCE token. Sentences are segmented when iteration starts, so the
// sequence can be ranged over more than once.
func Split(text string, seg nlp.Segmenter) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		sents := seg.Sentences(text)
		for i, s := range sents {
			if !strings.Contains(s, marker) {
				continue
			}
			w := Window{Sentence: strings.TrimSpace(s)}
			if i > 0 {
				w.Predecessor = strings.TrimSpace(sents[i-1])
			}
			if i+1 < len(sents) {
				w.Successor = strings.TrimSpace(sents[i+1])
			}
			if !yield(w) {
				return
			}
		}
	}
}
