package citation

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/matsen/citectx/internal/tei"
)

// Marker tokens written in place of citation markers.
const (
	ReferenceToken = "REFERENCE"
	CitationToken  = "CITATION"
)

// Kind classifies a run of an annotated paragraph.
type Kind int

const (
	Literal Kind = iota
	Reference
	Citation
)

// Run is one piece of an annotated paragraph.
type Run struct {
	Kind Kind
	Text string // literal text; empty for markers
}

// Paragraph is a host element rewritten as literal text and marker tokens.
// It is immutable once built.
type Paragraph struct {
	runs []Run
}

var cleanups = []struct{ old, new string }{
	{"c.f.", "cf"},
	{"e.g.", "eg"},
	{"pp.", ""},
	{"etc.", "etc"},
	{"cf.", "cf"},
	{"\n", ""},
	{"\r", ""},
}

// Annotate rewrites host into a Paragraph. Every citation marker becomes a
// REFERENCE run when isTarget reports it cites the review and a CITATION
// run otherwise. Text of other inline elements is kept in place. host is
// not modified.
func Annotate(host *etree.Element, isTarget func(*etree.Element) bool) Paragraph {
	var p Paragraph
	p.collect(host.Copy(), isTarget)
	return p
}

func (p *Paragraph) collect(el *etree.Element, isTarget func(*etree.Element) bool) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			p.runs = append(p.runs, Run{Kind: Literal, Text: t.Data})
		case *etree.Element:
			switch {
			case !tei.IsMarker(t):
				p.collect(t, isTarget)
			case isTarget(t):
				p.runs = append(p.runs, Run{Kind: Reference})
			default:
				p.runs = append(p.runs, Run{Kind: Citation})
			}
		}
	}
}

// Runs returns a copy of the paragraph's runs.
func (p Paragraph) Runs() []Run {
	return append([]Run(nil), p.runs...)
}

// Count returns the number of runs of the given kind.
func (p Paragraph) Count(k Kind) int {
	n := 0
	for _, r := range p.runs {
		if r.Kind == k {
			n++
		}
	}
	return n
}

// Text serializes the paragraph with marker tokens and applies the
// abbreviation clean-ups.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.runs {
		switch r.Kind {
		case Reference:
			sb.WriteString(ReferenceToken)
		case Citation:
			sb.WriteString(CitationToken)
		default:
			sb.WriteString(r.Text)
		}
	}
	s := sb.String()
	for _, c := range cleanups {
		s = strings.ReplaceAll(s, c.old, c.new)
	}
	return s
}

// HasText reports whether the paragraph holds any non-blank literal text.
func (p Paragraph) HasText() bool {
	for _, r := range p.runs {
		if r.Kind == Literal && strings.TrimSpace(r.Text) != "" {
			return true
		}
	}
	return false
}

// NormalizeHost returns the element to annotate for a marker. Markers
// placed directly in a section div are moved, on a copy, to the front of
// the section's first paragraph. The second value is the element of the
// source tree that stands for the host.
func NormalizeHost(marker *etree.Element) (annotate, source *etree.Element) {
	parent := marker.Parent()
	if parent == nil || parent.Tag != "div" {
		return parent, parent
	}
	p := parent.SelectElement("p")
	if p == nil {
		return parent, parent
	}
	host := p.Copy()
	host.InsertChildAt(0, marker.Copy())
	return host, p
}
