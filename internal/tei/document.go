// Package tei reads the parts of a Grobid TEI document that citation
// context extraction needs: body, headings, bibliography and in-text
// reference markers.
//
// Missing structure never fails a lookup. Accessors return empty values
// and callers fall back to their sentinels.
package tei

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoRoot is returned when the input holds no XML element.
var ErrNoRoot = errors.New("document has no root element")

// Document is a parsed TEI document together with its source text.
type Document struct {
	doc *etree.Document
	raw string
}

// Parse parses a TEI document from its XML source.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing TEI: %w", err)
	}
	if doc.Root() == nil {
		return nil, ErrNoRoot
	}
	return &Document{doc: doc, raw: string(data)}, nil
}

// ReadFile reads and parses a TEI document from disk.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TEI: %w", err)
	}
	return Parse(data)
}

// Root returns the document's root element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Body returns the text element's body, or nil.
func (d *Document) Body() *etree.Element {
	return first(d.Root(), "body")
}

// BodyXML returns the source text of the body element, markup included.
// Positions of sentences within the document are measured against it.
func (d *Document) BodyXML() string {
	start := strings.Index(d.raw, "<body")
	if start < 0 {
		return ""
	}
	const closing = "</body>"
	end := strings.Index(d.raw[start:], closing)
	if end < 0 {
		return d.raw[start:]
	}
	return d.raw[start : start+end+len(closing)]
}

// Title returns the paper title from the header's file description.
func (d *Document) Title() string {
	desc := first(d.Root(), "fileDesc")
	if desc == nil {
		return ""
	}
	title := first(desc, "title")
	if title == nil {
		return ""
	}
	return title.Text()
}

// Abstract returns the text of the abstract, or "" when the document has
// no abstract with a non-empty first paragraph.
func (d *Document) Abstract() string {
	abstract := first(d.Root(), "abstract")
	if abstract == nil || first(abstract, "div") == nil {
		return ""
	}
	p := first(abstract, "p")
	if p == nil || stripNewlines(strings.TrimSpace(p.Text())) == "" {
		return ""
	}
	return stripNewlines(strings.TrimSpace(Text(abstract)))
}

// FirstSectionText returns the text of the body's first div, which stands
// in for a missing abstract.
func (d *Document) FirstSectionText() string {
	body := d.Body()
	if body == nil {
		return ""
	}
	div := first(body, "div")
	if div == nil {
		return ""
	}
	return strings.TrimSpace(stripNewlines(Text(div)))
}

// Text returns the concatenated character data of el and its descendants
// in document order.
func Text(el *etree.Element) string {
	var sb strings.Builder
	writeText(&sb, el)
	return sb.String()
}

func writeText(sb *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			writeText(sb, t)
		}
	}
}

// walk calls fn for el and all its descendant elements in document order.
func walk(el *etree.Element, fn func(*etree.Element)) {
	if el == nil {
		return
	}
	fn(el)
	for _, c := range el.ChildElements() {
		walk(c, fn)
	}
}

// descendants returns all elements below el (el included) with the given
// local tag name, in document order.
func descendants(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	walk(el, func(e *etree.Element) {
		if e.Tag == tag {
			out = append(out, e)
		}
	})
	return out
}

// first returns the first element below el (el included) with the given
// local tag name, or nil.
func first(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	if el.Tag == tag {
		return el
	}
	for _, c := range el.ChildElements() {
		if found := first(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// child returns the first direct child of el with the given tag, or nil.
func child(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}
