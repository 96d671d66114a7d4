package tei

import (
	"strings"

	"github.com/beevik/etree"
)

// Markers returns every in-text citation marker below the body in
// document order. Figure and table references are not markers.
func (d *Document) Markers() []*etree.Element {
	var out []*etree.Element
	for _, ref := range descendants(d.Body(), "ref") {
		if IsMarker(ref) {
			out = append(out, ref)
		}
	}
	return out
}

// TotalCitations counts the bibliographic reference markers of the
// document.
func (d *Document) TotalCitations() int {
	n := 0
	for _, ref := range descendants(d.Root(), "ref") {
		if ref.SelectAttrValue("type", "") == "bibr" {
			n++
		}
	}
	return n
}

// IsMarker reports whether el is a citation marker: a ref element of
// type bibr or without a type.
func IsMarker(el *etree.Element) bool {
	if el == nil || el.Tag != "ref" {
		return false
	}
	switch el.SelectAttrValue("type", "") {
	case "", "bibr":
		return true
	}
	return false
}

// Target returns the bibliography id a marker points to, without the
// leading '#'.
func Target(el *etree.Element) string {
	return strings.TrimPrefix(el.SelectAttrValue("target", ""), "#")
}

// CitationTexts returns the leading text of every bibliographic reference
// marker that has one, in document order.
func (d *Document) CitationTexts() []string {
	var texts []string
	for _, ref := range descendants(d.Root(), "ref") {
		if ref.SelectAttrValue("type", "") != "bibr" {
			continue
		}
		if t := ref.Text(); t != "" {
			texts = append(texts, t)
		}
	}
	return texts
}
