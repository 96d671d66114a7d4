package tei

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Headings returns the normalized titles of every head element outside
// figures, in document order. Heads without text are skipped.
func (d *Document) Headings() []string {
	var titles []string
	for _, head := range descendants(d.Root(), "head") {
		if insideTag(head, "figure") {
			continue
		}
		if t := NormalizeHeading(head.Text()); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// NormalizeHeading title-cases then lower-cases a heading, trimming
// surrounding whitespace.
func NormalizeHeading(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToLower(cases.Title(language.English).String(s))
}

// HeadingFor returns the heading of the section containing el: the head
// child of el's parent, else the head of the nearest div preceding el in
// document order that is not one of its ancestors.
func (d *Document) HeadingFor(el *etree.Element) (string, bool) {
	if parent := el.Parent(); parent != nil {
		if head := child(parent, "head"); head != nil && head.Text() != "" {
			return head.Text(), true
		}
	}

	var preceding *etree.Element
	done := false
	walk(d.Root(), func(e *etree.Element) {
		if done {
			return
		}
		if e == el {
			done = true
			return
		}
		if e.Tag == "div" && !isAncestor(e, el) {
			preceding = e
		}
	})
	if !done || preceding == nil {
		return "", false
	}
	head := child(preceding, "head")
	if head == nil || head.Text() == "" {
		return "", false
	}
	return head.Text(), true
}

func insideTag(el *etree.Element, tag string) bool {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag == tag {
			return true
		}
	}
	return false
}

func isAncestor(candidate, el *etree.Element) bool {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p == candidate {
			return true
		}
	}
	return false
}
