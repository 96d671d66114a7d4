package tei

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/matsen/citectx/internal/reference"
)

// Bibliography returns the entries of every listBibl in document order.
func (d *Document) Bibliography() []reference.BibliographyEntry {
	var entries []reference.BibliographyEntry
	for _, list := range descendants(d.Root(), "listBibl") {
		for _, bibl := range list.ChildElements() {
			entries = append(entries, readEntry(bibl))
		}
	}
	return entries
}

// TotalReferences counts the structured entries of the references section.
func (d *Document) TotalReferences() int {
	n := 0
	for _, div := range descendants(d.Root(), "div") {
		if div.SelectAttrValue("type", "") != "references" {
			continue
		}
		for _, list := range div.ChildElements() {
			if list.Tag != "listBibl" {
				continue
			}
			for _, bibl := range list.ChildElements() {
				if bibl.Tag == "biblStruct" {
					n++
				}
			}
		}
	}
	return n
}

func readEntry(bibl *etree.Element) reference.BibliographyEntry {
	return reference.BibliographyEntry{
		ID:      bibl.SelectAttrValue("xml:id", ""),
		Authors: entryAuthors(bibl),
		Title:   entryTitle(bibl),
		Year:    entryYear(bibl),
		Journal: entryJournal(bibl),
	}
}

// entryAuthors formats the persons of the analytic level, or of the
// monograph when the entry has no analytic level, as "Surname, Forename"
// joined by ";". Entries without persons fall back to editor or
// organisation names.
func entryAuthors(bibl *etree.Element) string {
	level := child(bibl, "analytic")
	if level == nil {
		level = child(bibl, "monogr")
	}

	var names []string
	for _, author := range childrenByTag(level, "author") {
		pers := child(author, "persName")
		if pers == nil {
			continue
		}
		var surname, forename string
		if s := child(pers, "surname"); s != nil {
			surname = Text(s)
		}
		if f := child(pers, "forename"); f != nil {
			forename = Text(f)
		}
		names = append(names, reference.FormatBibliographyAuthor(surname, forename))
	}
	if len(names) > 0 {
		return strings.Join(names, ";")
	}

	for _, tag := range []string{"editor", "orgName"} {
		for _, holder := range []*etree.Element{bibl, child(bibl, "monogr")} {
			if el := child(holder, tag); el != nil {
				return strings.TrimSpace(strings.NewReplacer("\n", " ", "\r", "").Replace(Text(el)))
			}
		}
	}
	return ""
}

func entryTitle(bibl *etree.Element) string {
	level := child(bibl, "analytic")
	if level == nil {
		level = child(bibl, "monogr")
	}
	if title := child(level, "title"); title != nil {
		return Text(title)
	}
	return ""
}

func entryYear(bibl *etree.Element) string {
	imprint := child(child(bibl, "monogr"), "imprint")
	if date := child(imprint, "date"); date != nil {
		return date.SelectAttrValue("when", "")
	}
	return ""
}

func entryJournal(bibl *etree.Element) string {
	if title := child(child(bibl, "monogr"), "title"); title != nil {
		return Text(title)
	}
	return ""
}

func childrenByTag(el *etree.Element, tag string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}
