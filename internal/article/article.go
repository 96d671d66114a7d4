// Package article loads the article metadata table and the list of
// (literature review, citing paper) pairs.
package article

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/matsen/citectx/internal/reference"
	"github.com/matsen/citectx/internal/storage"
)

// Column names of the article table.
const (
	ColumnKey     = "citation_key"
	ColumnAuthor  = "author"
	ColumnTitle   = "title"
	ColumnYear    = "year"
	ColumnJournal = "journal"
)

// ErrUnknownKey is returned when a citation key is not in the catalog.
var ErrUnknownKey = errors.New("unknown citation key")

// Catalog holds articles by citation key in table order.
type Catalog struct {
	byKey map[string]reference.Article
	keys  []string
}

// NewCatalog builds a catalog. When a key occurs more than once the first
// article wins.
func NewCatalog(articles []reference.Article) *Catalog {
	c := &Catalog{byKey: make(map[string]reference.Article, len(articles))}
	c.Add(articles...)
	return c
}

// Add appends articles whose keys are not yet present.
func (c *Catalog) Add(articles ...reference.Article) {
	for _, a := range articles {
		if a.CitationKey == "" {
			continue
		}
		if _, exists := c.byKey[a.CitationKey]; exists {
			continue
		}
		c.byKey[a.CitationKey] = a
		c.keys = append(c.keys, a.CitationKey)
	}
}

// Lookup returns the article with the given key.
func (c *Catalog) Lookup(key string) (reference.Article, bool) {
	a, ok := c.byKey[key]
	return a, ok
}

// Len returns the number of articles.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Articles returns all articles in table order.
func (c *Catalog) Articles() []reference.Article {
	out := make([]reference.Article, len(c.keys))
	for i, k := range c.keys {
		out[i] = c.byKey[k]
	}
	return out
}

// Pair builds the pair for the given keys. The review must be in the
// catalog; a citing paper missing from it is represented by its key only.
func (c *Catalog) Pair(k Key) (reference.Pair, error) {
	review, ok := c.Lookup(k.Review)
	if !ok {
		return reference.Pair{}, fmt.Errorf("%w: review %q", ErrUnknownKey, k.Review)
	}
	citing, ok := c.Lookup(k.Citing)
	if !ok {
		citing = reference.Article{CitationKey: k.Citing}
	}
	return reference.Pair{Review: review, Citing: citing}, nil
}

// FromTable reads articles from a table with at least a citation_key
// column. Other missing columns leave the field empty.
func FromTable(t *storage.Table) ([]reference.Article, error) {
	if t.Index(ColumnKey) < 0 {
		return nil, fmt.Errorf("article table has no %q column", ColumnKey)
	}
	articles := make([]reference.Article, 0, len(t.Rows))
	for i := range t.Rows {
		articles = append(articles, reference.Article{
			CitationKey: strings.TrimSpace(t.Get(i, ColumnKey)),
			Author:      t.Get(i, ColumnAuthor),
			Title:       t.Get(i, ColumnTitle),
			Year:        NormalizeYear(t.Get(i, ColumnYear)),
			Journal:     t.Get(i, ColumnJournal),
		})
	}
	return articles, nil
}

// NormalizeYear renders integral numeric years without a fraction, so
// "2019.0" becomes "2019". Other values are returned trimmed.
func NormalizeYear(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return s
	}
	return strconv.FormatInt(int64(f), 10)
}

// ReadArticles reads the article table at path. BibTeX files (.bib) are
// parsed as such; other files go through storage.Read.
func ReadArticles(path string) ([]reference.Article, error) {
	if strings.EqualFold(filepath.Ext(path), ".bib") {
		return ReadBibTeX(path)
	}
	t, err := storage.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading articles: %w", err)
	}
	return FromTable(t)
}

// Load builds a catalog from the article table and an optional BibTeX
// file. Table articles take precedence over BibTeX entries with the same key.
func Load(articlesPath, bibPath string) (*Catalog, error) {
	c := NewCatalog(nil)
	if articlesPath != "" {
		articles, err := ReadArticles(articlesPath)
		if err != nil {
			return nil, err
		}
		c.Add(articles...)
	}
	if bibPath != "" {
		entries, err := ReadBibTeX(bibPath)
		if err != nil {
			return nil, err
		}
		c.Add(entries...)
	}
	return c, nil
}
