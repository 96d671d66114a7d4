package citation

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/matsen/citectx/internal/match"
	"github.com/matsen/citectx/internal/reference"
	"github.com/matsen/citectx/internal/tei"
)

// ErrUnresolved is returned when a document holds no annotated citation
// of the review.
var ErrUnresolved = errors.New("no citation of the review resolved")

// Mention is one host element that cites the review.
type Mention struct {
	Marker    *etree.Element // first marker that selected the host
	Host      *etree.Element // host element in the document tree
	Paragraph Paragraph
}

// Resolver finds and annotates the mentions of a review in a document.
type Resolver struct {
	log        *zap.Logger
	thresholds match.Thresholds
}

// NewResolver returns a Resolver logging to log. A nil logger discards.
func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log, thresholds: match.DefaultThresholds()}
}

// WithThresholds sets the acceptance thresholds used by Numeric.
func (r *Resolver) WithThresholds(th match.Thresholds) *Resolver {
	r.thresholds = th
	return r
}

// Numeric resolves the mentions of a numerically citing document. The
// review's bibliography id is found by ResolveNumeric; markers pointing
// to it become REFERENCE, all other markers CITATION.
func (r *Resolver) Numeric(doc *tei.Document, q reference.Query) ([]Mention, error) {
	res, err := r.thresholds.ResolveNumeric(q, doc.Bibliography())
	if err != nil {
		return nil, fmt.Errorf("resolving numeric reference: %w", err)
	}
	id := res.Entry.ID
	r.log.Debug("resolved numeric reference", zap.String("id", id), zap.Float64("score", res.Score))

	isTarget := func(el *etree.Element) bool {
		return id != "" && tei.Target(el) == id
	}
	return r.collect(doc, isTarget)
}

// Pattern resolves the mentions of an author-year citing document. A
// marker cites the review when its text matches the author-year pattern,
// when it points to id, or when it was recovered without an id.
func (r *Resolver) Pattern(doc *tei.Document, q reference.Query, surnames []string, id string) ([]Mention, error) {
	re, err := CompilePattern(surnames, q.Year)
	if err != nil {
		return nil, err
	}

	isTarget := func(el *etree.Element) bool {
		if t := el.Text(); t != "" && re.MatchString(t) {
			return true
		}
		target := tei.Target(el)
		return (id != "" && target == id) || target == RecoveredTarget
	}
	return r.collect(doc, isTarget)
}

func (r *Resolver) collect(doc *tei.Document, isTarget func(*etree.Element) bool) ([]Mention, error) {
	var mentions []Mention
	seen := make(map[*etree.Element]bool)
	for _, marker := range doc.Markers() {
		if !isTarget(marker) {
			continue
		}
		host, source := NormalizeHost(marker)
		if host == nil || seen[source] {
			continue
		}
		seen[source] = true

		para := Annotate(host, isTarget)
		if !para.HasText() {
			r.log.Debug("skipping host without text", zap.String("tag", source.Tag))
			continue
		}
		mentions = append(mentions, Mention{Marker: marker, Host: source, Paragraph: para})
	}
	if len(mentions) == 0 {
		return nil, ErrUnresolved
	}
	return mentions, nil
}
