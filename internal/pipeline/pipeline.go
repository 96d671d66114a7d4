// Package pipeline runs citation context extraction over a batch of
// (literature review, citing paper) pairs.
package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matsen/citectx/internal/article"
	"github.com/matsen/citectx/internal/citation"
	"github.com/matsen/citectx/internal/features"
	"github.com/matsen/citectx/internal/match"
	"github.com/matsen/citectx/internal/metrics"
	"github.com/matsen/citectx/internal/nlp"
	"github.com/matsen/citectx/internal/reference"
	"github.com/matsen/citectx/internal/section"
	"github.com/matsen/citectx/internal/sentiment"
	"github.com/matsen/citectx/internal/storage"
	"github.com/matsen/citectx/internal/tei"
	"github.com/matsen/citectx/internal/window"
)

// DocumentSuffix is appended to a citing paper's key to name its TEI file.
const DocumentSuffix = ".tei.xml"

// Options configures a Pipeline. Zero values fall back to defaults.
type Options struct {
	XMLDir     string
	Workers    int
	Thresholds match.Thresholds
	Segmenter  nlp.Segmenter
	Extractor  *features.Extractor
	Logger     *zap.Logger
	Metrics    metrics.Recorder
}

// Pipeline extracts feature rows for pairs. Its inputs are shared
// read-only between workers.
type Pipeline struct {
	catalog   *article.Catalog
	xmlDir    string
	workers   int
	th        match.Thresholds
	seg       nlp.Segmenter
	extractor *features.Extractor
	resolver  *citation.Resolver
	log       *zap.Logger
	metrics   metrics.Recorder
}

// New returns a Pipeline over the given catalog.
func New(catalog *article.Catalog, opts Options) *Pipeline {
	p := &Pipeline{
		catalog:   catalog,
		xmlDir:    opts.XMLDir,
		workers:   opts.Workers,
		th:        opts.Thresholds,
		seg:       opts.Segmenter,
		extractor: opts.Extractor,
		log:       opts.Logger,
		metrics:   opts.Metrics,
	}
	if p.workers < 1 {
		p.workers = 1
	}
	if p.th == (match.Thresholds{}) {
		p.th = match.DefaultThresholds()
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.metrics == nil {
		p.metrics = metrics.Nop{}
	}
	if p.seg == nil || p.extractor == nil {
		prose := nlp.NewProse()
		if p.seg == nil {
			p.seg = prose
		}
		if p.extractor == nil {
			p.extractor = features.NewExtractor(prose, sentiment.NewVader())
		}
	}
	p.resolver = citation.NewResolver(p.log).WithThresholds(p.th)
	return p
}

// Result is the outcome of a batch.
type Result struct {
	Rows []features.Row
	// Failed holds one error per pair that failed, or is nil.
	Failed *multierror.Error
}

// DocumentPath returns the TEI file of a citing paper.
func (p *Pipeline) DocumentPath(citingKey string) string {
	return filepath.Join(p.xmlDir, citingKey+DocumentSuffix)
}

// Run processes all pairs on up to Workers goroutines. Every pair yields
// at least one row; a failing or unresolved pair yields the empty row.
// Rows are de-duplicated and sorted by review key, then citing key.
//
// Cancelling ctx stops dispatching; Run then returns the context error.
func (p *Pipeline) Run(ctx context.Context, keys []article.Key) (*Result, error) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	var (
		mu     sync.Mutex
		rows   []features.Row
		failed *multierror.Error
	)

	for _, k := range keys {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gCtx.Err() != nil {
				return nil
			}
			out, err := p.processKey(k)
			mu.Lock()
			rows = append(rows, out...)
			if err != nil {
				failed = multierror.Append(failed, err)
			}
			mu.Unlock()
			return nil // a failing pair never stops its siblings
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{Rows: Finalize(rows), Failed: failed}, nil
}

// processKey runs one pair and turns failures and panics into the empty row.
func (p *Pipeline) processKey(k article.Key) (rows []features.Row, err error) {
	log := p.log.With(zap.String("lr", k.Review), zap.String("cp", k.Citing))
	start := time.Now()
	outcome := metrics.OutcomeResolved
	mentions := 0

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			if errors.Is(err, citation.ErrUnresolved) || errors.Is(err, match.ErrNotFound) ||
				errors.Is(err, match.ErrNoBibliography) {
				outcome = metrics.OutcomeUnresolved
				log.Info("no citation resolved", zap.Error(err))
				err = nil
			} else {
				outcome = metrics.OutcomeFailed
				log.Warn("pair failed", zap.Error(err))
				err = fmt.Errorf("pair (%s, %s): %w", k.Review, k.Citing, err)
			}
			rows = []features.Row{features.Empty(k.Review, k.Citing)}
		}
		p.metrics.RecordPair(outcome, mentions, time.Since(start))
	}()

	pair, err := p.catalog.Pair(k)
	if err != nil {
		return nil, err
	}
	rows, mentions, err = p.Process(pair, log)
	if err == nil && len(rows) == 0 {
		err = citation.ErrUnresolved
	}
	log.Debug("pair processed", zap.Int("mentions", mentions), zap.Int("rows", len(rows)))
	return rows, err
}

// Process extracts the rows of one pair and reports the number of
// annotated mentions. It returns an error when the review's authors
// cannot be parsed, the document cannot be read, or no mention resolves.
func (p *Pipeline) Process(pair reference.Pair, log *zap.Logger) ([]features.Row, int, error) {
	if log == nil {
		log = p.log
	}
	review, citing := pair.Key()
	q := pair.Review.Query()

	surnames, err := citation.ParseSurnames(pair.Review.Author)
	if err != nil {
		return nil, 0, err
	}

	raw, err := os.ReadFile(p.DocumentPath(citing))
	if err != nil {
		return nil, 0, fmt.Errorf("reading document: %w", err)
	}
	doc, err := tei.Parse(raw)
	if err != nil {
		return nil, 0, err
	}

	id, err := p.th.LookupID(q, doc.Bibliography())
	if err != nil {
		log.Debug("review not in bibliography", zap.Error(err))
		id = ""
	}
	recovered, err := citation.Recover(string(raw), surnames, q.Year, id)
	if err != nil {
		return nil, 0, err
	}
	if doc, err = tei.Parse([]byte(recovered)); err != nil {
		return nil, 0, fmt.Errorf("parsing recovered document: %w", err)
	}

	numeric := citation.IsAlphanumeric(doc.CitationTexts())
	var mentions []citation.Mention
	if numeric {
		mentions, err = p.resolver.Numeric(doc, q)
	} else {
		mentions, err = p.resolver.Pattern(doc, q, surnames, id)
	}
	if err != nil {
		return nil, 0, err
	}

	headings := section.NewIndex(doc.Headings())
	body := doc.BodyXML()
	var rows []features.Row
	for _, m := range mentions {
		title, _ := doc.HeadingFor(m.Host)
		pl := features.Placement{
			Numeric:      numeric,
			Body:         body,
			Headings:     headings,
			HeadingTitle: title,
			HostTag:      m.Host.Tag,
			HostText:     m.Host.Text(),
		}
		for w := range window.Split(m.Paragraph.Text(), p.seg) {
			rows = append(rows, p.extractor.Extract(review, citing, w, pl))
		}
	}
	return rows, len(mentions), nil
}

// Finalize drops rows identical in every column and sorts the rest by
// review key, then citing key. The relative order of other rows is kept.
func Finalize(rows []features.Row) []features.Row {
	seen := make(map[string]bool, len(rows))
	out := make([]features.Row, 0, len(rows))
	for _, r := range rows {
		key := strings.Join(r.Values(), "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b features.Row) int {
		return cmp.Or(cmp.Compare(a.ReviewKey, b.ReviewKey), cmp.Compare(a.CitingKey, b.CitingKey))
	})
	return out
}

// Table converts rows into an output table.
func Table(rows []features.Row) *storage.Table {
	t := &storage.Table{Name: "citations", Columns: features.Columns}
	for _, r := range rows {
		t.Rows = append(t.Rows, r.Values())
	}
	return t
}
