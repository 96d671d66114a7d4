// Package metrics records run statistics of an extraction and writes them
// in the Prometheus textfile format.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pair outcomes.
const (
	OutcomeResolved   = "resolved"   // at least one mention
	OutcomeUnresolved = "unresolved" // sentinel row, review not found
	OutcomeFailed     = "failed"     // sentinel row, error or panic
)

// Recorder records per-pair results.
type Recorder interface {
	RecordPair(outcome string, mentions int, d time.Duration)
}

// Prometheus is a Recorder backed by its own registry.
type Prometheus struct {
	registry *prometheus.Registry
	pairs    *prometheus.CounterVec
	mentions prometheus.Counter
	duration prometheus.Histogram
}

// NewPrometheus creates the collectors and registers them on a new registry.
func NewPrometheus() (*Prometheus, error) {
	m := &Prometheus{registry: prometheus.NewRegistry()}

	m.pairs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "citectx_pairs_total",
		Help: "Processed (review, citing paper) pairs by outcome.",
	}, []string{"outcome"})
	m.mentions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "citectx_mentions_total",
		Help: "Annotated paragraphs citing a review.",
	})
	m.duration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "citectx_pair_duration_seconds",
		Help:    "Time spent processing one pair.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	for _, c := range []prometheus.Collector{m.pairs, m.mentions, m.duration} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}
	// Known outcomes appear in the output even when zero.
	for _, o := range []string{OutcomeResolved, OutcomeUnresolved, OutcomeFailed} {
		m.pairs.WithLabelValues(o)
	}
	return m, nil
}

// RecordPair records one processed pair.
func (m *Prometheus) RecordPair(outcome string, mentions int, d time.Duration) {
	m.pairs.WithLabelValues(outcome).Inc()
	m.mentions.Add(float64(mentions))
	m.duration.Observe(d.Seconds())
}

// Registry returns the registry holding the collectors.
func (m *Prometheus) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to path, creating parent directories.
func (m *Prometheus) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// Nop discards everything.
type Nop struct{}

// RecordPair does nothing.
func (Nop) RecordPair(string, int, time.Duration) {}
