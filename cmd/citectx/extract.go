package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/citectx/internal/config"
	"github.com/matsen/citectx/internal/features"
	"github.com/matsen/citectx/internal/match"
	"github.com/matsen/citectx/internal/metrics"
	"github.com/matsen/citectx/internal/nlp"
	"github.com/matsen/citectx/internal/pipeline"
	"github.com/matsen/citectx/internal/sentiment"
)

var (
	extractOutput  string
	extractWorkers int
	extractStrict  bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output table (.csv, .jsonl, .db, .xlsx); overrides config")
	extractCmd.Flags().IntVarP(&extractWorkers, "workers", "w", 0, "Concurrent pairs (default: config, else NumCPU-2)")
	extractCmd.Flags().BoolVar(&extractStrict, "strict", false, "Exit with a non-zero code when any pair fails")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract citation contexts and features for all pairs",
	Long: `Extract citation contexts and features for every (review, citing paper)
pair of the pair table and write one row per citing sentence.

Pairs whose review cannot be found in the citing paper yield a single row
with empty features. Rows are de-duplicated and sorted by review key, then
citing paper key.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if extractOutput != "" {
		cfg.Output = config.ExpandPath(extractOutput)
	}
	if extractWorkers > 0 {
		cfg.Workers = extractWorkers
	}
	log := mustNewLogger(cfg)
	defer syncLogger()

	catalog := mustLoadCatalog(cfg)
	keys, stats := mustReadPairs(cfg, log)

	var recorder metrics.Recorder = metrics.Nop{}
	var prom *metrics.Prometheus
	if cfg.MetricsFile != "" {
		var err error
		if prom, err = metrics.NewPrometheus(); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		recorder = prom
	}

	prose := nlp.NewProse()
	p := pipeline.New(catalog, pipeline.Options{
		XMLDir:     cfg.XMLDir,
		Workers:    cfg.WorkerCount(),
		Thresholds: match.Thresholds{Numeric: cfg.Thresholds.Numeric, Lookup: cfg.Thresholds.Lookup},
		Segmenter:  prose,
		Extractor:  features.NewExtractor(prose, sentiment.NewVader()),
		Logger:     log,
		Metrics:    recorder,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("starting extraction",
		zap.Int("pairs", len(keys)),
		zap.Int("articles", catalog.Len()),
		zap.Int("workers", cfg.WorkerCount()),
		zap.String("xml_dir", cfg.XMLDir))
	start := time.Now()

	res, err := p.Run(ctx, keys)
	if err != nil {
		exitWithError(ExitError, "extraction interrupted: %v", err)
	}
	mustWriteTable(cfg.Output, pipeline.Table(res.Rows))

	if prom != nil {
		if err := prom.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("writing metrics", zap.Error(err))
		}
	}

	resp := ExtractResponse{
		Pairs:    len(keys),
		Skipped:  stats.Skipped(),
		Rows:     len(res.Rows),
		Output:   cfg.Output,
		Metrics:  cfg.MetricsFile,
		Duration: time.Since(start).Round(time.Millisecond).String(),
	}
	for _, r := range res.Rows {
		if r.IsEmpty() {
			resp.Empty++
		}
	}
	if res.Failed != nil {
		resp.Failed = len(res.Failed.Errors)
		for _, e := range res.Failed.Errors {
			resp.Errors = append(resp.Errors, e.Error())
		}
	}
	log.Info("extraction finished", zap.Int("rows", resp.Rows), zap.Int("failed", resp.Failed))

	if humanOutput {
		outputHuman("Processed %d pairs in %s\n", resp.Pairs, resp.Duration)
		if resp.Skipped > 0 {
			outputHuman("Skipped %d pair table rows (empty or repeated keys)\n", resp.Skipped)
		}
		outputHuman("Wrote %d rows (%d empty) to %s\n", resp.Rows, resp.Empty, resp.Output)
		if resp.Failed > 0 {
			outputHuman("%d pairs failed:\n%s", resp.Failed, formatErrors(resp.Errors))
		}
	} else {
		outputJSON(resp)
	}

	if extractStrict && resp.Failed > 0 {
		exit(ExitPartial)
	}
	return nil
}
