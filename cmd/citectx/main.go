// Package main provides the citectx CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/citectx/internal/article"
	"github.com/matsen/citectx/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	configPath  string
	verbose     bool
	metricsFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citectx",
	Short: "Citation context extraction for literature reviews",
	Long: `citectx extracts the sentences in which citing papers refer to a
literature review, together with positional, stylistic and structural
features of each citation.

Inputs are Grobid TEI documents of the citing papers, an article table
(CSV, XLSX or BibTeX) and a table of (review, citing paper) pairs.
All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Project directory or "+config.ProjectFile+" file (default: search upwards)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging in console format")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics to this Prometheus textfile")
	rootCmd.Version = Version
}

// projectRoot returns the project directory: the --config flag, else the
// nearest directory with a project file, else the working directory.
// The second value reports whether a project file was found.
func projectRoot() (string, bool) {
	if configPath != "" {
		path := config.ExpandPath(configPath)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			path = filepath.Dir(path)
		}
		return path, config.IsProject(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	root, err := config.FindProject(cwd)
	if err != nil {
		return cwd, false
	}
	return root, true
}

// mustLoadConfig loads and validates the configuration, exits on error.
func mustLoadConfig() *config.Config {
	root, _ := projectRoot()
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if metricsFile != "" {
		cfg.MetricsFile = config.ExpandPath(metricsFile)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "invalid config: %v", err)
	}
	return cfg
}

// mustNewLogger builds the logger, exits on error.
func mustNewLogger(cfg *config.Config) *zap.Logger {
	log, err := newLogger(cfg.Log, verbose)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	activeLogger = log
	return log
}

// mustLoadCatalog loads the article table and optional BibTeX file, exits on error.
// A missing article table is allowed when a BibTeX file is configured.
func mustLoadCatalog(cfg *config.Config) *article.Catalog {
	articles := cfg.Articles
	if _, err := os.Stat(articles); err != nil {
		if cfg.BibTeX == "" {
			if _, found := projectRoot(); !found {
				fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
			}
			exitWithError(ExitConfigError, "article table not found: %s", articles)
		}
		articles = ""
	}

	catalog, err := article.Load(articles, cfg.BibTeX)
	if err != nil {
		exitWithError(ExitDataError, "loading articles: %v", err)
	}
	return catalog
}

// mustReadPairs reads the pair table, exits on error. Skipped rows are logged.
func mustReadPairs(cfg *config.Config, log *zap.Logger) ([]article.Key, article.PairStats) {
	keys, stats, err := article.ReadPairs(cfg.Pairs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			exitWithError(ExitConfigError, "pair table not found: %s", cfg.Pairs)
		}
		exitWithError(ExitDataError, "%v", err)
	}
	if stats.Incomplete > 0 {
		log.Warn("pair rows with an empty key skipped",
			zap.String("path", cfg.Pairs),
			zap.Int("rows", stats.Incomplete))
	}
	if stats.Duplicate > 0 {
		log.Info("duplicate pair rows skipped", zap.Int("rows", stats.Duplicate))
	}
	return keys, stats
}
