package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/citectx/internal/citation"
	"github.com/matsen/citectx/internal/config"
	"github.com/matsen/citectx/internal/match"
	"github.com/matsen/citectx/internal/pipeline"
	"github.com/matsen/citectx/internal/reference"
	"github.com/matsen/citectx/internal/section"
	"github.com/matsen/citectx/internal/tei"
)

func init() {
	rootCmd.AddCommand(headingsCmd)
	rootCmd.AddCommand(styleCmd)
	rootCmd.AddCommand(matchCmd)
}

// documentPath returns arg when it names an existing file, else the TEI
// document of the citing paper with key arg.
func documentPath(cfg *config.Config, arg string) string {
	if strings.HasSuffix(arg, ".xml") {
		if _, err := os.Stat(arg); err == nil {
			return arg
		}
	}
	return filepath.Join(cfg.XMLDir, arg+pipeline.DocumentSuffix)
}

// mustReadDocument reads a TEI document by citing paper key or path, exits on error.
func mustReadDocument(cfg *config.Config, arg string) *tei.Document {
	doc, err := tei.ReadFile(documentPath(cfg, arg))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			exitWithError(ExitDataError, "document not found for %q", arg)
		}
		exitWithError(ExitDataError, "%v", err)
	}
	return doc
}

var headingsCmd = &cobra.Command{
	Use:   "headings <citing-key|file.tei.xml>",
	Short: "Show the section headings of a document and their categories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		doc := mustReadDocument(cfg, args[0])
		headings := section.NewIndex(doc.Headings()).Headings()

		if humanOutput {
			for _, h := range headings {
				outputHuman("%-18s %s\n", h.Category, h.Title)
			}
			return nil
		}
		if headings == nil {
			headings = []section.Heading{}
		}
		return outputJSON(headings)
	},
}

// StyleResponse is the response of the style command.
type StyleResponse struct {
	Numeric   bool `json:"numeric"`
	Markers   int  `json:"markers"`
	Citations int  `json:"citations"`
}

var styleCmd = &cobra.Command{
	Use:   "style <citing-key|file.tei.xml>",
	Short: "Classify a document's citation style as numeric or author-year",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		doc := mustReadDocument(cfg, args[0])
		texts := doc.CitationTexts()
		resp := StyleResponse{
			Numeric:   citation.IsAlphanumeric(texts),
			Markers:   len(texts),
			Citations: doc.TotalCitations(),
		}

		if humanOutput {
			style := "author-year"
			if resp.Numeric {
				style = "numeric"
			}
			outputHuman("%s (%d markers with text, %d citations)\n", style, resp.Markers, resp.Citations)
			return nil
		}
		return outputJSON(resp)
	},
}

// MatchResponse is the response of the match command.
type MatchResponse struct {
	Review          string                       `json:"citation_key_lr"`
	Citing          string                       `json:"citation_key_cp"`
	Entry           *reference.BibliographyEntry `json:"entry,omitempty"`
	Score           float64                      `json:"score"`
	Scores          *match.Scores                `json:"scores,omitempty"`
	AcceptedLookup  bool                         `json:"accepted_lookup"`
	AcceptedNumeric bool                         `json:"accepted_numeric"`
}

var matchCmd = &cobra.Command{
	Use:   "match <review-key> <citing-key|file.tei.xml>",
	Short: "Find a review in the bibliography of a citing paper",
	Long: `Find a review in the bibliography of a citing paper and show the best
scoring entry with its per-field similarities.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		catalog := mustLoadCatalog(cfg)
		review, ok := catalog.Lookup(args[0])
		if !ok {
			exitWithError(ExitDataError, "unknown review: %s", args[0])
		}
		doc := mustReadDocument(cfg, args[1])

		q := review.Query()
		resp := MatchResponse{Review: review.CitationKey, Citing: args[1]}
		if best, found := match.Best(q, doc.Bibliography()); found {
			scores := match.Compare(q, best.Entry)
			resp.Entry = &best.Entry
			resp.Score = best.Score
			resp.Scores = &scores
			resp.AcceptedLookup = best.Score >= cfg.Thresholds.Lookup
			resp.AcceptedNumeric = best.Score > cfg.Thresholds.Numeric
		}

		if humanOutput {
			if resp.Entry == nil {
				outputHuman("No bibliography entries\n")
				return nil
			}
			outputHuman("%s [%.3f] %s\n", resp.Entry.ID, resp.Score, truncateString(resp.Entry.Title, ListTitleMaxLen))
			outputHuman("  author %.2f  title %.2f  year %.2f  journal %.2f\n",
				resp.Scores.Author, resp.Scores.Title, resp.Scores.Year, resp.Scores.Journal)
			outputHuman("  accepted: lookup=%t numeric=%t\n", resp.AcceptedLookup, resp.AcceptedNumeric)
			return nil
		}
		return outputJSON(resp)
	},
}

// describeDocumentError formats a per-key error for listings.
func describeDocumentError(key string, err error) string {
	return fmt.Sprintf("%s: %v", key, err)
}
