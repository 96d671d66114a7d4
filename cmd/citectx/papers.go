package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/citectx/internal/article"
	"github.com/matsen/citectx/internal/config"
	"github.com/matsen/citectx/internal/paper"
	"github.com/matsen/citectx/internal/tei"
)

var (
	papersOutput string
	pairsOutput  string
)

func init() {
	papersCmd.Flags().StringVarP(&papersOutput, "output", "o", "", "Write the table to this file (.csv, .jsonl, .db, .xlsx)")
	pairsCmd.Flags().StringVarP(&pairsOutput, "output", "o", "", "Write the table to this file (.csv, .jsonl, .db, .xlsx)")
	rootCmd.AddCommand(papersCmd)
	rootCmd.AddCommand(pairsCmd)
}

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Describe the citing papers of the pair table",
	Long: `Describe every citing paper of the pair table: title, number of
bibliography entries, number of in-text citations and abstract. Papers
without an abstract use the text of their first section.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		log := mustNewLogger(cfg)
		defer syncLogger()
		catalog := mustLoadCatalog(cfg)
		keys, _ := mustReadPairs(cfg, log)

		records := []paper.Citing{}
		var errs []string
		for _, key := range article.CitingKeys(keys) {
			doc, err := tei.ReadFile(documentPath(cfg, key))
			if err != nil {
				log.Warn("skipping paper", zap.String("cp", key), zap.Error(err))
				errs = append(errs, describeDocumentError(key, err))
				continue
			}
			a, ok := catalog.Lookup(key)
			if !ok {
				a.CitationKey = key
			}
			records = append(records, paper.DescribeCiting(a, doc))
		}

		return writeOrPrint(papersOutput, len(records), errs, func() {
			mustWriteTable(config.ExpandPath(papersOutput), paper.CitingTable(records))
		}, func() {
			for _, r := range records {
				outputHuman("%-24s refs=%-4d cites=%-4d %s\n", r.CitationKey, r.TotalReferences, r.TotalCitations,
					truncateString(r.Title, ListTitleMaxLen))
			}
		}, records)
	},
}

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Describe the (review, citing paper) pairs",
	Long: `Describe every pair of the pair table: whether it is a self citation
(the papers share an author surname) and whether the citing paper's title
names the review's authors.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		log := mustNewLogger(cfg)
		defer syncLogger()
		catalog := mustLoadCatalog(cfg)
		keys, _ := mustReadPairs(cfg, log)

		titles := make(map[string]string)
		records := []paper.Pair{}
		var errs []string
		for _, k := range keys {
			pair, err := catalog.Pair(k)
			if err != nil {
				errs = append(errs, describeDocumentError(k.Review, err))
				continue
			}
			title, seen := titles[k.Citing]
			if !seen {
				if doc, err := tei.ReadFile(documentPath(cfg, k.Citing)); err == nil {
					title = doc.Title()
				} else {
					log.Debug("no document title", zap.String("cp", k.Citing), zap.Error(err))
				}
				titles[k.Citing] = title
			}
			rec, err := paper.DescribePair(pair, title)
			if err != nil {
				log.Warn("skipping pair", zap.String("lr", k.Review), zap.String("cp", k.Citing), zap.Error(err))
				errs = append(errs, describeDocumentError(k.Review, err))
				continue
			}
			records = append(records, rec)
		}

		return writeOrPrint(pairsOutput, len(records), errs, func() {
			mustWriteTable(config.ExpandPath(pairsOutput), paper.PairTable(records))
		}, func() {
			for _, r := range records {
				outputHuman("%-24s %-24s self=%-5t in_title=%t\n", r.ReviewKey, r.CitingKey, r.SelfCitation, r.RefInTitle)
			}
		}, records)
	},
}

// ListResponse is returned by listing commands that print their records.
type ListResponse struct {
	Records any      `json:"records"`
	Errors  []string `json:"errors,omitempty"`
}

// writeOrPrint writes the table when output is set, else prints the
// records as JSON or, with --human, through printHuman.
func writeOrPrint(output string, n int, errs []string, write, printHuman func(), records any) error {
	if output != "" {
		write()
		if humanOutput {
			outputHuman("Wrote %d rows to %s\n", n, output)
			if len(errs) > 0 {
				outputHuman("%d skipped:\n%s", len(errs), formatErrors(errs))
			}
			return nil
		}
		return outputJSON(TableResponse{Rows: n, Output: output})
	}

	if humanOutput {
		printHuman()
		if len(errs) > 0 {
			outputHuman("%d skipped:\n%s", len(errs), formatErrors(errs))
		}
		return nil
	}
	return outputJSON(ListResponse{Records: records, Errors: errs})
}
