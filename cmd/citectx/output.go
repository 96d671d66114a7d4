package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/matsen/citectx/internal/storage"
)

// activeLogger is flushed before the process exits.
var activeLogger *zap.Logger

// syncLogger flushes buffered log entries of the active logger.
func syncLogger() {
	if activeLogger != nil {
		_ = activeLogger.Sync()
	}
}

// exit flushes the logger and terminates with code.
func exit(code int) {
	syncLogger()
	os.Exit(code)
}

// Title truncation length in human-readable listings.
const ListTitleMaxLen = 60

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	exit(code)
}

// mustWriteTable writes a table to path, exits on error.
func mustWriteTable(path string, t *storage.Table) {
	if err := storage.Write(path, t); err != nil {
		exitWithError(ExitError, "writing %s: %v", path, err)
	}
}

// truncateString shortens s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ExtractResponse summarizes an extraction run.
type ExtractResponse struct {
	Pairs    int      `json:"pairs"`
	Skipped  int      `json:"skipped_rows,omitempty"`
	Rows     int      `json:"rows"`
	Empty    int      `json:"empty_rows"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
	Output   string   `json:"output"`
	Metrics  string   `json:"metrics,omitempty"`
	Duration string   `json:"duration"`
}

// TableResponse is returned by commands that write a table.
type TableResponse struct {
	Rows   int    `json:"rows"`
	Output string `json:"output"`
}

// formatErrors returns error messages one per line, indented.
func formatErrors(errs []string) string {
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString("  - ")
		sb.WriteString(e)
		sb.WriteByte('\n')
	}
	return sb.String()
}
