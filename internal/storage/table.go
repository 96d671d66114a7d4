// Package storage reads and writes tables in CSV, JSONL, SQLite and XLSX
// formats. The format follows the file extension.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultTableName names the table or sheet when a Table has no name.
const DefaultTableName = "data"

// Table is a named, column-ordered table of string cells.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Index returns the position of a column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Get returns the cell of row i in the named column, or "" when the
// column is missing or the row is short.
func (t *Table) Get(i int, column string) string {
	j := t.Index(column)
	if j < 0 || j >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][j]
}

func (t *Table) name() string {
	if t.Name == "" {
		return DefaultTableName
	}
	return t.Name
}

// Format returns the storage format of a path: csv, jsonl, sqlite or xlsx.
func Format(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return "csv", nil
	case ".jsonl":
		return "jsonl", nil
	case ".db", ".sqlite":
		return "sqlite", nil
	case ".xlsx":
		return "xlsx", nil
	default:
		return "", fmt.Errorf("unsupported file format: %q", ext)
	}
}

// Read reads a table from path.
func Read(path string) (*Table, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case "csv":
		return ReadCSV(path)
	case "jsonl":
		return ReadJSONL(path)
	case "sqlite":
		return ReadSQLite(path, "")
	default:
		return ReadXLSX(path)
	}
}

// Write writes a table to path, creating parent directories and
// replacing existing content.
func Write(path string, t *Table) error {
	format, err := Format(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	switch format {
	case "csv":
		return WriteCSV(path, t)
	case "jsonl":
		return WriteJSONL(path, t)
	case "sqlite":
		return WriteSQLite(path, t)
	default:
		return WriteXLSX(path, t)
	}
}
