package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ReplaceTable drops the named table, recreates it with one TEXT column
// per table column and inserts all rows in one transaction.
func (d *DB) ReplaceTable(t *Table) error {
	name := quoteIdent(t.name())
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quoteIdent(c) + " TEXT"
		marks[i] = "?"
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + name); err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(cols, ", "))); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", name, strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for i, row := range t.Rows {
		for j := range args {
			args[j] = ""
			if j < len(row) {
				args[j] = row[j]
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ReadTable reads all rows of the named table in insertion order.
func (d *DB) ReadTable(name string) (*Table, error) {
	rows, err := d.db.Query("SELECT * FROM " + quoteIdent(name) + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying table: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	t := &Table{Name: name, Columns: cols}
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row := make([]string, len(cols))
		for i, c := range cells {
			row[i] = c.String
		}
		t.Rows = append(t.Rows, row)
	}
	return t, rows.Err()
}

// FirstTable returns the name of the first table created in the database.
func (d *DB) FirstTable() (string, error) {
	var name string
	err := d.db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' LIMIT 1").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("database has no tables")
	}
	if err != nil {
		return "", fmt.Errorf("listing tables: %w", err)
	}
	return name, nil
}

// WriteSQLite writes t as the only table of a new SQLite database file.
// An existing file at path is removed first.
func WriteSQLite(path string, t *Table) error {
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing existing database: %w", err)
		}
	}
	db, err := OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.ReplaceTable(t)
}

// ReadSQLite reads the named table of a SQLite database file. An empty
// name reads the first table.
func ReadSQLite(path, name string) (*Table, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if name == "" {
		if name, err = db.FirstTable(); err != nil {
			return nil, err
		}
	}
	return db.ReadTable(name)
}
