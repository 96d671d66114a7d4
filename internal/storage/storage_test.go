package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sampleTable() *Table {
	return &Table{
		Name:    "citations",
		Columns: []string{"citation_key_lr", "citation_key_cp", "sentence"},
		Rows: [][]string{
			{"Webster2002", "Smith2019", `He said "fine", then left.`},
			{"Webster2002", "Jones2020", "Ünïcode, commas, and\nnewlines"},
		},
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out/CITATION.csv", "csv", false},
		{"CITATION.CSV", "csv", false},
		{"rows.jsonl", "jsonl", false},
		{"rows.db", "sqlite", false},
		{"rows.sqlite", "sqlite", false},
		{"rows.xlsx", "xlsx", false},
		{"rows.parquet", "", true},
		{"rows", "", true},
	}

	for _, tt := range tests {
		got, err := Format(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("Format(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	for _, ext := range []string{".csv", ".jsonl", ".db", ".xlsx"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "out"+ext)
			want := sampleTable()

			if err := Write(path, want); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			got, err := Read(path)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}

			if ext != ".csv" && ext != ".jsonl" && got.Name != want.Name {
				t.Errorf("Name = %q, want %q", got.Name, want.Name)
			}
			if !reflect.DeepEqual(got.Columns, want.Columns) {
				t.Errorf("Columns = %v, want %v", got.Columns, want.Columns)
			}
			if !reflect.DeepEqual(got.Rows, want.Rows) {
				t.Errorf("Rows = %q, want %q", got.Rows, want.Rows)
			}
		})
	}
}

func TestWrite_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	if err := Write(path, sampleTable()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	small := &Table{Columns: []string{"a"}, Rows: [][]string{{"1"}}}
	if err := Write(path, small); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got.Rows) != 1 || got.Rows[0][0] != "1" {
		t.Errorf("Rows = %v, want [[1]]", got.Rows)
	}
}

func TestWriteSQLite_DropsOtherTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	if err := WriteSQLite(path, sampleTable()); err != nil {
		t.Fatalf("WriteSQLite() error = %v", err)
	}
	if err := WriteSQLite(path, &Table{Name: "pairs", Columns: []string{"a"}, Rows: [][]string{{"1"}}}); err != nil {
		t.Fatalf("second WriteSQLite() error = %v", err)
	}

	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	name, err := db.FirstTable()
	if err != nil {
		t.Fatalf("FirstTable() error = %v", err)
	}
	if name != "pairs" {
		t.Errorf("FirstTable() = %q, want pairs", name)
	}
	if _, err := db.ReadTable("citations"); err == nil {
		t.Error("ReadTable(citations) should fail after the file was replaced")
	}
}

func TestReadCSV_RaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ARTICLE.csv")
	content := "citation_key,author,year\nA2019,\"Smith, J\",2019\nB2020,Doe\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	tbl, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("Read() returned %d rows, want 2", len(tbl.Rows))
	}
	if got := tbl.Get(0, "author"); got != "Smith, J" {
		t.Errorf("Get(0, author) = %q, want %q", got, "Smith, J")
	}
	if got := tbl.Get(1, "year"); got != "" {
		t.Errorf("Get(1, year) = %q, want empty", got)
	}
	if got := tbl.Get(0, "missing"); got != "" {
		t.Errorf("Get(0, missing) = %q, want empty", got)
	}
}

func TestReadCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Error("Read() expected error for empty CSV")
	}
}

func TestReadJSONL_Scalars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	lines := `{"key":"A","year":2019,"textual":true}

{"year":2020.5,"key":"B","extra":"ignored"}
`
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	tbl, err := ReadJSONL(path)
	if err != nil {
		t.Fatalf("ReadJSONL() error = %v", err)
	}
	wantCols := []string{"key", "year", "textual"}
	if !reflect.DeepEqual(tbl.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", tbl.Columns, wantCols)
	}
	want := [][]string{{"A", "2019", "true"}, {"B", "2020.5", ""}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("Rows = %v, want %v", tbl.Rows, want)
	}
}

func TestReadJSONL_InvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	if err := os.WriteFile(path, []byte("[1,2]\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := ReadJSONL(path); err == nil {
		t.Error("ReadJSONL() expected error for non-object line")
	}
}

func TestWriteJSONL_KeyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	tbl := &Table{Columns: []string{"z", "a"}, Rows: [][]string{{"1", "2"}, {"3"}}}
	if err := WriteJSONL(path, tbl); err != nil {
		t.Fatalf("WriteJSONL() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	want := "{\"z\":\"1\",\"a\":\"2\"}\n{\"z\":\"3\",\"a\":\"\"}\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestReadXLSX_SkipsEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.xlsx")
	tbl := &Table{Columns: []string{"a", "b"}, Rows: [][]string{{"1", "2"}, {"", ""}, {"3", ""}}}
	if err := WriteXLSX(path, tbl); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	got, err := ReadXLSX(path)
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	want := [][]string{{"1", "2"}, {"3", ""}}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("Rows = %q, want %q", got.Rows, want)
	}
	if got.Name != DefaultTableName {
		t.Errorf("Name = %q, want %q", got.Name, DefaultTableName)
	}
}
