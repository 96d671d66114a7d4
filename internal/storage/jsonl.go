package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cast"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadJSONL reads a JSONL file of flat objects. Columns are taken from the
// keys of the first object, in order; scalar values are converted to
// strings.
func ReadJSONL(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening JSONL file: %w", err)
	}
	defer f.Close()

	t := &Table{}
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		keys, values, err := decodeObject(line)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if t.Columns == nil {
			t.Columns = keys
		}
		row := make([]string, len(t.Columns))
		for i, k := range keys {
			if j := t.Index(k); j >= 0 {
				row[j] = values[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading JSONL file: %w", err)
	}
	return t, nil
}

// decodeObject decodes a flat JSON object keeping its key order.
func decodeObject(data []byte) ([]string, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, nil, fmt.Errorf("expected JSON object")
	}

	var keys, values []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key")
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("decoding %q: %w", key, err)
		}
		keys = append(keys, key)
		if n, ok := v.(json.Number); ok {
			values = append(values, n.String())
			continue
		}
		values = append(values, cast.ToString(v))
	}
	return keys, values, nil
}

// WriteJSONL writes each row of t as one JSON object with keys in column
// order, replacing existing content.
func WriteJSONL(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating JSONL file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, row := range t.Rows {
		data, err := encodeObject(t.Columns, row)
		if err != nil {
			return fmt.Errorf("encoding row %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing JSONL file: %w", err)
	}
	return f.Close()
}

func encodeObject(columns, row []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		val, err := json.Marshal(cell)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
