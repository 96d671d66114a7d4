package storage

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the active sheet of an XLSX workbook whose first row is
// the header. Empty rows are skipped.
func ReadXLSX(path string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening XLSX file: %w", err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(file.GetActiveSheetIndex())
	rows, err := file.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("empty XLSX file: %s", path)
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	t := &Table{Name: sheetName, Columns: header}
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if isEmptyRecord(record) {
			continue
		}
		row := make([]string, len(header))
		copy(row, record)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isEmptyRecord(record []string) bool {
	for _, v := range record {
		if v != "" {
			return false
		}
	}
	return true
}

// WriteXLSX writes t to a single-sheet XLSX workbook.
func WriteXLSX(path string, t *Table) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := t.name()
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	write := func(rowNum int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		return file.SetSheetRow(sheet, cell, &values)
	}

	if err := write(1, t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if err := write(i+2, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("saving XLSX file: %w", err)
	}
	return nil
}
