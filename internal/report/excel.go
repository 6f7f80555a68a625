// Package report renders extraction results as XLSX workbooks and compares
// them against expected-value workbooks.
package report

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/loanlens/loan-doc-extractor/internal/fields"
)

// Row is one extracted document: the file name plus its resolved record.
type Row struct {
	File   string
	Values fields.Record
}

const extractedSheet = "Extracted"

// columnHeaders is the fixed export column order: File first, then every
// field header in display order.
func columnHeaders() []string {
	headers := fields.ExportHeaders()
	cols := []string{"File"}
	for _, key := range fields.DisplayOrder() {
		cols = append(cols, headers[key])
	}
	return cols
}

// BuildWorkbook renders one row per document into an XLSX workbook and
// returns it as bytes.
func BuildWorkbook(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), extractedSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeExtractedSheet(f, extractedSheet, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteWorkbook renders the rows and writes the workbook to path.
func WriteWorkbook(path string, rows []Row) error {
	data, err := BuildWorkbook(rows)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return nil
}

// writeExtractedSheet fills a sheet with the header row and one row per
// document, columns in display order.
func writeExtractedSheet(f *excelize.File, sheet string, rows []Row) error {
	cols := columnHeaders()
	for i, h := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %q: %w", h, err)
		}
	}

	order := fields.DisplayOrder()
	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetCellValue(sheet, cell, row.File); err != nil {
			return fmt.Errorf("set file cell: %w", err)
		}
		for c, key := range order {
			cell, _ := excelize.CoordinatesToCellName(c+2, r+2)
			if err := f.SetCellValue(sheet, cell, row.Values[key]); err != nil {
				return fmt.Errorf("set value cell: %w", err)
			}
		}
	}

	// Widen the file and narrative columns
	_ = f.SetColWidth(sheet, "A", "A", 36)
	lastCol, _ := excelize.ColumnNumberToName(len(cols))
	_ = f.SetColWidth(sheet, "B", lastCol, 22)

	return nil
}
