package report

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/loanlens/loan-doc-extractor/internal/fields"
)

// ExpectedTable is an expected-values workbook loaded into memory: one row
// per file key, column headers kept as written but joined on their
// normalized form.
type ExpectedTable struct {
	KeyColumn string
	Columns   []string
	Rows      map[string]map[string]string // file key -> normalized column -> value
}

// Diff is one compared field of one file.
type Diff struct {
	File      string
	Field     string
	Extracted string
	Expected  string
	Match     bool
	Reason    string
}

// Summary aggregates a comparison run.
type Summary struct {
	Compared   int
	Matches    int
	Mismatches int
}

var (
	colNormRE = regexp.MustCompile(`[^a-z0-9]`)
	valWsRE   = regexp.MustCompile(`\s+`)
)

// normCol reduces a column header to lowercase alphanumerics so that
// "Loan Amount", "loan_amount" and "LOAN AMOUNT:" all join.
func normCol(s string) string {
	return colNormRE.ReplaceAllString(strings.ToLower(s), "")
}

// normVal compares values loosely: whitespace runs collapse and case is
// ignored, so formatting drift does not count as a mismatch.
func normVal(s string) string {
	return strings.ToLower(strings.TrimSpace(valWsRE.ReplaceAllString(s, " ")))
}

// keyColumnCandidates are accepted names for the file-identifying column in
// an expected workbook, tried in order.
var keyColumnCandidates = []string{"File", "filename", "file", "document", "doc", "name"}

// LoadExpected reads the first sheet of an expected-values workbook. The
// header row must contain a file-identifying column; remaining columns are
// matched to extraction fields by normalized name.
func LoadExpected(path string) (*ExpectedTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open expected workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("expected workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("expected workbook %s is empty", path)
	}

	header := rows[0]
	keyIdx := -1
	keyCol := ""
	for _, cand := range keyColumnCandidates {
		for i, col := range header {
			if col == cand || normCol(col) == normCol(cand) {
				keyIdx = i
				keyCol = col
				break
			}
		}
		if keyIdx >= 0 {
			break
		}
	}
	if keyIdx < 0 {
		return nil, fmt.Errorf("expected workbook must have a 'File' (or similar) column to join on")
	}

	table := &ExpectedTable{
		KeyColumn: keyCol,
		Columns:   header,
		Rows:      make(map[string]map[string]string),
	}
	for _, row := range rows[1:] {
		if keyIdx >= len(row) {
			continue
		}
		key := strings.TrimSpace(row[keyIdx])
		if key == "" {
			continue
		}
		values := make(map[string]string, len(header))
		for i, col := range header {
			if i == keyIdx {
				continue
			}
			v := ""
			if i < len(row) {
				v = row[i]
			}
			values[normCol(col)] = v
		}
		table.Rows[key] = values
	}
	return table, nil
}

// Compare walks every extracted row and emits one Diff per column the
// expected table shares with the export. A file absent from the expected
// table produces mismatches with reason "missing in expected".
func Compare(rows []Row, expected *ExpectedTable) ([]Diff, Summary) {
	// Shared columns: expected columns whose normalized name matches an
	// export column, key column excluded
	type pair struct {
		header string // export header
		key    string // field key
		norm   string
	}
	var shared []pair
	expNorms := make(map[string]bool)
	for _, col := range expected.Columns {
		expNorms[normCol(col)] = true
	}
	headers := fields.ExportHeaders()
	for _, key := range fields.DisplayOrder() {
		header := headers[key]
		if n := normCol(header); expNorms[n] {
			shared = append(shared, pair{header: header, key: key, norm: n})
		}
	}

	var diffs []Diff
	var sum Summary
	for _, row := range rows {
		expRow, ok := expected.Rows[row.File]
		if !ok {
			for _, p := range shared {
				diffs = append(diffs, Diff{
					File:      row.File,
					Field:     p.header,
					Extracted: row.Values[p.key],
					Expected:  "",
					Match:     false,
					Reason:    "missing in expected",
				})
				sum.Compared++
				sum.Mismatches++
			}
			continue
		}

		for _, p := range shared {
			got := row.Values[p.key]
			want := expRow[p.norm]
			match := normVal(got) == normVal(want)
			reason := ""
			if !match {
				reason = "value differs"
			}
			diffs = append(diffs, Diff{
				File:      row.File,
				Field:     p.header,
				Extracted: got,
				Expected:  want,
				Match:     match,
				Reason:    reason,
			})
			sum.Compared++
			if match {
				sum.Matches++
			} else {
				sum.Mismatches++
			}
		}
	}
	return diffs, sum
}

// WriteComparisonWorkbook writes a three-sheet workbook: the extraction
// itself, the expected rows aligned on the file key, and the per-field diff.
func WriteComparisonWorkbook(path string, rows []Row, expected *ExpectedTable, diffs []Diff) error {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), extractedSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeExtractedSheet(f, extractedSheet, rows); err != nil {
		return err
	}

	if err := writeExpectedSheet(f, expected, rows); err != nil {
		return err
	}
	if err := writeDiffSheet(f, diffs); err != nil {
		return err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return nil
}

func writeExpectedSheet(f *excelize.File, expected *ExpectedTable, rows []Row) error {
	const sheet = "Expected (aligned)"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %q: %w", sheet, err)
	}

	header := append([]string{"File"}, nonKeyColumns(expected)...)
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %q: %w", h, err)
		}
	}

	// Align expected rows to the extraction order
	r := 2
	for _, row := range rows {
		expRow, ok := expected.Rows[row.File]
		if !ok {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetCellValue(sheet, cell, row.File); err != nil {
			return fmt.Errorf("set file cell: %w", err)
		}
		for c, col := range nonKeyColumns(expected) {
			cell, _ := excelize.CoordinatesToCellName(c+2, r)
			if err := f.SetCellValue(sheet, cell, expRow[normCol(col)]); err != nil {
				return fmt.Errorf("set value cell: %w", err)
			}
		}
		r++
	}
	return nil
}

func writeDiffSheet(f *excelize.File, diffs []Diff) error {
	const sheet = "Diff"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %q: %w", sheet, err)
	}

	header := []string{"File", "Field", "Extracted", "Expected", "Match", "Reason"}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %q: %w", h, err)
		}
	}

	for r, d := range diffs {
		values := []any{d.File, d.Field, d.Extracted, d.Expected, d.Match, d.Reason}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set diff cell: %w", err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 36)
	_ = f.SetColWidth(sheet, "B", "D", 26)

	return nil
}

func nonKeyColumns(expected *ExpectedTable) []string {
	var cols []string
	keyNorm := normCol(expected.KeyColumn)
	for _, col := range expected.Columns {
		if normCol(col) != keyNorm {
			cols = append(cols, col)
		}
	}
	return cols
}
