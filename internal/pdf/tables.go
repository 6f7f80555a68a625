package pdf

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// Table cell boundaries are inferred from horizontal whitespace: a gap of
// at least cellGapPoints between adjacent text fragments starts a new cell,
// while smaller gaps are ordinary word spacing within a cell.
const (
	cellGapPoints = 18.0
	wordGapPoints = 1.5
	maxHintLabel  = 80
	maxHintValue  = 400
)

// harvestRowHints scans positioned rows for table-shaped label/value pairs
// and merges them into hints. A row qualifies when it splits into two or
// more cells; the first cell is the label and the last non-empty cell is
// the value. Duplicate labels are last-write-wins, so later pages override
// earlier ones.
func harvestRowHints(rows pdf.Rows, hints map[string]string) {
	for _, row := range rows {
		if row == nil {
			continue
		}
		cells := splitRowCells(row.Content)
		if len(cells) < 2 {
			continue
		}

		label := strings.TrimSpace(cells[0])
		value := ""
		for i := len(cells) - 1; i >= 1; i-- {
			if v := strings.TrimSpace(cells[i]); v != "" {
				value = v
				break
			}
		}

		if label == "" || value == "" || label == value {
			continue
		}
		if len(label) > maxHintLabel || len(value) > maxHintValue {
			continue
		}
		hints[label] = value
	}
}

// splitRowCells groups a row's left-to-right text fragments into cells by
// horizontal gap. Fragments within a cell are joined with a space when the
// layout shows word spacing, directly otherwise.
func splitRowCells(words pdf.TextHorizontal) []string {
	if len(words) == 0 {
		return nil
	}

	var cells []string
	var cell strings.Builder
	lastEnd := words[0].X

	for i, w := range words {
		if w.S == "" {
			continue
		}
		gap := w.X - lastEnd
		switch {
		case i > 0 && gap > cellGapPoints:
			cells = append(cells, cell.String())
			cell.Reset()
		case i > 0 && gap > wordGapPoints && cell.Len() > 0:
			cell.WriteString(" ")
		}
		cell.WriteString(w.S)
		lastEnd = w.X + w.W
	}
	if cell.Len() > 0 {
		cells = append(cells, cell.String())
	}
	return cells
}
