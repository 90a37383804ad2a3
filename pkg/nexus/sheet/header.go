// Package sheet reads and writes feedback rows on excelize worksheets.
package sheet

import (
	"strings"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

// Header locates the feedback columns inside a sheet.
type Header struct {
	// Row is the 1-based index of the header row, or 0 for a header-less sheet
	// whose values are laid out positionally.
	Row int
	// Columns maps column name to its 1-based column index.
	Columns map[string]int
}

// DefaultHeader returns the layout written to new sheets: models.Header in
// columns A through D on row 1.
func DefaultHeader() Header {
	h := Header{Row: 1, Columns: make(map[string]int, len(models.Header))}
	for i, name := range models.Header {
		h.Columns[name] = i + 1
	}
	return h
}

// positionalHeader is DefaultHeader without a header row.
func positionalHeader() Header {
	h := DefaultHeader()
	h.Row = 0
	return h
}

// DetectHeader finds the first row that contains every column in want.
// Matching ignores case and surrounding whitespace; the column order may differ
// from want.
func DetectHeader(rows [][]string, want []string) (Header, bool) {
	for rowIdx, row := range rows {
		cols := make(map[string]int, len(want))
		for colIdx, cell := range row {
			cell = strings.TrimSpace(cell)
			for _, name := range want {
				if _, seen := cols[name]; !seen && strings.EqualFold(cell, name) {
					cols[name] = colIdx + 1
				}
			}
		}
		if len(cols) == len(want) {
			return Header{Row: rowIdx + 1, Columns: cols}, true
		}
	}
	return Header{}, false
}

// LastDataRow returns the 1-based index of the last row holding a non-blank
// cell, or 0 for an empty sheet.
func LastDataRow(rows [][]string) int {
	for rowIdx := len(rows) - 1; rowIdx >= 0; rowIdx-- {
		if !isBlank(rows[rowIdx]) {
			return rowIdx + 1
		}
	}
	return 0
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// cell returns the value at a 1-based column, or "" past the end of the row.
func cell(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return row[col-1]
}
