package sheet

import (
	"fmt"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
	"github.com/xuri/excelize/v2"
)

// headerColumnWidth is applied to every feedback column on new sheets,
// except the free-text column which gets feedbackColumnWidth.
const (
	headerColumnWidth   = 20
	feedbackColumnWidth = 60
)

// WriteHeader writes models.Header into row 1 and returns its layout.
func WriteHeader(f *excelize.File, sheetName string) (Header, error) {
	h := DefaultHeader()
	for _, name := range models.Header {
		if err := setCell(f, sheetName, h.Columns[name], h.Row, name); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}

// StyleHeader bolds the header row and widens the feedback columns.
func StyleHeader(f *excelize.File, sheetName string, h Header) error {
	if h.Row == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	for name, col := range h.Columns {
		cellName, err := excelize.CoordinatesToCellName(col, h.Row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cellName, cellName, style); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		width := float64(headerColumnWidth)
		if name == models.ColumnFeedback {
			width = feedbackColumnWidth
		}
		if err := f.SetColWidth(sheetName, colName, colName, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", colName, err)
		}
	}
	return nil
}

// AppendEntry writes e on the first row after the sheet's existing data and
// returns that 1-based row number. Each value goes under its header column.
func AppendEntry(f *excelize.File, sheetName string, h Header, e models.FeedbackEntry) (int, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, err
	}
	rowNum := max(LastDataRow(rows), h.Row) + 1

	for name, value := range e.Values() {
		col, ok := h.Columns[name]
		if !ok {
			return 0, fmt.Errorf("sheet %q has no %q column", sheetName, name)
		}
		if err := setCell(f, sheetName, col, rowNum, value); err != nil {
			return 0, err
		}
	}
	return rowNum, nil
}

// PrepareAppend returns the header of an existing sheet, writing one first
// when the sheet is empty. Sheets with data but no recognizable header are
// appended to positionally in models.Header order.
func PrepareAppend(f *excelize.File, sheetName string) (Header, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return Header{}, err
	}
	if h, ok := DetectHeader(rows, models.Header); ok {
		return h, nil
	}
	if LastDataRow(rows) == 0 {
		return WriteHeader(f, sheetName)
	}
	return positionalHeader(), nil
}

// setCell stores value as a string cell so numeric-looking text keeps its form.
func setCell(f *excelize.File, sheetName string, col, row int, value string) error {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellStr(sheetName, cellName, value)
}
