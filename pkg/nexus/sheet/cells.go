package sheet

import (
	"github.com/phronesis/nexus-go/pkg/nexus/models"
	"github.com/xuri/excelize/v2"
)

// ReadEntries reads the feedback rows of a sheet in row order.
// The boolean result is false when the sheet has no feedback header; callers
// then fall back to the raw rows.
func ReadEntries(f *excelize.File, sheetName string) ([]models.FeedbackEntry, bool, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, false, err
	}

	h, ok := DetectHeader(rows, models.Header)
	if !ok {
		return nil, false, nil
	}
	return entriesBelow(rows, h), true, nil
}

// entriesBelow converts every non-blank row under the header into an entry.
func entriesBelow(rows [][]string, h Header) []models.FeedbackEntry {
	last := LastDataRow(rows)
	var result []models.FeedbackEntry
	for rowNum := h.Row + 1; rowNum <= last; rowNum++ {
		row := rows[rowNum-1]
		if isBlank(row) {
			continue
		}
		result = append(result, models.FeedbackEntry{
			Name:     cell(row, h.Columns[models.ColumnName]),
			Time:     cell(row, h.Columns[models.ColumnTime]),
			Category: models.Category(cell(row, h.Columns[models.ColumnCategory])),
			Text:     cell(row, h.Columns[models.ColumnFeedback]),
		})
	}
	return result
}

// ReadRows returns the raw cell values of a sheet with trailing blank rows removed.
func ReadRows(f *excelize.File, sheetName string) ([][]string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return rows[:LastDataRow(rows)], nil
}
