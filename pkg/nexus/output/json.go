// Package output serializes workbook snapshots for the command line.
package output

import (
	"encoding/json"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

// ToJSON serializes a workbook snapshot.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes a single sheet.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// EntriesToJSON serializes feedback entries. A nil slice is written as [].
func EntriesToJSON(entries []models.FeedbackEntry, pretty bool) ([]byte, error) {
	if entries == nil {
		entries = []models.FeedbackEntry{}
	}
	return marshal(entries, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
