package output

import (
	"strings"
	"testing"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

func TestToJSON(t *testing.T) {
	wb := &models.WorkbookData{
		BookName:   "feedback.xlsx",
		SheetOrder: []string{"UID Generator", "Notes"},
		Sheets: map[string]models.SheetData{
			"UID Generator": {Kind: models.SheetKindFeedback, Entries: []models.FeedbackEntry{{
				Name:     "Alice",
				Time:     "2025-01-01 10:00:00",
				Category: models.CategoryGeneral,
				Text:     "Great tool",
			}}},
			"Notes":            {Kind: models.SheetKindRows, Rows: [][]string{{"Owner"}}},
			"Database Updater": {Kind: models.SheetKindFeedback},
			"Blank":            {Kind: models.SheetKindRows},
		},
	}

	data, err := ToJSON(wb, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	got := string(data)
	for _, want := range []string{
		`"book_name":"feedback.xlsx"`,
		`"sheet_order":["UID Generator","Notes"]`,
		`"UID Generator":{"kind":"feedback","entries":[{"name":"Alice","time":"2025-01-01 10:00:00","category":"GENERAL","text":"Great tool"}]`,
		`"Notes":{"kind":"rows","rows":[["Owner"]]}`,
		`"Database Updater":{"kind":"feedback"}`,
		`"Blank":{"kind":"rows"}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %s in %s", want, got)
		}
	}
}

func TestEntriesToJSON(t *testing.T) {
	data, err := EntriesToJSON(nil, false)
	if err != nil {
		t.Fatalf("EntriesToJSON failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected [], got %s", data)
	}

	pretty, err := EntriesToJSON([]models.FeedbackEntry{{Name: "Bob"}}, true)
	if err != nil {
		t.Fatalf("EntriesToJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  {\n    \"name\": \"Bob\"") {
		t.Errorf("Expected indented output, got %s", pretty)
	}
}
