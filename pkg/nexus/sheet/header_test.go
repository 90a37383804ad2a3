package sheet

import (
	"testing"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

func TestDetectHeader(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		wantOK  bool
		wantRow int
		wantCol map[string]int
	}{
		{
			name:    "canonical",
			rows:    [][]string{{"Name", "Time", "Category", "Feedback"}},
			wantOK:  true,
			wantRow: 1,
			wantCol: map[string]int{"Name": 1, "Time": 2, "Category": 3, "Feedback": 4},
		},
		{
			name:    "case and whitespace",
			rows:    [][]string{{" name ", "TIME", "category", "feedback"}},
			wantOK:  true,
			wantRow: 1,
			wantCol: map[string]int{"Name": 1, "Time": 2, "Category": 3, "Feedback": 4},
		},
		{
			name:    "title row above header",
			rows:    [][]string{{"Feedback log"}, {}, {"", "Feedback", "Category", "Time", "Name"}},
			wantOK:  true,
			wantRow: 3,
			wantCol: map[string]int{"Name": 5, "Time": 4, "Category": 3, "Feedback": 2},
		},
		{
			name:   "missing column",
			rows:   [][]string{{"Name", "Time", "Feedback"}},
			wantOK: false,
		},
		{
			name:   "empty",
			rows:   nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		h, ok := DetectHeader(tt.rows, models.Header)
		if ok != tt.wantOK {
			t.Errorf("%s: DetectHeader ok = %v, expected %v", tt.name, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if h.Row != tt.wantRow {
			t.Errorf("%s: header row = %d, expected %d", tt.name, h.Row, tt.wantRow)
		}
		for col, idx := range tt.wantCol {
			if h.Columns[col] != idx {
				t.Errorf("%s: column %s = %d, expected %d", tt.name, col, h.Columns[col], idx)
			}
		}
	}
}

func TestLastDataRow(t *testing.T) {
	tests := []struct {
		rows     [][]string
		expected int
	}{
		{nil, 0},
		{[][]string{{}}, 0},
		{[][]string{{"a"}}, 1},
		{[][]string{{"a"}, {}, {"b"}}, 3},
		{[][]string{{"a"}, {"", " "}, {}}, 1},
	}

	for _, tt := range tests {
		result := LastDataRow(tt.rows)
		if result != tt.expected {
			t.Errorf("LastDataRow(%v) = %d, expected %d", tt.rows, result, tt.expected)
		}
	}
}
