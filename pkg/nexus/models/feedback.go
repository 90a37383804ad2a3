// Package models defines data structures for the tool catalog and feedback workbooks.
package models

import "strings"

// TimeLayout is the timestamp format written to the Time column.
const TimeLayout = "2006-01-02 15:04:05"

// Column names of a feedback sheet, in header order.
const (
	ColumnName     = "Name"
	ColumnTime     = "Time"
	ColumnCategory = "Category"
	ColumnFeedback = "Feedback"
)

// Header is the fixed header row of every feedback sheet.
var Header = []string{ColumnName, ColumnTime, ColumnCategory, ColumnFeedback}

// Category classifies a feedback entry.
type Category string

const (
	// CategoryStatusInactive reports a tool that is down or unreachable.
	CategoryStatusInactive Category = "STATUS_INACTIVE"
	// CategoryUrgentFix reports a defect that blocks work.
	CategoryUrgentFix Category = "URGENT_FIX"
	// CategoryFeatureRequest asks for new functionality.
	CategoryFeatureRequest Category = "FEATURE_REQUEST"
	// CategoryGeneral is anything else.
	CategoryGeneral Category = "GENERAL"
)

var categoryLabels = map[Category]string{
	CategoryStatusInactive: "Status Inactive",
	CategoryUrgentFix:      "Urgent Fix",
	CategoryFeatureRequest: "New features request",
	CategoryGeneral:        "General feedback",
}

// Categories returns every category in the order the feedback form offers them.
func Categories() []Category {
	return []Category{
		CategoryStatusInactive,
		CategoryUrgentFix,
		CategoryFeatureRequest,
		CategoryGeneral,
	}
}

// Label returns the human-readable name shown in the form.
// Unknown categories are returned verbatim.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory accepts either a category code ("URGENT_FIX") or its label
// ("Urgent Fix"), case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, true
		}
	}
	return "", false
}

// FeedbackEntry is one feedback submission, persisted as one sheet row.
type FeedbackEntry struct {
	// Name is the submitter.
	Name string `json:"name"`
	// Time is the submission timestamp formatted with TimeLayout.
	Time string `json:"time"`
	// Category is the feedback category code.
	Category Category `json:"category"`
	// Text is the free-text feedback.
	Text string `json:"text"`
}

// Values returns the entry's cell values keyed by column name.
func (e FeedbackEntry) Values() map[string]string {
	return map[string]string{
		ColumnName:     e.Name,
		ColumnTime:     e.Time,
		ColumnCategory: string(e.Category),
		ColumnFeedback: e.Text,
	}
}
