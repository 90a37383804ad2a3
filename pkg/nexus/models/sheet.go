package models

// SheetKind tells feedback sheets apart from any other sheet in a workbook.
type SheetKind string

const (
	// SheetKindFeedback marks a sheet carrying the feedback header.
	SheetKindFeedback SheetKind = "feedback"
	// SheetKindRows marks a sheet exported as raw cell values.
	SheetKindRows SheetKind = "rows"
)

// SheetData represents the contents of a single sheet.
type SheetData struct {
	// Kind says which of Entries or Rows holds the sheet's content.
	Kind SheetKind `json:"kind"`
	// Entries contains feedback rows in submission order.
	// Set only for feedback sheets; empty when the sheet has just a header.
	Entries []FeedbackEntry `json:"entries,omitempty"`
	// Rows contains the raw cell values of sheets without the feedback header.
	Rows [][]string `json:"rows,omitempty"`
}
