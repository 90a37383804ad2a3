package models

import "strings"

// Status is the availability of a catalog tool.
type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusComingSoon Status = "COMING_SOON"
)

// ParseStatus normalizes catalog spellings such as "active", "Coming Soon!" or
// "coming-soon" into a Status.
func ParseStatus(s string) (Status, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.TrimRight(norm, "!. ")
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	switch Status(norm) {
	case StatusActive, StatusInactive, StatusComingSoon:
		return Status(norm), true
	}
	return "", false
}

// Label returns the badge text for the status.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	case StatusComingSoon:
		return "Coming Soon"
	}
	return string(s)
}

// ToolRecord is one entry of the tool catalog rendered as a card.
type ToolRecord struct {
	// Name is unique within the catalog and names the tool's feedback sheet.
	Name string `json:"name"`
	// Description is shown on the card and as its tooltip.
	Description string `json:"description"`
	// Status drives the card badge.
	Status Status `json:"status"`
	// Version is free text ("2.0", "Beta").
	Version string `json:"version"`
	// Documentation is a markdown link to the tool's documentation.
	Documentation string `json:"documentation,omitempty"`
	// Feedback is a markdown link to an external feedback channel.
	Feedback string `json:"feedback,omitempty"`
	// Link is the URL the card opens.
	Link string `json:"link"`
	// Image is the icon reference, relative to the icons directory.
	Image string `json:"image,omitempty"`
}
