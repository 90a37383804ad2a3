package nexus

import (
	"fmt"
	"strings"
	"time"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

// NewEntry builds a feedback entry stamped with now.
func NewEntry(name string, category models.Category, text string, now time.Time) models.FeedbackEntry {
	return models.FeedbackEntry{
		Name:     strings.TrimSpace(name),
		Time:     now.Format(models.TimeLayout),
		Category: category,
		Text:     strings.TrimSpace(text),
	}
}

// ValidateEntry checks the fields a submission must carry. The store accepts
// any entry; callers run this at the form or command-line boundary.
func ValidateEntry(e models.FeedbackEntry) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(e.Text) == "" {
		return fmt.Errorf("%w: feedback text is required", ErrValidation)
	}
	if e.Category != "" && !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, e.Category)
	}
	return nil
}
