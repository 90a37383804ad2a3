package nexus

import (
	"testing"
	"time"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
	"github.com/stretchr/testify/assert"
)

func TestNewEntry(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	e := NewEntry("  Alice ", models.CategoryUrgentFix, " broken \n", now)

	assert.Equal(t, models.FeedbackEntry{
		Name:     "Alice",
		Time:     "2025-01-01 10:00:00",
		Category: models.CategoryUrgentFix,
		Text:     "broken",
	}, e)
}

func TestValidateEntry(t *testing.T) {
	ok := models.FeedbackEntry{Name: "Alice", Text: "hi", Category: models.CategoryGeneral}
	assert.NoError(t, ValidateEntry(ok))

	noName := ok
	noName.Name = " "
	assert.ErrorIs(t, ValidateEntry(noName), ErrValidation)

	noText := ok
	noText.Text = ""
	assert.ErrorIs(t, ValidateEntry(noText), ErrValidation)

	badCategory := ok
	badCategory.Category = "WHATEVER"
	assert.ErrorIs(t, ValidateEntry(badCategory), ErrValidation)
}
