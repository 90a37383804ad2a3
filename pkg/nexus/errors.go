package nexus

import (
	"errors"
	"fmt"
)

// ErrPermission indicates the workbook is locked by another writer or the
// process may not write it.
var ErrPermission = errors.New("workbook is locked or not writable")

// ErrCorruptWorkbook indicates the existing file is not a valid xlsx workbook.
var ErrCorruptWorkbook = errors.New("invalid xlsx workbook")

// ErrValidation indicates a required field is missing or unusable.
var ErrValidation = errors.New("validation failed")

// ErrUnknownIO covers every other failure reading or writing the workbook.
var ErrUnknownIO = errors.New("workbook i/o failure")

// ErrWorkbookNotFound indicates a read found no workbook at the path.
var ErrWorkbookNotFound = errors.New("workbook not found")

// ErrSheetNotFound indicates a read named a sheet the workbook does not have.
var ErrSheetNotFound = errors.New("sheet not found")

// Operation names recorded in StoreError.Op.
const (
	OpSubmit = "submit"
	OpRead   = "read"
)

// StoreError represents a failed store operation. Kind is one of the
// sentinel errors above; Err is the underlying cause.
type StoreError struct {
	Op    string
	Path  string
	Sheet string
	Kind  error
	Err   error
}

func (e *StoreError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("%s %s (sheet %q): %v: %v", e.Op, e.Path, e.Sheet, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, path, sheet string, kind, err error) *StoreError {
	return &StoreError{
		Op:    op,
		Path:  path,
		Sheet: sheet,
		Kind:  kind,
		Err:   err,
	}
}

// UserMessage renders err as the text shown to the person who submitted
// feedback.
func UserMessage(err error) string {
	path := "the feedback workbook"
	var se *StoreError
	if errors.As(err, &se) && se.Path != "" {
		path = se.Path
	}

	switch {
	case errors.Is(err, ErrValidation):
		return "Please fill in all fields."
	case errors.Is(err, ErrPermission):
		return fmt.Sprintf("Permission denied: Could not write to %s. Ensure the file is not open elsewhere and the application has write permissions.", path)
	case errors.Is(err, ErrCorruptWorkbook):
		return fmt.Sprintf("Could not save feedback: %s is not a valid workbook.", path)
	default:
		return fmt.Sprintf("An error occurred saving feedback: %v", err)
	}
}
