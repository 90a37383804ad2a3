package nexus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
	"github.com/phronesis/nexus-go/pkg/nexus/sheet"
	"github.com/xuri/excelize/v2"
)

// Plan is the write action chosen for a submission before anything is written.
type Plan int

const (
	// PlanNewWorkbook creates the workbook with the target sheet as its only sheet.
	PlanNewWorkbook Plan = iota
	// PlanNewSheet adds the target sheet to an existing workbook.
	PlanNewSheet
	// PlanAppendSheet appends a row to an existing sheet.
	PlanAppendSheet
)

func (p Plan) String() string {
	switch p {
	case PlanNewWorkbook:
		return "new-workbook"
	case PlanNewSheet:
		return "new-sheet"
	case PlanAppendSheet:
		return "append-sheet"
	}
	return fmt.Sprintf("plan(%d)", int(p))
}

// Store appends feedback entries to per-tool sheets of xlsx workbooks.
// It holds no workbook state between calls; every Submit re-reads the file.
type Store struct {
	opts   Options
	logger *slog.Logger
	locks  *pathLocks
}

// NewStore creates a Store. Zero option fields take their defaults.
func NewStore(opts Options) *Store {
	opts = opts.withDefaults()
	return &Store{
		opts:   opts,
		logger: opts.Logger.With("component", "feedback-store"),
		locks:  newPathLocks(),
	}
}

// target is a workbook opened for one submission together with its plan.
type target struct {
	file  *excelize.File
	plan  Plan
	sheet string
	mode  os.FileMode
}

// Submit appends entry as the last row of sheetName in the workbook at path,
// creating the workbook or the sheet as needed. Every other sheet is written
// back unchanged. The file on disk is replaced atomically or not at all.
func (s *Store) Submit(ctx context.Context, path, sheetName string, entry models.FeedbackEntry) error {
	name, err := SanitizeSheetName(sheetName)
	if err != nil {
		return NewStoreError(OpSubmit, path, sheetName, ErrValidation, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewStoreError(OpSubmit, path, name, classify(err), err)
	}

	unlock, err := s.lock(ctx, path)
	if err != nil {
		return NewStoreError(OpSubmit, path, name, classify(err), err)
	}
	defer unlock()

	t, err := s.open(path, name)
	if err != nil {
		return NewStoreError(OpSubmit, path, name, kindOf(err), err)
	}
	defer t.file.Close()

	row, err := s.apply(t, entry)
	if err != nil {
		return NewStoreError(OpSubmit, path, t.sheet, ErrUnknownIO, err)
	}

	if err := writeWorkbookAtomic(t.file, path, t.mode); err != nil {
		return NewStoreError(OpSubmit, path, t.sheet, classify(err), err)
	}

	s.logger.Info("feedback stored",
		"path", path,
		"sheet", t.sheet,
		"plan", t.plan.String(),
		"row", row,
	)
	return nil
}

// open loads the workbook at path and decides the plan for sheetName.
func (s *Store) open(path, sheetName string) (*target, error) {
	f, mode, err := openWorkbook(path)
	if errors.Is(err, fs.ErrNotExist) {
		return newWorkbookTarget(sheetName, s.opts.FileMode)
	}
	if err != nil {
		return nil, err
	}
	if err := checkWritable(path); err != nil {
		f.Close()
		return nil, err
	}

	if existing, ok := findSheet(f, sheetName); ok {
		return &target{file: f, plan: PlanAppendSheet, sheet: existing, mode: mode}, nil
	}
	return &target{file: f, plan: PlanNewSheet, sheet: sheetName, mode: mode}, nil
}

func newWorkbookTarget(sheetName string, mode os.FileMode) (*target, error) {
	f := excelize.NewFile()
	if def := f.GetSheetName(0); def != sheetName {
		if err := f.SetSheetName(def, sheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("naming sheet: %w", err)
		}
	}
	return &target{file: f, plan: PlanNewWorkbook, sheet: sheetName, mode: mode}, nil
}

// apply carries out t.plan in memory and returns the row the entry landed on.
func (s *Store) apply(t *target, entry models.FeedbackEntry) (int, error) {
	var (
		h   sheet.Header
		err error
	)

	switch t.plan {
	case PlanNewSheet:
		if _, err := t.file.NewSheet(t.sheet); err != nil {
			return 0, fmt.Errorf("adding sheet: %w", err)
		}
		fallthrough
	case PlanNewWorkbook:
		if h, err = sheet.WriteHeader(t.file, t.sheet); err != nil {
			return 0, fmt.Errorf("writing header: %w", err)
		}
		if s.opts.ShouldStyleHeader() {
			if err := sheet.StyleHeader(t.file, t.sheet, h); err != nil {
				return 0, err
			}
		}
	case PlanAppendSheet:
		if h, err = sheet.PrepareAppend(t.file, t.sheet); err != nil {
			return 0, fmt.Errorf("reading sheet: %w", err)
		}
	}

	row, err := sheet.AppendEntry(t.file, t.sheet, h, entry)
	if err != nil {
		return 0, fmt.Errorf("appending row: %w", err)
	}
	return row, nil
}

// corruptError marks a file that exists but does not parse as a workbook.
type corruptError struct {
	err error
}

func (e *corruptError) Error() string { return e.err.Error() }
func (e *corruptError) Unwrap() error { return e.err }

// openWorkbook opens path and returns the parsed workbook and its permission
// bits. A missing file yields an error matching fs.ErrNotExist.
func openWorkbook(path string) (*excelize.File, os.FileMode, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, err
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("%s is a directory", path)
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, 0, &corruptError{err: err}
	}
	return f, info.Mode().Perm(), nil
}

// checkWritable fails when this process may not write path itself. The
// rename in writeWorkbookAtomic only needs a writable directory, so a
// read-only workbook would otherwise be replaced.
func checkWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

// kindOf classifies errors returned by openWorkbook.
func kindOf(err error) error {
	var ce *corruptError
	if errors.As(err, &ce) {
		return ErrCorruptWorkbook
	}
	return classify(err)
}

// findSheet looks a sheet up the way spreadsheet applications do, ignoring case.
func findSheet(f *excelize.File, name string) (string, bool) {
	for _, existing := range f.GetSheetList() {
		if strings.EqualFold(existing, name) {
			return existing, true
		}
	}
	return "", false
}
