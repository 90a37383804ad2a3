package nexus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/phronesis/nexus-go/pkg/nexus/models"
	"github.com/phronesis/nexus-go/pkg/nexus/sheet"
	"github.com/xuri/excelize/v2"
)

// Reads take no lock: writers replace the workbook by rename, so a reader
// always sees a complete file.

// ReadWorkbook extracts every sheet of the workbook at path. Feedback sheets
// are returned as entries, any other sheet as raw rows.
func (s *Store) ReadWorkbook(ctx context.Context, path string) (*models.WorkbookData, error) {
	f, err := s.openForRead(ctx, path, "")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	order := f.GetSheetList()
	sheets := make(map[string]models.SheetData, len(order))
	for _, name := range order {
		entries, ok, err := sheet.ReadEntries(f, name)
		if err != nil {
			return nil, NewStoreError(OpRead, path, name, ErrCorruptWorkbook, err)
		}
		if ok {
			sheets[name] = models.SheetData{Kind: models.SheetKindFeedback, Entries: entries}
			continue
		}

		rows, err := sheet.ReadRows(f, name)
		if err != nil {
			return nil, NewStoreError(OpRead, path, name, ErrCorruptWorkbook, err)
		}
		sheets[name] = models.SheetData{Kind: models.SheetKindRows, Rows: rows}
	}

	return &models.WorkbookData{
		BookName:   filepath.Base(path),
		SheetOrder: order,
		Sheets:     sheets,
	}, nil
}

// ReadSheet returns the feedback entries of one sheet in submission order.
// The sheet name goes through SanitizeSheetName, so tool names can be passed
// as-is.
func (s *Store) ReadSheet(ctx context.Context, path, sheetName string) ([]models.FeedbackEntry, error) {
	name, err := SanitizeSheetName(sheetName)
	if err != nil {
		return nil, NewStoreError(OpRead, path, sheetName, ErrValidation, err)
	}

	f, err := s.openForRead(ctx, path, name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	existing, ok := findSheet(f, name)
	if !ok {
		return nil, NewStoreError(OpRead, path, name, ErrSheetNotFound, fmt.Errorf("no sheet named %q", name))
	}

	entries, _, err := sheet.ReadEntries(f, existing)
	if err != nil {
		return nil, NewStoreError(OpRead, path, existing, ErrCorruptWorkbook, err)
	}
	return entries, nil
}

// Sheets lists the sheet names of the workbook at path in workbook order.
func (s *Store) Sheets(ctx context.Context, path string) ([]string, error) {
	f, err := s.openForRead(ctx, path, "")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func (s *Store) openForRead(ctx context.Context, path, sheetName string) (*excelize.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewStoreError(OpRead, path, sheetName, ErrUnknownIO, err)
	}

	f, _, err := openWorkbook(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, NewStoreError(OpRead, path, sheetName, ErrWorkbookNotFound, err)
	}
	if err != nil {
		return nil, NewStoreError(OpRead, path, sheetName, kindOf(err), err)
	}
	s.logger.Debug("workbook opened for read", "path", path)
	return f, nil
}
