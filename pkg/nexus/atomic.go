package nexus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// TempFilePrefix names the scratch workbook written next to the target
// before it replaces it.
const TempFilePrefix = ".nexus-tmp-"

// writeWorkbookAtomic replaces filename with the serialized workbook f.
// The scratch file lives in the target's directory so the final rename never
// crosses filesystems; if any step fails the scratch file is discarded and
// filename keeps its previous content.
func writeWorkbookAtomic(f *excelize.File, filename string, perm os.FileMode) error {
	scratch, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*.xlsx")
	if err != nil {
		return fmt.Errorf("staging workbook: %w", err)
	}
	name := scratch.Name()

	committed := false
	defer func() {
		if !committed {
			scratch.Close()
			os.Remove(name)
		}
	}()

	if _, err := f.WriteTo(scratch); err != nil {
		return fmt.Errorf("serializing workbook: %w", err)
	}
	if err := scratch.Sync(); err != nil {
		return fmt.Errorf("flushing staged workbook: %w", err)
	}
	if err := scratch.Close(); err != nil {
		return fmt.Errorf("closing staged workbook: %w", err)
	}
	if err := os.Chmod(name, perm); err != nil {
		return fmt.Errorf("setting workbook mode %v: %w", perm, err)
	}
	if err := os.Rename(name, filename); err != nil {
		return fmt.Errorf("replacing %s: %w", filename, err)
	}

	committed = true
	return nil
}
