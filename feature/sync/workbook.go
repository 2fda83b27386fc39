package sync

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ErrWorkbookNotFound is returned when the workbook path does not resolve to
// an existing file. It is detected before any database access.
var ErrWorkbookNotFound = fmt.Errorf("workbook not found")

// headerRows is the number of title/header rows at the top of every sheet.
// Data rows start at headerRows+1.
const headerRows = 4

// Workbook wraps an open spreadsheet for tolerant, 1-indexed cell access.
type Workbook struct {
	file *excelize.File
	path string
}

// OpenWorkbook resolves and opens the workbook at path. A missing file
// yields ErrWorkbookNotFound.
func OpenWorkbook(path string) (*Workbook, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workbook path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, abs)
	}

	f, err := excelize.OpenFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", abs, err)
	}
	return &Workbook{file: f, path: abs}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Path returns the resolved absolute workbook path.
func (w *Workbook) Path() string {
	return w.path
}

// HasSheet reports whether the named sheet exists. Workbooks in an earlier
// lifecycle stage may not carry every sheet yet.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// LastRow returns the last populated row number of the sheet, 0 when empty.
func (w *Workbook) LastRow(name string) int {
	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0
	}
	return len(rows)
}

// Cell returns the raw stored value at (row, col), both 1-indexed. Formula
// cells yield their cached result; native dates yield their serial number.
// Errors degrade to the empty string, consistent with treating malformed
// cells as absent.
func (w *Workbook) Cell(sheet string, row, col int) string {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	value, err := w.file.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return ""
	}
	return value
}
