// =============================================================================
// GEMINI Metadata Import - XLSX Input Parser
// =============================================================================
//
// Metadata spreadsheets are usually authored in Excel and exported to CSV.
// This module lets the importer read the workbook directly instead. The sheet
// must use the same layout as the CSV export:
//
//   | Row 1   | header row (ignored except for reporting) |
//   | Row 2.. | one dataset per row, 30 positional columns |
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/gemini-metadata-import/internal/csvparser"
	"github.com/xuri/excelize/v2"
)

// IsWorkbook reports whether path names an Excel workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads one worksheet of an XLSX workbook.
//
// PARAMETERS:
//   - path: The path to the workbook.
//   - sheet: The worksheet name. Empty selects the first sheet.
//
// RETURNS:
//   - The sheet as a csvparser.Table, rows padded to the header width.
//   - An error if the workbook or sheet cannot be read, or the sheet is empty.
func Parse(path, sheet string) (*csvparser.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	// excelize drops trailing empty cells, so blank optional columns at the
	// end of a row would otherwise make it look short.
	if len(rows) > 0 {
		width := len(rows[0])
		for i, row := range rows {
			rows[i] = padRow(row, width)
		}
	}

	table, err := csvparser.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	table.SourceFile = path

	return table, nil
}

// padRow extends row with empty cells up to width.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
