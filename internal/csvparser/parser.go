// =============================================================================
// GEMINI Metadata Import - CSV Parser Module
// =============================================================================
//
// This module reads the metadata spreadsheet export. The file is expected in
// the "excel" dialect: comma separated, double-quote quoting, exactly one
// header row followed by data rows.
//
// Columns are positional. The header row is kept for reporting only and is
// never used to look fields up.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
)

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table is a fully materialized input file.
type Table struct {
	// Header is the first row of the file.
	Header []string

	// Rows contains the data rows (header excluded) in file order.
	// Rows may have differing lengths; the row parser rejects short ones.
	Rows [][]string

	// SourceFile is the path the table was read from.
	SourceFile string
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//
// RETURNS:
//   - A pointer to the Table.
//   - An error if the file cannot be read, is not valid CSV or is empty.
func Parse(filePath string) (*Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	csvReader := csv.NewReader(bufio.NewReader(file))
	configureReader(csvReader)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	table, err := FromRows(allRows)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath

	return table, nil
}

// FromRows splits raw records into header and data rows.
func FromRows(allRows [][]string) (*Table, error) {
	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	rows := make([][]string, 0, len(allRows)-1)
	for _, row := range allRows[1:] {
		if isRowEmpty(row) {
			continue
		}
		rows = append(rows, row)
	}

	return &Table{
		Header: allRows[0],
		Rows:   rows,
	}, nil
}

// configureReader sets up the excel dialect.
func configureReader(reader *csv.Reader) {
	reader.Comma = ','

	// Rows of the wrong width are reported per row, not for the whole file.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
