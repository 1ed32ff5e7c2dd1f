package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "metadata.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParse_FirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"title", "alt", "denominator"},
		{"Rivers", "Riv", "10000"},
		{"Lakes"},
	})

	table, err := Parse(path, "")
	require.NoError(t, err)

	assert.Equal(t, path, table.SourceFile)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, []string{"Rivers", "Riv", "10000"}, table.Rows[0])
	assert.Equal(t, []string{"Lakes", "", ""}, table.Rows[1])
}

func TestParse_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Datasets", [][]interface{}{
		{"title"},
		{"Woodland"},
	})

	table, err := Parse(path, "Datasets")
	require.NoError(t, err)
	require.Equal(t, 1, table.RowCount())
	assert.Equal(t, "Woodland", table.Rows[0][0])

	_, err = Parse(path, "Missing")
	require.Error(t, err)
}

func TestIsWorkbook(t *testing.T) {
	assert.True(t, IsWorkbook("a/metadata.XLSX"))
	assert.True(t, IsWorkbook("metadata.xlsm"))
	assert.False(t, IsWorkbook("metadata.csv"))
}
