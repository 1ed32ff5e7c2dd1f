package types

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedColumns() []string {
	cols := make([]string, ColumnCount)
	for i := range cols {
		cols[i] = "c" + strconv.Itoa(i)
	}
	return cols
}

func TestParseRow(t *testing.T) {
	row, err := ParseRow(4, numberedColumns())
	require.NoError(t, err)

	assert.Equal(t, 4, row.RowNumber)
	assert.Equal(t, "c0", row.Title)
	assert.Equal(t, "c2", row.CreationDate)
	assert.Equal(t, "c14", row.TopicCategories)
	assert.Equal(t, "c15", row.West)
	assert.Equal(t, "c18", row.South)
	assert.Equal(t, "c22", row.DataVersions)
	assert.Equal(t, "c29", row.Denominator)
}

func TestParseRow_TooFewColumns(t *testing.T) {
	_, err := ParseRow(1, numberedColumns()[:12])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooFewColumns)
}

func TestParseRow_ExtraColumnsIgnored(t *testing.T) {
	cols := append(numberedColumns(), "extra")
	row, err := ParseRow(1, cols)
	require.NoError(t, err)
	assert.Equal(t, "c29", row.Denominator)
}

func TestColumnsTableIsComplete(t *testing.T) {
	require.Len(t, Columns, ColumnCount)

	row, err := ParseRow(1, numberedColumns())
	require.NoError(t, err)

	for i, col := range Columns {
		assert.Equal(t, i, col.Index)
		assert.Equal(t, "c"+strconv.Itoa(i), col.Value(row), col.Name)
	}
}

func TestTitleOf(t *testing.T) {
	assert.Equal(t, "", TitleOf(nil))
	assert.Equal(t, "Rivers", TitleOf([]string{"Rivers", "x"}))
}

func TestMustColumn(t *testing.T) {
	assert.Equal(t, 15, MustColumn("west").Index)
	assert.Panics(t, func() { MustColumn("nope") })
}
