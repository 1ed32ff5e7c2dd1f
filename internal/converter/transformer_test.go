package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{"25/12/2020", "2020-12-25", nil},
		{"1/2/2019", "2019-02-01", nil},
		{" 05/06/2018 ", "2018-06-05", nil},
		{"2020-12-25", "2020-12-25", nil},
		{"2020-12", "2020-12", nil},
		{"", "", nil},
		{"   ", "", nil},
		{"Dec 2020", "", ErrUnrecognizedDate},
		{"20201225", "", ErrUnrecognizedDate},
		{"31/02/2020", "", ErrMalformedDate},
		{"12/25/2020", "", ErrMalformedDate},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitRange(t *testing.T) {
	begin, end, err := SplitRange("01/01/2000, 31/12/2020")
	require.NoError(t, err)
	assert.Equal(t, "01/01/2000", begin)
	assert.Equal(t, "31/12/2020", end)

	begin, end, err = SplitRange("2000-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01", begin)
	assert.Empty(t, end)

	begin, end, err = SplitRange("")
	require.NoError(t, err)
	assert.Empty(t, begin)
	assert.Empty(t, end)

	begin, end, err = SplitRange("01/01/2000,02/02/2000,03/03/2000")
	assert.ErrorIs(t, err, ErrRangeTooLong)
	assert.Equal(t, "01/01/2000", begin)
	assert.Empty(t, end)
}

func TestMarkCopyright(t *testing.T) {
	assert.Equal(t, "(c) Copyright Example Corp", MarkCopyright("Copyright Example Corp"))
	assert.Equal(t, "(c) copyright 2020", MarkCopyright("copyright 2020"))
	assert.Equal(t, "(c) COPYRIGHT", MarkCopyright("COPYRIGHT"))
	assert.Equal(t, "No reuse", MarkCopyright("No reuse"))
	assert.Equal(t, "Crown copyright", MarkCopyright("Crown copyright"))
}
