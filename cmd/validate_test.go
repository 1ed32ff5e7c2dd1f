package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runValidateIn(t *testing.T, ws *workspace, strict bool) (string, error) {
	t.Helper()
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	err := runValidate(cmd, ws.configPath, strict)
	return out.String(), err
}

func TestValidate_Clean(t *testing.T) {
	ws := newWorkspace(t, tenRows())

	out, err := runValidateIn(t, ws, false)
	require.NoError(t, err)
	assert.Contains(t, out, "No validation errors.")
	assert.Contains(t, out, "Checked 10 row(s)")

	// Nothing written, nothing cleaned.
	assert.FileExists(t, ws.outputDir+"/stale.xml")
}

func TestValidate_Errors(t *testing.T) {
	rows := tenRows()[:3]
	rows[0] = rows[0][:12]
	rows[1][15] = "far west"
	ws := newWorkspace(t, rows)

	out, err := runValidateIn(t, ws, false)
	require.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out, "2 finding(s)")
	assert.Contains(t, out, "row has too few columns")
	assert.Contains(t, out, "bounding_box")
}

func TestValidate_StrictWarnings(t *testing.T) {
	rows := tenRows()[:1]
	rows[0][29] = "1:10000"
	ws := newWorkspace(t, rows)

	_, err := runValidateIn(t, ws, false)
	require.NoError(t, err)

	_, err = runValidateIn(t, ws, true)
	require.ErrorIs(t, err, errValidationFailed)
}
