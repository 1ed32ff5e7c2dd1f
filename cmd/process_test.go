package cmd

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	dir        string
	configPath string
	outputDir  string
	logFile    string
	inputFile  string
}

func testRow(title string) []string {
	return []string{
		title, "ALT", "25/12/2020", "2021-01-15", "Abstract",
		"Jane Smith", "jane@example.org", "1 High Street", "Example Org", "Data Manager",
		"rivers, water", "No reuse", "OGL", "Copyright Example Corp",
		"inlandWaters",
		"-8.65", "1.77", "60.86", "49.86",
		"England", "01/01/2000, 31/12/2020",
		"Shapefile", "1.0",
		"HTTP", "https://example.org/data.zip",
		"dataset", "Digitised.", "annually",
		"Hydrography", "10000",
	}
}

func newWorkspace(t *testing.T, rows [][]string) *workspace {
	t.Helper()

	dir := t.TempDir()
	ws := &workspace{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yaml"),
		outputDir:  filepath.Join(dir, "output"),
		logFile:    filepath.Join(dir, "logs", "error.log"),
		inputFile:  filepath.Join(dir, "metadata.csv"),
	}

	f, err := os.Create(ws.inputFile)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	header := make([]string, 30)
	for i := range header {
		header[i] = fmt.Sprintf("col%d", i)
	}
	require.NoError(t, w.Write(header))
	require.NoError(t, w.WriteAll(rows))
	require.NoError(t, f.Close())

	cfg := fmt.Sprintf("input_file: %s\noutput_dir: %s\nlog_file: %s\n", ws.inputFile, ws.outputDir, ws.logFile)
	require.NoError(t, os.WriteFile(ws.configPath, []byte(cfg), 0644))

	require.NoError(t, os.MkdirAll(ws.outputDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.outputDir, ".gitignore"), []byte("*\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(ws.outputDir, "stale.xml"), []byte("<old/>"), 0644))

	return ws
}

func tenRows() [][]string {
	rows := make([][]string, 10)
	for i := range rows {
		rows[i] = testRow(fmt.Sprintf("Dataset %d", i+1))
	}
	return rows
}

func (ws *workspace) records(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(ws.outputDir, "*.xml"))
	require.NoError(t, err)
	return matches
}

func (ws *workspace) log(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(ws.logFile)
	require.NoError(t, err)
	return string(data)
}

func run(t *testing.T, ws *workspace, opts processOptions, stdin string) (string, error) {
	t.Helper()
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader(stdin))

	opts.configPath = ws.configPath
	err := runProcess(cmd, opts)
	return out.String(), err
}

func TestProcess_NumRows(t *testing.T) {
	ws := newWorkspace(t, tenRows())

	out, err := run(t, ws, processOptions{numRows: "3", numRowsSet: true}, "")
	require.NoError(t, err)

	assert.Len(t, ws.records(t), 3)
	assert.FileExists(t, filepath.Join(ws.outputDir, ".gitignore"))
	assert.NoFileExists(t, filepath.Join(ws.outputDir, "stale.xml"))
	assert.Contains(t, out, "Importing up to 3 row(s)")
	assert.Contains(t, out, "Records written: 3")
	assert.Contains(t, out, "Title: Dataset 3")
	assert.NotContains(t, out, "Title: Dataset 4")
}

func TestProcess_ExcessRows(t *testing.T) {
	ws := newWorkspace(t, tenRows())

	_, err := run(t, ws, processOptions{numRows: "50", numRowsSet: true}, "")
	require.NoError(t, err)

	assert.Len(t, ws.records(t), 10)
	assert.Contains(t, ws.log(t), "requested more rows than the input holds")
}

func TestProcess_HugeRowCount(t *testing.T) {
	ws := newWorkspace(t, tenRows())

	_, err := run(t, ws, processOptions{numRows: "99999999999999999999", numRowsSet: true}, "")
	require.NoError(t, err)

	assert.Len(t, ws.records(t), 10)
	assert.Contains(t, ws.log(t), "requested more rows than the input holds")
}

func TestProcess_InvalidSelector(t *testing.T) {
	ws := newWorkspace(t, tenRows())

	out, err := run(t, ws, processOptions{numRows: "abc", numRowsSet: true}, "")
	require.NoError(t, err)

	assert.Contains(t, out, `Invalid row count "abc"`)
	assert.Contains(t, ws.log(t), "invalid row-count selector")

	// Nothing imported and the previous output left alone.
	records := ws.records(t)
	require.Len(t, records, 1)
	assert.Equal(t, "stale.xml", filepath.Base(records[0]))
}

func TestProcess_AllFlag(t *testing.T) {
	ws := newWorkspace(t, tenRows())

	out, err := run(t, ws, processOptions{all: true}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Importing all rows")
	assert.Len(t, ws.records(t), 10)
}

func TestProcess_Prompt(t *testing.T) {
	ws := newWorkspace(t, tenRows())

	out, err := run(t, ws, processOptions{}, "2\n")
	require.NoError(t, err)

	assert.Contains(t, out, "How many rows should be imported?")
	assert.Len(t, ws.records(t), 2)
}

func TestProcess_FailedRowOnlyInLog(t *testing.T) {
	rows := tenRows()[:5]
	rows[2][2] = "99/99/2020"
	ws := newWorkspace(t, rows)

	out, err := run(t, ws, processOptions{all: true}, "")
	require.NoError(t, err)

	assert.Len(t, ws.records(t), 4)
	assert.Contains(t, ws.log(t), "import failed for entry")
	assert.Contains(t, ws.log(t), `"title": "Dataset 3"`)
	assert.NotContains(t, out, "malformed")
	assert.Contains(t, out, "Rows failed:     1")
}

func TestProcess_MissingInputIsFatal(t *testing.T) {
	ws := newWorkspace(t, tenRows())
	require.NoError(t, os.Remove(ws.inputFile))

	_, err := run(t, ws, processOptions{all: true}, "")
	require.Error(t, err)

	// The previous output survives a fatal error.
	assert.FileExists(t, filepath.Join(ws.outputDir, "stale.xml"))
}

func TestSelectorInput(t *testing.T) {
	out := &bytes.Buffer{}

	raw, err := selectorInput(strings.NewReader(""), out, processOptions{all: true})
	require.NoError(t, err)
	assert.Equal(t, "all", raw)

	raw, err = selectorInput(strings.NewReader(""), out, processOptions{numRows: "7", numRowsSet: true})
	require.NoError(t, err)
	assert.Equal(t, "7", raw)

	raw, err = selectorInput(strings.NewReader("  all \n"), out, processOptions{})
	require.NoError(t, err)
	assert.Equal(t, "all", raw)

	_, err = selectorInput(strings.NewReader(""), out, processOptions{})
	require.Error(t, err)
}
