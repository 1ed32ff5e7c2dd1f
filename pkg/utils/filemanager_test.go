package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanOutputDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{".gitignore", "a.xml", "b.xml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "stale"), 0755))

	fm := NewFileManager(dir, []string{".gitignore"})
	removed, err := fm.CleanOutputDir()
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".gitignore", entries[0].Name())
}

func TestCleanOutputDir_Missing(t *testing.T) {
	fm := NewFileManager(filepath.Join(t.TempDir(), "nope"), nil)
	_, err := fm.CleanOutputDir()
	require.Error(t, err)
}

func TestEnsureDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "records")
	fm := NewFileManager(dir, nil)

	require.NoError(t, fm.EnsureDirectories())
	assert.DirExists(t, dir)
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "record.xml")

	require.NoError(t, AtomicWriteFile(path, []byte("first"), 0644))
	require.NoError(t, AtomicWriteFile(path, []byte("second"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
