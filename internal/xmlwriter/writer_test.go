package xmlwriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testID = "0b9c1f3e-5d2a-4c8e-9a47-2f6d8e1b3c55"

func sampleDoc(t *testing.T) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`<?xml version="1.0" encoding="UTF-8"?>
<gmd:MD_Metadata xmlns:gmd="http://www.isotc211.org/2005/gmd">
  <gmd:title>Rivers &amp; Lakes</gmd:title>
</gmd:MD_Metadata>`))
	return doc
}

func TestWrite_Compact(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)

	path, err := w.Write(testID, sampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, testID+".xml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "<gmd:title>Rivers &amp; Lakes</gmd:title>")

	reread := etree.NewDocument()
	require.NoError(t, reread.ReadFromBytes(data))
	assert.Equal(t, "MD_Metadata", reread.Root().Tag)
}

func TestWrite_Overwrites(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)

	_, err := w.Write(testID, sampleDoc(t))
	require.NoError(t, err)

	doc := sampleDoc(t)
	doc.FindElement("//gmd:title").SetText("Woodland")
	path, err := w.Write(testID, doc)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Woodland")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWrite_RejectsNonUUID(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)

	_, err := w.Write("../escape", sampleDoc(t))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSerialize_Indented(t *testing.T) {
	w := NewWithOptions(t.TempDir(), Options{Indent: 2})

	data, err := w.Serialize(sampleDoc(t))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  <gmd:title>")
}

func TestWrite_PartialOptionsStayCompact(t *testing.T) {
	dir := t.TempDir()
	w := NewWithOptions(dir, Options{FileMode: 0600})

	path, err := w.Write(testID, sampleDoc(t))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
