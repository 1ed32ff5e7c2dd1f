// =============================================================================
// GEMINI Metadata Import - Record Emitter
// =============================================================================
//
// This module serializes a populated metadata record and writes it to the
// output directory as <file-identifier>.xml.
//
// OUTPUT FORMAT:
//   - UTF-8, with the XML declaration carried over from the template
//   - Compact: no indentation or newlines are added between elements
//   - Written to a temporary file first and renamed into place, so a failed
//     row never leaves a partial record behind
//
// =============================================================================

package xmlwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/ginjaninja78/gemini-metadata-import/pkg/utils"
	"github.com/google/uuid"
)

// =============================================================================
// WRITE OPTIONS
// =============================================================================

// Options contains options for record output.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero or negative
	// writes compact output.
	// Default: 0
	Indent int

	// FileMode is the permission of written records.
	// Default: 0644
	FileMode os.FileMode
}

// DefaultOptions returns the default output options.
func DefaultOptions() Options {
	return Options{
		Indent:   0,
		FileMode: 0644,
	}
}

// =============================================================================
// WRITER
// =============================================================================

// Writer emits records into one output directory.
type Writer struct {
	outputDir string
	options   Options
}

// New creates a Writer with default options.
func New(outputDir string) *Writer {
	return NewWithOptions(outputDir, DefaultOptions())
}

// NewWithOptions creates a Writer with explicit options.
func NewWithOptions(outputDir string, options Options) *Writer {
	if options.FileMode == 0 {
		options.FileMode = 0644
	}
	return &Writer{
		outputDir: outputDir,
		options:   options,
	}
}

// Write serializes doc and stores it as <id>.xml.
//
// PARAMETERS:
//   - id: The record's file identifier. Must be a UUID.
//   - doc: The populated document. Whitespace may be rewritten.
//
// RETURNS:
//   - The path of the written file.
//   - An error if id is not a UUID, or serialization or the write fails.
//
// An existing file with the same name is replaced.
func (w *Writer) Write(id string, doc *etree.Document) (string, error) {
	if err := uuid.Validate(id); err != nil {
		return "", fmt.Errorf("invalid file identifier %q: %w", id, err)
	}

	data, err := w.Serialize(doc)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.outputDir, id+".xml")
	if err := utils.AtomicWriteFile(path, data, w.options.FileMode); err != nil {
		return "", fmt.Errorf("failed to write record: %w", err)
	}

	return path, nil
}

// Serialize renders doc to bytes using the writer's indentation.
func (w *Writer) Serialize(doc *etree.Document) ([]byte, error) {
	if w.options.Indent > 0 {
		doc.Indent(w.options.Indent)
	} else {
		doc.Indent(etree.NoIndent)
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}
	return data, nil
}
