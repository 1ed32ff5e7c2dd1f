// =============================================================================
// GEMINI Metadata Import - Converter Module
// =============================================================================
//
// This module contains the batch driver. It turns the selected input rows
// into metadata records, one record per row.
//
// CONVERSION PIPELINE (per row):
//   1. Parse the raw columns into an InputRow
//   2. Clone the template
//   3. Generate the file identifier
//   4. Populate the clone (mapper.go)
//   5. Write <file-identifier>.xml
//
// FAILURE ISOLATION:
//   Each row runs in its own guarded region. A row-level error or a panic
//   logs one "import failed for entry" entry carrying the row's title, writes
//   no file, and the batch moves on. Field-level failures are logged as
//   warnings and the record is still written.
//
// CONCURRENCY:
//   Rows are processed sequentially in input order. A Converter is not safe
//   for concurrent use.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"time"

	"github.com/ginjaninja78/gemini-metadata-import/internal/config"
	"github.com/ginjaninja78/gemini-metadata-import/internal/template"
	"github.com/ginjaninja78/gemini-metadata-import/internal/types"
	"github.com/ginjaninja78/gemini-metadata-import/internal/xmlwriter"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IDGenerator returns a new unique identifier on each call.
type IDGenerator func() string

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Result represents the outcome of processing a single row.
type Result struct {
	// RowNumber is the 1-based data row number.
	RowNumber int

	// Title is the row's title, best effort.
	Title string

	// FileIdentifier is the generated record identifier.
	// This is empty if the row failed before one was generated.
	FileIdentifier string

	// OutputFile is the path to the written record.
	// This is empty if processing failed.
	OutputFile string

	// Success indicates whether a record was written.
	Success bool

	// Error contains the row-level error if processing failed.
	Error error

	// Skipped lists the fields left unset.
	Skipped []*FieldError
}

// Summary contains statistics about a batch.
type Summary struct {
	// Available is the number of data rows in the input.
	Available int

	// Selected is the number of rows the selector picked.
	Selected int

	Written  int
	Failed   int
	Warnings int

	Elapsed time.Duration
	Results []Result
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter turns input rows into metadata records.
type Converter struct {
	template *template.Template
	writer   *xmlwriter.Writer
	logger   *zap.Logger
	echo     io.Writer
	newID    IDGenerator
}

// Option configures a Converter.
type Option func(*Converter)

// WithEcho sets where per-row progress is printed. Default: io.Discard.
func WithEcho(w io.Writer) Option {
	return func(c *Converter) {
		c.echo = w
	}
}

// WithIDGenerator replaces the UUID source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Converter) {
		c.newID = gen
	}
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - tmpl: The loaded template, cloned once per row.
//   - writer: The record emitter.
//   - logger: Receives row failures and field diagnostics.
//   - opts: Optional settings.
//
// RETURNS:
//   - A new Converter instance.
func New(tmpl *template.Template, writer *xmlwriter.Writer, logger *zap.Logger, opts ...Option) *Converter {
	c := &Converter{
		template: tmpl,
		writer:   writer,
		logger:   logger,
		echo:     io.Discard,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Run processes the rows picked by selector, in order.
//
// PARAMETERS:
//   - rows: All data rows of the input, header excluded.
//   - selector: How many leading rows to process.
//
// RETURNS:
//   - A Summary of the batch. Run never fails as a whole; row failures are
//     reported in the summary and the log.
func (c *Converter) Run(rows [][]string, selector config.RowSelector) Summary {
	startTime := time.Now()

	n, exceeded := selector.Select(len(rows))
	if exceeded {
		c.logger.Warn("requested more rows than the input holds, processing all rows",
			zap.Stringer("requested", selector),
			zap.Int("available", len(rows)))
	}

	summary := Summary{
		Available: len(rows),
		Selected:  n,
		Results:   make([]Result, 0, n),
	}

	for i, columns := range rows[:n] {
		result := c.ProcessRow(i+1, columns)

		if result.Success {
			summary.Written++
		} else {
			summary.Failed++
		}
		summary.Warnings += len(result.Skipped)
		summary.Results = append(summary.Results, result)
	}

	summary.Elapsed = time.Since(startTime)
	return summary
}

// ProcessRow converts a single row and writes its record.
//
// RETURNS:
//   - The row's Result. A failed row has Success false, Error set and no
//     file on disk.
func (c *Converter) ProcessRow(rowNumber int, columns []string) (result Result) {
	result = Result{
		RowNumber: rowNumber,
		Title:     types.TitleOf(columns),
	}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("panic: %v", r)
			result.Success = false
			result.OutputFile = ""
		}
		if result.Error != nil {
			c.logger.Error("import failed for entry",
				zap.String("title", result.Title),
				zap.Int("row", rowNumber),
				zap.Error(result.Error))
		}
	}()

	fmt.Fprintf(c.echo, "Processing row %d\n", rowNumber)

	// =========================================================================
	// STEP 1: PARSE ROW
	// =========================================================================

	row, err := types.ParseRow(rowNumber, columns)
	if err != nil {
		result.Error = err
		return result
	}
	fmt.Fprintf(c.echo, "Title: %s\n", row.Title)
	for _, col := range types.Columns[1:] {
		fmt.Fprintf(c.echo, "  %s: %s\n", col.Name, col.Value(row))
	}

	// =========================================================================
	// STEP 2: CLONE TEMPLATE
	// =========================================================================

	rec, err := c.template.Clone()
	if err != nil {
		result.Error = fmt.Errorf("failed to clone template: %w", err)
		return result
	}

	// =========================================================================
	// STEP 3: POPULATE
	// =========================================================================

	result.FileIdentifier = c.newID()
	fmt.Fprintf(c.echo, "File identifier: %s\n", result.FileIdentifier)

	skipped, err := Populate(rec, row, result.FileIdentifier, c.newID)
	result.Skipped = skipped
	for _, fe := range skipped {
		c.logger.Warn("field skipped",
			zap.Int("row", rowNumber),
			zap.String("field", fe.Field),
			zap.Error(fe.Err))
	}
	if err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 4: WRITE RECORD
	// =========================================================================

	path, err := c.writer.Write(result.FileIdentifier, rec.Doc)
	if err != nil {
		result.Error = err
		return result
	}

	result.OutputFile = path
	result.Success = true
	fmt.Fprintf(c.echo, "Wrote %s\n", path)

	return result
}
