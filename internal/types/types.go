// =============================================================================
// GEMINI Metadata Import - Shared Types
// =============================================================================
//
// This package contains the typed input record shared by the parser,
// validation and converter packages. A spreadsheet row is positional: the
// column table below is the only place that knows which index holds which
// field.
//
// =============================================================================

package types

import (
	"errors"
	"fmt"
)

// ErrTooFewColumns is returned by ParseRow when a row is shorter than the
// fixed column layout.
var ErrTooFewColumns = errors.New("row has too few columns")

// ColumnCount is the number of columns in the input layout.
const ColumnCount = 30

// =============================================================================
// INPUT ROW
// =============================================================================

// InputRow is one dataset description, parsed from a single data row.
type InputRow struct {
	// RowNumber is the 1-based data row number (the header is not counted).
	RowNumber int

	Title        string
	AltTitle     string
	CreationDate string
	RevisionDate string
	Abstract     string

	// Point of contact. Written to both the dataset and metadata contacts.
	ContactName     string
	ContactEmail    string
	ContactAddress  string
	ContactOrg      string
	ContactPosition string

	// Keywords is a comma-separated list of free-text keywords.
	Keywords string

	UseLimitation       string
	LicenceConstraint   string
	CopyrightConstraint string

	// TopicCategories is a comma-separated list of ISO topic category codes.
	TopicCategories string

	West  string
	East  string
	North string
	South string

	ExtentDescription string

	// TemporalExtent is a single date or a "begin,end" pair.
	TemporalExtent string

	// DataFormats and DataVersions are comma-separated lists paired by position.
	DataFormats  string
	DataVersions string

	TransferProtocol string
	TransferURL      string
	DataQuality      string
	Lineage          string
	UpdateFrequency  string

	// InspireKeywords is a comma-separated list of INSPIRE theme keywords.
	InspireKeywords string

	Denominator string
}

// Column describes one position in the input layout.
type Column struct {
	Index int
	Name  string
	field func(r *InputRow) *string
}

// Value returns the column's value in r.
func (c Column) Value(r *InputRow) string {
	return *c.field(r)
}

// Columns is the column-index to field table for the input layout.
var Columns = []Column{
	{0, "title", func(r *InputRow) *string { return &r.Title }},
	{1, "alt_title", func(r *InputRow) *string { return &r.AltTitle }},
	{2, "creation_date", func(r *InputRow) *string { return &r.CreationDate }},
	{3, "revision_date", func(r *InputRow) *string { return &r.RevisionDate }},
	{4, "abstract", func(r *InputRow) *string { return &r.Abstract }},
	{5, "contact_name", func(r *InputRow) *string { return &r.ContactName }},
	{6, "contact_email", func(r *InputRow) *string { return &r.ContactEmail }},
	{7, "contact_address", func(r *InputRow) *string { return &r.ContactAddress }},
	{8, "contact_org", func(r *InputRow) *string { return &r.ContactOrg }},
	{9, "contact_position", func(r *InputRow) *string { return &r.ContactPosition }},
	{10, "keywords", func(r *InputRow) *string { return &r.Keywords }},
	{11, "use_limitation", func(r *InputRow) *string { return &r.UseLimitation }},
	{12, "licence_constraint", func(r *InputRow) *string { return &r.LicenceConstraint }},
	{13, "copyright_constraint", func(r *InputRow) *string { return &r.CopyrightConstraint }},
	{14, "topic_categories", func(r *InputRow) *string { return &r.TopicCategories }},
	{15, "west", func(r *InputRow) *string { return &r.West }},
	{16, "east", func(r *InputRow) *string { return &r.East }},
	{17, "north", func(r *InputRow) *string { return &r.North }},
	{18, "south", func(r *InputRow) *string { return &r.South }},
	{19, "extent_description", func(r *InputRow) *string { return &r.ExtentDescription }},
	{20, "temporal_extent", func(r *InputRow) *string { return &r.TemporalExtent }},
	{21, "data_formats", func(r *InputRow) *string { return &r.DataFormats }},
	{22, "data_versions", func(r *InputRow) *string { return &r.DataVersions }},
	{23, "transfer_protocol", func(r *InputRow) *string { return &r.TransferProtocol }},
	{24, "transfer_url", func(r *InputRow) *string { return &r.TransferURL }},
	{25, "data_quality", func(r *InputRow) *string { return &r.DataQuality }},
	{26, "lineage", func(r *InputRow) *string { return &r.Lineage }},
	{27, "update_frequency", func(r *InputRow) *string { return &r.UpdateFrequency }},
	{28, "inspire_keywords", func(r *InputRow) *string { return &r.InspireKeywords }},
	{29, "denominator", func(r *InputRow) *string { return &r.Denominator }},
}

// MustColumn returns the column with the given name. It panics for unknown
// names, which are programming errors.
func MustColumn(name string) Column {
	for _, col := range Columns {
		if col.Name == name {
			return col
		}
	}
	panic(fmt.Sprintf("types: unknown column %q", name))
}

// ParseRow builds an InputRow from raw columns.
//
// PARAMETERS:
//   - rowNumber: The 1-based data row number, used in diagnostics.
//   - columns: The raw column values in input order.
//
// RETURNS:
//   - The parsed row.
//   - ErrTooFewColumns (wrapped) if the row is shorter than ColumnCount.
//     Extra trailing columns are ignored.
func ParseRow(rowNumber int, columns []string) (*InputRow, error) {
	if len(columns) < ColumnCount {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrTooFewColumns, len(columns), ColumnCount)
	}

	row := &InputRow{RowNumber: rowNumber}
	for _, col := range Columns {
		*col.field(row) = columns[col.Index]
	}

	return row, nil
}

// TitleOf returns the best-effort title of a raw row, for error reporting
// when the row itself could not be parsed.
func TitleOf(columns []string) string {
	if len(columns) == 0 {
		return ""
	}
	return columns[0]
}
