// =============================================================================
// GEMINI Metadata Import - Field Mapper
// =============================================================================
//
// This module populates one cloned record from one input row. Population is
// driven by an ordered table of steps; each step reads one or more columns
// and writes to named template anchors.
//
// STEP RESULTS:
//   - nil          the field was written (or was blank and skipped)
//   - *FieldError  the field was skipped; the row continues
//   - other error  the row is abandoned
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/ginjaninja78/gemini-metadata-import/internal/template"
	"github.com/ginjaninja78/gemini-metadata-import/internal/types"
	"github.com/ginjaninja78/gemini-metadata-import/internal/validation"
)

// ErrListLengthMismatch is reported when data formats and data versions
// have different lengths. Pairs beyond the shorter list are dropped.
var ErrListLengthMismatch = errors.New("format and version lists differ in length")

// FieldError marks a field-level failure: the field is left unset and the
// rest of the row is still written.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// =============================================================================
// MAPPING TABLE
// =============================================================================

type rowContext struct {
	rec    *template.Record
	row    *types.InputRow
	fileID string
	newID  IDGenerator
}

type step struct {
	field string
	apply func(ctx *rowContext) error
}

var steps = []step{
	{"identifier", func(ctx *rowContext) error {
		return ctx.setText(ctx.fileID, template.FileIdentifier, template.ResourceIdentifier)
	}},
	text("title", template.Title),
	text("alt_title", template.AltTitle),
	date("creation_date", template.CreationDate),
	date("revision_date", template.RevisionDate),
	text("abstract", template.Abstract),

	text("contact_name", template.ContactName, template.MetadataContactName),
	text("contact_email", template.ContactEmail, template.MetadataContactEmail),
	text("contact_address", template.ContactAddress, template.MetadataContactAddress),
	text("contact_org", template.ContactOrg, template.MetadataContactOrg),
	text("contact_position", template.ContactPosition, template.MetadataContactPosition),

	keywords("inspire_keywords", template.InspireKeywords, template.InspireKeywordsAnchor),
	keywords("keywords", template.FreeKeywords, template.FreeKeywordsAnchor),
	{"constraints", populateConstraints},
	{"topic_categories", populateTopicCategories},

	{"bounding_box", populateBoundingBox},
	text("extent_description", template.ExtentDescription),
	{"temporal_extent", populateTemporalExtent},

	{"data_formats", populateFormats},
	text("transfer_protocol", template.TransferProtocol),
	text("transfer_url", template.TransferURL),

	coded("data_quality", template.DataQualityScope),
	text("lineage", template.Lineage),
	coded("update_frequency", template.UpdateFrequency),
	text("denominator", template.Denominator),
}

// Populate writes row into rec.
//
// PARAMETERS:
//   - rec: A fresh clone of the template, owned by this row.
//   - row: The parsed input row.
//   - fileID: The record's file identifier.
//   - newID: Source of further identifiers (the temporal extent gml:id).
//
// RETURNS:
//   - The field-level failures, in step order.
//   - A row-level error, in which case rec must be discarded.
func Populate(rec *template.Record, row *types.InputRow, fileID string, newID IDGenerator) ([]*FieldError, error) {
	ctx := &rowContext{rec: rec, row: row, fileID: fileID, newID: newID}

	var skipped []*FieldError
	for _, s := range steps {
		err := s.apply(ctx)
		if err == nil {
			continue
		}

		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			skipped = append(skipped, fieldErr)
			continue
		}
		return skipped, fmt.Errorf("%s: %w", s.field, err)
	}

	return skipped, nil
}

// =============================================================================
// STEP CONSTRUCTORS
// =============================================================================

// text writes the trimmed column value as the text of every anchor.
func text(column string, anchors ...template.Anchor) step {
	col := types.MustColumn(column)
	return step{column, func(ctx *rowContext) error {
		return ctx.setText(strings.TrimSpace(col.Value(ctx.row)), anchors...)
	}}
}

// coded writes a code list value as both text and codeListValue.
func coded(column string, anchor template.Anchor) step {
	col := types.MustColumn(column)
	return step{column, func(ctx *rowContext) error {
		el, err := ctx.rec.Element(anchor)
		if err != nil {
			return err
		}
		value := strings.TrimSpace(col.Value(ctx.row))
		el.SetText(value)
		el.CreateAttr("codeListValue", value)
		return nil
	}}
}

// date writes a normalized date. Blank input leaves the element empty.
func date(column string, anchor template.Anchor) step {
	col := types.MustColumn(column)
	return step{column, func(ctx *rowContext) error {
		value, err := NormalizeDate(col.Value(ctx.row))
		if err != nil {
			return dateError(column, err)
		}
		if value == "" {
			return nil
		}
		return ctx.setText(value, anchor)
	}}
}

// keywords expands a keyword list into gmd:keyword entries of one block.
func keywords(column string, block, before template.Anchor) step {
	col := types.MustColumn(column)
	return step{column, func(ctx *rowContext) error {
		parent, err := ctx.rec.Element(block)
		if err != nil {
			return err
		}
		anchor, err := ctx.rec.Element(before)
		if err != nil {
			return err
		}
		expandList(col.Value(ctx.row), parent, anchor, wrapped("gmd:keyword", "gco:CharacterString"))
		return nil
	}}
}

// =============================================================================
// COMPOSITE FIELDS
// =============================================================================

func populateConstraints(ctx *rowContext) error {
	parent, err := ctx.rec.Element(template.Constraints)
	if err != nil {
		return err
	}

	limitation := wrapped("gmd:useLimitation", "gco:CharacterString")
	for _, raw := range []string{ctx.row.UseLimitation, ctx.row.LicenceConstraint, ctx.row.CopyrightConstraint} {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		insertBefore(parent, nil, limitation(MarkCopyright(value)))
	}
	return nil
}

func populateTopicCategories(ctx *rowContext) error {
	parent, err := ctx.rec.Element(template.TopicCategory)
	if err != nil {
		return err
	}
	expandList(ctx.row.TopicCategories, parent, nil, leaf("gmd:MD_TopicCategoryCode"))
	return nil
}

// populateBoundingBox writes the four coordinates, or removes the bounding
// box element when they are blank or invalid.
func populateBoundingBox(ctx *rowContext) error {
	box, err := ctx.rec.Element(template.BoundingBox)
	if err != nil {
		return err
	}

	if _, err := validation.ValidateBoundingBox(ctx.row); err != nil {
		if parent := box.Parent(); parent != nil {
			parent.RemoveChild(box)
		}
		if isBlank(ctx.row.West, ctx.row.East, ctx.row.South, ctx.row.North) {
			return nil
		}
		return &FieldError{Field: "bounding_box", Err: err}
	}

	coords := []struct {
		anchor template.Anchor
		value  string
	}{
		{template.West, ctx.row.West},
		{template.East, ctx.row.East},
		{template.South, ctx.row.South},
		{template.North, ctx.row.North},
	}
	for _, c := range coords {
		if err := ctx.setText(strings.TrimSpace(c.value), c.anchor); err != nil {
			return err
		}
	}
	return nil
}

// populateTemporalExtent writes the begin and end positions of the time
// period and gives it a fresh gml:id.
func populateTemporalExtent(ctx *rowContext) error {
	period, err := ctx.rec.Element(template.TimePeriod)
	if err != nil {
		return err
	}
	// gml:id must be an NCName, which cannot start with a digit.
	period.CreateAttr("gml:id", "_"+ctx.newID())

	begin, end, err := SplitRange(ctx.row.TemporalExtent)

	var skipped error
	if err != nil {
		skipped = &FieldError{Field: "temporal_extent", Err: err}
	}
	for _, pos := range []struct {
		anchor template.Anchor
		raw    string
	}{
		{template.BeginPosition, begin},
		{template.EndPosition, end},
	} {
		value, err := NormalizeDate(pos.raw)
		if err != nil {
			err = dateError("temporal_extent", err)
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				return err
			}
			if skipped == nil {
				skipped = err
			}
			continue
		}
		if value == "" {
			continue
		}
		if err := ctx.setText(value, pos.anchor); err != nil {
			return err
		}
	}
	return skipped
}

// populateFormats zips data formats with data versions into
// gmd:distributionFormat entries ahead of gmd:transferOptions.
func populateFormats(ctx *rowContext) error {
	parent, err := ctx.rec.Element(template.Distribution)
	if err != nil {
		return err
	}
	anchor, err := ctx.rec.Element(template.TransferOptions)
	if err != nil {
		return err
	}

	formats := splitFields(ctx.row.DataFormats)
	versions := splitFields(ctx.row.DataVersions)

	n := min(len(formats), len(versions))
	entries := make([]*etree.Element, 0, n)
	for i := 0; i < n; i++ {
		if formats[i] == "" {
			continue
		}
		entries = append(entries, distributionFormat(formats[i], versions[i]))
	}
	insertBefore(parent, anchor, entries...)

	if len(formats) != len(versions) {
		return &FieldError{
			Field: "data_formats",
			Err:   fmt.Errorf("%w: %d formats, %d versions", ErrListLengthMismatch, len(formats), len(versions)),
		}
	}
	return nil
}

func distributionFormat(name, version string) *etree.Element {
	entry := etree.NewElement("gmd:distributionFormat")
	format := entry.CreateElement("gmd:MD_Format")
	format.CreateElement("gmd:name").CreateElement("gco:CharacterString").SetText(name)
	format.CreateElement("gmd:version").CreateElement("gco:CharacterString").SetText(version)
	return entry
}

// =============================================================================
// HELPERS
// =============================================================================

func (ctx *rowContext) setText(value string, anchors ...template.Anchor) error {
	for _, anchor := range anchors {
		el, err := ctx.rec.Element(anchor)
		if err != nil {
			return err
		}
		el.SetText(value)
	}
	return nil
}

// dateError classifies a NormalizeDate failure. Unrecognized formats are
// field-level; malformed day/month/year dates abandon the row.
func dateError(field string, err error) error {
	if errors.Is(err, ErrUnrecognizedDate) {
		return &FieldError{Field: field, Err: err}
	}
	return err
}

func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
