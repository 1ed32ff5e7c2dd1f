// =============================================================================
// GEMINI Metadata Import - Validation Engine
// =============================================================================
//
// This module checks input rows before (and while) they are converted. It
// knows the GEMINI code lists and the value shapes the record expects:
//   - Bounding box coordinates (numeric, in range, ordered)
//   - ISO topic category, maintenance frequency and scope codes
//   - Contact email, transfer URL and scale denominator formats
//
// SEVERITY:
//   - "error"   = the field cannot be written; the converter skips it
//   - "warning" = the value is written as-is but is probably wrong
//
// Findings never abort a row. The converter consults ValidateBoundingBox
// for the one field it refuses to write when invalid, and the validate
// command reports everything ValidateRow finds.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"strings"

	"github.com/ginjaninja78/gemini-metadata-import/internal/types"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

var (
	// ErrBoundingBoxMissing is returned when any of the four coordinates is blank.
	ErrBoundingBoxMissing = errors.New("bounding box is incomplete")

	// ErrBoundingBoxInvalid is returned for non-numeric or out-of-range coordinates.
	ErrBoundingBoxInvalid = errors.New("bounding box is invalid")
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Field is the input column name.
	Field string

	// Value is the raw value that failed validation.
	Value string

	// Rule names the check that failed.
	Rule string

	// Message is a human-readable description.
	Message string

	// RowNumber is the 1-based data row number.
	RowNumber int

	// Title is the row's title, for reporting.
	Title string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] Row %d (%s), Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.RowNumber,
		e.Title,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validating a batch.
type ValidationResult struct {
	// IsValid is true if there are no error-severity findings.
	IsValid bool

	// Errors contains all findings, warnings included.
	Errors []*ValidationError

	ErrorCount    int
	WarningCount  int
	RowsValidated int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// StopOnFirstError stops validation after the first error finding.
	// Default: false
	StopOnFirstError bool

	// TreatWarningsAsErrors makes warnings invalidate the result.
	// Default: false
	TreatWarningsAsErrors bool
}

// Validator checks input rows.
type Validator struct {
	options ValidationOptions
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{}
}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return NewValidatorWithOptions(DefaultValidationOptions())
}

// NewValidatorWithOptions creates a new Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	return &Validator{options: options}
}

// =============================================================================
// MAIN VALIDATION FUNCTIONS
// =============================================================================

// ValidateAll validates every row and returns a detailed result.
func (v *Validator) ValidateAll(rows []*types.InputRow) *ValidationResult {
	result := &ValidationResult{
		IsValid: true,
		Errors:  make([]*ValidationError, 0),
	}

	for _, row := range rows {
		result.RowsValidated++

		for _, err := range v.ValidateRow(row) {
			result.Errors = append(result.Errors, err)

			if err.Severity == SeverityError {
				result.ErrorCount++
				result.IsValid = false

				if v.options.StopOnFirstError {
					return result
				}
			} else {
				result.WarningCount++

				if v.options.TreatWarningsAsErrors {
					result.IsValid = false
				}
			}
		}
	}

	return result
}

// ValidateRow validates a single row.
//
// PARAMETERS:
//   - row: The parsed input row.
//
// RETURNS:
//   - All findings for the row, in column order. Empty when the row is clean.
func (v *Validator) ValidateRow(row *types.InputRow) []*ValidationError {
	var findings []*ValidationError

	add := func(severity, field, value, rule, message string) {
		findings = append(findings, &ValidationError{
			Severity:  severity,
			Field:     field,
			Value:     value,
			Rule:      rule,
			Message:   message,
			RowNumber: row.RowNumber,
			Title:     row.Title,
		})
	}

	if strings.TrimSpace(row.Title) == "" {
		add(SeverityWarning, "title", row.Title, "required", "Title is empty")
	}

	if msg := validateEmail(row.ContactEmail); msg != "" {
		add(SeverityWarning, "contact_email", row.ContactEmail, "email", msg)
	}

	for _, code := range splitCodes(row.TopicCategories) {
		if !TopicCategories[code] {
			add(SeverityWarning, "topic_categories", code, "code_list", "Unknown ISO topic category")
		}
	}

	if _, err := ValidateBoundingBox(row); err != nil && !errors.Is(err, ErrBoundingBoxMissing) {
		add(SeverityError, "bounding_box", boxString(row), "coordinates", err.Error())
	} else if err == nil {
		if msg := checkCrossing(row); msg != "" {
			add(SeverityWarning, "bounding_box", boxString(row), "coordinates", msg)
		}
	}

	if msg := validateURL(row.TransferURL); msg != "" {
		add(SeverityWarning, "transfer_url", row.TransferURL, "url", msg)
	}

	if code := strings.TrimSpace(row.DataQuality); code != "" && !ScopeCodes[code] {
		add(SeverityWarning, "data_quality", row.DataQuality, "code_list", "Unknown MD_ScopeCode")
	}

	if code := strings.TrimSpace(row.UpdateFrequency); code != "" && !MaintenanceFrequencies[code] {
		add(SeverityWarning, "update_frequency", row.UpdateFrequency, "code_list", "Unknown MD_MaintenanceFrequencyCode")
	}

	if msg := validateDenominator(row.Denominator); msg != "" {
		add(SeverityWarning, "denominator", row.Denominator, "integer", msg)
	}

	return findings
}

// =============================================================================
// BOUNDING BOX
// =============================================================================

// BoundingBox is a parsed geographic envelope in decimal degrees.
type BoundingBox struct {
	West, East, South, North float64
}

// ValidateBoundingBox parses the row's four coordinates.
//
// RETURNS:
//   - The parsed box.
//   - ErrBoundingBoxMissing (wrapped) if any coordinate is blank.
//   - ErrBoundingBoxInvalid (wrapped) if a coordinate is not a number, is out
//     of range, or south lies above north.
func ValidateBoundingBox(row *types.InputRow) (BoundingBox, error) {
	raw := []struct {
		name  string
		value string
		limit float64
	}{
		{"west", row.West, 180},
		{"east", row.East, 180},
		{"south", row.South, 90},
		{"north", row.North, 90},
	}

	var parsed [4]float64
	for i, c := range raw {
		value := strings.TrimSpace(c.value)
		if value == "" {
			return BoundingBox{}, fmt.Errorf("%w: %s is blank", ErrBoundingBoxMissing, c.name)
		}

		f, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(f) {
			return BoundingBox{}, fmt.Errorf("%w: %s %q is not a number", ErrBoundingBoxInvalid, c.name, value)
		}
		if f < -c.limit || f > c.limit {
			return BoundingBox{}, fmt.Errorf("%w: %s %s outside [-%g, %g]", ErrBoundingBoxInvalid, c.name, value, c.limit, c.limit)
		}
		parsed[i] = f
	}

	box := BoundingBox{West: parsed[0], East: parsed[1], South: parsed[2], North: parsed[3]}
	if box.South > box.North {
		return BoundingBox{}, fmt.Errorf("%w: south %g is above north %g", ErrBoundingBoxInvalid, box.South, box.North)
	}

	return box, nil
}

// checkCrossing flags west > east, which is only right for boxes spanning
// the antimeridian.
func checkCrossing(row *types.InputRow) string {
	box, err := ValidateBoundingBox(row)
	if err != nil || box.West <= box.East {
		return ""
	}
	return "West bound is east of the east bound (antimeridian crossing?)"
}

func boxString(row *types.InputRow) string {
	return fmt.Sprintf("W=%s E=%s S=%s N=%s", row.West, row.East, row.South, row.North)
}

// =============================================================================
// FORMAT CHECKS
// =============================================================================

// validateEmail checks that a non-empty value is a bare email address.
func validateEmail(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return fmt.Sprintf("Value '%s' is not a valid email address", value)
	}
	return ""
}

// validateURL checks that a non-empty value is an absolute URL with a host.
func validateURL(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	u, err := url.ParseRequestURI(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Sprintf("Value '%s' is not an absolute URL", value)
	}
	return ""
}

// validateDenominator checks that a non-empty value is a positive integer.
func validateDenominator(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return fmt.Sprintf("Value '%s' is not a positive integer", value)
	}
	return ""
}

func splitCodes(value string) []string {
	var codes []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}

// =============================================================================
// OUTPUT
// =============================================================================

// FormatErrors formats validation findings for display.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
