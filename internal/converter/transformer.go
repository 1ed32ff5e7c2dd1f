// =============================================================================
// GEMINI Metadata Import - Value Transformations
// =============================================================================
//
// This module holds the value-level rules applied before text reaches the
// record:
//   - Date normalization to YYYY-MM-DD
//   - Temporal extent range splitting
//   - Copyright marking of constraint text
//
// DATE FORMATS:
//   | Input contains | Interpretation             | Example                  |
//   |----------------|----------------------------|--------------------------|
//   | "/"            | day/month/year             | 25/12/2020 -> 2020-12-25 |
//   | "-"            | already canonical, kept    | 2020-12-25               |
//   | neither        | unrecognized, field unset  | Dec 2020                 |
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnrecognizedDate is returned for dates in neither supported format.
	// It is field-level: the date is left unset and the row continues.
	ErrUnrecognizedDate = errors.New("unrecognized date format")

	// ErrMalformedDate is returned for day/month/year dates that do not
	// parse. It abandons the row.
	ErrMalformedDate = errors.New("malformed date")

	// ErrRangeTooLong is returned for temporal extents with more than two
	// dates. Only the first is kept.
	ErrRangeTooLong = errors.New("temporal extent has more than two dates")
)

const (
	dayMonthYear = "2/1/2006"
	isoDate      = "2006-01-02"
	copyrightTag = "(c) "
)

// NormalizeDate converts a raw date to YYYY-MM-DD.
//
// PARAMETERS:
//   - raw: The date as written in the input. Surrounding space is ignored.
//
// RETURNS:
//   - The canonical date, or "" for blank input.
//   - ErrUnrecognizedDate or ErrMalformedDate (wrapped) on failure.
func NormalizeDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)

	switch {
	case value == "":
		return "", nil

	case strings.Contains(value, "/"):
		t, err := time.Parse(dayMonthYear, value)
		if err != nil {
			return "", fmt.Errorf("%w %q: %v", ErrMalformedDate, value, err)
		}
		return t.Format(isoDate), nil

	case strings.Contains(value, "-"):
		return value, nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedDate, value)
	}
}

// SplitRange splits a temporal extent into its begin and end parts.
// A single value yields an empty end. More than two values yield the first
// as begin, an empty end and ErrRangeTooLong.
func SplitRange(raw string) (begin, end string, err error) {
	parts := strings.Split(raw, ",")
	begin = strings.TrimSpace(parts[0])
	switch {
	case len(parts) == 2:
		end = strings.TrimSpace(parts[1])
	case len(parts) > 2:
		err = fmt.Errorf("%w: %q", ErrRangeTooLong, raw)
	}
	return begin, end, err
}

// MarkCopyright prefixes constraint text that starts with the word
// "copyright" (any case) with "(c) ".
func MarkCopyright(value string) string {
	if strings.HasPrefix(strings.ToLower(value), "copyright") {
		return copyrightTag + value
	}
	return value
}
