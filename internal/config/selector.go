package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidSelector is returned for row-count selectors that are neither
// "all" nor a non-negative integer.
var ErrInvalidSelector = errors.New("invalid row-count selector")

// RowSelector limits how many data rows a run processes.
type RowSelector struct {
	all   bool
	limit int
}

// All selects every data row.
func All() RowSelector {
	return RowSelector{all: true}
}

// Limit selects the first n data rows.
func Limit(n int) RowSelector {
	return RowSelector{limit: n}
}

// ParseRowSelector accepts the literal "all" or a non-negative integer.
func ParseRowSelector(s string) (RowSelector, error) {
	s = strings.TrimSpace(s)
	if s == "all" {
		return All(), nil
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return RowSelector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
		}
	}
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		// Larger than any input can hold.
		return Limit(math.MaxInt), nil
	}
	if err != nil {
		return RowSelector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}

	return Limit(n), nil
}

// IsAll reports whether the selector takes every row.
func (s RowSelector) IsAll() bool {
	return s.all
}

// Select returns the number of rows to process out of available, and
// whether the requested limit exceeded what was available.
func (s RowSelector) Select(available int) (n int, exceeded bool) {
	if s.all {
		return available, false
	}
	if s.limit > available {
		return available, true
	}
	return s.limit, false
}

func (s RowSelector) String() string {
	if s.all {
		return "all"
	}
	return strconv.Itoa(s.limit)
}
