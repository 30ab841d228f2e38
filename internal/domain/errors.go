package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyValue indicates a required string field was empty.
	ErrEmptyValue = errors.New("required value is empty")

	// ErrNilValue indicates a required reference was nil.
	ErrNilValue = errors.New("required value is nil")

	// ErrOutOfRange indicates a value outside its valid range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrTipTypeMismatch indicates a tip was added to a tip type it does not
	// reference.
	ErrTipTypeMismatch = errors.New("tip belongs to a different tip type")
)

// requireText enforces the strict policy for identity-like string fields:
// an empty value is a caller error, not noise to be corrected.
func requireText(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrEmptyValue, field)
	}
	return nil
}

// requirePercent enforces that a percentage field lies in [0, 100].
func requirePercent(field string, value float64) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%w: %s %v not in [0, 100]", ErrOutOfRange, field, value)
	}
	return nil
}

// clamp constrains v to [lo, hi]. Measurement fields use it instead of
// failing: out-of-range provider data is corrected silently.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
