// Package validate provides reusable input validation utilities for the
// waterfall engine. These functions can be called from tests, API handlers,
// or CLI code to verify scalar inputs before any calculation runs.
package validate

import (
	"fmt"
	"math"
)

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError reports a scalar input outside its documented domain.
// The engine never clamps silently; it surfaces one of these instead.
type ValidationError struct {
	Field   string
	Value   float64
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%g): %s", e.Field, e.Value, e.Message)
}

// NewValidationError constructs a ValidationError for a named input field.
func NewValidationError(field string, value float64, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// =============================================================================
// DOMAIN CHECKS
// =============================================================================

// CheckNonNegative validates value >= 0.
func CheckNonNegative(field string, value float64) error {
	if math.IsNaN(value) {
		return NewValidationError(field, value, "must be a number")
	}
	if value < 0 {
		return NewValidationError(field, value, "must be non-negative")
	}
	return nil
}

// CheckPositive validates value > 0.
func CheckPositive(field string, value float64) error {
	if math.IsNaN(value) {
		return NewValidationError(field, value, "must be a number")
	}
	if value <= 0 {
		return NewValidationError(field, value, "must be positive")
	}
	return nil
}

// CheckFraction validates 0 <= value < 1 (a percentage expressed as a fraction).
func CheckFraction(field string, value float64) error {
	if math.IsNaN(value) {
		return NewValidationError(field, value, "must be a number")
	}
	if value < 0 || value >= 1 {
		return NewValidationError(field, value, "must be a fraction in [0, 1)")
	}
	return nil
}

// CheckMax validates value <= max.
func CheckMax(field string, value, max float64) error {
	if value > max {
		return NewValidationError(field, value, fmt.Sprintf("must not exceed %g", max))
	}
	return nil
}

// =============================================================================
// TOLERANCE COMPARISON
// =============================================================================

// WithinTolerance reports whether a and b differ by at most tol.
// Used by the threshold solver's convergence check and by tests.
func WithinTolerance(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
