// Package skyerr defines the error taxonomy shared by the sky rendering engine.
//
// DomainError is raised while building constant tables and is fatal: a process
// with a malformed table cannot render anything meaningful. InvalidInputError is
// raised per call for non-finite scalars; callers are expected to skip the frame
// or star. Culling is not an error and never appears here.
package skyerr

import (
	"errors"
	"fmt"
	"math"
)

// DomainError reports a malformed constant table or configuration.
type DomainError struct {
	Component string // e.g. "threshold", "gradient"
	Reason    string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: malformed definition: %s", e.Component, e.Reason)
}

// Domain builds a DomainError with a formatted reason.
func Domain(component, format string, args ...interface{}) *DomainError {
	return &DomainError{Component: component, Reason: fmt.Sprintf(format, args...)}
}

// InvalidInputError reports a non-finite scalar passed at call time.
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %v is not finite", e.Field, e.Value)
}

// RequireFinite returns an InvalidInputError if v is NaN or ±Inf.
func RequireFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidInputError{Field: field, Value: v}
	}
	return nil
}

// RequireAllFinite checks pairs of (field, value) and returns the first failure.
func RequireAllFinite(fields []string, values ...float64) error {
	for i, v := range values {
		name := "value"
		if i < len(fields) {
			name = fields[i]
		}
		if err := RequireFinite(name, v); err != nil {
			return err
		}
	}
	return nil
}

// IsDomain reports whether err wraps a DomainError.
func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// IsInvalidInput reports whether err wraps an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
