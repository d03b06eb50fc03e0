package types

import (
	"fmt"
)

// BaseImageIndex is the index reported by ValidationError when the base image is invalid.
const BaseImageIndex = -1

// MalformedInputError is returned when spec file is structurally invalid.
type MalformedInputError struct {
	// Line is the 1-based line of spec file where the offending directive starts, 0 if unknown
	Line int

	// Directive is the name of the offending directive, empty if unknown
	Directive string

	// Err is the cause
	Err error
}

// Error returns string representation of error.
func (e *MalformedInputError) Error() string {
	switch {
	case e.Line > 0 && e.Directive != "":
		return fmt.Sprintf("error in line %d of %s directive: %s", e.Line, e.Directive, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("error in line %d: %s", e.Line, e.Err)
	default:
		return fmt.Sprintf("malformed input: %s", e.Err)
	}
}

// Unwrap returns the cause.
func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when descriptor violates one of its invariants.
type ValidationError struct {
	// Index is the 0-based index of the offending step or BaseImageIndex
	Index int

	// Reason describes the violation
	Reason string
}

// Error returns string representation of error.
func (e *ValidationError) Error() string {
	if e.Index == BaseImageIndex {
		return "invalid base image: " + e.Reason
	}
	return fmt.Sprintf("invalid step %d: %s", e.Index, e.Reason)
}
