package parser

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/outofforest/envspec/specfile/stack"
)

// LocationError gives a location in source code that caused the error.
type LocationError struct {
	Location []Range
	error
}

// Unwrap unwraps to the next error.
func (e *LocationError) Unwrap() error {
	return e.error
}

// Error returns error message prefixed with the first line of the location.
func (e *LocationError) Error() string {
	if len(e.Location) == 0 {
		return e.error.Error()
	}
	return fmt.Sprintf("line %d: %s", e.Location[0].Start.Line, e.error.Error())
}

// Line returns the first line of the location or 0 if location is unknown.
func (e *LocationError) Line() int {
	if len(e.Location) == 0 {
		return 0
	}
	return e.Location[0].Start.Line
}

// Range is a code section between two positions.
type Range struct {
	Start Position
	End   Position
}

// Position is a point in source code.
type Position struct {
	Line      int
	Character int
}

func withLocation(err error, start, end int) error {
	return WithLocation(err, toRanges(start, end))
}

// WithLocation extends an error with a source code location.
func WithLocation(err error, location []Range) error {
	if err == nil {
		return nil
	}
	var el *LocationError
	if errors.As(err, &el) {
		return err
	}
	return stack.Enable(&LocationError{
		error:    err,
		Location: location,
	})
}

func toRanges(start, end int) []Range {
	r := []Range{}
	if end <= start {
		end = start
	}
	for i := start; i <= end; i++ {
		r = append(r, Range{Start: Position{Line: i}, End: Position{Line: i}})
	}
	return r
}
