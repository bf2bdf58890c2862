package chart

import (
	"errors"
	"fmt"
)

// ErrMissingFormatVersion is returned when the chart JSON has no
// formatVersion field.
var ErrMissingFormatVersion = errors.New("chart: missing formatVersion field")

// UnknownVersionError is returned when formatVersion is neither 1 nor 3.
type UnknownVersionError struct {
	Version int64
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("chart: unknown format version %d", e.Version)
}

// InvalidNoteTypeError is returned when a note's type field is outside
// {1,2,3,4}.
type InvalidNoteTypeError struct {
	Value int
}

func (e *InvalidNoteTypeError) Error() string {
	return fmt.Sprintf("chart: invalid note type %d", e.Value)
}
