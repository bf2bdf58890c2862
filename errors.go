package phasetida

import "github.com/phasetida/phasetida-core/internal/chart"

// ErrMissingFormatVersion is returned by InitLineStatesFromJSON when the
// chart JSON has no formatVersion field.
var ErrMissingFormatVersion = chart.ErrMissingFormatVersion

// UnknownVersionError is returned when formatVersion is neither 1 nor 3.
type UnknownVersionError = chart.UnknownVersionError

// InvalidNoteTypeError is returned when a note's type field is outside
// {1,2,3,4}.
type InvalidNoteTypeError = chart.InvalidNoteTypeError
