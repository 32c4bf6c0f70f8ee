package stepmark

import "errors"

// Errors reported by Document, Editor and the flatten pipeline.
// All of them describe local, recoverable conditions: a failed call leaves
// the document unchanged.
var (
	// ErrUnknownStep is returned for a step identifier or position that is
	// not (or no longer) part of the document.
	ErrUnknownStep = errors.New("stepmark: unknown step")

	// ErrObjectIndex is returned for an object index outside the step's list.
	ErrObjectIndex = errors.New("stepmark: object index out of range")

	// ErrInvalidGeometry is returned when a crop or markup rectangle is at or
	// below the minimum size.
	ErrInvalidGeometry = errors.New("stepmark: geometry below minimum size")

	// ErrInvalidObject is returned for objects that cannot be rendered, such
	// as strokes without points.
	ErrInvalidObject = errors.New("stepmark: invalid annotation object")

	// ErrCorruptSnapshot is reported (and logged) when an undo snapshot fails
	// validation. The snapshot is discarded.
	ErrCorruptSnapshot = errors.New("stepmark: corrupt undo snapshot")

	// ErrMissingBaseImage is returned when the step's screenshot cannot be
	// read or decoded.
	ErrMissingBaseImage = errors.New("stepmark: base image unavailable")

	// ErrTextOnly is returned by Flatten for steps without a screenshot.
	ErrTextOnly = errors.New("stepmark: step has no screenshot")
)
