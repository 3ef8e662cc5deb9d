package domain

import "errors"

var (
	// ErrDuplicateSurface indicates a surface designator was defined twice.
	ErrDuplicateSurface = errors.New("pinout: surface already defined")
	// ErrInvalidDimensions indicates a grid with columns or rows below 1.
	ErrInvalidDimensions = errors.New("pinout: columns and rows must be at least 1")
	// ErrUnknownPin indicates a pin reference that resolves to no registered
	// surface pin and is not an acceptable free pin name.
	ErrUnknownPin = errors.New("pinout: unknown pin")
	// ErrMalformedTuple indicates a connection line that cannot yield pins.
	ErrMalformedTuple = errors.New("state: malformed connection tuple")
	// ErrStateCount indicates the number of state files does not match the
	// number of defined surfaces.
	ErrStateCount = errors.New("state file count does not match defined surfaces")
)
