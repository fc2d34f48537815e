package coo

import "errors"

var (
	// ErrInvalidDimensions is returned when a matrix dimension is not positive.
	ErrInvalidDimensions = errors.New("coo: dimensions must be positive")

	// ErrInvalidDensity is returned when the requested density lies outside [0, 1].
	// Clamping out-of-range input is the caller's job; the generator never does it.
	ErrInvalidDensity = errors.New("coo: density outside [0, 1]")
)
