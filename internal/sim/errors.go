package sim

import "errors"

var (
	// ErrEmptyCanvas indicates a start or resize with a non-positive dimension.
	ErrEmptyCanvas = errors.New("sim: canvas must be at least 1x1")

	// ErrInterval indicates a non-positive tick interval.
	ErrInterval = errors.New("sim: tick interval must be positive")
)
