package config

import "errors"

var (
	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("config: parameter out of valid bounds")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("config: unknown preset")

	// ErrUnsupportedFormat indicates a config file extension with no codec.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrInvalidColor indicates a color that is not a #rrggbb hex string.
	ErrInvalidColor = errors.New("config: invalid color")
)
