package glow

import "errors"

var (
	// ErrInvalidColor is returned when a color string is neither hex nor a known name.
	ErrInvalidColor = errors.New("glow: invalid color")

	// ErrInvalidPlane is returned for an unrecognized plane name.
	ErrInvalidPlane = errors.New("glow: invalid plane")

	// ErrUnknownFormat is returned when a config file format cannot be determined.
	ErrUnknownFormat = errors.New("glow: unknown config format")

	// ErrUnknownInjectionPoint is returned by a ProgramBuilder that has no
	// injection point of the requested name.
	ErrUnknownInjectionPoint = errors.New("glow: unknown injection point")

	// ErrNilProgram is returned when AttachStages is called with a nil builder.
	ErrNilProgram = errors.New("glow: program builder is nil")
)

// Validation errors reported by Config.Validate.
var (
	ErrInvertedWindow = errors.New("glow: window min exceeds max")
	ErrWindowRange    = errors.New("glow: window outside [0, 1]")
	ErrNonFinite      = errors.New("glow: value is NaN or infinite")
	ErrAlphaRange     = errors.New("glow: alpha outside [0, 1]")
)
