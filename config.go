package glow

import (
	"errors"
	"fmt"
)

// Default effect parameters.
const (
	DefaultRimCoefficient float32 = 1.0
	DefaultRimExponent    float32 = 2.7
	DefaultAlpha          float32 = 0.4
)

// Window is the highlight rectangle in normalized surface coordinates.
// The zero Window is empty and produces no highlight.
type Window struct {
	XMin, XMax float32
	YMin, YMax float32
}

// Width returns XMax - XMin.
func (w Window) Width() float32 {
	return w.XMax - w.XMin
}

// Height returns YMax - YMin.
func (w Window) Height() float32 {
	return w.YMax - w.YMin
}

// Config holds every tunable parameter of the effect.
//
// Config is a plain value: an Effect copies it at construction and never
// reads it back, so later changes to a Config variable do not affect an
// existing Effect.
type Config struct {
	// GlowColor is the rim glow color.
	GlowColor RGB

	// HighlightColor is the highlight window color.
	HighlightColor RGB

	// RimCoefficient (c) shifts the rim threshold: intensity reaches zero
	// where |n·view| equals c.
	RimCoefficient float32

	// RimExponent (p) sharpens the rim falloff.
	RimExponent float32

	// Alpha scales the output opacity.
	Alpha float32

	// Window is the highlight rectangle in normalized coordinates.
	Window Window

	// Softness is the width of the smooth edge of the window, >= 0.
	// It is clamped per axis to half the window extent when shading.
	Softness float32

	// Plane selects the local axes the window is laid out on.
	Plane Plane
}

// DefaultConfig returns the default configuration: cyan glow, lavender
// highlight, c=1.0, p=2.7, alpha=0.4 and an empty highlight window.
func DefaultConfig() Config {
	return Config{
		GlowColor:      DefaultGlowColor,
		HighlightColor: DefaultHighlightColor,
		RimCoefficient: DefaultRimCoefficient,
		RimExponent:    DefaultRimExponent,
		Alpha:          DefaultAlpha,
	}
}

// Validate reports parameters that produce a degenerate or surprising result:
// non-finite values, an inverted window, window coordinates outside [0, 1] and
// alpha outside [0, 1]. It is advisory. New accepts any Config and passes
// window values through unchanged, so a NaN window coordinate reaches the
// shading and turns the mask and alpha NaN.
func (c Config) Validate() error {
	var errs []error

	values := []struct {
		name string
		v    float32
	}{
		{"rimCoefficient", c.RimCoefficient},
		{"rimExponent", c.RimExponent},
		{"alpha", c.Alpha},
		{"softness", c.Softness},
		{"windowXMin", c.Window.XMin},
		{"windowXMax", c.Window.XMax},
		{"windowYMin", c.Window.YMin},
		{"windowYMax", c.Window.YMax},
	}
	for _, f := range values {
		if !finite(f.v) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNonFinite, f.name))
		}
	}

	w := c.Window
	if w.XMin > w.XMax {
		errs = append(errs, fmt.Errorf("%w: x [%g, %g]", ErrInvertedWindow, w.XMin, w.XMax))
	}
	if w.YMin > w.YMax {
		errs = append(errs, fmt.Errorf("%w: y [%g, %g]", ErrInvertedWindow, w.YMin, w.YMax))
	}
	for _, v := range []float32{w.XMin, w.XMax, w.YMin, w.YMax} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%w: %g", ErrWindowRange, v))
			break
		}
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		errs = append(errs, fmt.Errorf("%w: %g", ErrAlphaRange, c.Alpha))
	}

	return errors.Join(errs...)
}
