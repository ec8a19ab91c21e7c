package glow

import "github.com/chewxy/math32"

// This file is the CPU reference of the two shader stages. The WGSL emitted
// by stage.go computes the same functions.

// viewAxis is the camera-facing direction in view space.
var viewAxis = Vec3{X: 0, Y: 0, Z: 1}

// Smoothstep is the cubic Hermite ramp from 0 at e0 to 1 at e1.
// For e1 <= e0 it degrades to a hard step at e0.
func Smoothstep(e0, e1, x float32) float32 {
	if e1 <= e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := clampUnit((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// RimIntensity returns clamp(c - |n·view|, 0, 1)^p for a view-space normal.
// The normal is normalized first.
func RimIntensity(viewNormal Vec3, c, p float32) float32 {
	dotView := math32.Abs(viewNormal.Normalize().Dot(viewAxis))
	return RimFromDot(dotView, c, p)
}

// RimFromDot is RimIntensity with |n·view| already computed.
// A zero clamped term gives 0 for any exponent, matching the vertex stage.
func RimFromDot(dotView, c, p float32) float32 {
	clamped := clampUnit(c - dotView)
	if clamped <= 0 {
		return 0
	}
	return math32.Pow(clamped, p)
}

// EffectiveSoftness clamps softness on each axis to half the window extent,
// so the rising and falling ramps of one axis never overlap.
func EffectiveSoftness(w Window, softness float32) (sx, sy float32) {
	sx = math32.Min(softness, w.Width()*0.5)
	sy = math32.Min(softness, w.Height()*0.5)
	return sx, sy
}

// window1D is the product of a rising edge at lo and a falling edge at hi.
func window1D(lo, hi, soft, x float32) float32 {
	t := Smoothstep(lo, lo+soft, x)
	return t * (1 - Smoothstep(hi-soft, hi, x))
}

// HighlightMask returns the soft rectangle mask at normalized (nx, ny):
// 1 in the window interior, ramping to 0 within the effective softness of each
// edge and 0 outside the window.
func HighlightMask(w Window, softness, nx, ny float32) float32 {
	sx, sy := EffectiveSoftness(w, softness)
	tX := window1D(w.XMin, w.XMax, sx, nx)
	tY := window1D(w.YMin, w.YMax, sy, ny)
	return clampUnit(tX * tY)
}

// Composite combines rim intensity and highlight mask into the final color
// and alpha. Colors add; alpha takes the max of the two terms so overlapping
// glow and highlight do not over-saturate opacity.
func Composite(c Config, intensity, highlight float32) (RGB, float32) {
	col := c.GlowColor.Scale(intensity).Add(c.HighlightColor.Scale(highlight))
	return col, c.Alpha * math32.Max(intensity, highlight)
}

// Shade evaluates both stages for one surface sample: a view-space normal and
// a local position. It is what the GPU computes for a fragment whose
// interpolated inputs equal the vertex outputs.
func Shade(c Config, b Bounds, viewNormal, local Vec3) (RGB, float32) {
	intensity := RimIntensity(viewNormal, c.RimCoefficient, c.RimExponent)
	nx, ny := b.NormalizePoint(local, c.Plane)
	mask := HighlightMask(c.Window, c.Softness, nx, ny)
	return Composite(c, intensity, mask)
}
