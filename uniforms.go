package glow

import (
	"encoding/binary"
	"math"
)

// UniformSize is the byte size of the GlowParams uniform block.
const UniformSize = 80

// uniformBlockName is the name the effect registers its uniforms under.
const uniformBlockName = "glow"

// uniformStructWGSL is the WGSL declaration matching Uniforms.Marshal.
//
//	offset  0: glow_color (vec3<f32>) + rim_c (f32)
//	offset 16: highlight_color (vec3<f32>) + rim_p (f32)
//	offset 32: window (vec4<f32>: xmin, xmax, ymin, ymax)
//	offset 48: bounds (vec4<f32>: minx, maxx, miny, maxy)
//	offset 64: alpha, softness, 2 x padding (f32)
const uniformStructWGSL = `struct GlowParams {
    glow_color: vec3<f32>,
    rim_c: f32,
    highlight_color: vec3<f32>,
    rim_p: f32,
    window: vec4<f32>,
    bounds: vec4<f32>,
    alpha: f32,
    softness: f32,
    _pad0: f32,
    _pad1: f32,
}
`

// Uniforms is the CPU side of the GlowParams block: the configuration and the
// extracted bounds, bound once at construction.
type Uniforms struct {
	GlowColor      RGB
	RimCoefficient float32
	HighlightColor RGB
	RimExponent    float32
	Window         Window
	Bounds         Bounds
	Alpha          float32
	Softness       float32
}

// newUniforms packs a config and bounds.
func newUniforms(c Config, b Bounds) Uniforms {
	return Uniforms{
		GlowColor:      c.GlowColor,
		RimCoefficient: c.RimCoefficient,
		HighlightColor: c.HighlightColor,
		RimExponent:    c.RimExponent,
		Window:         c.Window,
		Bounds:         b,
		Alpha:          c.Alpha,
		Softness:       c.Softness,
	}
}

// Marshal serializes the uniforms into a little-endian buffer of UniformSize
// bytes laid out as GlowParams.
func (u Uniforms) Marshal() []byte {
	words := [UniformSize / 4]float32{
		u.GlowColor.R, u.GlowColor.G, u.GlowColor.B, u.RimCoefficient,
		u.HighlightColor.R, u.HighlightColor.G, u.HighlightColor.B, u.RimExponent,
		u.Window.XMin, u.Window.XMax, u.Window.YMin, u.Window.YMax,
		u.Bounds.MinX, u.Bounds.MaxX, u.Bounds.MinY, u.Bounds.MaxY,
		u.Alpha, u.Softness, 0, 0,
	}
	buf := make([]byte, UniformSize)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(w))
	}
	return buf
}
