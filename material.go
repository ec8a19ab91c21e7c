package glow

import "github.com/gogpu/gputypes"

// Side selects which faces of a surface are rendered.
type Side uint8

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	case SideDouble:
		return "double"
	default:
		return "unknown"
	}
}

// Blending selects how fragment color is composited onto the framebuffer.
type Blending uint8

const (
	// BlendNormal is straight alpha blending (src*a + dst*(1-a)).
	BlendNormal Blending = iota

	// BlendAdditive adds src*a to the framebuffer, no depth sort needed.
	BlendAdditive
)

// String returns the blending name.
func (b Blending) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// Capabilities are the material features derived from the target mesh.
type Capabilities struct {
	// Skinning enables bone-driven vertex deformation before the vertex stage.
	Skinning bool
}

// CapabilitiesOf derives capabilities once from the mesh's declared kind.
// A nil mesh has none.
func CapabilitiesOf(m Mesh) Capabilities {
	if m == nil {
		return Capabilities{}
	}
	return Capabilities{Skinning: m.Kind() == MeshSkinned}
}

// Material is the base surface state the host renderer applies to the mesh.
// Color output is computed entirely by the injected stages, so BaseColor
// stays neutral and no lighting model is attached.
type Material struct {
	Transparent bool
	Side        Side
	Blending    Blending
	DepthWrite  bool
	DepthTest   bool
	Skinning    bool
	BaseColor   RGB
}

// ConfigureMaterial returns the glow base material: transparent, double-sided
// so the rim is visible from inside thin or concave geometry, additively
// blended, and not writing depth so the glow never hides what is behind it.
func ConfigureMaterial(caps Capabilities) Material {
	return Material{
		Transparent: true,
		Side:        SideDouble,
		Blending:    BlendAdditive,
		DepthWrite:  false,
		DepthTest:   true,
		Skinning:    caps.Skinning,
		BaseColor:   White,
	}
}

// BlendState returns the WebGPU blend state for the material.
func (m Material) BlendState() gputypes.BlendState {
	if m.Blending == BlendAdditive {
		add := gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOne,
			Operation: gputypes.BlendOperationAdd,
		}
		return gputypes.BlendState{Color: add, Alpha: add}
	}
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// ColorTarget returns the color target state for a render target format.
// Opaque materials get no blend state.
func (m Material) ColorTarget(format gputypes.TextureFormat) gputypes.ColorTargetState {
	target := gputypes.ColorTargetState{
		Format:    format,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
	if m.Transparent {
		blend := m.BlendState()
		target.Blend = &blend
	}
	return target
}

// Primitive returns the primitive state: triangle list, culling per Side.
func (m Material) Primitive() gputypes.PrimitiveState {
	cull := gputypes.CullModeNone
	switch m.Side {
	case SideFront:
		cull = gputypes.CullModeBack
	case SideBack:
		cull = gputypes.CullModeFront
	}
	return gputypes.PrimitiveState{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  cull,
	}
}

// DepthCompare returns the depth comparison for the material.
func (m Material) DepthCompare() gputypes.CompareFunction {
	if m.DepthTest {
		return gputypes.CompareFunctionLessEqual
	}
	return gputypes.CompareFunctionAlways
}
