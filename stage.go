package glow

import (
	"fmt"
	"strings"
)

// Stage identifies a programmable pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// InjectionPoint names a location in a host stage where code is inserted.
type InjectionPoint string

// Injection points used by the effect, and the WGSL identifiers the host must
// have in scope at each of them.
const (
	// PointBeginVertex follows skinning, where these are in scope:
	//   transformed:   vec3<f32>   local position after deformation
	//   object_normal: vec3<f32>   local normal after deformation
	//   normal_matrix: mat3x3<f32> local-to-view normal transform
	PointBeginVertex InjectionPoint = "begin_vertex"

	// PointFragmentEnd is the end of the fragment stage, where this is in scope:
	//   frag_color: vec4<f32> (var) the color the stage returns
	PointFragmentEnd InjectionPoint = "dithering_fragment"
)

// ProgramBuilder is the part of a host shader program the effect writes to.
// Hosts implement it over their own shader sources and resource layout.
type ProgramBuilder interface {
	// Prepend adds declarations ahead of the stage source.
	Prepend(stage Stage, src string)

	// Inject inserts code right after the named injection point.
	// Returns an error wrapping ErrUnknownInjectionPoint if the stage has no
	// such point.
	Inject(stage Stage, point InjectionPoint, src string) error

	// Uniforms registers a uniform block visible to both stages and returns
	// the bind group and binding the host assigned to it.
	Uniforms(name string, data []byte) (group, binding uint32)

	// Varying declares an f32 value written by the vertex stage and
	// interpolated into the fragment stage. It returns the expression each
	// stage uses to access it.
	Varying(name string) (vertexRef, fragmentRef string)
}

// varyings holds the interpolated values shared by the two stages.
type varyings struct {
	intensity  [2]string
	normalized [2][2]string
}

// axisSwizzle maps a vector component index to its WGSL swizzle.
var axisSwizzle = [3]string{"x", "y", "z"}

// vertexDecls returns the vertex stage declarations.
func vertexDecls(group, binding uint32) string {
	return uniformStructWGSL + uniformVarWGSL(group, binding)
}

// fragmentDecls returns the fragment stage declarations.
func fragmentDecls(group, binding uint32) string {
	return uniformStructWGSL + uniformVarWGSL(group, binding) + smoothstepWGSL
}

func uniformVarWGSL(group, binding uint32) string {
	return fmt.Sprintf("@group(%d) @binding(%d) var<uniform> %s: GlowParams;\n", group, binding, uniformBlockName)
}

// smoothstepWGSL is the degenerate-safe smoothstep also implemented by Smoothstep.
const smoothstepWGSL = `
fn glow_smoothstep(e0: f32, e1: f32, x: f32) -> f32 {
    if (e1 <= e0) {
        return select(1.0, 0.0, x < e0);
    }
    let t = clamp((x - e0) / (e1 - e0), 0.0, 1.0);
    return t * t * (3.0 - 2.0 * t);
}
`

// vertexCode returns the rim intensity and normalized coordinate computation.
func vertexCode(plane Plane, v varyings) string {
	u, w := plane.Axes()
	var b strings.Builder
	b.WriteString("    let glow_view_normal = normalize(normal_matrix * object_normal);\n")
	b.WriteString("    let glow_dot_view = abs(dot(glow_view_normal, vec3<f32>(0.0, 0.0, 1.0)));\n")
	b.WriteString("    let glow_clamped = clamp(glow.rim_c - glow_dot_view, 0.0, 1.0);\n")
	// pow(0, p) is undefined in WGSL; the surface facing the camera must give 0.
	fmt.Fprintf(&b, "    %s = select(0.0, pow(glow_clamped, glow.rim_p), glow_clamped > 0.0);\n", v.intensity[0])
	fmt.Fprintf(&b, "    %s = (transformed.%s - glow.bounds.x) / max(glow.bounds.y - glow.bounds.x, %s);\n",
		v.normalized[0][0], axisSwizzle[u], wgslFloat(boundsEpsilon))
	fmt.Fprintf(&b, "    %s = (transformed.%s - glow.bounds.z) / max(glow.bounds.w - glow.bounds.z, %s);\n",
		v.normalized[1][0], axisSwizzle[w], wgslFloat(boundsEpsilon))
	return b.String()
}

// fragmentCode returns the highlight mask and final composite.
func fragmentCode(v varyings) string {
	nx, ny := v.normalized[0][1], v.normalized[1][1]
	var b strings.Builder
	b.WriteString("    let glow_soft_x = min(glow.softness, (glow.window.y - glow.window.x) * 0.5);\n")
	b.WriteString("    let glow_soft_y = min(glow.softness, (glow.window.w - glow.window.z) * 0.5);\n")
	fmt.Fprintf(&b, "    var glow_ty = glow_smoothstep(glow.window.z, glow.window.z + glow_soft_y, %s);\n", ny)
	fmt.Fprintf(&b, "    glow_ty *= 1.0 - glow_smoothstep(glow.window.w - glow_soft_y, glow.window.w, %s);\n", ny)
	fmt.Fprintf(&b, "    var glow_tx = glow_smoothstep(glow.window.x, glow.window.x + glow_soft_x, %s);\n", nx)
	fmt.Fprintf(&b, "    glow_tx *= 1.0 - glow_smoothstep(glow.window.y - glow_soft_x, glow.window.y, %s);\n", nx)
	b.WriteString("    let glow_highlight = clamp(glow_tx * glow_ty, 0.0, 1.0);\n")
	fmt.Fprintf(&b, "    let glow_intensity = %s;\n", v.intensity[1])
	b.WriteString("    let glow_final = glow.glow_color * glow_intensity + glow.highlight_color * glow_highlight;\n")
	b.WriteString("    frag_color = vec4<f32>(glow_final, glow.alpha * max(glow_intensity, glow_highlight));\n")
	return b.String()
}

// wgslFloat formats a float as a WGSL abstract float literal.
func wgslFloat(f float32) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// attachStages installs the two stages into p with the given uniforms and plane.
func attachStages(p ProgramBuilder, u Uniforms, plane Plane) error {
	group, binding := p.Uniforms(uniformBlockName, u.Marshal())

	var v varyings
	v.intensity[0], v.intensity[1] = p.Varying("glow_intensity")
	v.normalized[0][0], v.normalized[0][1] = p.Varying("glow_nx")
	v.normalized[1][0], v.normalized[1][1] = p.Varying("glow_ny")

	p.Prepend(StageVertex, vertexDecls(group, binding))
	p.Prepend(StageFragment, fragmentDecls(group, binding))

	if err := p.Inject(StageVertex, PointBeginVertex, vertexCode(plane, v)); err != nil {
		return fmt.Errorf("attach vertex stage: %w", err)
	}
	if err := p.Inject(StageFragment, PointFragmentEnd, fragmentCode(v)); err != nil {
		return fmt.Errorf("attach fragment stage: %w", err)
	}
	return nil
}
