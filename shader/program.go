// Package shader provides a reference WGSL host program for glow effects.
//
// Program implements [glow.ProgramBuilder] over a small built-in vertex and
// fragment stage: a camera uniform block, optional four-bone skinning and the
// two injection points the effect uses. Hosts with their own shader sources
// implement glow.ProgramBuilder directly; Program also serves as the
// executable example of the contract.
//
// Usage:
//
//	fx := glow.New(glow.WithMesh(mesh))
//	prog := shader.NewProgram(shader.Options{Skinning: fx.Material().Skinning})
//	if err := fx.AttachStages(prog); err != nil {
//	    return err
//	}
//	compiled, err := prog.Compile()
package shader

import (
	"fmt"
	"strings"

	"github.com/gogpu/glow"
)

// Bind group indices used by Program.
const (
	CameraGroup uint32 = 0
	SkinGroup   uint32 = 1
	EffectGroup uint32 = 2
)

// Uniform block sizes in bytes.
const (
	// CameraSize holds model, view, projection and normal matrices.
	CameraSize = 4 * 64

	// SkinSize holds MaxBones bone matrices.
	SkinSize = MaxBones * 64
)

// Stage entry points.
const (
	EntryVertex   = "vs_main"
	EntryFragment = "fs_main"
)

// Options configures a Program.
type Options struct {
	// Skinning adds joint/weight inputs and the bone matrix block.
	Skinning bool

	// BaseColor is the color before injected fragment code runs.
	// Nil means white.
	BaseColor *glow.RGB
}

// UniformBlock is a uniform buffer registered through Uniforms.
type UniformBlock struct {
	Name    string
	Group   uint32
	Binding uint32
	Data    []byte
}

// stageSource is the mutable state of one stage.
type stageSource struct {
	base     string
	prepends []string
	inject   map[glow.InjectionPoint][]string
}

// Program is a two-stage WGSL program assembled from templates, prepended
// declarations and injected code. It is not safe for concurrent mutation.
type Program struct {
	opts     Options
	stages   [2]*stageSource
	uniforms []UniformBlock
	varyings []string
}

// NewProgram creates a program from the built-in stage templates.
func NewProgram(opts Options) *Program {
	base := glow.White
	if opts.BaseColor != nil {
		base = *opts.BaseColor
	}
	data := templateData{
		Skinning:  opts.Skinning,
		MaxBones:  MaxBones,
		BaseColor: fmt.Sprintf("vec3<f32>(%s, %s, %s)", f32(base.R), f32(base.G), f32(base.B)),
	}
	return &Program{
		opts: opts,
		stages: [2]*stageSource{
			glow.StageVertex:   {base: render(vertexTemplate, data), inject: map[glow.InjectionPoint][]string{}},
			glow.StageFragment: {base: render(fragmentTemplate, data), inject: map[glow.InjectionPoint][]string{}},
		},
	}
}

// Skinning reports whether the program deforms vertices with bone matrices.
func (p *Program) Skinning() bool {
	return p.opts.Skinning
}

func (p *Program) stage(s glow.Stage) *stageSource {
	if int(s) >= len(p.stages) {
		return nil
	}
	return p.stages[s]
}

// Prepend adds declarations ahead of the stage source.
func (p *Program) Prepend(s glow.Stage, src string) {
	st := p.stage(s)
	if st == nil {
		return
	}
	st.prepends = append(st.prepends, src)
}

// Inject inserts src on the line after the injection point marker.
func (p *Program) Inject(s glow.Stage, point glow.InjectionPoint, src string) error {
	st := p.stage(s)
	if st == nil || point == markerVaryings || !strings.Contains(st.base, marker(string(point))) {
		return fmt.Errorf("%w: %s stage has no %q", glow.ErrUnknownInjectionPoint, s, point)
	}
	st.inject[point] = append(st.inject[point], src)
	return nil
}

// Uniforms registers a uniform block in EffectGroup, bindings in registration
// order. Registering the same name again replaces its data and keeps its slot.
func (p *Program) Uniforms(name string, data []byte) (group, binding uint32) {
	for i := range p.uniforms {
		if p.uniforms[i].Name == name {
			p.uniforms[i].Data = data
			return p.uniforms[i].Group, p.uniforms[i].Binding
		}
	}
	b := UniformBlock{
		Name:    name,
		Group:   EffectGroup,
		Binding: uint32(len(p.uniforms)), //nolint:gosec // block count is tiny
		Data:    data,
	}
	p.uniforms = append(p.uniforms, b)
	return b.Group, b.Binding
}

// UniformBlocks returns the registered effect uniform blocks.
func (p *Program) UniformBlocks() []UniformBlock {
	return p.uniforms
}

// Varying declares an interpolated f32 at the next free location.
func (p *Program) Varying(name string) (vertexRef, fragmentRef string) {
	found := false
	for _, v := range p.varyings {
		if v == name {
			found = true
			break
		}
	}
	if !found {
		p.varyings = append(p.varyings, name)
	}
	return "vs_out." + name, "fs_in." + name
}

// Varyings returns the declared varying names in location order.
func (p *Program) Varyings() []string {
	return p.varyings
}

// Source returns the assembled WGSL of a stage.
func (p *Program) Source(s glow.Stage) string {
	st := p.stage(s)
	if st == nil {
		return ""
	}

	var b strings.Builder
	for _, pre := range st.prepends {
		b.WriteString(pre)
		if !strings.HasSuffix(pre, "\n") {
			b.WriteByte('\n')
		}
	}
	if len(st.prepends) > 0 {
		b.WriteByte('\n')
	}

	for _, line := range strings.SplitAfter(st.base, "\n") {
		b.WriteString(line)
		name, ok := markerName(line)
		if !ok {
			continue
		}
		if name == markerVaryings {
			for i, v := range p.varyings {
				fmt.Fprintf(&b, "    @location(%d) %s: f32,\n", i, v)
			}
			continue
		}
		for _, src := range st.inject[glow.InjectionPoint(name)] {
			b.WriteString(src)
			if !strings.HasSuffix(src, "\n") {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// markerName returns the injection point name if line is a marker line.
func markerName(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, markerPrefix) || !strings.HasSuffix(t, ">") {
		return "", false
	}
	return t[len(markerPrefix) : len(t)-1], true
}

// f32 formats a float as a WGSL float literal.
func f32(v float32) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
