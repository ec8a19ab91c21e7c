//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/glow"
	"github.com/gogpu/glow/shader"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// PipelineOptions configures render pipeline creation.
type PipelineOptions struct {
	// Label prefixes the debug labels of created objects. Default "glow".
	Label string

	// ColorFormat is the render target format. Default BGRA8Unorm.
	ColorFormat gputypes.TextureFormat

	// DepthFormat is the depth attachment format. Default Depth24PlusStencil8.
	// Set NoDepth to build a pipeline without depth/stencil state.
	DepthFormat gputypes.TextureFormat

	// NoDepth omits the depth/stencil state.
	NoDepth bool

	// SampleCount is the MSAA sample count. Default 1.
	SampleCount uint32

	// Compiled, if set, supplies SPIR-V for both stages instead of WGSL.
	Compiled *shader.Compiled
}

func (o *PipelineOptions) setDefaults() {
	if o.Label == "" {
		o.Label = "glow"
	}
	if o.ColorFormat == gputypes.TextureFormatUndefined {
		o.ColorFormat = gputypes.TextureFormatBGRA8Unorm
	}
	if o.DepthFormat == gputypes.TextureFormatUndefined {
		o.DepthFormat = gputypes.TextureFormatDepth24PlusStencil8
	}
	if o.SampleCount == 0 {
		o.SampleCount = 1
	}
}

// Pipeline owns the GPU objects of one glow render pipeline: the two shader
// modules, the three bind group layouts (camera, skin, effect), the pipeline
// layout and the render pipeline.
//
// Bind groups and buffers are the host's: it uploads the camera matrices,
// bone matrices and shader.Program.UniformBlocks data and binds them per draw.
type Pipeline struct {
	device hal.Device

	vertexShader   hal.ShaderModule
	fragmentShader hal.ShaderModule
	cameraLayout   hal.BindGroupLayout
	skinLayout     hal.BindGroupLayout
	effectLayout   hal.BindGroupLayout
	pipeLayout     hal.PipelineLayout
	pipeline       hal.RenderPipeline

	material glow.Material
	options  PipelineOptions
}

// NewPipeline compiles the program's stages on device and creates the render
// pipeline with the effect's material state: additive blending, no culling,
// depth test without depth write.
func NewPipeline(device hal.Device, fx *glow.Effect, prog *shader.Program, opts PipelineOptions) (*Pipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if fx == nil || prog == nil {
		return nil, ErrNilEffect
	}
	opts.setDefaults()

	p := &Pipeline{
		device:   device,
		material: fx.Material(),
		options:  opts,
	}
	if err := p.create(prog); err != nil {
		p.Destroy()
		return nil, err
	}
	slogger().Info("gpu: glow pipeline created",
		"label", opts.Label,
		"skinning", p.material.Skinning,
		"format", opts.ColorFormat)
	return p, nil
}

// create builds every GPU object in dependency order.
func (p *Pipeline) create(prog *shader.Program) error {
	var err error
	label := p.options.Label

	vsSource, fsSource := p.shaderSources(prog)
	p.vertexShader, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_vertex_shader",
		Source: vsSource,
	})
	if err != nil {
		return fmt.Errorf("compile vertex shader: %w", err)
	}
	p.fragmentShader, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_fragment_shader",
		Source: fsSource,
	})
	if err != nil {
		return fmt.Errorf("compile fragment shader: %w", err)
	}

	p.cameraLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_camera_layout",
		Entries: []gputypes.BindGroupLayoutEntry{uniformEntry(0, false)},
	})
	if err != nil {
		return fmt.Errorf("create camera layout: %w", err)
	}

	// Group 1 must exist even without skinning; it is then empty.
	var skinEntries []gputypes.BindGroupLayoutEntry
	if prog.Skinning() {
		skinEntries = append(skinEntries, uniformEntry(0, false))
	}
	p.skinLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_skin_layout",
		Entries: skinEntries,
	})
	if err != nil {
		return fmt.Errorf("create skin layout: %w", err)
	}

	blocks := prog.UniformBlocks()
	effectEntries := make([]gputypes.BindGroupLayoutEntry, 0, len(blocks))
	for _, b := range blocks {
		effectEntries = append(effectEntries, uniformEntry(b.Binding, true))
	}
	p.effectLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_effect_layout",
		Entries: effectEntries,
	})
	if err != nil {
		return fmt.Errorf("create effect layout: %w", err)
	}

	p.pipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.cameraLayout, p.skinLayout, p.effectLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	p.pipeline, err = p.device.CreateRenderPipeline(p.descriptor(prog.Skinning()))
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	return nil
}

// shaderSources picks SPIR-V when precompiled, WGSL otherwise.
func (p *Pipeline) shaderSources(prog *shader.Program) (vs, fs hal.ShaderSource) {
	if c := p.options.Compiled; c != nil {
		return hal.ShaderSource{SPIRV: c.Vertex}, hal.ShaderSource{SPIRV: c.Fragment}
	}
	return hal.ShaderSource{WGSL: prog.Source(glow.StageVertex)},
		hal.ShaderSource{WGSL: prog.Source(glow.StageFragment)}
}

// descriptor returns the render pipeline descriptor for the current modules
// and layout.
func (p *Pipeline) descriptor(skinning bool) *hal.RenderPipelineDescriptor {
	m := p.material
	desc := &hal.RenderPipelineDescriptor{
		Label:  p.options.Label + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.vertexShader,
			EntryPoint: shader.EntryVertex,
			Buffers:    []gputypes.VertexBufferLayout{VertexLayout(skinning)},
		},
		Fragment: &hal.FragmentState{
			Module:     p.fragmentShader,
			EntryPoint: shader.EntryFragment,
			Targets:    []gputypes.ColorTargetState{m.ColorTarget(p.options.ColorFormat)},
		},
		Primitive: m.Primitive(),
		Multisample: gputypes.MultisampleState{
			Count: p.options.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	}
	if !p.options.NoDepth {
		desc.DepthStencil = DepthStencilState(m, p.options.DepthFormat)
	}
	return desc
}

// DepthStencilState returns the depth/stencil state for a material. The
// stencil buffer is ignored (Compare=Always, all ops=Keep, masks=0).
func DepthStencilState(m glow.Material, format gputypes.TextureFormat) *hal.DepthStencilState {
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	return &hal.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: m.DepthWrite,
		DepthCompare:      m.DepthCompare(),
		StencilFront:      keep,
		StencilBack:       keep,
		StencilReadMask:   0x00,
		StencilWriteMask:  0x00,
	}
}

// uniformEntry is a uniform buffer binding visible to the vertex stage and,
// if fragment is set, the fragment stage.
func uniformEntry(binding uint32, fragment bool) gputypes.BindGroupLayoutEntry {
	entry := gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageVertex,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}
	if fragment {
		entry.Visibility = gputypes.ShaderStageVertex | gputypes.ShaderStageFragment
	}
	return entry
}

// RenderPipeline returns the created render pipeline.
func (p *Pipeline) RenderPipeline() hal.RenderPipeline {
	return p.pipeline
}

// Layouts returns the bind group layouts for groups 0 (camera), 1 (skin)
// and 2 (effect).
func (p *Pipeline) Layouts() [3]hal.BindGroupLayout {
	return [3]hal.BindGroupLayout{p.cameraLayout, p.skinLayout, p.effectLayout}
}

// Material returns the material the pipeline was built from.
func (p *Pipeline) Material() glow.Material {
	return p.material
}

// Destroy releases all GPU objects in reverse creation order. Safe to call
// multiple times.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	for _, l := range []*hal.BindGroupLayout{&p.effectLayout, &p.skinLayout, &p.cameraLayout} {
		if *l != nil {
			p.device.DestroyBindGroupLayout(*l)
			*l = nil
		}
	}
	if p.fragmentShader != nil {
		p.device.DestroyShaderModule(p.fragmentShader)
		p.fragmentShader = nil
	}
	if p.vertexShader != nil {
		p.device.DestroyShaderModule(p.vertexShader)
		p.vertexShader = nil
	}
}
