package glow

// Effect is a constructed glow effect for one mesh.
//
// All state is captured at construction: the configuration by value, the
// bounds extracted once from the mesh and the material derived from the
// mesh's capabilities. An Effect is never mutated afterwards and is safe to
// share between goroutines. To change parameters, construct a new Effect.
type Effect struct {
	config   Config
	bounds   Bounds
	fallback bool
	material Material
}

// New constructs the effect.
//
// Construction never fails. Without a mesh, or with a mesh whose geometry has
// no usable bounding box, the bounds fall back to the unit square.
func New(opts ...Option) *Effect {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bounds, ok := ExtractBounds(o.mesh, o.config.Plane)
	if !ok {
		Logger().Debug("glow: mesh bounds unavailable, using unit square",
			"mesh", o.mesh != nil)
	}

	caps := CapabilitiesOf(o.mesh)
	fx := &Effect{
		config:   o.config,
		bounds:   bounds,
		fallback: !ok,
		material: ConfigureMaterial(caps),
	}

	Logger().Debug("glow: effect constructed",
		"bounds", bounds,
		"plane", o.config.Plane.String(),
		"skinning", caps.Skinning)
	return fx
}

// Config returns a copy of the captured configuration.
func (fx *Effect) Config() Config {
	return fx.config
}

// Bounds returns the bounds extracted at construction.
func (fx *Effect) Bounds() Bounds {
	return fx.bounds
}

// BoundsFallback reports whether Bounds is the unit-square fallback.
func (fx *Effect) BoundsFallback() bool {
	return fx.fallback
}

// Material returns the base material for the host to apply.
func (fx *Effect) Material() Material {
	return fx.material
}

// Uniforms returns the uniform values bound to the stages.
func (fx *Effect) Uniforms() Uniforms {
	return newUniforms(fx.config, fx.bounds)
}

// AttachStages installs the vertex and fragment stage code into p.
//
// It registers the GlowParams uniform block, three varyings (rim intensity
// and the two normalized coordinates), prepends the declarations to each
// stage and injects the stage bodies at PointBeginVertex and
// PointFragmentEnd. It may be called for several programs, for example one
// per pipeline variant.
func (fx *Effect) AttachStages(p ProgramBuilder) error {
	if p == nil {
		return ErrNilProgram
	}
	if err := attachStages(p, fx.Uniforms(), fx.config.Plane); err != nil {
		return err
	}
	Logger().Debug("glow: stages attached")
	return nil
}

// Shade evaluates the effect on the CPU for one surface sample, using the
// captured configuration and bounds.
func (fx *Effect) Shade(viewNormal, local Vec3) (RGB, float32) {
	return Shade(fx.config, fx.bounds, viewNormal, local)
}
