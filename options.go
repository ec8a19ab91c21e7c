package glow

// Option configures an Effect during construction.
//
// Example:
//
//	fx := glow.New(
//	    glow.WithMesh(mesh),
//	    glow.WithGlowColor(glow.RGB{R: 1, G: 0.5, B: 0}),
//	    glow.WithWindow(0.2, 0.8, 0.2, 0.8),
//	)
type Option func(*options)

// options holds the construction inputs.
type options struct {
	mesh   Mesh
	config Config
}

// defaultOptions returns options with no mesh and DefaultConfig.
func defaultOptions() options {
	return options{config: DefaultConfig()}
}

// WithMesh sets the target mesh. Without a mesh the bounds fall back to the
// unit square and no skinning is enabled.
func WithMesh(m Mesh) Option {
	return func(o *options) {
		o.mesh = m
	}
}

// WithConfig replaces the whole configuration. Options after it still apply.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.config = c
		if o.config.Softness < 0 {
			o.config.Softness = 0
		}
	}
}

// WithGlowColor sets the rim glow color.
func WithGlowColor(c RGB) Option {
	return func(o *options) {
		o.config.GlowColor = c
	}
}

// WithHighlightColor sets the highlight window color.
func WithHighlightColor(c RGB) Option {
	return func(o *options) {
		o.config.HighlightColor = c
	}
}

// WithRimCoefficient sets c, the rim threshold.
func WithRimCoefficient(c float32) Option {
	return func(o *options) {
		o.config.RimCoefficient = c
	}
}

// WithRimExponent sets p, the rim falloff exponent.
func WithRimExponent(p float32) Option {
	return func(o *options) {
		o.config.RimExponent = p
	}
}

// WithAlpha sets the output opacity scale.
func WithAlpha(a float32) Option {
	return func(o *options) {
		o.config.Alpha = a
	}
}

// WithWindow sets the highlight rectangle in normalized coordinates.
// Values are not clamped or reordered. A NaN coordinate makes the highlight
// mask and the output alpha NaN; use Config.Validate to catch it.
func WithWindow(xMin, xMax, yMin, yMax float32) Option {
	return func(o *options) {
		o.config.Window = Window{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	}
}

// WithSoftness sets the window edge width. Negative values are treated as 0.
func WithSoftness(s float32) Option {
	return func(o *options) {
		o.config.Softness = max(s, 0)
	}
}

// WithPlane selects the local axes the window is laid out on.
func WithPlane(p Plane) Option {
	return func(o *options) {
		o.config.Plane = p
	}
}
