package glow

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name      string
		e0, e1, x float32
		want      float32
	}{
		{"below", 0, 1, -1, 0},
		{"at e0", 0, 1, 0, 0},
		{"mid", 0, 1, 0.5, 0.5},
		{"at e1", 0, 1, 1, 1},
		{"above", 0, 1, 2, 1},
		{"degenerate below", 0.5, 0.5, 0.4, 0},
		{"degenerate at edge", 0.5, 0.5, 0.5, 1},
		{"inverted above", 0.6, 0.4, 0.7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Smoothstep(tt.e0, tt.e1, tt.x); !approx(got, tt.want) {
				t.Errorf("Smoothstep(%v, %v, %v) = %v, want %v", tt.e0, tt.e1, tt.x, got, tt.want)
			}
		})
	}
}

func TestRimIntensityEndpoints(t *testing.T) {
	c, p := DefaultRimCoefficient, DefaultRimExponent

	// Facing the viewer: |n·v| = 1 and c = 1 gives 0.
	if got := RimIntensity(V3(0, 0, 1), c, p); got != 0 {
		t.Errorf("RimIntensity(facing) = %v, want 0", got)
	}
	// Facing away counts the same, the surface is double-sided.
	if got := RimIntensity(V3(0, 0, -1), c, p); got != 0 {
		t.Errorf("RimIntensity(back) = %v, want 0", got)
	}
	// Silhouette: |n·v| = 0 gives clamp(c)^p = 1.
	if got := RimIntensity(V3(1, 0, 0), c, p); !approx(got, 1) {
		t.Errorf("RimIntensity(silhouette) = %v, want 1", got)
	}
	// Unnormalized input is normalized first.
	if got := RimIntensity(V3(5, 0, 0), c, p); !approx(got, 1) {
		t.Errorf("RimIntensity(unnormalized) = %v, want 1", got)
	}
}

func TestRimIntensityMonotonic(t *testing.T) {
	prev := float32(2)
	for i := 0; i <= 50; i++ {
		d := float32(i) / 50
		got := RimFromDot(d, DefaultRimCoefficient, DefaultRimExponent)
		if got > prev {
			t.Fatalf("RimFromDot(%v) = %v increased from %v", d, got, prev)
		}
		if got < 0 || got > 1 {
			t.Fatalf("RimFromDot(%v) = %v out of [0, 1]", d, got)
		}
		prev = got
	}
}

func TestRimIntensityAtThreshold(t *testing.T) {
	// At |n·v| == c the clamped term is 0, so intensity is 0 for any exponent.
	tests := []struct {
		name string
		c, p float32
	}{
		{"default", DefaultRimCoefficient, DefaultRimExponent},
		{"zero exponent", 1, 0},
		{"negative exponent", 1, -1},
		{"below one", 0.8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RimFromDot(tt.c, tt.c, tt.p)
			if got != 0 {
				t.Errorf("RimFromDot(%v, %v, %v) = %v, want 0", tt.c, tt.c, tt.p, got)
			}
			_, a := Composite(DefaultConfig(), got, 0)
			if a != 0 {
				t.Errorf("alpha = %v, want 0", a)
			}
		})
	}
}

func TestRimIntensitySilhouetteUsesExponent(t *testing.T) {
	// At |n·v| == 0 intensity is c^p.
	tests := []struct{ c, p float32 }{
		{0.8, 2.7},
		{0.5, 2},
		{0.8, 1},
	}
	for _, tt := range tests {
		want := math32.Pow(tt.c, tt.p)
		if got := RimFromDot(0, tt.c, tt.p); !approx(got, want) {
			t.Errorf("RimFromDot(0, %v, %v) = %v, want %v", tt.c, tt.p, got, want)
		}
	}
	if got := RimFromDot(0, 0.5, 2); !approx(got, 0.25) {
		t.Errorf("RimFromDot(0, 0.5, 2) = %v, want 0.25", got)
	}

	const c, p = 0.8, 2.7
	prev := float32(2)
	for i := 0; i <= 40; i++ {
		d := c * float32(i) / 40
		got := RimFromDot(d, c, p)
		if got > prev {
			t.Fatalf("RimFromDot(%v, %v, %v) = %v increased from %v", d, c, p, got, prev)
		}
		prev = got
	}
	if prev != 0 {
		t.Errorf("RimFromDot(c, c, p) = %v, want 0", prev)
	}
}

func TestHighlightMaskNaNWindow(t *testing.T) {
	w := Window{XMin: math32.NaN(), XMax: 0.8, YMin: 0.2, YMax: 0.8}
	if got := HighlightMask(w, 0.05, 0.5, 0.5); !math32.IsNaN(got) {
		t.Errorf("mask with NaN window = %v, want NaN", got)
	}
	c := DefaultConfig()
	c.Window = w
	if err := c.Validate(); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Validate() = %v, want ErrNonFinite", err)
	}
}

func TestRimIntensityCoefficient(t *testing.T) {
	// c above 1 keeps a glow on surfaces facing the viewer.
	got := RimFromDot(1, 1.5, 1)
	if !approx(got, 0.5) {
		t.Errorf("RimFromDot(1, 1.5, 1) = %v, want 0.5", got)
	}
	// c below the dot clamps to 0.
	if got := RimFromDot(0.8, 0.5, 2); got != 0 {
		t.Errorf("RimFromDot(0.8, 0.5, 2) = %v, want 0", got)
	}
}

func TestHighlightMask(t *testing.T) {
	w := Window{XMin: 0.2, XMax: 0.8, YMin: 0.2, YMax: 0.8}
	const s = 0.05

	if got := HighlightMask(w, s, 0.5, 0.5); !approx(got, 1) {
		t.Errorf("center mask = %v, want 1", got)
	}
	for _, p := range [][2]float32{{0, 0}, {1, 1}, {0, 1}, {1, 0}, {0.1, 0.5}, {0.5, 0.9}} {
		if got := HighlightMask(w, s, p[0], p[1]); got != 0 {
			t.Errorf("mask%v = %v, want 0", p, got)
		}
	}

	// Rising ramp on [0.2, 0.25], falling ramp on [0.75, 0.8].
	prev := float32(-1)
	for x := float32(0.2); x <= 0.25; x += 0.005 {
		got := HighlightMask(w, s, x, 0.5)
		if got < prev {
			t.Fatalf("rising ramp decreased at x=%v: %v < %v", x, got, prev)
		}
		prev = got
	}
	prev = 2
	for x := float32(0.75); x <= 0.8; x += 0.005 {
		got := HighlightMask(w, s, x, 0.5)
		if got > prev {
			t.Fatalf("falling ramp increased at x=%v: %v > %v", x, got, prev)
		}
		prev = got
	}
}

func TestHighlightMaskSoftnessClamp(t *testing.T) {
	w := Window{XMin: 0.4, XMax: 0.6, YMin: 0.4, YMax: 0.6}
	sx, sy := EffectiveSoftness(w, 1)
	if !approx(sx, 0.1) || !approx(sy, 0.1) {
		t.Errorf("EffectiveSoftness = %v, %v; want 0.1, 0.1", sx, sy)
	}
	for i := 0; i <= 100; i++ {
		x := float32(i) / 100
		if got := HighlightMask(w, 1, x, 0.5); got < 0 || got > 1 {
			t.Fatalf("mask(%v, 0.5) = %v out of [0, 1]", x, got)
		}
	}
}

func TestHighlightMaskZeroSoftness(t *testing.T) {
	w := Window{XMin: 0.2, XMax: 0.8, YMin: 0.2, YMax: 0.8}
	if got := HighlightMask(w, 0, 0.5, 0.5); got != 1 {
		t.Errorf("hard window center = %v, want 1", got)
	}
	if got := HighlightMask(w, 0, 0.1, 0.5); got != 0 {
		t.Errorf("hard window outside = %v, want 0", got)
	}
	if got := HighlightMask(w, 0, 0.9, 0.5); got != 0 {
		t.Errorf("hard window beyond max = %v, want 0", got)
	}
}

func TestHighlightMaskEmptyWindow(t *testing.T) {
	var w Window
	for _, p := range [][2]float32{{0, 0}, {0.5, 0.5}, {1, 1}} {
		if got := HighlightMask(w, 0.1, p[0], p[1]); got != 0 {
			t.Errorf("empty window mask%v = %v, want 0", p, got)
		}
	}
}

func TestCompositeAlphaRange(t *testing.T) {
	c := DefaultConfig()
	for i := 0; i <= 10; i++ {
		for j := 0; j <= 10; j++ {
			intensity, mask := float32(i)/10, float32(j)/10
			_, a := Composite(c, intensity, mask)
			if a < 0 || a > c.Alpha+tolerance {
				t.Fatalf("Composite(%v, %v) alpha = %v, want in [0, %v]", intensity, mask, a, c.Alpha)
			}
		}
	}
	col, a := Composite(c, 1, 0)
	if col != c.GlowColor || !approx(a, c.Alpha) {
		t.Errorf("Composite(1, 0) = %+v, %v; want glow color, alpha", col, a)
	}
	col, a = Composite(c, 0, 0)
	if col != (RGB{}) || a != 0 {
		t.Errorf("Composite(0, 0) = %+v, %v; want black, 0", col, a)
	}
}

func TestShadeCombinesStages(t *testing.T) {
	c := DefaultConfig()
	c.Window = Window{XMin: 0.2, XMax: 0.8, YMin: 0.2, YMax: 0.8}
	b := Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}

	// Center of the front face: no rim, full highlight.
	col, a := Shade(c, b, V3(0, 0, 1), V3(0, 0, 1))
	if !approx(col.R, c.HighlightColor.R) || !approx(a, c.Alpha) {
		t.Errorf("center = %+v, %v; want highlight, %v", col, a, c.Alpha)
	}

	// Silhouette outside the window: rim only.
	col, a = Shade(c, b, V3(1, 0, 0), V3(1, 0, 0))
	if !approx(col.G, 1) || !approx(col.R, 0) || !approx(a, c.Alpha) {
		t.Errorf("silhouette = %+v, %v; want glow, %v", col, a, c.Alpha)
	}
	if !finite(a) || math32.IsNaN(col.B) {
		t.Error("Shade produced NaN")
	}
}
