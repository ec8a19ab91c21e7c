package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/glow"
)

func TestNewProgramTemplates(t *testing.T) {
	tests := []struct {
		name     string
		skinning bool
		want     []string
		absent   []string
	}{
		{
			name:   "static",
			want:   []string{"struct Camera", "fn vs_main", "var transformed = vin.position;"},
			absent: []string{"struct Skin", "joints"},
		},
		{
			name:     "skinned",
			skinning: true,
			want:     []string{"struct Skin", "array<mat4x4<f32>, 64>", "@location(2) joints: vec4<u32>", "skin_matrix"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgram(Options{Skinning: tt.skinning})
			if p.Skinning() != tt.skinning {
				t.Errorf("Skinning() = %v", p.Skinning())
			}
			vs := p.Source(glow.StageVertex)
			for _, s := range tt.want {
				if !strings.Contains(vs, s) {
					t.Errorf("vertex source missing %q", s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(vs, s) {
					t.Errorf("vertex source contains %q", s)
				}
			}
		})
	}
}

func TestProgramBaseColor(t *testing.T) {
	fs := NewProgram(Options{}).Source(glow.StageFragment)
	if !strings.Contains(fs, "vec4<f32>(vec3<f32>(1.0, 1.0, 1.0), 1.0)") {
		t.Errorf("default base color not white:\n%s", fs)
	}
	red := glow.RGB{R: 1}
	fs = NewProgram(Options{BaseColor: &red}).Source(glow.StageFragment)
	if !strings.Contains(fs, "vec3<f32>(1.0, 0.0, 0.0)") {
		t.Errorf("base color not applied:\n%s", fs)
	}
}

func TestProgramInject(t *testing.T) {
	p := NewProgram(Options{})
	if err := p.Inject(glow.StageVertex, glow.PointBeginVertex, "    let a = 1.0;"); err != nil {
		t.Fatalf("Inject() error: %v", err)
	}
	if err := p.Inject(glow.StageVertex, glow.PointBeginVertex, "    let b = 2.0;\n"); err != nil {
		t.Fatalf("Inject() error: %v", err)
	}
	vs := p.Source(glow.StageVertex)
	marker := "//#include <begin_vertex>\n    let a = 1.0;\n    let b = 2.0;\n"
	if !strings.Contains(vs, marker) {
		t.Errorf("injected code not after marker:\n%s", vs)
	}
}

func TestProgramInjectUnknown(t *testing.T) {
	p := NewProgram(Options{})
	tests := []struct {
		stage glow.Stage
		point glow.InjectionPoint
	}{
		{glow.StageVertex, glow.PointFragmentEnd},
		{glow.StageFragment, glow.PointBeginVertex},
		{glow.StageVertex, "varyings"},
		{glow.StageFragment, "no_such_point"},
		{glow.Stage(9), glow.PointBeginVertex},
	}
	for _, tt := range tests {
		err := p.Inject(tt.stage, tt.point, "x")
		if !errors.Is(err, glow.ErrUnknownInjectionPoint) {
			t.Errorf("Inject(%v, %q) = %v, want ErrUnknownInjectionPoint", tt.stage, tt.point, err)
		}
	}
}

func TestProgramPrepend(t *testing.T) {
	p := NewProgram(Options{})
	p.Prepend(glow.StageFragment, "const k = 1.0;")
	p.Prepend(glow.StageFragment, "const j = 2.0;\n")
	fs := p.Source(glow.StageFragment)
	if !strings.HasPrefix(fs, "const k = 1.0;\nconst j = 2.0;\n\nstruct FragmentInput") {
		t.Errorf("prepends not at start:\n%s", fs)
	}
	if strings.HasPrefix(p.Source(glow.StageVertex), "const") {
		t.Error("fragment prepend leaked into vertex stage")
	}
}

func TestProgramUniforms(t *testing.T) {
	p := NewProgram(Options{})
	g, b := p.Uniforms("a", []byte{1})
	if g != EffectGroup || b != 0 {
		t.Errorf("first block at %d/%d, want %d/0", g, b, EffectGroup)
	}
	if _, b := p.Uniforms("b", []byte{2}); b != 1 {
		t.Errorf("second block binding %d, want 1", b)
	}
	if _, b := p.Uniforms("a", []byte{3}); b != 0 {
		t.Errorf("re-registered block binding %d, want 0", b)
	}
	blocks := p.UniformBlocks()
	if len(blocks) != 2 || blocks[0].Data[0] != 3 {
		t.Errorf("blocks = %+v", blocks)
	}
}

func TestProgramVaryings(t *testing.T) {
	p := NewProgram(Options{})
	vs, fs := p.Varying("v0")
	if vs != "vs_out.v0" || fs != "fs_in.v0" {
		t.Errorf("Varying refs = %s, %s", vs, fs)
	}
	p.Varying("v1")
	p.Varying("v0")
	if got := strings.Join(p.Varyings(), ","); got != "v0,v1" {
		t.Errorf("Varyings() = %s, want v0,v1", got)
	}
	for _, s := range []glow.Stage{glow.StageVertex, glow.StageFragment} {
		src := p.Source(s)
		if !strings.Contains(src, "@location(0) v0: f32,") || !strings.Contains(src, "@location(1) v1: f32,") {
			t.Errorf("%v: varyings not declared:\n%s", s, src)
		}
	}
}

func TestProgramWithEffect(t *testing.T) {
	for _, skinning := range []bool{false, true} {
		mesh := glow.NewUVSphere(1, 8, 4)
		if skinning {
			mesh.SetKind(glow.MeshSkinned)
		}
		fx := glow.New(glow.WithMesh(mesh), glow.WithWindow(0.2, 0.8, 0.2, 0.8))
		p := NewProgram(Options{Skinning: fx.Material().Skinning})
		if err := fx.AttachStages(p); err != nil {
			t.Fatalf("AttachStages() error: %v", err)
		}

		vs := p.Source(glow.StageVertex)
		if !strings.Contains(vs, "@group(2) @binding(0) var<uniform> glow: GlowParams;") {
			t.Errorf("uniform binding missing:\n%s", vs)
		}
		// The effect reads the deformed position, so it must follow skinning.
		if skinning && strings.Index(vs, "vs_out.glow_intensity =") < strings.Index(vs, "transformed = (skin_matrix") {
			t.Error("effect code runs before skinning")
		}
		fs := p.Source(glow.StageFragment)
		if strings.Index(fs, "frag_color = vec4<f32>(glow_final") > strings.Index(fs, "return frag_color;") {
			t.Error("fragment effect code after return")
		}

		compiled, err := p.Compile()
		if err != nil {
			skipIfNagaUnsupported(t, err)
			t.Fatalf("Compile() error: %v", err)
		}
		if len(compiled.Vertex) == 0 || len(compiled.Fragment) == 0 {
			t.Fatal("empty SPIR-V")
		}
		if compiled.Vertex[0] != spirvMagic {
			t.Errorf("vertex magic = %#x, want SPIR-V magic", compiled.Vertex[0])
		}
	}
}

func TestCompileSPIRVEmpty(t *testing.T) {
	if _, err := CompileSPIRV(""); !errors.Is(err, ErrEmptySource) {
		t.Errorf("CompileSPIRV(\"\") = %v, want ErrEmptySource", err)
	}
}

func TestCompileSPIRVInvalid(t *testing.T) {
	if _, err := CompileSPIRV("fn broken( {"); err == nil {
		t.Error("CompileSPIRV(invalid) = nil error")
	}
}

func skipIfNagaUnsupported(t *testing.T, err error) {
	t.Helper()
	msg := err.Error()
	if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
		t.Skipf("Skipping: naga feature not yet implemented: %v", err)
	}
}

func TestSPIRVWords(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		want    []uint32
		wantErr bool
	}{
		{"module", []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00}, []uint32{spirvMagic, 0x00010000}, false},
		{"empty", nil, nil, true},
		{"partial word", []byte{0x03, 0x02, 0x23, 0x07, 0x01}, nil, true},
		{"bad magic", []byte{0x01, 0x02, 0x03, 0x04}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := spirvWords(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSPIRV) {
					t.Errorf("spirvWords() error = %v, want ErrInvalidSPIRV", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("spirvWords() error: %v", err)
			}
			if len(got) != len(tt.want) || got[0] != tt.want[0] || got[1] != tt.want[1] {
				t.Errorf("spirvWords() = %#x, want %#x", got, tt.want)
			}
		})
	}
}
