// Command glowfx builds a glow effect, writes its generated WGSL stages and
// optionally renders a CPU preview.
//
// Usage:
//
//	glowfx -config glow.yaml -mesh model.obj -out shaders -preview glow.png
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/glow"
	"github.com/gogpu/glow/internal/meshio"
	"github.com/gogpu/glow/preview"
	"github.com/gogpu/glow/shader"
)

func main() {
	var (
		configPath  = flag.String("config", "", "effect config file (.yaml, .yml or .toml)")
		meshPath    = flag.String("mesh", "", "OBJ mesh (default: unit sphere)")
		skinned     = flag.Bool("skinned", false, "declare the mesh as skinned")
		plane       = flag.String("plane", "", "window plane: xy, xz or zy (overrides config)")
		outDir      = flag.String("out", "", "directory to write vertex.wgsl and fragment.wgsl")
		previewPath = flag.String("preview", "", "write a CPU preview PNG")
		size        = flag.Int("size", 256, "preview size in pixels")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		glow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(*configPath, *meshPath, *skinned, *plane, *outDir, *previewPath, *size); err != nil {
		log.Fatalf("glowfx: %v", err)
	}
}

func run(configPath, meshPath string, skinned bool, planeName, outDir, previewPath string, size int) error {
	cfg := glow.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = glow.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if planeName != "" {
		p, err := glow.ParsePlane(planeName)
		if err != nil {
			return err
		}
		cfg.Plane = p
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("warning: %v", err)
	}

	kind := glow.MeshStatic
	if skinned {
		kind = glow.MeshSkinned
	}
	mesh := glow.NewUVSphere(1, 48, 24)
	mesh.SetKind(kind)
	if meshPath != "" {
		m, err := meshio.LoadOBJ(meshPath, kind)
		if err != nil {
			return err
		}
		mesh = m
	}

	fx := glow.New(glow.WithMesh(mesh), glow.WithConfig(cfg))
	prog := shader.NewProgram(shader.Options{Skinning: fx.Material().Skinning})
	if err := fx.AttachStages(prog); err != nil {
		return err
	}
	compiled, err := prog.Compile()
	if err != nil {
		return err
	}

	b := fx.Bounds()
	log.Printf("bounds x [%g, %g] y [%g, %g] (fallback %v), skinning %v",
		b.MinX, b.MaxX, b.MinY, b.MaxY, fx.BoundsFallback(), fx.Material().Skinning)
	log.Printf("SPIR-V: vertex %d words, fragment %d words", len(compiled.Vertex), len(compiled.Fragment))

	if outDir != "" {
		if err := writeStages(prog, outDir); err != nil {
			return err
		}
	}

	if previewPath != "" {
		img := preview.Render(fx, preview.Options{Size: size})
		if err := preview.SavePNG(img, previewPath); err != nil {
			return err
		}
		log.Printf("preview saved to %s (%dx%d)", previewPath, size, size)
	}
	return nil
}

func writeStages(prog *shader.Program, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	files := []struct {
		name  string
		stage glow.Stage
	}{
		{"vertex.wgsl", glow.StageVertex},
		{"fragment.wgsl", glow.StageFragment},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(prog.Source(f.stage)), 0o644); err != nil { //nolint:gosec // shader source is not secret
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}
