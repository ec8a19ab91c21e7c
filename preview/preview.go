// Package preview renders a glow effect on the CPU for inspection.
//
// The preview draws a unit sphere centered at the origin under an
// orthographic camera looking down -Z, with the view and local frames
// aligned. Build the effect with a unit sphere mesh (glow.NewUVSphere(1, ...))
// so its bounds match the rendered surface.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/chewxy/math32"
	"github.com/gogpu/glow"
)

// Options configures a preview render.
type Options struct {
	// Size is the image width and height in pixels. Default 256.
	Size int

	// Background is the color the effect is blended onto. Default black.
	Background color.NRGBA
}

// Render shades every pixel covered by the sphere. Both the front and the
// back surface are blended, as the double-sided additive material does on
// the GPU: out = background + color*alpha per surface.
func Render(fx *glow.Effect, opts Options) *image.NRGBA {
	size := opts.Size
	if size <= 0 {
		size = 256
	}
	bg := opts.Background
	if bg.A == 0 {
		bg = color.NRGBA{A: 255}
	}
	bgRGB := glow.FromColor(bg)

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for py := 0; py < size; py++ {
		y := 1 - 2*(float32(py)+0.5)/float32(size)
		for px := 0; px < size; px++ {
			x := 2*(float32(px)+0.5)/float32(size) - 1
			out := bgRGB
			if r2 := x*x + y*y; r2 <= 1 {
				z := math32.Sqrt(1 - r2)
				for _, p := range [2]glow.Vec3{{X: x, Y: y, Z: z}, {X: x, Y: y, Z: -z}} {
					c, a := fx.Shade(p, p)
					out = out.Add(c.Scale(a))
				}
			}
			img.SetNRGBA(px, py, out.Color())
		}
	}
	return img
}

// SavePNG writes an image to path as PNG.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}
