package glow

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"golang.org/x/image/colornames"
)

// RGB is a linear color with components in [0, 1].
type RGB struct {
	R, G, B float32
}

// Default effect colors.
var (
	// DefaultGlowColor is cyan (#00ffff).
	DefaultGlowColor = RGB{R: 0, G: 1, B: 1}

	// DefaultHighlightColor is lavender (#c0a2f5).
	DefaultHighlightColor = RGB{R: 0xc0 / 255.0, G: 0xa2 / 255.0, B: 0xf5 / 255.0}

	// White is the neutral base color.
	White = RGB{R: 1, G: 1, B: 1}
)

// FromColor converts a standard color.Color to RGB, dropping alpha.
// Premultiplied input is unpremultiplied first.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
	}
}

// Color converts RGB to an opaque color.NRGBA. NaN components become 0.
func (c RGB) Color() color.NRGBA {
	return color.NRGBA{
		R: toByte(c.R),
		G: toByte(c.G),
		B: toByte(c.B),
		A: 255,
	}
}

// Scale returns the color multiplied by s.
func (c RGB) Scale(s float32) RGB {
	return RGB{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Add returns the component-wise sum of two colors.
func (c RGB) Add(o RGB) RGB {
	return RGB{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Hex parses "#RGB", "#RRGGBB" or "0xRRGGBB". At most one leading marker
// ("#", "0x" or "0X") is accepted and it is optional.
func Hex(s string) (RGB, error) {
	h := strings.TrimSpace(s)
	for _, prefix := range []string{"#", "0x", "0X"} {
		if rest, ok := strings.CutPrefix(h, prefix); ok {
			h = rest
			break
		}
	}
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB{
		R: float32(v>>16&0xff) / 255,
		G: float32(v>>8&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, nil
}

// ParseColor parses a hex color or an SVG 1.1 color name such as "cyan".
func ParseColor(s string) (RGB, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return FromColor(c), nil
	}
	return Hex(s)
}

// String returns the color as "#rrggbb".
func (c RGB) String() string {
	n := c.Color()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func toByte(x float32) uint8 {
	if math32.IsNaN(x) {
		return 0
	}
	return uint8(clampUnit(x)*255 + 0.5)
}

func clampUnit(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
