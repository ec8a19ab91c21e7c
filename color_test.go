package glow

import (
	"errors"
	"image/color"
	"testing"

	"github.com/chewxy/math32"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#00ffff", "#00ffff"},
		{"00FFFF", "#00ffff"},
		{"0xc0a2f5", "#c0a2f5"},
		{"#fff", "#ffffff"},
		{" #123456 ", "#123456"},
		{"0XC0A2F5", "#c0a2f5"},
		{"0x0f0", "#00ff00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := Hex(tt.in)
			if err != nil {
				t.Fatalf("Hex(%q) error: %v", tt.in, err)
			}
			if got := c.String(); got != tt.want {
				t.Errorf("Hex(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#gggggg", "#1234567", "#0x123456", "0x#123456", "##123456"} {
		if _, err := Hex(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("Hex(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"cyan", RGB{0, 1, 1}},
		{"White", White},
		{"#ff0000", RGB{1, 0, 0}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseColor("notacolor"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("ParseColor(notacolor) error = %v, want ErrInvalidColor", err)
	}
}

func TestDefaultColors(t *testing.T) {
	if got := DefaultGlowColor.String(); got != "#00ffff" {
		t.Errorf("DefaultGlowColor = %s, want #00ffff", got)
	}
	if got := DefaultHighlightColor.String(); got != "#c0a2f5" {
		t.Errorf("DefaultHighlightColor = %s, want #c0a2f5", got)
	}
}

func TestRGBColorClamps(t *testing.T) {
	got := RGB{R: 2, G: -1, B: 0.5}.Color()
	want := color.NRGBA{R: 255, G: 0, B: 128, A: 255}
	if got != want {
		t.Errorf("Color() = %v, want %v", got, want)
	}
}

func TestRGBColorNaN(t *testing.T) {
	got := RGB{R: math32.NaN(), G: 1, B: math32.NaN()}.Color()
	want := color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	if got != want {
		t.Errorf("Color() = %v, want %v", got, want)
	}
}

func TestFromColorUnpremultiplies(t *testing.T) {
	got := FromColor(color.RGBA{R: 128, A: 128})
	if got.R < 0.99 || got.G != 0 || got.B != 0 {
		t.Errorf("FromColor(half-alpha red) = %+v, want R≈1", got)
	}
}

func TestRGBArithmetic(t *testing.T) {
	got := RGB{R: 0.5, G: 0.25, B: 1}.Scale(2).Add(RGB{R: 0.1})
	want := RGB{R: 1.1, G: 0.5, B: 2}
	if !approx(got.R, want.R) || !approx(got.G, want.G) || !approx(got.B, want.B) {
		t.Errorf("Scale/Add = %+v, want %+v", got, want)
	}
}
