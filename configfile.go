package glow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a config file encoding.
type Format uint8

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// configFile is the on-disk form of Config. Every key is optional.
type configFile struct {
	GlowColor      *string  `yaml:"glowColor" toml:"glowColor"`
	HighlightColor *string  `yaml:"highlightColor" toml:"highlightColor"`
	RimCoefficient *float32 `yaml:"rimCoefficient" toml:"rimCoefficient"`
	RimExponent    *float32 `yaml:"rimExponent" toml:"rimExponent"`
	Alpha          *float32 `yaml:"alpha" toml:"alpha"`
	WindowXMin     *float32 `yaml:"windowXMin" toml:"windowXMin"`
	WindowXMax     *float32 `yaml:"windowXMax" toml:"windowXMax"`
	WindowYMin     *float32 `yaml:"windowYMin" toml:"windowYMin"`
	WindowYMax     *float32 `yaml:"windowYMax" toml:"windowYMax"`
	Softness       *float32 `yaml:"softness" toml:"softness"`
	Plane          *string  `yaml:"plane" toml:"plane"`
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) config file.
// Keys absent from the file keep their DefaultConfig values.
//
// Example file:
//
//	glowColor: "#00ffff"
//	highlightColor: lavender
//	rimExponent: 3
//	windowXMin: 0.2
//	windowXMax: 0.8
//	windowYMin: 0.2
//	windowYMax: 0.8
//	softness: 0.05
func LoadConfig(path string) (Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data, format)
}

// ParseConfig decodes config data in the given format over DefaultConfig.
func ParseConfig(data []byte, format Format) (Config, error) {
	var f configFile
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return Config{}, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return Config{}, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	return f.apply(DefaultConfig())
}

// apply overlays the set keys onto c.
func (f *configFile) apply(c Config) (Config, error) {
	if f.GlowColor != nil {
		col, err := ParseColor(*f.GlowColor)
		if err != nil {
			return Config{}, fmt.Errorf("glowColor: %w", err)
		}
		c.GlowColor = col
	}
	if f.HighlightColor != nil {
		col, err := ParseColor(*f.HighlightColor)
		if err != nil {
			return Config{}, fmt.Errorf("highlightColor: %w", err)
		}
		c.HighlightColor = col
	}
	if f.Plane != nil {
		p, err := ParsePlane(*f.Plane)
		if err != nil {
			return Config{}, fmt.Errorf("plane: %w", err)
		}
		c.Plane = p
	}

	setFloat(&c.RimCoefficient, f.RimCoefficient)
	setFloat(&c.RimExponent, f.RimExponent)
	setFloat(&c.Alpha, f.Alpha)
	setFloat(&c.Window.XMin, f.WindowXMin)
	setFloat(&c.Window.XMax, f.WindowXMax)
	setFloat(&c.Window.YMin, f.WindowYMin)
	setFloat(&c.Window.YMax, f.WindowYMax)
	setFloat(&c.Softness, f.Softness)
	c.Softness = max(c.Softness, 0)
	return c, nil
}

func setFloat(dst *float32, v *float32) {
	if v != nil {
		*dst = *v
	}
}
