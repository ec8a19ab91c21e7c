package shader

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/glow"
	"github.com/gogpu/naga"
)

// Compile errors.
var (
	// ErrEmptySource is returned when compiling an empty stage.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrInvalidSPIRV is returned when compiler output is not a SPIR-V module.
	ErrInvalidSPIRV = errors.New("shader: invalid SPIR-V")
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// Compiled holds SPIR-V for both stages of a Program.
type Compiled struct {
	Vertex   []uint32
	Fragment []uint32
}

// CompileSPIRV compiles WGSL source to a SPIR-V word slice.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	if wgslSource == "" {
		return nil, ErrEmptySource
	}
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}
	return spirvWords(spirvBytes)
}

// spirvWords decodes a little-endian SPIR-V byte stream. The length must be a
// whole number of words and the stream must start with the SPIR-V magic.
func spirvWords(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of words", ErrInvalidSPIRV, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("%w: magic %#08x", ErrInvalidSPIRV, words[0])
	}
	return words, nil
}

// Compile compiles both stages with naga.
func (p *Program) Compile() (*Compiled, error) {
	vs, err := CompileSPIRV(p.Source(glow.StageVertex))
	if err != nil {
		return nil, fmt.Errorf("vertex stage: %w", err)
	}
	fs, err := CompileSPIRV(p.Source(glow.StageFragment))
	if err != nil {
		return nil, fmt.Errorf("fragment stage: %w", err)
	}
	glow.Logger().Debug("shader: program compiled",
		"vertexWords", len(vs), "fragmentWords", len(fs))
	return &Compiled{Vertex: vs, Fragment: fs}, nil
}
