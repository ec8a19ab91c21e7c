//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/glow"
	"github.com/gogpu/gputypes"
)

// Vertex strides in bytes.
//
// Static layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	normal   (vec3<f32>) = 12 bytes (location 1)
//
// Skinned layout appends:
//
//	joints  (vec4<u32>) = 16 bytes (location 2)
//	weights (vec4<f32>) = 16 bytes (location 3)
const (
	staticVertexStride  = 24
	skinnedVertexStride = 56
)

// VertexLayout returns the vertex buffer layout expected by shader.Program.
func VertexLayout(skinning bool) gputypes.VertexBufferLayout {
	if !skinning {
		return gputypes.VertexBufferLayout{
			ArrayStride: staticVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // normal
			},
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: skinnedVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // normal
			{Format: gputypes.VertexFormatUint32x4, Offset: 24, ShaderLocation: 2},  // joints
			{Format: gputypes.VertexFormatFloat32x4, Offset: 40, ShaderLocation: 3}, // weights
		},
	}
}

// VertexData interleaves a mesh into a vertex buffer matching VertexLayout.
// Missing normals are written as zero, missing joints and weights as zero
// except weight 0, which defaults to 1 (bind to joint 0).
func VertexData(m *glow.TriangleMesh, skinning bool) []byte {
	stride := staticVertexStride
	if skinning {
		stride = skinnedVertexStride
	}
	buf := make([]byte, len(m.Positions)*stride)
	for i, p := range m.Positions {
		off := i * stride
		var n glow.Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		putF32(buf[off:], p.X, p.Y, p.Z, n.X, n.Y, n.Z)
		if !skinning {
			continue
		}

		joints := [4]uint32{}
		weights := [4]float32{1, 0, 0, 0}
		if i < len(m.Joints) {
			joints = m.Joints[i]
		}
		if i < len(m.Weights) {
			weights = m.Weights[i]
		}
		for j, v := range joints {
			binary.LittleEndian.PutUint32(buf[off+24+j*4:], v)
		}
		putF32(buf[off+40:], weights[:]...)
	}
	return buf
}

// IndexData encodes mesh indices as little-endian uint32.
func IndexData(m *glow.TriangleMesh) []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

func putF32(dst []byte, vs ...float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
