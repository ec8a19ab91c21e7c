package glow

import "github.com/chewxy/math32"

// MeshKind is the declared deformation kind of a mesh.
type MeshKind uint8

const (
	// MeshStatic is a mesh whose vertices are used as stored.
	MeshStatic MeshKind = iota

	// MeshSkinned is a mesh deformed by bone matrices before shading.
	MeshSkinned
)

// String returns the kind name.
func (k MeshKind) String() string {
	switch k {
	case MeshStatic:
		return "static"
	case MeshSkinned:
		return "skinned"
	default:
		return "unknown"
	}
}

// Geometry is the vertex data of a mesh, as seen by bounds extraction.
type Geometry interface {
	// BoundingBox returns the cached local-space bounding box,
	// or nil if none has been computed or the geometry has no vertices.
	BoundingBox() *Box3

	// ComputeBoundingBox recomputes the cached bounding box.
	ComputeBoundingBox()
}

// Mesh is a renderable object the effect is built for.
type Mesh interface {
	// Geometry returns the mesh geometry. May be nil.
	Geometry() Geometry

	// Kind returns the declared deformation kind.
	Kind() MeshKind
}

// TriangleMesh is an indexed triangle mesh that implements both Mesh and Geometry.
//
// Joints and Weights hold four bone influences per vertex and are only
// meaningful when the mesh is declared MeshSkinned.
type TriangleMesh struct {
	Positions []Vec3
	Normals   []Vec3
	Indices   []uint32
	Joints    [][4]uint32
	Weights   [][4]float32

	kind MeshKind
	bbox *Box3
}

// NewTriangleMesh creates a mesh of the given kind from positions and indices.
func NewTriangleMesh(kind MeshKind, positions []Vec3, normals []Vec3, indices []uint32) *TriangleMesh {
	return &TriangleMesh{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		kind:      kind,
	}
}

// Geometry returns the mesh itself, or nil for a nil mesh.
func (m *TriangleMesh) Geometry() Geometry {
	if m == nil {
		return nil
	}
	return m
}

// Kind returns the declared deformation kind.
func (m *TriangleMesh) Kind() MeshKind {
	if m == nil {
		return MeshStatic
	}
	return m.kind
}

// SetKind changes the declared deformation kind.
func (m *TriangleMesh) SetKind(kind MeshKind) {
	m.kind = kind
}

// BoundingBox returns the cached bounding box or nil.
func (m *TriangleMesh) BoundingBox() *Box3 {
	return m.bbox
}

// ComputeBoundingBox recomputes the bounding box from Positions.
// A mesh without positions ends up with a nil box.
func (m *TriangleMesh) ComputeBoundingBox() {
	if len(m.Positions) == 0 {
		m.bbox = nil
		return
	}
	b := EmptyBox()
	for _, p := range m.Positions {
		b.ExpandByPoint(p)
	}
	m.bbox = &b
}

// NewUVSphere creates a static sphere centered at the origin with the poles on
// the Y axis. segments is the number of longitude divisions, rings the number of
// latitude divisions.
func NewUVSphere(radius float32, segments, rings int) *TriangleMesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	positions := make([]Vec3, 0, (segments+1)*(rings+1))
	normals := make([]Vec3, 0, cap(positions))
	for r := 0; r <= rings; r++ {
		theta := float32(r) / float32(rings) * math32.Pi
		sinT, cosT := math32.Sincos(theta)
		for s := 0; s <= segments; s++ {
			phi := float32(s) / float32(segments) * 2 * math32.Pi
			sinP, cosP := math32.Sincos(phi)
			n := Vec3{X: cosP * sinT, Y: cosT, Z: sinP * sinT}
			normals = append(normals, n)
			positions = append(positions, n.Mul(radius))
		}
	}

	indices := make([]uint32, 0, segments*rings*6)
	stride := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}

	return NewTriangleMesh(MeshStatic, positions, normals, indices)
}
