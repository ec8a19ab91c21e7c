package glow

import (
	"fmt"

	"github.com/chewxy/math32"
)

// boundsEpsilon is the smallest extent used as a normalization denominator.
const boundsEpsilon = 1e-4

// Plane selects the two local axes the highlight window is laid out on.
type Plane uint8

const (
	// PlaneXY maps local X to normalized x and local Y to normalized y.
	PlaneXY Plane = iota

	// PlaneXZ maps local X to normalized x and local Z to normalized y.
	PlaneXZ

	// PlaneZY maps local Z to normalized x and local Y to normalized y.
	PlaneZY
)

// Axes returns the vector component indices (0=X, 1=Y, 2=Z) for the
// normalized x and y coordinates.
func (p Plane) Axes() (u, v int) {
	switch p {
	case PlaneXZ:
		return 0, 2
	case PlaneZY:
		return 2, 1
	default:
		return 0, 1
	}
}

// String returns the plane name as used in config files.
func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneZY:
		return "zy"
	default:
		return fmt.Sprintf("Plane(%d)", uint8(p))
	}
}

// ParsePlane parses "xy", "xz" or "zy".
func ParsePlane(s string) (Plane, error) {
	switch s {
	case "", "xy", "XY":
		return PlaneXY, nil
	case "xz", "XZ":
		return PlaneXZ, nil
	case "zy", "ZY":
		return PlaneZY, nil
	default:
		return PlaneXY, fmt.Errorf("%w: %q", ErrInvalidPlane, s)
	}
}

// Bounds is a mesh's local-space extent on the two in-plane axes.
type Bounds struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// UnitBounds is the fallback used when a mesh has no usable geometry.
var UnitBounds = Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}

// Width returns MaxX - MinX.
func (b Bounds) Width() float32 {
	return b.MaxX - b.MinX
}

// Height returns MaxY - MinY.
func (b Bounds) Height() float32 {
	return b.MaxY - b.MinY
}

// Normalize rescales a local in-plane position into [0, 1] relative to the
// bounds. Zero-extent axes divide by a small epsilon instead of zero.
func (b Bounds) Normalize(x, y float32) (nx, ny float32) {
	nx = (x - b.MinX) / math32.Max(b.MaxX-b.MinX, boundsEpsilon)
	ny = (y - b.MinY) / math32.Max(b.MaxY-b.MinY, boundsEpsilon)
	return nx, ny
}

// NormalizePoint projects p onto the plane axes and normalizes it.
func (b Bounds) NormalizePoint(p Vec3, plane Plane) (nx, ny float32) {
	u, v := plane.Axes()
	return b.Normalize(p.Axis(u), p.Axis(v))
}

// ExtractBounds computes the mesh bounds on the plane axes.
//
// The geometry's bounding box is recomputed first. A nil mesh, a mesh without
// geometry, or geometry that yields no finite, non-empty box returns UnitBounds
// and ok=false. This never fails: the effect is cosmetic and a unit square is
// always usable.
func ExtractBounds(m Mesh, plane Plane) (b Bounds, ok bool) {
	if m == nil {
		return UnitBounds, false
	}
	g := m.Geometry()
	if g == nil {
		return UnitBounds, false
	}
	g.ComputeBoundingBox()
	box := g.BoundingBox()
	if box == nil || box.IsEmpty() || !box.Min.IsFinite() || !box.Max.IsFinite() {
		return UnitBounds, false
	}

	u, v := plane.Axes()
	return Bounds{
		MinX: box.Min.Axis(u),
		MaxX: box.Max.Axis(u),
		MinY: box.Min.Axis(v),
		MaxY: box.Max.Axis(v),
	}, true
}
