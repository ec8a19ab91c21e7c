// Package meshio reads mesh files into glow meshes.
package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/glow"
)

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string, kind glow.MeshKind) (*glow.TriangleMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()

	m, err := ReadOBJ(f, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

var (
	errInvalidIndex = errors.New("invalid index")
	errIndexRange   = errors.New("index out of range")
)

// objKey identifies a unique position/normal pair referenced by faces.
type objKey struct {
	v, vn int
}

// ReadOBJ parses the "v", "vn" and "f" statements of an OBJ stream. Polygons
// are fan-triangulated and negative (relative) indices are resolved. Other
// statements (texture coordinates, groups, materials) are ignored.
func ReadOBJ(r io.Reader, kind glow.MeshKind) (*glow.TriangleMesh, error) {
	var (
		positions []glow.Vec3
		normals   []glow.Vec3
		out       = glow.NewTriangleMesh(kind, nil, nil, nil)
		seen      = map[objKey]uint32{}
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}

		switch parts[0] {
		case "v", "vn":
			v, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if parts[0] == "v" {
				positions = append(positions, v)
			} else {
				normals = append(normals, v)
			}
		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			face := make([]uint32, 0, len(parts)-1)
			for _, ref := range parts[1:] {
				key, err := parseFaceRef(ref, len(positions), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx, ok := seen[key]
				if !ok {
					idx = uint32(len(out.Positions)) //nolint:gosec // OBJ vertex count fits uint32
					seen[key] = idx
					out.Positions = append(out.Positions, positions[key.v])
					var n glow.Vec3
					if key.vn >= 0 {
						n = normals[key.vn]
					}
					out.Normals = append(out.Normals, n)
				}
				face = append(face, idx)
			}
			for i := 1; i+1 < len(face); i++ {
				out.Indices = append(out.Indices, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ: %w", err)
	}
	return out, nil
}

func parseVec3(fields []string) (glow.Vec3, error) {
	if len(fields) < 3 {
		return glow.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var c [3]float32
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return glow.Vec3{}, fmt.Errorf("invalid component %q", fields[i])
		}
		c[i] = float32(f)
	}
	return glow.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseFaceRef parses "v", "v/vt", "v//vn" or "v/vt/vn" into zero-based
// indices. vn is -1 when absent.
func parseFaceRef(ref string, nv, nvn int) (objKey, error) {
	parts := strings.Split(ref, "/")
	v, err := resolveIndex(parts[0], nv)
	if err != nil {
		return objKey{}, fmt.Errorf("vertex %q: %w", ref, err)
	}
	key := objKey{v: v, vn: -1}
	if len(parts) == 3 && parts[2] != "" {
		vn, err := resolveIndex(parts[2], nvn)
		if err != nil {
			return objKey{}, fmt.Errorf("normal %q: %w", ref, err)
		}
		key.vn = vn
	}
	return key, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errInvalidIndex
	}
	if i < 0 {
		i = n + i
	} else {
		i--
	}
	if i < 0 || i >= n {
		return 0, errIndexRange
	}
	return i, nil
}
