package mesh

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/helicoid-go/engine/surface"
	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a rectangular grid of surface samples with triangle connectivity.
//
// Vertex (i, j), i in [0, ResolutionU] and j in [0, ResolutionV], is stored at index
// i*(ResolutionV+1) + j. Each grid cell contributes two triangles.
type Mesh struct {
	// ResolutionU is the number of grid cells along u.
	ResolutionU int

	// ResolutionV is the number of grid cells along v.
	ResolutionV int

	// Positions are the sampled surface points in row-major order.
	Positions []surface.Point3

	// Normals are the unit vertex normals, parallel to Positions. Degenerate samples hold the zero vector.
	Normals []mgl64.Vec3

	// UVs are the (u, v) surface parameters of each vertex, parallel to Positions.
	UVs [][2]float64

	// Indices are the triangle vertex indices, three per triangle.
	Indices []uint32
}

// VertexCount returns the number of vertices in the mesh.
//
// Returns:
//   - int: the vertex count
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles in the mesh.
//
// Returns:
//   - int: the triangle count
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertex indices of triangle t.
//
// Parameters:
//   - t: the triangle index in [0, TriangleCount)
//
// Returns:
//   - [3]uint32: the vertex indices of the triangle
func (m *Mesh) Triangle(t int) [3]uint32 {
	return [3]uint32{m.Indices[3*t], m.Indices[3*t+1], m.Indices[3*t+2]}
}

// VertexIndex returns the position index of grid sample (i, j).
//
// Parameters:
//   - i: the u grid coordinate
//   - j: the v grid coordinate
//
// Returns:
//   - int: the row-major vertex index
func (m *Mesh) VertexIndex(i, j int) int {
	return i*(m.ResolutionV+1) + j
}

// Validate checks the mesh invariants: a fully rectangular grid, parallel attribute slices,
// whole triangles, and indices that only reference existing vertices.
//
// Returns:
//   - error: a description of the first violated invariant, or nil
func (m *Mesh) Validate() error {
	want := (m.ResolutionU + 1) * (m.ResolutionV + 1)
	if len(m.Positions) != want {
		return fmt.Errorf("mesh has %d positions, want %d for a %dx%d grid", len(m.Positions), want, m.ResolutionU, m.ResolutionV)
	}
	if m.Normals != nil && len(m.Normals) != want {
		return fmt.Errorf("mesh has %d normals, want %d", len(m.Normals), want)
	}
	if m.UVs != nil && len(m.UVs) != want {
		return fmt.Errorf("mesh has %d uvs, want %d", len(m.UVs), want)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh index count %d is not a multiple of 3", len(m.Indices))
	}
	for n, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return fmt.Errorf("index %d references vertex %d of %d", n, idx, len(m.Positions))
		}
	}
	return nil
}

// BoundingRadius returns the maximum vertex distance from the origin.
//
// Returns:
//   - float64: the bounding sphere radius
func (m *Mesh) BoundingRadius() float64 {
	var maxDistSq float64
	for _, p := range m.Positions {
		if d := p.Dot(p); d > maxDistSq {
			maxDistSq = d
		}
	}
	return math.Sqrt(maxDistSq)
}
