package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
)

// gridNormals approximates vertex normals for grid rows [start, end) of m from neighboring samples.
// The partial derivatives along u and v are central differences in the interior and one-sided
// differences on the grid border; the normal is their normalized cross product, which matches the
// winding produced by gridIndices.
func gridNormals(m *Mesh, start, end int) {
	for i := start; i < end; i++ {
		iPrev, iNext := max(i-1, 0), min(i+1, m.ResolutionU)
		for j := 0; j <= m.ResolutionV; j++ {
			jPrev, jNext := max(j-1, 0), min(j+1, m.ResolutionV)

			du := m.Positions[m.VertexIndex(iNext, j)].Sub(m.Positions[m.VertexIndex(iPrev, j)])
			dv := m.Positions[m.VertexIndex(i, jNext)].Sub(m.Positions[m.VertexIndex(i, jPrev)])

			m.Normals[m.VertexIndex(i, j)] = safeNormalize(du.Cross(dv))
		}
	}
}

// FaceNormal returns the unit normal of triangle t following its winding order.
//
// Parameters:
//   - t: the triangle index
//
// Returns:
//   - mgl64.Vec3: the unit face normal, or the zero vector for a degenerate triangle
func (m *Mesh) FaceNormal(t int) mgl64.Vec3 {
	tri := m.Triangle(t)
	a, b, c := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
	return safeNormalize(b.Sub(a).Cross(c.Sub(a)))
}

// safeNormalize returns v scaled to unit length, or the zero vector when v has no length.
func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
