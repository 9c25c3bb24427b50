package mesh

import (
	"math"

	"github.com/Carmen-Shannon/helicoid-go/engine/config"
	"github.com/Carmen-Shannon/helicoid-go/engine/surface"
	"github.com/go-gl/mathgl/mgl64"
)

// Default sphere tessellation used for orbiting bodies.
const (
	DefaultSphereSegments = 16
	DefaultSphereRings    = 16
)

// Sphere builds a UV sphere of the given radius centered on the origin, laid out like a
// tessellated grid: ResolutionU is the ring count (pole to pole) and ResolutionV the segment count
// around the axis. Normals are analytic and point outward, consistent with the grid winding.
//
// Parameters:
//   - radius: the sphere radius (must be > 0)
//   - segments: the number of segments around the y axis (must be >= 3)
//   - rings: the number of rings from pole to pole (must be >= 2)
//
// Returns:
//   - *Mesh: the sphere mesh
//   - error: a *config.ConfigurationError if a parameter is out of range
func Sphere(radius float64, segments, rings int) (*Mesh, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return nil, config.NewConfigurationError("sphereRadius", radius, "must be finite and > 0")
	}
	if segments < 3 {
		return nil, config.NewConfigurationError("sphereSegments", segments, "must be >= 3")
	}
	if rings < 2 {
		return nil, config.NewConfigurationError("sphereRings", rings, "must be >= 2")
	}

	cols := segments + 1
	m := &Mesh{
		ResolutionU: rings,
		ResolutionV: segments,
		Positions:   make([]surface.Point3, (rings+1)*cols),
		Normals:     make([]mgl64.Vec3, (rings+1)*cols),
		UVs:         make([][2]float64, (rings+1)*cols),
		Indices:     gridIndices(rings, segments),
	}

	for ring := 0; ring <= rings; ring++ {
		theta := float64(ring) * math.Pi / float64(rings)
		sinTheta, cosTheta := math.Sincos(theta)
		if ring == 0 || ring == rings {
			// collapse each pole to a single point
			sinTheta = 0
		}
		for seg := 0; seg <= segments; seg++ {
			phi := float64(seg) * 2 * math.Pi / float64(segments)
			sinPhi, cosPhi := math.Sincos(phi)

			// z runs against phi so that the (ring, seg) grid winds outward.
			n := mgl64.Vec3{cosPhi * sinTheta, cosTheta, -sinPhi * sinTheta}
			idx := ring*cols + seg
			m.Positions[idx] = n.Mul(radius)
			m.Normals[idx] = n
			m.UVs[idx] = [2]float64{float64(seg) / float64(segments), float64(ring) / float64(rings)}
		}
	}

	return m, nil
}
