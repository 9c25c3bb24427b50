// package surface evaluates the helicoid-like minimal surface used by the scene. Evaluation is pure:
// the same (u, v) always yields the same point, and no state is kept between calls.
package surface

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point3 is a position on the surface in model space.
type Point3 = mgl64.Vec3

// Sampler maps normalized surface parameters to a point in model space.
// Implementations must be pure and safe for concurrent use.
type Sampler interface {
	// Evaluate returns the surface point for (u, v), both in [0, 1].
	//
	// Parameters:
	//   - u: the first surface parameter
	//   - v: the second surface parameter
	//
	// Returns:
	//   - Point3: the surface point
	Evaluate(u, v float64) Point3
}

// Helicoid is the parametric surface
//
//	alpha  = 2π(u - 0.5), theta = 2π(v - 0.5)
//	bottom = 1 + cosh(alpha)·cosh(theta)
//	x = sinh(alpha)·cos(t·theta) / bottom
//	y = k·cosh(alpha)·sinh(theta) / bottom
//	z = sinh(alpha)·sin(t·theta) / bottom
//
// with twist t and vertical scale k. Both cosh factors are >= 1, so bottom >= 2 and the surface is
// defined for every (u, v).
type Helicoid struct {
	twist         float64
	verticalScale float64
}

var _ Sampler = &Helicoid{}

// NewHelicoid creates a Helicoid with the default twist (5) and vertical scale (1.5), then applies options.
//
// Parameters:
//   - options: functional options overriding the surface constants
//
// Returns:
//   - *Helicoid: the configured surface
func NewHelicoid(options ...HelicoidBuilderOption) *Helicoid {
	h := &Helicoid{
		twist:         DefaultTwist,
		verticalScale: DefaultVerticalScale,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

// Twist returns the twist constant t.
func (h *Helicoid) Twist() float64 {
	return h.twist
}

// VerticalScale returns the vertical scale constant k.
func (h *Helicoid) VerticalScale() float64 {
	return h.verticalScale
}

func (h *Helicoid) Evaluate(u, v float64) Point3 {
	alpha := 2 * math.Pi * (u - 0.5)
	theta := 2 * math.Pi * (v - 0.5)

	coshAlpha := math.Cosh(alpha)
	sinhAlpha := math.Sinh(alpha)
	bottom := 1 + coshAlpha*math.Cosh(theta)

	x := sinhAlpha * math.Cos(h.twist*theta) / bottom
	y := h.verticalScale * coshAlpha * math.Sinh(theta) / bottom
	z := sinhAlpha * math.Sin(h.twist*theta) / bottom

	return Point3{x, y, z}
}

// SamplerFunc adapts a plain function to the Sampler interface.
type SamplerFunc func(u, v float64) Point3

func (f SamplerFunc) Evaluate(u, v float64) Point3 {
	return f(u, v)
}
