package surface

import (
	"math"
	"testing"
)

func TestEvaluateCenterIsOrigin(t *testing.T) {
	for _, h := range []*Helicoid{NewHelicoid(PresetPhysical()...), NewHelicoid(PresetShaded()...)} {
		p := h.Evaluate(0.5, 0.5)
		if p.X() != 0 || p.Y() != 0 || p.Z() != 0 {
			t.Fatalf("k=%v: Evaluate(0.5, 0.5) = %v, want origin", h.VerticalScale(), p)
		}
	}
}

func TestEvaluateFinite(t *testing.T) {
	h := NewHelicoid(WithVerticalScale(2.0))
	const steps = 64
	for i := 0; i <= steps; i++ {
		for j := 0; j <= steps; j++ {
			u, v := float64(i)/steps, float64(j)/steps
			p := h.Evaluate(u, v)
			for axis, c := range p {
				if math.IsNaN(c) || math.IsInf(c, 0) {
					t.Fatalf("Evaluate(%v, %v)[%d] = %v", u, v, axis, c)
				}
			}
		}
	}
}

func TestEvaluateKnownPoints(t *testing.T) {
	const eps = 1e-12
	h := NewHelicoid()

	// u = 0.5 gives alpha = 0: x = z = 0 and y = k·sinh(theta)/(1+cosh(theta)) = k·tanh(theta/2).
	for _, v := range []float64{0, 0.25, 0.75, 1} {
		theta := 2 * math.Pi * (v - 0.5)
		p := h.Evaluate(0.5, v)
		want := 1.5 * math.Tanh(theta/2)
		if math.Abs(p.X()) > eps || math.Abs(p.Z()) > eps || math.Abs(p.Y()-want) > eps {
			t.Fatalf("Evaluate(0.5, %v) = %v, want (0, %v, 0)", v, p, want)
		}
	}

	// v = 0.5 gives theta = 0: y = z = 0 and x = sinh(alpha)/(1+cosh(alpha)) = tanh(alpha/2).
	for _, u := range []float64{0, 0.1, 0.9, 1} {
		alpha := 2 * math.Pi * (u - 0.5)
		p := h.Evaluate(u, 0.5)
		want := math.Tanh(alpha / 2)
		if math.Abs(p.Y()) > eps || math.Abs(p.Z()) > eps || math.Abs(p.X()-want) > eps {
			t.Fatalf("Evaluate(%v, 0.5) = %v, want (%v, 0, 0)", u, p, want)
		}
	}
}

func TestVerticalScaleOnlyAffectsY(t *testing.T) {
	a := NewHelicoid(PresetPhysical()...).Evaluate(0.3, 0.8)
	b := NewHelicoid(PresetShaded()...).Evaluate(0.3, 0.8)
	if a.X() != b.X() || a.Z() != b.Z() {
		t.Fatalf("x/z differ: %v vs %v", a, b)
	}
	if math.Abs(b.Y()/a.Y()-2.0/1.5) > 1e-12 {
		t.Fatalf("y ratio = %v", b.Y()/a.Y())
	}
}

func TestDefaults(t *testing.T) {
	h := NewHelicoid()
	if h.Twist() != 5 || h.VerticalScale() != 1.5 {
		t.Fatalf("defaults = t %v, k %v", h.Twist(), h.VerticalScale())
	}
}
