package animation

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/Carmen-Shannon/helicoid-go/engine/config"
)

func mustDriver(t *testing.T, options ...DriverBuilderOption) *Driver {
	t.Helper()
	d, err := NewDriver(options...)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	return d
}

func TestMeshRotation(t *testing.T) {
	d := mustDriver(t)
	if got := d.Advance(0).MeshRotationY; got != 0 {
		t.Fatalf("rotation at 0 = %v", got)
	}
	if got := d.Advance(1000).MeshRotationY; got != 1.0 {
		t.Fatalf("rotation at 1000 = %v", got)
	}
	if got := d.Advance(2500).MeshRotationY; got != 2.5 {
		t.Fatalf("rotation at 2500 = %v", got)
	}
}

func TestShaderPlayhead(t *testing.T) {
	off := mustDriver(t).Advance(3000)
	if off.HasShaderPlayhead || off.ShaderPlayhead != 0 {
		t.Fatalf("playhead emitted while disabled: %+v", off)
	}

	on := mustDriver(t, WithShaderPlayhead(true))
	for _, tc := range []struct{ t, want float64 }{{0, 0}, {3000, 1}, {4500, 1.5}} {
		u := on.Advance(tc.t)
		if !u.HasShaderPlayhead || u.ShaderPlayhead != tc.want {
			t.Fatalf("playhead at %v = %v (%v), want %v", tc.t, u.ShaderPlayhead, u.HasShaderPlayhead, tc.want)
		}
	}
}

func TestDecimalPhase(t *testing.T) {
	tests := []struct {
		i    int
		want float64
	}{
		{0, 0}, {1, -0.1}, {3, -0.3}, {9, -0.9}, {10, -0.10}, {13, -0.13}, {25, -0.25},
	}
	for _, tc := range tests {
		if got := DecimalPhase(tc.i); got != tc.want {
			t.Fatalf("DecimalPhase(%d) = %v, want %v", tc.i, got, tc.want)
		}
	}
	if !math.Signbit(DecimalPhase(0)) {
		t.Fatal("DecimalPhase(0) should be negative zero")
	}
}

func TestUniformPhase(t *testing.T) {
	d := mustDriver(t, WithBodyCount(4), WithPhasePolicy(PhaseUniform))
	for i, want := range []float64{0, -0.25, -0.5, -0.75} {
		if got := d.Phase(i); got != want {
			t.Fatalf("phase(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestBodyOneAtOrbitPeriod(t *testing.T) {
	d := mustDriver(t, WithBodyCount(2))
	theta := d.BodyAngle(6000, 1)
	want := 2 * math.Pi * -0.1
	if math.Abs(theta-want) > 1e-15 {
		t.Fatalf("theta_1 = %v, want %v", theta, want)
	}
	p := d.Advance(6000).BodyPositions[1]
	if math.Abs(p.X()-2.2*math.Sin(want)) > 1e-12 || math.Abs(p.Y()-2.2*math.Cos(want)) > 1e-12 || p.Z() != 0 {
		t.Fatalf("body 1 = %v", p)
	}
}

func TestCircularOrbitStaysOnCircle(t *testing.T) {
	const r = 2.2
	for _, phase := range []PhasePolicy{PhaseDecimal, PhaseUniform} {
		d := mustDriver(t, WithBodyCount(15), WithPhasePolicy(phase))
		for _, ts := range []float64{0, 16.7, 1000, 6000, 12345.6, 1e6} {
			for i, p := range d.Advance(ts).BodyPositions {
				if got := p.X()*p.X() + p.Y()*p.Y(); math.Abs(got-r*r) > 1e-9 {
					t.Fatalf("%v t=%v body %d: x²+y² = %v, want %v", phase, ts, i, got, r*r)
				}
			}
		}
	}
}

func TestDiagonalOrbitLeavesCircle(t *testing.T) {
	d := mustDriver(t, WithBodyCount(3), WithOrbitPolicy(OrbitDiagonal))
	p := d.Advance(1500).BodyPositions[2]
	if p.X() != p.Y() {
		t.Fatalf("diagonal body off the x=y line: %v", p)
	}
	if got := p.X()*p.X() + p.Y()*p.Y(); math.Abs(got-2.2*2.2) < 1e-6 {
		t.Fatalf("diagonal body unexpectedly on the circle: %v", p)
	}
}

func TestAdvanceIdempotent(t *testing.T) {
	d := mustDriver(t, WithBodyCount(12), WithShaderPlayhead(true))
	a := d.Advance(98765.4321)
	d.Advance(1)
	b := d.Advance(98765.4321)

	if math.Float64bits(a.MeshRotationY) != math.Float64bits(b.MeshRotationY) ||
		math.Float64bits(a.ShaderPlayhead) != math.Float64bits(b.ShaderPlayhead) {
		t.Fatalf("scalar outputs differ: %+v vs %+v", a, b)
	}
	for i := range a.BodyPositions {
		for c := 0; c < 3; c++ {
			if math.Float64bits(a.BodyPositions[i][c]) != math.Float64bits(b.BodyPositions[i][c]) {
				t.Fatalf("body %d component %d differs", i, c)
			}
		}
	}
}

func TestBodyCount(t *testing.T) {
	if n := len(mustDriver(t).Advance(100).BodyPositions); n != 0 {
		t.Fatalf("default body count = %d", n)
	}
	if n := len(mustDriver(t, WithBodyCount(5)).Advance(100).BodyPositions); n != 5 {
		t.Fatalf("body count = %d", n)
	}
}

func TestNewDriverRejects(t *testing.T) {
	tests := []struct {
		name string
		opts []DriverBuilderOption
	}{
		{"negative bodies", []DriverBuilderOption{WithBodyCount(-1)}},
		{"zero radius", []DriverBuilderOption{WithOrbitRadius(0)}},
		{"nan radius", []DriverBuilderOption{WithOrbitRadius(math.NaN())}},
		{"unknown orbit", []DriverBuilderOption{WithOrbitPolicy(OrbitPolicy(7))}},
		{"unknown phase", []DriverBuilderOption{WithPhasePolicy(PhasePolicy(7))}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := NewDriver(tc.opts...)
			if !config.IsConfigurationError(err) || d != nil {
				t.Fatalf("expected ConfigurationError, got %v, %v", d, err)
			}
		})
	}
}

func TestNewDriverFromConfig(t *testing.T) {
	cfg := config.ShadedDefault()
	cfg.OrbitPolicy = config.OrbitPolicyDiagonal
	cfg.PhasePolicy = config.PhasePolicyUniform
	d, err := NewDriverFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if d.BodyCount() != cfg.OrbitBodyCount || !d.ShaderPlayhead() || d.OrbitRadius() != cfg.OrbitRadius {
		t.Fatalf("driver = %+v", d)
	}
	if d.OrbitPolicy() != OrbitDiagonal || d.PhasePolicy() != PhaseUniform {
		t.Fatalf("policies = %v, %v", d.OrbitPolicy(), d.PhasePolicy())
	}

	cfg.OrbitPolicy = "spiral"
	if _, err := NewDriverFromConfig(cfg); !config.IsConfigurationError(err) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestPolicyNames(t *testing.T) {
	for _, name := range []string{config.OrbitPolicyCircular, config.OrbitPolicyDiagonal} {
		p, err := ParseOrbitPolicy(name)
		if err != nil || p.String() != name {
			t.Fatalf("orbit %q -> %v, %v", name, p, err)
		}
	}
	for _, name := range []string{config.PhasePolicyDecimal, config.PhasePolicyUniform} {
		p, err := ParsePhasePolicy(name)
		if err != nil || p.String() != name {
			t.Fatalf("phase %q -> %v, %v", name, p, err)
		}
	}
	if _, err := ParsePhasePolicy("random"); !config.IsConfigurationError(err) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestFrameUpdateJSONKeepsZeroPlayhead(t *testing.T) {
	d := mustDriver(t, WithShaderPlayhead(true), WithBodyCount(2))
	data, err := json.Marshal(d.Advance(0))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if v, ok := raw["shaderPlayhead"]; !ok || v != 0.0 {
		t.Fatalf("shaderPlayhead = %v (present %v) in %s", v, ok, data)
	}
}
