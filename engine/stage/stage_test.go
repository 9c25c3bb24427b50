package stage

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/helicoid-go/engine/animation"
	"github.com/Carmen-Shannon/helicoid-go/engine/config"
)

func newDriver(t *testing.T, options ...animation.DriverBuilderOption) *animation.Driver {
	t.Helper()
	d, err := animation.NewDriver(options...)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	return d
}

func TestApplyWritesTargets(t *testing.T) {
	d := newDriver(t, animation.WithBodyCount(3), animation.WithShaderPlayhead(true))
	sc, err := NewScene(d, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	u := d.Advance(1500)
	if err := sc.Stage.Apply(u); err != nil {
		t.Fatal(err)
	}

	if _, ry, _ := sc.Mesh.Rotation(); ry != float32(1.5) {
		t.Fatalf("mesh rotation y = %v, want 1.5", ry)
	}
	for i, body := range sc.Bodies {
		x, y, z := body.Position()
		want := u.BodyPositions[i]
		if x != float32(want.X()) || y != float32(want.Y()) || z != 0 {
			t.Fatalf("body %d = (%v, %v, %v), want %v", i, x, y, z, want)
		}
	}
	if got := sc.Playhead.Playhead(); got != float32(0.5) {
		t.Fatalf("playhead = %v, want 0.5", got)
	}
	if sc.Stage.Applied() != 1 {
		t.Fatalf("applied = %d", sc.Stage.Applied())
	}
}

func TestApplyRejectsBodyMismatch(t *testing.T) {
	sc, err := NewScene(newDriver(t, animation.WithBodyCount(2)), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	u := newDriver(t, animation.WithBodyCount(4)).Advance(10)
	if err := sc.Stage.Apply(u); err == nil {
		t.Fatal("expected error for mismatched body count")
	}
}

func TestNewStageRejects(t *testing.T) {
	obj := NewSceneObject()
	tests := []struct {
		name     string
		driver   *animation.Driver
		mesh     Transformable
		bodies   []Transformable
		playhead PlayheadTarget
	}{
		{"no mesh", newDriver(t), nil, nil, nil},
		{"too few bodies", newDriver(t, animation.WithBodyCount(2)), obj, []Transformable{NewSceneObject()}, nil},
		{"missing playhead", newDriver(t, animation.WithShaderPlayhead(true)), obj, nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st, err := NewStage(tc.driver, tc.mesh, tc.bodies, tc.playhead)
			if !config.IsConfigurationError(err) || st != nil {
				t.Fatalf("expected ConfigurationError, got %v, %v", st, err)
			}
		})
	}
}

func TestPlayheadDisabledLeavesUniformUnset(t *testing.T) {
	d := newDriver(t)
	sc, err := NewScene(d, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Playhead != nil {
		t.Fatal("playhead uniform created while disabled")
	}
	if err := sc.Stage.Apply(d.Advance(3000)); err != nil {
		t.Fatal(err)
	}
}

func TestPlayheadPendingWrite(t *testing.T) {
	p := NewPlayheadUniform()
	if _, ok := p.PendingWrite(); ok {
		t.Fatal("fresh uniform reports a pending write")
	}

	p.SetPlayhead(2.25)
	w, ok := p.PendingWrite()
	if !ok || w.Binding != PlayheadBinding || len(w.Data) != 16 {
		t.Fatalf("write = %+v, %v", w, ok)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(w.Data[0:4])); got != 2.25 {
		t.Fatalf("encoded playhead = %v", got)
	}
	if _, ok := p.PendingWrite(); ok {
		t.Fatal("pending flag not cleared")
	}

	p.SetPlayhead(2.25)
	if _, ok := p.PendingWrite(); ok {
		t.Fatal("unchanged value reported as pending")
	}
}

func TestGPUPlayheadSize(t *testing.T) {
	var g GPUPlayhead
	if g.Size() != 16 || len(g.Marshal()) != 16 {
		t.Fatalf("size = %d, marshal = %d", g.Size(), len(g.Marshal()))
	}
}

func TestPlayheadShaderSource(t *testing.T) {
	if !strings.HasPrefix(PlayheadShaderSource, "// "+PlayheadShaderVersion) {
		t.Fatalf("shader source does not start with version tag %q", PlayheadShaderVersion)
	}
	for _, want := range []string{"struct PlayheadParams", "playhead: f32", "fn fs_main"} {
		if !strings.Contains(PlayheadShaderSource, want) {
			t.Fatalf("shader source missing %q", want)
		}
	}
}

func TestSceneObjectModelMatrix(t *testing.T) {
	obj := NewSceneObject(WithPosition(1, 2, 3), WithScale(2, 2, 2))
	obj.SetRotation(0, math.Pi/2, 0)

	var m [16]float32
	obj.ModelMatrix(m[:])

	if m[12] != 1 || m[13] != 2 || m[14] != 3 || m[15] != 1 {
		t.Fatalf("translation column = %v", m[12:16])
	}
	// Rotating +x by π/2 about y maps it to -z, then scaled by 2.
	if math.Abs(float64(m[0])) > 1e-6 || math.Abs(float64(m[2]+2)) > 1e-6 {
		t.Fatalf("x basis = %v", m[0:3])
	}
}
