// package stage holds the renderer-facing scene context of the helicoid: the transform targets of the
// mesh and its orbiting bodies and the optional playhead uniform. A Stage is built once at setup and
// receives one animation.FrameUpdate per frame through Apply.
package stage

import (
	"fmt"

	"github.com/Carmen-Shannon/helicoid-go/engine/animation"
	"github.com/Carmen-Shannon/helicoid-go/engine/config"
)

// Transformable is the part of a scene object the stage writes each frame.
type Transformable interface {
	// SetPosition sets the object's position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation sets the object's Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles
	SetRotation(rx, ry, rz float32)
}

// PlayheadTarget receives the time-derived playhead value of the shaded variant.
type PlayheadTarget interface {
	// SetPlayhead stages a new playhead value.
	//
	// Parameters:
	//   - value: the playhead value
	SetPlayhead(value float32)
}

// Stage is the explicit context object the animation step writes into.
type Stage struct {
	mesh     Transformable
	bodies   []Transformable
	playhead PlayheadTarget
	applied  int
}

// NewStage creates a Stage for the given targets. The number of bodies must match the driver's body count
// and a playhead target is required exactly when the driver emits a playhead, so that every value of a
// FrameUpdate has a destination.
//
// Parameters:
//   - driver: the animation driver the stage will be fed from
//   - mesh: transform target of the helicoid mesh
//   - bodies: transform targets of the orbiting bodies, indexed by body index
//   - playhead: uniform target of the playhead, or nil when the driver has it disabled
//
// Returns:
//   - *Stage: the stage
//   - error: a *config.ConfigurationError if the targets do not match the driver
func NewStage(driver *animation.Driver, mesh Transformable, bodies []Transformable, playhead PlayheadTarget) (*Stage, error) {
	if mesh == nil {
		return nil, config.NewConfigurationError("mesh", nil, "a mesh target is required")
	}
	if len(bodies) != driver.BodyCount() {
		return nil, config.NewConfigurationError("orbitBodyCount", len(bodies),
			fmt.Sprintf("stage has %d body targets, driver animates %d", len(bodies), driver.BodyCount()))
	}
	if driver.ShaderPlayhead() && playhead == nil {
		return nil, config.NewConfigurationError("enableShaderPlayhead", true, "a playhead target is required")
	}
	return &Stage{
		mesh:     mesh,
		bodies:   append([]Transformable(nil), bodies...),
		playhead: playhead,
	}, nil
}

// Apply writes a FrameUpdate into the stage targets: the mesh rotation about y, each body position and,
// when present, the playhead uniform.
//
// Parameters:
//   - u: the frame update to apply
//
// Returns:
//   - error: non-nil if the update carries a different number of bodies than the stage holds
func (s *Stage) Apply(u animation.FrameUpdate) error {
	if len(u.BodyPositions) != len(s.bodies) {
		return fmt.Errorf("stage: update has %d bodies, stage has %d", len(u.BodyPositions), len(s.bodies))
	}

	s.mesh.SetRotation(0, float32(u.MeshRotationY), 0)
	for i, p := range u.BodyPositions {
		s.bodies[i].SetPosition(float32(p.X()), float32(p.Y()), float32(p.Z()))
	}
	if u.HasShaderPlayhead && s.playhead != nil {
		s.playhead.SetPlayhead(float32(u.ShaderPlayhead))
	}
	s.applied++
	return nil
}

// BodyCount returns the number of body targets.
func (s *Stage) BodyCount() int {
	return len(s.bodies)
}

// Applied returns the number of updates applied so far.
func (s *Stage) Applied() int {
	return s.applied
}
