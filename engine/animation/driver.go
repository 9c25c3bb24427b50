// package animation computes per-frame transform and uniform values of the helicoid scene as a pure
// function of the frame timestamp. A Driver holds only its fixed configuration; every FrameUpdate is
// recomputed from the timestamp alone.
package animation

import (
	"math"
	"strconv"

	"github.com/Carmen-Shannon/helicoid-go/engine/config"
	"github.com/go-gl/mathgl/mgl64"
)

// Time scales of the animated values, in milliseconds per unit.
const (
	// RotationMsPerRadian maps time to the mesh rotation about y: one radian per second.
	RotationMsPerRadian = 1000.0

	// PlayheadMsPerUnit maps time to the shader playhead.
	PlayheadMsPerUnit = 3000.0

	// OrbitPeriodMs scales time before it is multiplied by 2π and the body phase.
	OrbitPeriodMs = 6000.0
)

// OrbitPolicy selects how a body's position is derived from its orbit angle.
type OrbitPolicy int

const (
	// OrbitCircular places the body at (R·sin θ, R·cos θ, 0), on the circle of radius R.
	OrbitCircular OrbitPolicy = iota

	// OrbitDiagonal places the body at (R·sin θ, R·sin θ, 0). The body moves back and forth along
	// the x = y diagonal and leaves the circle of radius R.
	OrbitDiagonal
)

// String returns the configuration name of the policy.
func (p OrbitPolicy) String() string {
	switch p {
	case OrbitCircular:
		return config.OrbitPolicyCircular
	case OrbitDiagonal:
		return config.OrbitPolicyDiagonal
	default:
		return "OrbitPolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParseOrbitPolicy maps a configuration name to an OrbitPolicy.
//
// Parameters:
//   - name: "circular" or "diagonal"
//
// Returns:
//   - OrbitPolicy: the matching policy
//   - error: a *config.ConfigurationError for an unknown name
func ParseOrbitPolicy(name string) (OrbitPolicy, error) {
	switch name {
	case config.OrbitPolicyCircular:
		return OrbitCircular, nil
	case config.OrbitPolicyDiagonal:
		return OrbitDiagonal, nil
	default:
		return 0, config.NewConfigurationError("orbitPolicy", name, "must be \"circular\" or \"diagonal\"")
	}
}

// FrameUpdate holds the values a renderer writes into its scene for one frame.
type FrameUpdate struct {
	// TimeMs is the timestamp the update was computed for.
	TimeMs float64 `json:"timeMs"`

	// MeshRotationY is the helicoid rotation about the y axis in radians.
	MeshRotationY float64 `json:"meshRotationY"`

	// ShaderPlayhead is the value of the playhead uniform. Only meaningful when HasShaderPlayhead is set.
	ShaderPlayhead float64 `json:"shaderPlayhead"`

	// HasShaderPlayhead reports whether the playhead uniform is active.
	HasShaderPlayhead bool `json:"hasShaderPlayhead"`

	// BodyPositions holds the position of each orbiting body, indexed by body index.
	BodyPositions []mgl64.Vec3 `json:"bodyPositions"`
}

// Driver computes FrameUpdates from timestamps.
type Driver struct {
	bodyCount      int
	orbitRadius    float64
	orbitPolicy    OrbitPolicy
	phasePolicy    PhasePolicy
	shaderPlayhead bool
}

// NewDriver creates a Driver with no orbiting bodies, radius 2.2, the circular orbit policy, the decimal
// phase policy and the playhead disabled, then applies options and validates the result.
//
// Parameters:
//   - options: functional options configuring the driver
//
// Returns:
//   - *Driver: the configured driver
//   - error: a *config.ConfigurationError if an option value is invalid
func NewDriver(options ...DriverBuilderOption) (*Driver, error) {
	d := &Driver{
		orbitRadius: config.DefaultOrbitRadius,
		orbitPolicy: OrbitCircular,
		phasePolicy: PhaseDecimal,
	}
	for _, opt := range options {
		opt(d)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewDriverFromConfig creates a Driver from the animation fields of cfg.
//
// Parameters:
//   - cfg: the configuration to read body count, radius, policies and playhead flag from
//
// Returns:
//   - *Driver: the configured driver
//   - error: a *config.ConfigurationError if a field is invalid
func NewDriverFromConfig(cfg config.Config) (*Driver, error) {
	orbit, err := ParseOrbitPolicy(cfg.OrbitPolicy)
	if err != nil {
		return nil, err
	}
	phase, err := ParsePhasePolicy(cfg.PhasePolicy)
	if err != nil {
		return nil, err
	}
	return NewDriver(
		WithBodyCount(cfg.OrbitBodyCount),
		WithOrbitRadius(cfg.OrbitRadius),
		WithOrbitPolicy(orbit),
		WithPhasePolicy(phase),
		WithShaderPlayhead(cfg.EnableShaderPlayhead),
	)
}

func (d *Driver) validate() error {
	if d.bodyCount < 0 {
		return config.NewConfigurationError("orbitBodyCount", d.bodyCount, "must be >= 0")
	}
	if math.IsNaN(d.orbitRadius) || math.IsInf(d.orbitRadius, 0) || d.orbitRadius <= 0 {
		return config.NewConfigurationError("orbitRadius", d.orbitRadius, "must be finite and > 0")
	}
	switch d.orbitPolicy {
	case OrbitCircular, OrbitDiagonal:
	default:
		return config.NewConfigurationError("orbitPolicy", d.orbitPolicy, "unknown orbit policy")
	}
	switch d.phasePolicy {
	case PhaseDecimal, PhaseUniform:
	default:
		return config.NewConfigurationError("phasePolicy", d.phasePolicy, "unknown phase policy")
	}
	return nil
}

// BodyCount returns the number of orbiting bodies.
func (d *Driver) BodyCount() int {
	return d.bodyCount
}

// OrbitRadius returns the orbit radius.
func (d *Driver) OrbitRadius() float64 {
	return d.orbitRadius
}

// OrbitPolicy returns the configured orbit policy.
func (d *Driver) OrbitPolicy() OrbitPolicy {
	return d.orbitPolicy
}

// PhasePolicy returns the configured phase policy.
func (d *Driver) PhasePolicy() PhasePolicy {
	return d.phasePolicy
}

// ShaderPlayhead reports whether the playhead uniform is emitted.
func (d *Driver) ShaderPlayhead() bool {
	return d.shaderPlayhead
}

// Advance computes the frame update for timeMs. It is a pure function of timeMs: equal inputs yield
// bit-identical outputs.
//
// Parameters:
//   - timeMs: the frame timestamp in milliseconds (non-negative, non-decreasing across frames)
//
// Returns:
//   - FrameUpdate: the values to apply for this frame
func (d *Driver) Advance(timeMs float64) FrameUpdate {
	u := FrameUpdate{
		TimeMs:        timeMs,
		MeshRotationY: timeMs / RotationMsPerRadian,
		BodyPositions: make([]mgl64.Vec3, d.bodyCount),
	}
	if d.shaderPlayhead {
		u.HasShaderPlayhead = true
		u.ShaderPlayhead = timeMs / PlayheadMsPerUnit
	}
	for i := range u.BodyPositions {
		u.BodyPositions[i] = d.BodyPosition(timeMs, i)
	}
	return u
}

// Phase returns the fixed phase offset of body i under the configured phase policy.
//
// Parameters:
//   - i: the body index in [0, BodyCount)
//
// Returns:
//   - float64: the phase offset
func (d *Driver) Phase(i int) float64 {
	if d.phasePolicy == PhaseUniform {
		return UniformPhase(i, d.bodyCount)
	}
	return DecimalPhase(i)
}

// BodyAngle returns θ_i = (timeMs/6000)·2·π·phase(i).
//
// Parameters:
//   - timeMs: the frame timestamp in milliseconds
//   - i: the body index
//
// Returns:
//   - float64: the orbit angle in radians
func (d *Driver) BodyAngle(timeMs float64, i int) float64 {
	return (timeMs / OrbitPeriodMs) * 2 * math.Pi * d.Phase(i)
}

// BodyPosition returns the position of body i at timeMs under the configured orbit policy.
//
// Parameters:
//   - timeMs: the frame timestamp in milliseconds
//   - i: the body index
//
// Returns:
//   - mgl64.Vec3: the body position
func (d *Driver) BodyPosition(timeMs float64, i int) mgl64.Vec3 {
	theta := d.BodyAngle(timeMs, i)
	sin, cos := math.Sincos(theta)
	x := d.orbitRadius * sin
	y := d.orbitRadius * cos
	if d.orbitPolicy == OrbitDiagonal {
		y = d.orbitRadius * sin
	}
	return mgl64.Vec3{x, y, 0}
}
