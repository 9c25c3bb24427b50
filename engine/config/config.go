// package config holds the recognized configuration surface of the helicoid core, its defaults,
// YAML loading, and validation. Validation failures are reported as *ConfigurationError.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Orbit policy names accepted by the orbitPolicy key.
const (
	// OrbitPolicyCircular places body i at (R·sin θ, R·cos θ), a true circle of radius R.
	OrbitPolicyCircular = "circular"

	// OrbitPolicyDiagonal places body i at (R·sin θ, R·sin θ). Bodies oscillate along a diagonal
	// line instead of orbiting; kept for parity with the variant that wrote both components from sin.
	OrbitPolicyDiagonal = "diagonal"
)

// Phase policy names accepted by the phasePolicy key.
const (
	// PhasePolicyDecimal derives the per-body phase by reading the index as a decimal fraction (i=3 -> -0.3).
	PhasePolicyDecimal = "decimal"

	// PhasePolicyUniform spaces phases evenly: phase(i) = -i/N.
	PhasePolicyUniform = "uniform"
)

// Defaults for the physical-material variant of the scene.
const (
	DefaultResolution    = 200
	DefaultTwist         = 5.0
	DefaultVerticalScale = 1.5
	ShadedVerticalScale  = 2.0
	DefaultOrbitRadius   = 2.2
	DefaultSphereRadius  = 0.1
	DefaultShadedBodies  = 5
	DefaultTickRate      = 60.0
	DefaultListenAddr    = ":8080"
)

// Config is the full configuration surface. Zero values are not meaningful; start from
// Default or ShadedDefault and override.
type Config struct {
	// ResolutionU is the number of grid cells along the u parameter (must be >= 1).
	ResolutionU int `yaml:"resolutionU" json:"resolutionU"`

	// ResolutionV is the number of grid cells along the v parameter (must be >= 1).
	ResolutionV int `yaml:"resolutionV" json:"resolutionV"`

	// Twist is the helicoid twist constant t.
	Twist float64 `yaml:"twist" json:"twist"`

	// VerticalScale is the y scale constant k.
	VerticalScale float64 `yaml:"verticalScale" json:"verticalScale"`

	// OrbitBodyCount is the number of orbiting bodies N (must be >= 0).
	OrbitBodyCount int `yaml:"orbitBodyCount" json:"orbitBodyCount"`

	// OrbitRadius is the orbit radius R (must be > 0).
	OrbitRadius float64 `yaml:"orbitRadius" json:"orbitRadius"`

	// EnableShaderPlayhead enables the time-varying playhead uniform.
	EnableShaderPlayhead bool `yaml:"enableShaderPlayhead" json:"enableShaderPlayhead"`

	// OrbitPolicy selects how body positions are derived from their angle.
	OrbitPolicy string `yaml:"orbitPolicy" json:"orbitPolicy"`

	// PhasePolicy selects how per-body phase offsets are derived from the body index.
	PhasePolicy string `yaml:"phasePolicy" json:"phasePolicy"`

	// SphereRadius is the radius of the sphere mesh drawn for each orbiting body.
	SphereRadius float64 `yaml:"sphereRadius" json:"sphereRadius"`

	// Workers is the number of tessellation workers. Values <= 1 tessellate sequentially.
	Workers int `yaml:"workers" json:"workers"`

	// TickRate is the headless frame loop rate in Hz.
	TickRate float64 `yaml:"tickRate" json:"tickRate"`

	// ListenAddr is the HTTP listen address of the frame server.
	ListenAddr string `yaml:"listenAddr" json:"listenAddr"`
}

// Default returns the configuration of the physical-material variant: a 200x200 helicoid with
// k=1.5, no orbiting bodies and no shader playhead.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		ResolutionU:    DefaultResolution,
		ResolutionV:    DefaultResolution,
		Twist:          DefaultTwist,
		VerticalScale:  DefaultVerticalScale,
		OrbitBodyCount: 0,
		OrbitRadius:    DefaultOrbitRadius,
		OrbitPolicy:    OrbitPolicyCircular,
		PhasePolicy:    PhasePolicyDecimal,
		SphereRadius:   DefaultSphereRadius,
		Workers:        1,
		TickRate:       DefaultTickRate,
		ListenAddr:     DefaultListenAddr,
	}
}

// ShadedDefault returns the configuration of the shader-injection variant: k=2.0, five orbiting
// bodies and the playhead uniform enabled.
//
// Returns:
//   - Config: the shaded variant configuration
func ShadedDefault() Config {
	c := Default()
	c.VerticalScale = ShadedVerticalScale
	c.OrbitBodyCount = DefaultShadedBodies
	c.EnableShaderPlayhead = true
	return c
}

// Load reads a YAML configuration file and overlays it onto Default. Keys missing from the file
// keep their default values; unknown keys are rejected. The result is validated.
//
// Parameters:
//   - path: the YAML file path
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, parsed, or fails validation
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data, Default())
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes over the given base configuration and validates the result.
//
// Parameters:
//   - data: the YAML document
//   - base: the configuration supplying values for absent keys
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if decoding or validation fails
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its constraint and returns the first violation.
//
// Returns:
//   - error: a *ConfigurationError describing the first invalid field, or nil
func (c Config) Validate() error {
	if c.ResolutionU <= 0 {
		return NewConfigurationError("resolutionU", c.ResolutionU, "must be >= 1")
	}
	if c.ResolutionV <= 0 {
		return NewConfigurationError("resolutionV", c.ResolutionV, "must be >= 1")
	}
	if !isFinite(c.Twist) {
		return NewConfigurationError("twist", c.Twist, "must be finite")
	}
	if !isFinite(c.VerticalScale) {
		return NewConfigurationError("verticalScale", c.VerticalScale, "must be finite")
	}
	if c.OrbitBodyCount < 0 {
		return NewConfigurationError("orbitBodyCount", c.OrbitBodyCount, "must be >= 0")
	}
	if !isFinite(c.OrbitRadius) || c.OrbitRadius <= 0 {
		return NewConfigurationError("orbitRadius", c.OrbitRadius, "must be finite and > 0")
	}
	switch c.OrbitPolicy {
	case OrbitPolicyCircular, OrbitPolicyDiagonal:
	default:
		return NewConfigurationError("orbitPolicy", c.OrbitPolicy, "must be \"circular\" or \"diagonal\"")
	}
	switch c.PhasePolicy {
	case PhasePolicyDecimal, PhasePolicyUniform:
	default:
		return NewConfigurationError("phasePolicy", c.PhasePolicy, "must be \"decimal\" or \"uniform\"")
	}
	if !isFinite(c.SphereRadius) || c.SphereRadius <= 0 {
		return NewConfigurationError("sphereRadius", c.SphereRadius, "must be finite and > 0")
	}
	if !isFinite(c.TickRate) || c.TickRate <= 0 {
		return NewConfigurationError("tickRate", c.TickRate, "must be finite and > 0")
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
