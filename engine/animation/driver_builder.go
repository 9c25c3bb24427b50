package animation

// DriverBuilderOption is a functional option for configuring a Driver via NewDriver.
type DriverBuilderOption func(*Driver)

// WithBodyCount sets the number of orbiting bodies N.
//
// Parameters:
//   - n: the body count (must be >= 0)
//
// Returns:
//   - DriverBuilderOption: a function that applies the body count option to a driver
func WithBodyCount(n int) DriverBuilderOption {
	return func(d *Driver) {
		d.bodyCount = n
	}
}

// WithOrbitRadius sets the orbit radius R.
//
// Parameters:
//   - r: the orbit radius (must be > 0)
//
// Returns:
//   - DriverBuilderOption: a function that applies the radius option to a driver
func WithOrbitRadius(r float64) DriverBuilderOption {
	return func(d *Driver) {
		d.orbitRadius = r
	}
}

// WithOrbitPolicy sets how body positions are derived from their angle.
//
// Parameters:
//   - p: the orbit policy
//
// Returns:
//   - DriverBuilderOption: a function that applies the orbit policy option to a driver
func WithOrbitPolicy(p OrbitPolicy) DriverBuilderOption {
	return func(d *Driver) {
		d.orbitPolicy = p
	}
}

// WithPhasePolicy sets how per-body phase offsets are derived from the body index.
//
// Parameters:
//   - p: the phase policy
//
// Returns:
//   - DriverBuilderOption: a function that applies the phase policy option to a driver
func WithPhasePolicy(p PhasePolicy) DriverBuilderOption {
	return func(d *Driver) {
		d.phasePolicy = p
	}
}

// WithShaderPlayhead enables or disables the shader playhead uniform in frame updates.
//
// Parameters:
//   - enabled: true to emit the playhead value
//
// Returns:
//   - DriverBuilderOption: a function that applies the playhead option to a driver
func WithShaderPlayhead(enabled bool) DriverBuilderOption {
	return func(d *Driver) {
		d.shaderPlayhead = enabled
	}
}
