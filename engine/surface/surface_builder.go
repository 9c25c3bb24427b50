package surface

// Surface constants of the two scene variants.
const (
	// DefaultTwist is the helicoid twist constant t.
	DefaultTwist = 5.0

	// DefaultVerticalScale is the vertical scale k of the physical-material variant.
	DefaultVerticalScale = 1.5

	// ShadedVerticalScale is the vertical scale k of the shader-injection variant.
	ShadedVerticalScale = 2.0
)

// HelicoidBuilderOption is a functional option for configuring a Helicoid via NewHelicoid.
type HelicoidBuilderOption func(*Helicoid)

// WithTwist is an option builder that sets the twist constant t.
//
// Parameters:
//   - t: the twist constant
//
// Returns:
//   - HelicoidBuilderOption: a function that applies the twist option to a helicoid
func WithTwist(t float64) HelicoidBuilderOption {
	return func(h *Helicoid) {
		h.twist = t
	}
}

// WithVerticalScale is an option builder that sets the vertical scale constant k.
//
// Parameters:
//   - k: the vertical scale
//
// Returns:
//   - HelicoidBuilderOption: a function that applies the vertical scale option to a helicoid
func WithVerticalScale(k float64) HelicoidBuilderOption {
	return func(h *Helicoid) {
		h.verticalScale = k
	}
}

// PresetPhysical returns the options of the physical-material variant (t=5, k=1.5).
//
// Returns:
//   - []HelicoidBuilderOption: the preset options
func PresetPhysical() []HelicoidBuilderOption {
	return []HelicoidBuilderOption{WithTwist(DefaultTwist), WithVerticalScale(DefaultVerticalScale)}
}

// PresetShaded returns the options of the shader-injection variant (t=5, k=2.0).
//
// Returns:
//   - []HelicoidBuilderOption: the preset options
func PresetShaded() []HelicoidBuilderOption {
	return []HelicoidBuilderOption{WithTwist(DefaultTwist), WithVerticalScale(ShadedVerticalScale)}
}
