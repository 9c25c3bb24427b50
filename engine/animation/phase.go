package animation

import (
	"strconv"

	"github.com/Carmen-Shannon/helicoid-go/engine/config"
)

// PhasePolicy derives the fixed phase offset of an orbiting body from its index.
type PhasePolicy int

const (
	// PhaseDecimal reads the body index as the digits of a negative decimal fraction:
	// i=1 -> -0.1, i=3 -> -0.3, i=13 -> -0.13. For i >= 10 the phases stop growing with i and
	// interleave with the single digit ones.
	PhaseDecimal PhasePolicy = iota

	// PhaseUniform spaces phases evenly over one turn: phase(i) = -i/N.
	PhaseUniform
)

// String returns the configuration name of the policy.
func (p PhasePolicy) String() string {
	switch p {
	case PhaseDecimal:
		return config.PhasePolicyDecimal
	case PhaseUniform:
		return config.PhasePolicyUniform
	default:
		return "PhasePolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParsePhasePolicy maps a configuration name to a PhasePolicy.
//
// Parameters:
//   - name: "decimal" or "uniform"
//
// Returns:
//   - PhasePolicy: the matching policy
//   - error: a *config.ConfigurationError for an unknown name
func ParsePhasePolicy(name string) (PhasePolicy, error) {
	switch name {
	case config.PhasePolicyDecimal:
		return PhaseDecimal, nil
	case config.PhasePolicyUniform:
		return PhaseUniform, nil
	default:
		return 0, config.NewConfigurationError("phasePolicy", name, "must be \"decimal\" or \"uniform\"")
	}
}

// DecimalPhase returns -0.i, the number written as "-0." followed by the decimal digits of i.
//
// Parameters:
//   - i: the body index (>= 0)
//
// Returns:
//   - float64: the phase offset
func DecimalPhase(i int) float64 {
	// The literal is always a well formed decimal, so ParseFloat cannot fail for i >= 0.
	phase, _ := strconv.ParseFloat("-0."+strconv.Itoa(i), 64)
	return phase
}

// UniformPhase returns -i/n.
//
// Parameters:
//   - i: the body index in [0, n)
//   - n: the body count (> 0)
//
// Returns:
//   - float64: the phase offset
func UniformPhase(i, n int) float64 {
	return -float64(i) / float64(n)
}
