package profiler

import (
	"log"
	"time"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how much frame-clock time one profiling interval covers.
// Values <= 0 keep the default of 1 second.
//
// Parameters:
//   - d: the interval length
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.interval = float64(d) / float64(time.Millisecond)
		}
	}
}

// WithLogger redirects profiler output. A nil logger keeps the standard logger.
//
// Parameters:
//   - l: the destination logger
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(l *log.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if l != nil {
			p.logger = l
		}
	}
}
