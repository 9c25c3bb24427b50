package engine

import (
	"github.com/Carmen-Shannon/helicoid-go/engine/animation"
	"github.com/Carmen-Shannon/helicoid-go/engine/profiler"
	"github.com/Carmen-Shannon/helicoid-go/engine/stage"
	"github.com/Carmen-Shannon/helicoid-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithDriver sets the animation driver frames are computed with.
//
// Parameters:
//   - d: the animation driver
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDriver(d *animation.Driver) EngineBuilderOption {
	return func(e *engine) {
		e.driver = d
	}
}

// WithStage sets the stage each frame is applied to.
//
// Parameters:
//   - s: the stage
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithStage(s *stage.Stage) EngineBuilderOption {
	return func(e *engine) {
		e.stage = s
	}
}

// WithWindow sets the window whose message loop and clock drive Run.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler to tick each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the headless tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.tickRate = tickInterval(fps)
	}
}

// WithFrameCallback registers the function called after each applied frame.
//
// Parameters:
//   - callback: function receiving the applied update
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback func(u animation.FrameUpdate)) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}
