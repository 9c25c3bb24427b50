package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/helicoid-go/engine/animation"
	"github.com/Carmen-Shannon/helicoid-go/engine/config"
	"github.com/Carmen-Shannon/helicoid-go/engine/profiler"
	"github.com/Carmen-Shannon/helicoid-go/engine/stage"
	"github.com/Carmen-Shannon/helicoid-go/engine/window"
)

// ErrTimeRegression is returned by Frame when a timestamp is earlier than the previous frame's.
var ErrTimeRegression = errors.New("frame timestamp went backwards")

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

// engine implements the Engine interface.
type engine struct {
	tickRateChannel chan time.Duration

	running atomic.Bool

	quitChannel chan struct{}
	quitOnce    sync.Once

	window window.Window
	driver *animation.Driver
	stage  *stage.Stage

	// frameMu serializes Frame; the headless ticker and a window loop may both drive it.
	frameMu          sync.Mutex
	hasFrame         bool
	lastTime         float64
	profiler         *profiler.Profiler
	profilingEnabled bool

	rateMu        sync.Mutex
	tickRate      time.Duration
	frameCallback func(u animation.FrameUpdate)
}

// Engine runs the per-frame path of the helicoid: it advances the animation driver to a timestamp,
// applies the result to the stage and feeds the profiler. Timestamps come from a window clock (Run),
// a fixed-rate ticker (RunHeadless) or a caller driving Frame directly.
type Engine interface {
	// Driver returns the animation driver.
	//
	// Returns:
	//   - *animation.Driver: the driver
	Driver() *animation.Driver

	// Stage returns the stage updates are applied to, or nil if the engine only computes updates.
	//
	// Returns:
	//   - *stage.Stage: the stage
	Stage() *stage.Stage

	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the headless tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetFrameCallback registers the function called after each applied frame.
	//
	// Parameters:
	//   - callback: function receiving the applied update (or nil to disable)
	SetFrameCallback(callback func(u animation.FrameUpdate))

	// Frame runs one frame at timeMs: advance, apply, profile, then the frame callback.
	//
	// Parameters:
	//   - timeMs: the frame timestamp in milliseconds, non-decreasing across calls
	//
	// Returns:
	//   - animation.FrameUpdate: the applied update
	//   - error: ErrTimeRegression for a timestamp earlier than the previous one, or a stage error
	Frame(timeMs float64) (animation.FrameUpdate, error)

	// Run drives frames from the window's message loop (blocks until the window closes).
	//
	// Returns:
	//   - error: ErrNoWindow if the engine has no window
	Run() error

	// RunHeadless drives frames from a fixed-rate ticker, timestamped with the milliseconds elapsed since
	// the call. Blocks until ctx is cancelled or Quit is called.
	//
	// Parameters:
	//   - ctx: context whose cancellation stops the loop
	//
	// Returns:
	//   - error: ctx.Err() if the context ended the loop, nil after Quit
	RunHeadless(ctx context.Context) error

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options. A driver is required; WithStage binds a
// stage whose body count must match the driver.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: a *config.ConfigurationError if the driver is missing or the stage does not match it
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		profiler:        profiler.NewProfiler(),
		tickRate:        time.Second / config.DefaultTickRate,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.driver == nil {
		return nil, config.NewConfigurationError("driver", nil, "an animation driver is required")
	}
	if e.stage != nil && e.stage.BodyCount() != e.driver.BodyCount() {
		return nil, config.NewConfigurationError("orbitBodyCount", e.stage.BodyCount(),
			fmt.Sprintf("stage holds %d bodies, driver animates %d", e.stage.BodyCount(), e.driver.BodyCount()))
	}
	return e, nil
}

func (e *engine) Driver() *animation.Driver {
	return e.driver
}

func (e *engine) Stage() *stage.Stage {
	return e.stage
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Frame(timeMs float64) (animation.FrameUpdate, error) {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()

	if e.hasFrame && timeMs < e.lastTime {
		return animation.FrameUpdate{}, fmt.Errorf("%w: %v after %v", ErrTimeRegression, timeMs, e.lastTime)
	}
	e.hasFrame = true
	e.lastTime = timeMs

	u := e.driver.Advance(timeMs)
	if e.stage != nil {
		if err := e.stage.Apply(u); err != nil {
			return u, fmt.Errorf("failed to apply frame at %v ms: %w", timeMs, err)
		}
	}
	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(timeMs)
	}
	if e.frameCallback != nil {
		e.frameCallback(u)
	}
	return u, nil
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	e.running.Store(true)
	e.window.SetUpdateCallback(func(timeMs float64) {
		select {
		case <-e.quitChannel:
			_ = e.window.Close()
			return
		default:
		}
		if _, err := e.Frame(timeMs); err != nil {
			log.Printf("[Engine] frame skipped: %v", err)
		}
	})
	e.window.ProcessMessages()
	e.signalQuit()
	return nil
}

func (e *engine) RunHeadless(ctx context.Context) error {
	e.running.Store(true)
	defer e.running.Store(false)
	return e.handleTicks(ctx)
}

// handleTicks runs the fixed-rate frame loop. Listens for tick rate changes via tickRateChannel and
// recovers from panics in the per-frame path, signalling quit on recovery.
func (e *engine) handleTicks(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame loop recovered from panic: %v", r)
			e.signalQuit()
			err = fmt.Errorf("frame loop panic: %v", r)
		}
	}()

	e.rateMu.Lock()
	rate := e.tickRate
	e.rateMu.Unlock()
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quitChannel:
			return nil
		case <-ticker.C:
			timeMs := float64(time.Since(start)) / float64(time.Millisecond)
			if _, err := e.Frame(timeMs); err != nil {
				log.Printf("[Engine] frame skipped: %v", err)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.rateMu.Lock()
			e.tickRate = newRate
			e.rateMu.Unlock()
		}
	}
}

// Quit signals all engine goroutines to stop.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel exactly once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

func (e *engine) EnableProfiler() {
	e.frameMu.Lock()
	e.profilingEnabled = true
	e.frameMu.Unlock()
}

func (e *engine) DisableProfiler() {
	e.frameMu.Lock()
	e.profilingEnabled = false
	e.frameMu.Unlock()
}

// SetTickRate sets the headless tick rate. If the loop is running the change takes effect on its next
// iteration.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	if !e.running.Load() {
		e.rateMu.Lock()
		e.tickRate = newRate
		e.rateMu.Unlock()
		return
	}
	// Replace any pending update rather than block.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetFrameCallback(callback func(u animation.FrameUpdate)) {
	e.frameMu.Lock()
	e.frameCallback = callback
	e.frameMu.Unlock()
}

// tickInterval converts a rate in Hz to a ticker period, treating fps <= 0 as the default rate.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = config.DefaultTickRate
	}
	return time.Duration(float64(time.Second) / fps)
}
