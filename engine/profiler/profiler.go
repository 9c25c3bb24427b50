package profiler

import (
	"log"
	"math"
	"runtime"
	"time"
)

// Stats summarizes one profiling interval.
type Stats struct {
	Frames      int     // frames ticked during the interval
	FPS         float64 // frames per second of frame-clock time
	MeanDeltaMs float64 // mean frame delta in milliseconds
	MaxDeltaMs  float64 // largest frame delta in milliseconds
	Regressions int     // frames whose timestamp was earlier than the previous one
}

// Profiler tracks frame deltas and memory statistics for performance monitoring.
// It is driven by the frame clock the animation runs on, not the wall clock, so an interval covers
// exactly the animated time it reports on. Stats are written to the log once per interval.
type Profiler struct {
	interval float64 // interval length in milliseconds
	logger   *log.Logger

	started     bool
	windowStart float64
	lastTime    float64
	frameCount  int
	deltaSum    float64
	deltaMax    float64
	regressions int

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler. The interval defaults to 1 second and output goes to the
// standard logger.
//
// Parameters:
//   - options: functional options for the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		interval: float64(time.Second / time.Millisecond),
		logger:   log.Default(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per frame with the frame timestamp. The first call only starts the
// interval. A timestamp earlier than the previous one is counted as a regression and its delta is
// ignored.
//
// Parameters:
//   - timeMs: the frame timestamp in milliseconds
//
// Returns:
//   - Stats: the interval summary, valid only when the bool is true
//   - bool: true if an interval completed and was logged this tick
func (p *Profiler) Tick(timeMs float64) (Stats, bool) {
	if !p.started {
		p.started = true
		p.windowStart = timeMs
		p.lastTime = timeMs
		return Stats{}, false
	}

	delta := timeMs - p.lastTime
	p.lastTime = timeMs
	if delta < 0 {
		// Frames before the regression belong to a different clock; start the interval over.
		p.regressions++
		p.windowStart = timeMs
		p.frameCount = 0
		p.deltaSum = 0
		p.deltaMax = 0
		return Stats{}, false
	}
	p.frameCount++
	p.deltaSum += delta
	p.deltaMax = math.Max(p.deltaMax, delta)

	elapsed := timeMs - p.windowStart
	if elapsed < p.interval {
		return Stats{}, false
	}

	st := Stats{
		Frames:      p.frameCount,
		FPS:         float64(p.frameCount) / (elapsed / 1000),
		MeanDeltaMs: p.deltaSum / float64(p.frameCount),
		MaxDeltaMs:  p.deltaMax,
		Regressions: p.regressions,
	}
	p.logStats(st)

	p.windowStart = timeMs
	p.frameCount = 0
	p.deltaSum = 0
	p.deltaMax = 0
	p.regressions = 0
	return st, true
}

// logStats writes the interval summary together with heap and GC figures.
func (p *Profiler) logStats(st Stats) {
	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocDeltaMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024

	gcCount := p.memStats.NumGC
	var lastPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
	}

	p.logger.Printf("[Profiler] FPS: %.2f | dt mean: %.2f ms, max: %.2f ms | regressions: %d | Heap: %.2f MB (+%.2f MB) | GC: %d (last: %d µs, +%d) | Sys: %.2f MB",
		st.FPS, st.MeanDeltaMs, st.MaxDeltaMs, st.Regressions, heapMB, allocDeltaMB, gcCount, lastPauseUs, gcCount-p.lastGCCount, sysMB)

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
