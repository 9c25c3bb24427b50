// package mesh samples parametric surfaces on regular (u, v) grids and produces triangle meshes
// with per-vertex normals, ready to hand to an external renderer.
package mesh

import (
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/helicoid-go/engine/config"
	"github.com/Carmen-Shannon/helicoid-go/engine/surface"
	"github.com/go-gl/mathgl/mgl64"
)

// TessellateOption is a functional option for configuring a Tessellate call.
type TessellateOption func(*tessellateOptions)

type tessellateOptions struct {
	workers int
	normals bool
}

// WithWorkers sets the number of worker goroutines used to sample grid rows.
// Values <= 1 sample sequentially on the calling goroutine.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - TessellateOption: option function to apply
func WithWorkers(n int) TessellateOption {
	return func(o *tessellateOptions) {
		o.workers = n
	}
}

// WithNormals sets whether per-vertex normals are computed. Disable it when the consuming
// renderer derives its own normals.
//
// Parameters:
//   - enabled: true to compute normals (default)
//
// Returns:
//   - TessellateOption: option function to apply
func WithNormals(enabled bool) TessellateOption {
	return func(o *tessellateOptions) {
		o.normals = enabled
	}
}

// Tessellate samples s on a (resolutionU+1) x (resolutionV+1) grid, with u = i/resolutionU and
// v = j/resolutionV, and connects neighboring samples into two triangles per cell.
// Invalid resolutions are rejected with a *config.ConfigurationError before any sampling.
//
// Parameters:
//   - resolutionU: number of grid cells along u (must be >= 1)
//   - resolutionV: number of grid cells along v (must be >= 1)
//   - s: the surface to sample
//   - options: functional options (worker count, normals)
//
// Returns:
//   - *Mesh: the tessellated mesh
//   - error: a *config.ConfigurationError if the resolution is invalid
func Tessellate(resolutionU, resolutionV int, s surface.Sampler, options ...TessellateOption) (*Mesh, error) {
	if resolutionU <= 0 {
		return nil, config.NewConfigurationError("resolutionU", resolutionU, "must be >= 1")
	}
	if resolutionV <= 0 {
		return nil, config.NewConfigurationError("resolutionV", resolutionV, "must be >= 1")
	}
	if uint64(resolutionU+1)*uint64(resolutionV+1) > math.MaxUint32 {
		return nil, config.NewConfigurationError("resolutionU", resolutionU, "grid exceeds 32-bit vertex indices")
	}

	opts := tessellateOptions{workers: 1, normals: true}
	for _, opt := range options {
		opt(&opts)
	}

	rows := resolutionU + 1
	cols := resolutionV + 1
	m := &Mesh{
		ResolutionU: resolutionU,
		ResolutionV: resolutionV,
		Positions:   make([]surface.Point3, rows*cols),
		UVs:         make([][2]float64, rows*cols),
		Indices:     gridIndices(resolutionU, resolutionV),
	}

	// Each row writes a disjoint range of Positions, so rows can be sampled in any order.
	forEachRowRange(rows, opts.workers, func(start, end int) {
		for i := start; i < end; i++ {
			u := float64(i) / float64(resolutionU)
			for j := 0; j < cols; j++ {
				v := float64(j) / float64(resolutionV)
				idx := i*cols + j
				m.Positions[idx] = s.Evaluate(u, v)
				m.UVs[idx] = [2]float64{u, v}
			}
		}
	})

	if opts.normals {
		// Normals read neighboring rows, so they run after every position is written.
		m.Normals = make([]mgl64.Vec3, rows*cols)
		forEachRowRange(rows, opts.workers, func(start, end int) {
			gridNormals(m, start, end)
		})
	}

	return m, nil
}

// gridIndices builds the triangle list of a resU x resV grid. For the cell with corners
// a=(i,j), b=(i+1,j), c=(i,j+1), d=(i+1,j+1) the triangles are (a, b, d) and (a, d, c),
// so every cell is split along the same a-d diagonal.
func gridIndices(resU, resV int) []uint32 {
	cols := uint32(resV + 1)
	indices := make([]uint32, 0, 6*resU*resV)
	for i := 0; i < resU; i++ {
		for j := 0; j < resV; j++ {
			a := uint32(i)*cols + uint32(j)
			b := a + cols
			c := a + 1
			d := b + 1
			indices = append(indices, a, b, d, a, d, c)
		}
	}
	return indices
}

// forEachRowRange splits [0, rows) into contiguous ranges and calls fn on each.
// With more than one worker the ranges are processed on a DynamicWorkerPool and the call
// returns once every range has completed.
func forEachRowRange(rows, workers int, fn func(start, end int)) {
	if workers <= 1 || rows <= 1 {
		fn(0, rows)
		return
	}
	workers = min(workers, rows)

	pool := worker.NewDynamicWorkerPool(workers, workers, 1*time.Second)

	// The pool's own Wait blocks until workers idle-exit; a WaitGroup gives a prompt barrier.
	var wg sync.WaitGroup
	chunk := (rows + workers - 1) / workers
	taskID := 0
	for start := 0; start < rows; start += chunk {
		end := min(start+chunk, rows)
		wg.Add(1)
		s, e := start, end
		pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				fn(s, e)
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
	pool.Stop()
}
