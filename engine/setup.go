package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/Carmen-Shannon/helicoid-go/engine/animation"
	"github.com/Carmen-Shannon/helicoid-go/engine/config"
	"github.com/Carmen-Shannon/helicoid-go/engine/mesh"
	"github.com/Carmen-Shannon/helicoid-go/engine/stage"
	"github.com/Carmen-Shannon/helicoid-go/engine/surface"
)

// Assets holds everything built once at setup from a Config.
type Assets struct {
	Config   config.Config
	Helicoid *mesh.Mesh
	Body     *mesh.Mesh // nil when no bodies are animated
	Driver   *animation.Driver
	Scene    *stage.Scene
}

// Prepare validates cfg, tessellates the helicoid (and the body sphere when bodies are animated), and
// builds the driver and scene. Every configuration error is reported before any sampling.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - *Assets: the prepared assets
//   - error: a *config.ConfigurationError for invalid configuration, or a wrapped setup error
func Prepare(cfg config.Config) (*Assets, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	driver, err := animation.NewDriverFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	h := surface.NewHelicoid(surface.WithTwist(cfg.Twist), surface.WithVerticalScale(cfg.VerticalScale))
	m, err := mesh.Tessellate(cfg.ResolutionU, cfg.ResolutionV, h, mesh.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, fmt.Errorf("failed to tessellate helicoid: %w", err)
	}
	log.Printf("[Engine] tessellated %dx%d helicoid: %d vertices, %d triangles in %v",
		cfg.ResolutionU, cfg.ResolutionV, m.VertexCount(), m.TriangleCount(), time.Since(start))

	a := &Assets{Config: cfg, Helicoid: m, Driver: driver}
	if driver.BodyCount() > 0 {
		a.Body, err = mesh.Sphere(cfg.SphereRadius, mesh.DefaultSphereSegments, mesh.DefaultSphereRings)
		if err != nil {
			return nil, err
		}
	}

	// Body meshes are built at their final radius, so scene objects keep unit scale.
	a.Scene, err = stage.NewScene(driver, 1)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// NewEngineForAssets creates an Engine driving a's scene.
//
// Parameters:
//   - a: the prepared assets
//   - options: additional engine options (window, profiling, callbacks)
//
// Returns:
//   - Engine: the engine
//   - error: error if the engine rejects its configuration
func NewEngineForAssets(a *Assets, options ...EngineBuilderOption) (Engine, error) {
	base := []EngineBuilderOption{
		WithDriver(a.Driver),
		WithStage(a.Scene.Stage),
		WithTickRate(a.Config.TickRate),
	}
	return NewEngine(append(base, options...)...)
}
