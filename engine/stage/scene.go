package stage

import (
	"fmt"

	"github.com/Carmen-Shannon/helicoid-go/engine/animation"
)

// Scene bundles a Stage with in-memory targets for every value the driver animates. Hosts without a
// renderer of their own (the server, tests) read transforms back from it.
type Scene struct {
	Stage    *Stage
	Mesh     SceneObject
	Bodies   []SceneObject
	Playhead *PlayheadUniform
}

// NewScene creates one SceneObject for the mesh, one per orbiting body scaled to bodyRadius, and a
// PlayheadUniform when the driver emits a playhead, then binds them to a new Stage.
//
// Parameters:
//   - driver: the animation driver
//   - bodyRadius: uniform scale of each body object
//
// Returns:
//   - *Scene: the scene with its stage
//   - error: an error if the stage rejects the targets
func NewScene(driver *animation.Driver, bodyRadius float32) (*Scene, error) {
	sc := &Scene{
		Mesh:   NewSceneObject(WithID(0), WithName("helicoid")),
		Bodies: make([]SceneObject, driver.BodyCount()),
	}

	targets := make([]Transformable, driver.BodyCount())
	for i := range sc.Bodies {
		sc.Bodies[i] = NewSceneObject(
			WithID(uint64(i+1)),
			WithName(fmt.Sprintf("body-%d", i)),
			WithScale(bodyRadius, bodyRadius, bodyRadius),
		)
		targets[i] = sc.Bodies[i]
	}

	var playhead PlayheadTarget
	if driver.ShaderPlayhead() {
		sc.Playhead = NewPlayheadUniform()
		playhead = sc.Playhead
	}

	st, err := NewStage(driver, sc.Mesh, targets, playhead)
	if err != nil {
		return nil, fmt.Errorf("failed to build stage: %w", err)
	}
	sc.Stage = st
	return sc, nil
}
