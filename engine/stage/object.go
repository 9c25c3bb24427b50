package stage

import (
	"sync"

	"github.com/Carmen-Shannon/helicoid-go/common"
)

type sceneObject struct {
	mu       sync.RWMutex
	id       uint64
	name     string
	position [3]float32
	rotation [3]float32
	scale    [3]float32
}

// SceneObject is an in-memory transform holder implementing Transformable. It stands in for a
// renderer-side object: the stage writes transforms into it and the renderer reads them back,
// possibly from another goroutine.
type SceneObject interface {
	Transformable

	// ID returns the object's identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's debug name.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Position returns the current position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the current Euler rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the current scale.
	//
	// Returns:
	//   - sx, sy, sz: scale factors
	Scale() (sx, sy, sz float32)

	// SetScale sets the scale factors.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)

	// ModelMatrix writes the column-major model matrix (translation * rotation * scale) into out.
	//
	// Parameters:
	//   - out: destination slice (must be at least 16 elements)
	ModelMatrix(out []float32)
}

var _ SceneObject = &sceneObject{}

// NewSceneObject creates a SceneObject at the origin with unit scale, then applies options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - SceneObject: the newly created object
func NewSceneObject(options ...SceneObjectBuilderOption) SceneObject {
	obj := &sceneObject{
		scale: [3]float32{1, 1, 1},
	}
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (o *sceneObject) ID() uint64 {
	return o.id
}

func (o *sceneObject) Name() string {
	return o.name
}

func (o *sceneObject) Position() (x, y, z float32) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.position[0], o.position[1], o.position[2]
}

func (o *sceneObject) Rotation() (rx, ry, rz float32) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.rotation[0], o.rotation[1], o.rotation[2]
}

func (o *sceneObject) Scale() (sx, sy, sz float32) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.scale[0], o.scale[1], o.scale[2]
}

func (o *sceneObject) SetPosition(x, y, z float32) {
	o.mu.Lock()
	o.position = [3]float32{x, y, z}
	o.mu.Unlock()
}

func (o *sceneObject) SetRotation(rx, ry, rz float32) {
	o.mu.Lock()
	o.rotation = [3]float32{rx, ry, rz}
	o.mu.Unlock()
}

func (o *sceneObject) SetScale(sx, sy, sz float32) {
	o.mu.Lock()
	o.scale = [3]float32{sx, sy, sz}
	o.mu.Unlock()
}

func (o *sceneObject) ModelMatrix(out []float32) {
	o.mu.RLock()
	p, r, s := o.position, o.rotation, o.scale
	o.mu.RUnlock()
	common.BuildModelMatrix(out, p, r, s)
}
