package stage

// SceneObjectBuilderOption is a functional option for configuring a SceneObject during construction.
type SceneObjectBuilderOption func(*sceneObject)

// WithID sets the ID of the SceneObject.
//
// Parameters:
//   - id: identifier for the object
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the ID
func WithID(id uint64) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.id = id
	}
}

// WithName sets the debug name of the SceneObject.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the name
func WithName(name string) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.name = name
	}
}

// WithPosition sets the initial position of the SceneObject.
//
// Parameters:
//   - x, y, z: the position components
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.position = [3]float32{x, y, z}
	}
}

// WithScale sets the initial scale of the SceneObject.
//
// Parameters:
//   - sx, sy, sz: the scale factors
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the initial scale
func WithScale(sx, sy, sz float32) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.scale = [3]float32{sx, sy, sz}
	}
}
