package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a fixed perspective viewpoint. Interactive controls are left to the host.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32 // vertical field of view in radians
	Near   float32
	Far    float32
}

// clipCorrection remaps OpenGL clip depth [-1, 1] to the WebGPU range [0, 1].
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// DefaultCamera returns the viewpoint of the reference scene: 80° field of view from (1, 1, 3) looking at
// the origin, near 0.1, far 100.
//
// Returns:
//   - Camera: the default camera
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{1, 1, 3},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   mgl32.DegToRad(80),
		Near:   0.1,
		Far:    100,
	}
}

// ViewProjection returns the column-major projection * view matrix in WebGPU clip space.
//
// Parameters:
//   - aspect: viewport aspect ratio (width/height); values <= 0 are treated as 1
//
// Returns:
//   - mgl32.Mat4: the combined matrix
func (c Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	view := mgl32.LookAtV(c.Eye, c.Target, c.Up)
	proj := clipCorrection.Mul4(mgl32.Perspective(c.FovY, aspect, c.Near, c.Far))
	return proj.Mul4(view)
}
