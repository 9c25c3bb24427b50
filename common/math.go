package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(unsafe.Sizeof(zero))*len(data))
}

// Vec3ToFloat32 narrows a float64 vector to the float32 triple used by GPU structs and scene objects.
//
// Parameters:
//   - v: the source vector
//
// Returns:
//   - [3]float32: the narrowed components
func Vec3ToFloat32(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// BuildModelMatrix writes translation * Ry * Rx * Rz * scale into out, column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - position: translation in world space
//   - rotation: Euler angles in radians around x, y and z
//   - scale: scale factors along each axis
func BuildModelMatrix(out []float32, position, rotation, scale [3]float32) {
	m := mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(mgl32.HomogRotate3DY(rotation[1])).
		Mul4(mgl32.HomogRotate3DX(rotation[0])).
		Mul4(mgl32.HomogRotate3DZ(rotation[2])).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
	copy(out, m[:])
}
