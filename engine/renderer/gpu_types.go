package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCamera is the GPU-aligned camera uniform.
// Matches the WGSL Camera struct layout exactly.
// Size: 64 bytes.
type GPUCamera struct {
	ViewProj [16]float32 // offset 0: column-major projection * view (64 bytes)
}

// Size returns the size of the GPUCamera struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUCamera) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCamera struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUCamera) Marshal() []byte {
	buf := make([]byte, 64)
	putFloats(buf, g.ViewProj[:])
	return buf
}

// GPUObject is the GPU-aligned per-object uniform.
// Matches the WGSL Object struct layout exactly.
// Size: 80 bytes.
type GPUObject struct {
	Model [16]float32 // offset  0: column-major model matrix (64 bytes)
	Color [4]float32  // offset 64: linear RGBA base color (16 bytes)
}

// Size returns the size of the GPUObject struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUObject) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObject struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUObject) Marshal() []byte {
	buf := make([]byte, 80)
	putFloats(buf[0:64], g.Model[:])
	putFloats(buf[64:80], g.Color[:])
	return buf
}

func putFloats(dst []byte, src []float32) {
	for i, f := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}

// HexColor converts a 0xRRGGBB value to linear RGBA with alpha 1.
//
// Parameters:
//   - hex: the sRGB color
//
// Returns:
//   - [4]float32: the linear color
func HexColor(hex uint32) [4]float32 {
	return [4]float32{
		srgbToLinear(float32((hex >> 16) & 0xff)),
		srgbToLinear(float32((hex >> 8) & 0xff)),
		srgbToLinear(float32(hex & 0xff)),
		1,
	}
}

func srgbToLinear(c float32) float32 {
	s := float64(c) / 255
	if s <= 0.04045 {
		return float32(s / 12.92)
	}
	return float32(math.Pow((s+0.055)/1.055, 2.4))
}
