package mesh

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/helicoid-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for surface meshes.
// Matches GPUVertex layout exactly (32 bytes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single surface vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 32 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: surface (u, v) parameters (8 bytes)
}

// GPUVertexSize is the size of a GPUVertex in bytes.
const GPUVertexSize = 32

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	fields := [8]float32{
		g.Position[0], g.Position[1], g.Position[2],
		g.Normal[0], g.Normal[1], g.Normal[2],
		g.TexCoord[0], g.TexCoord[1],
	}
	for i, f := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(f))
	}
	return buf
}

// VertexBufferLayout describes GPUVertex for a WebGPU render pipeline.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout (locations 0..2)
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: GPUVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}

// GPUVertices converts the mesh into GPU vertices. Missing normals are left zero.
//
// Returns:
//   - []GPUVertex: one vertex per mesh position
func (m *Mesh) GPUVertices() []GPUVertex {
	out := make([]GPUVertex, len(m.Positions))
	for i, p := range m.Positions {
		v := &out[i]
		v.Position = common.Vec3ToFloat32(p)
		if i < len(m.Normals) {
			v.Normal = common.Vec3ToFloat32(m.Normals[i])
		}
		if i < len(m.UVs) {
			v.TexCoord = [2]float32{float32(m.UVs[i][0]), float32(m.UVs[i][1])}
		}
	}
	return out
}

// Upload holds the packed mesh buffers consumed by a renderer's mesh-upload facility.
type Upload struct {
	// VertexData is the packed GPUVertex buffer.
	VertexData []byte

	// IndexData is the packed uint32 index buffer.
	IndexData []byte

	// IndexCount is the number of indices in IndexData.
	IndexCount int

	// Layout describes VertexData for pipeline creation.
	Layout wgpu.VertexBufferLayout

	// IndexFormat is the format of IndexData.
	IndexFormat wgpu.IndexFormat
}

// Pack converts the mesh into GPU upload buffers.
//
// Returns:
//   - Upload: the packed vertex and index buffers with their layout
func (m *Mesh) Pack() Upload {
	vertices := m.GPUVertices()
	return Upload{
		VertexData:  common.SliceToBytes(vertices),
		IndexData:   append([]byte(nil), common.SliceToBytes(m.Indices)...),
		IndexCount:  len(m.Indices),
		Layout:      VertexBufferLayout(),
		IndexFormat: wgpu.IndexFormatUint32,
	}
}
