package stage

import (
	_ "embed"
	"encoding/binary"
	"math"
	"sync"
	"unsafe"
)

// PlayheadShaderVersion identifies the fragment template revision. The first line of
// PlayheadShaderSource carries the same tag.
const PlayheadShaderVersion = "helicoid-playhead/1"

// PlayheadBinding is the binding index of the playhead uniform within its bind group.
const PlayheadBinding = 0

// PlayheadShaderSource is the fixed WGSL fragment template of the shaded variant. Its only
// host-driven input is the PlayheadParams uniform (see GPUPlayhead).
//
//go:embed assets/playhead_frag.wgsl
var PlayheadShaderSource string

// GPUPlayhead is the GPU-aligned uniform block of the playhead fragment template.
// Matches the WGSL PlayheadParams struct layout exactly.
// Size: 16 bytes (one f32 padded to a vec4).
type GPUPlayhead struct {
	Playhead float32    // offset 0: the time-derived playhead value (4 bytes)
	_        [3]float32 // offset 4: padding to 16 bytes
}

// Size returns the size of the GPUPlayhead struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUPlayhead) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPlayhead struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUPlayhead) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Playhead))
	return buf
}

// BufferWrite describes a pending uniform buffer write at a binding and byte offset.
type BufferWrite struct {
	Binding int
	Offset  uint64
	Data    []byte
}

// PlayheadUniform stages playhead values for upload. It implements PlayheadTarget; a renderer
// drains it once per frame with PendingWrite.
type PlayheadUniform struct {
	mu    sync.Mutex
	block GPUPlayhead
	dirty bool
}

var _ PlayheadTarget = &PlayheadUniform{}

// NewPlayheadUniform creates a PlayheadUniform holding playhead 0.
//
// Returns:
//   - *PlayheadUniform: the staged uniform
func NewPlayheadUniform() *PlayheadUniform {
	return &PlayheadUniform{}
}

// SetPlayhead stages a new playhead value.
//
// Parameters:
//   - value: the playhead value
func (p *PlayheadUniform) SetPlayhead(value float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.block.Playhead != value {
		p.dirty = true
	}
	p.block.Playhead = value
}

// Playhead returns the most recently staged value.
//
// Returns:
//   - float32: the playhead value
func (p *PlayheadUniform) Playhead() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.block.Playhead
}

// PendingWrite returns the buffer write for the staged value and clears the pending flag.
// It reports false when nothing changed since the last call.
//
// Returns:
//   - BufferWrite: the write targeting PlayheadBinding
//   - bool: true if a write is pending
func (p *PlayheadUniform) PendingWrite() (BufferWrite, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dirty {
		return BufferWrite{}, false
	}
	p.dirty = false
	return BufferWrite{Binding: PlayheadBinding, Data: p.block.Marshal()}, true
}
