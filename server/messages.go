package server

import (
	"github.com/Carmen-Shannon/helicoid-go/engine/animation"
	"github.com/Carmen-Shannon/helicoid-go/engine/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

// WebSocket message types.
const (
	MessageHello = "hello"
	MessageMesh  = "mesh"
	MessageTick  = "tick"
	MessageFrame = "frame"
	MessageError = "error"
)

// MeshPayload is the JSON form of the tessellated helicoid plus the body sphere a browser renderer
// needs to build its geometry once.
type MeshPayload struct {
	Type          string         `json:"type,omitempty"`
	ResolutionU   int            `json:"resolutionU"`
	ResolutionV   int            `json:"resolutionV"`
	VertexCount   int            `json:"vertexCount"`
	TriangleCount int            `json:"triangleCount"`
	Positions     []mgl64.Vec3   `json:"positions"`
	Normals       []mgl64.Vec3   `json:"normals"`
	UVs           [][2]float64   `json:"uvs"`
	Indices       []uint32       `json:"indices"`
	Body          *SpherePayload `json:"body,omitempty"`
}

// SpherePayload is the JSON form of the orbiting body mesh.
type SpherePayload struct {
	Radius    float64      `json:"radius"`
	Positions []mgl64.Vec3 `json:"positions"`
	Normals   []mgl64.Vec3 `json:"normals"`
	Indices   []uint32     `json:"indices"`
}

// HelloMessage opens every session.
type HelloMessage struct {
	Type    string `json:"type"`
	Session string `json:"session"`
}

// TickMessage is a client timestamp, typically a requestAnimationFrame time.
type TickMessage struct {
	Type   string   `json:"type"`
	TimeMs *float64 `json:"timeMs"`
}

// FrameMessage carries one FrameUpdate.
type FrameMessage struct {
	Type  string                `json:"type"`
	Frame animation.FrameUpdate `json:"frame"`
}

// ErrorMessage reports a rejected client message.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// newMeshPayload builds the mesh payload. body may be nil when no bodies are animated.
func newMeshPayload(m *mesh.Mesh, body *mesh.Mesh, bodyRadius float64) MeshPayload {
	p := MeshPayload{
		ResolutionU:   m.ResolutionU,
		ResolutionV:   m.ResolutionV,
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
		Positions:     m.Positions,
		Normals:       m.Normals,
		UVs:           m.UVs,
		Indices:       m.Indices,
	}
	if body != nil {
		p.Body = &SpherePayload{
			Radius:    bodyRadius,
			Positions: body.Positions,
			Normals:   body.Normals,
			Indices:   body.Indices,
		}
	}
	return p
}
