package renderer

import (
	_ "embed"

	"github.com/Carmen-Shannon/helicoid-go/engine/mesh"
	"github.com/Carmen-Shannon/helicoid-go/engine/stage"
)

//go:embed assets/preview_vert.wgsl
var previewVertexBody string

// PhysicalFragmentSource is the lit fragment stage used for the physical variant and for the bodies.
//
//go:embed assets/physical_frag.wgsl
var PhysicalFragmentSource string

// VertexShaderSource returns the preview vertex stage: the mesh VertexInput definition followed by the
// camera/object transform.
//
// Returns:
//   - string: the WGSL source
func VertexShaderSource() string {
	return mesh.GPUVertexSource + "\n" + previewVertexBody
}

// FragmentShaderSource returns the fragment stage for the helicoid.
//
// Parameters:
//   - shaded: true for the playhead template, false for the physical material
//
// Returns:
//   - string: the WGSL source
func FragmentShaderSource(shaded bool) string {
	if shaded {
		return stage.PlayheadShaderSource
	}
	return PhysicalFragmentSource
}
