package renderer

import "github.com/cogentcore/webgpu/wgpu"

// PresentMode selects how frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank (FIFO).
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately.
	PresentModeUncapped
)

// wgpuMode maps a PresentMode to its WebGPU value.
func (m PresentMode) wgpuMode() wgpu.PresentMode {
	if m == PresentModeUncapped {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

// RendererBuilderOption is a functional option for configuring a Renderer.
type RendererBuilderOption func(*wgpuRenderer)

// WithPresentMode sets the surface present mode.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.presentMode = mode
	}
}

// WithShaded selects the playhead fragment template for the helicoid instead of the physical material.
//
// Parameters:
//   - enabled: true to draw the helicoid with the playhead template
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithShaded(enabled bool) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.shaded = enabled
	}
}

// WithCamera sets the initial camera.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithCamera(c Camera) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.camera = c
	}
}

// WithColors sets the base colors of the helicoid and the bodies as 0xRRGGBB values.
//
// Parameters:
//   - helicoid: base color of the helicoid
//   - body: base color of the orbiting bodies
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithColors(helicoid, body uint32) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.helicoidColor = HexColor(helicoid)
		r.bodyColor = HexColor(body)
	}
}
