// package renderer is a compact WebGPU preview renderer for the helicoid scene. It draws the uploaded
// helicoid and body meshes with the transforms held by a stage.Scene, using either the physical material
// or the playhead fragment template.
package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/helicoid-go/engine/mesh"
	"github.com/Carmen-Shannon/helicoid-go/engine/stage"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoMesh is returned by Render before UploadMesh has been called.
var ErrNoMesh = errors.New("no mesh uploaded")

// Renderer draws a stage.Scene into a window surface.
type Renderer interface {
	// Resize reconfigures the surface and depth buffer.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	Resize(width, height int)

	// SetCamera replaces the camera.
	//
	// Parameters:
	//   - c: the camera
	SetCamera(c Camera)

	// UploadMesh creates GPU buffers for the helicoid and, optionally, the body sphere.
	//
	// Parameters:
	//   - helicoid: the packed helicoid mesh
	//   - body: the packed body mesh, or nil when no bodies are drawn
	//
	// Returns:
	//   - error: error if a buffer cannot be created
	UploadMesh(helicoid mesh.Upload, body *mesh.Upload) error

	// Render draws one frame of sc and presents it.
	//
	// Parameters:
	//   - sc: the scene whose transforms and playhead are drawn
	//
	// Returns:
	//   - error: ErrNoMesh before UploadMesh, or a GPU error
	Render(sc *stage.Scene) error

	// Release frees all GPU resources.
	Release()
}

type gpuMesh struct {
	vertex     *wgpu.Buffer
	index      *wgpu.Buffer
	indexCount uint32
	format     wgpu.IndexFormat
}

type gpuObject struct {
	buffer *wgpu.Buffer
	group  *wgpu.BindGroup
}

// wgpuRenderer implements Renderer on github.com/cogentcore/webgpu.
type wgpuRenderer struct {
	mu sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	presentMode   PresentMode
	depthTexture  *wgpu.Texture
	depthView     *wgpu.TextureView
	width, height int

	objectLayout   *wgpu.BindGroupLayout
	playheadLayout *wgpu.BindGroupLayout
	physical       *wgpu.RenderPipeline
	playhead       *wgpu.RenderPipeline

	cameraBuffer   *wgpu.Buffer
	playheadBuffer *wgpu.Buffer
	playheadGroup  *wgpu.BindGroup
	objects        []gpuObject

	helicoid *gpuMesh
	body     *gpuMesh

	shaded        bool
	camera        Camera
	helicoidColor [4]float32
	bodyColor     [4]float32
}

var _ Renderer = &wgpuRenderer{}

// NewRenderer creates the WebGPU device for a window surface, configures the surface at width x height
// and compiles the preview pipelines.
//
// Parameters:
//   - surfaceDescriptor: the window surface descriptor (see window.Window.SurfaceDescriptor)
//   - width, height: the initial framebuffer size
//   - options: functional options for the renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: error if no adapter or device is available or a pipeline fails to compile
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("renderer: nil surface descriptor")
	}
	runtime.LockOSThread()

	r := &wgpuRenderer{
		instance:      wgpu.CreateInstance(nil),
		camera:        DefaultCamera(),
		helicoidColor: HexColor(0x3f07c5),
		bodyColor:     HexColor(0xffffff),
	}
	for _, opt := range options {
		opt(r)
	}

	r.surface = r.instance.CreateSurface(surfaceDescriptor)
	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{CompatibleSurface: r.surface})
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Helicoid Device"})
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	r.device = device
	r.queue = device.GetQueue()

	caps := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = caps.Formats[0]
	r.alphaMode = caps.AlphaModes[0]
	r.Resize(width, height)

	if err := r.createPipelines(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *wgpuRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode.wgpuMode(),
		AlphaMode:   r.alphaMode,
	})

	if r.depthView != nil {
		r.depthView.Release()
		r.depthTexture.Release()
	}
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		panic(err)
	}
	r.depthTexture, r.depthView = tex, view
}

func (r *wgpuRenderer) SetCamera(c Camera) {
	r.mu.Lock()
	r.camera = c
	r.mu.Unlock()
}

// createPipelines builds the bind group layouts, the shared uniform buffers and both render pipelines.
func (r *wgpuRenderer) createPipelines() error {
	var err error
	r.objectLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Object Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageVertex, uint64((&GPUCamera{}).Size())),
			uniformEntry(1, wgpu.ShaderStageVertex, uint64((&GPUObject{}).Size())),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create object layout: %w", err)
	}
	r.playheadLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Playhead Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(stage.PlayheadBinding, wgpu.ShaderStageFragment, uint64((&stage.GPUPlayhead{}).Size())),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create playhead layout: %w", err)
	}

	if r.cameraBuffer, err = r.uniformBuffer("Camera Buffer", (&GPUCamera{}).Size()); err != nil {
		return err
	}
	if r.playheadBuffer, err = r.uniformBuffer("Playhead Buffer", (&stage.GPUPlayhead{}).Size()); err != nil {
		return err
	}
	r.playheadGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Playhead Bind Group",
		Layout:  r.playheadLayout,
		Entries: []wgpu.BindGroupEntry{{Binding: stage.PlayheadBinding, Buffer: r.playheadBuffer, Size: wgpu.WholeSize}},
	})
	if err != nil {
		return fmt.Errorf("failed to create playhead bind group: %w", err)
	}

	if r.physical, err = r.renderPipeline("Physical", FragmentShaderSource(false), r.objectLayout); err != nil {
		return err
	}
	if r.shaded {
		if r.playhead, err = r.renderPipeline("Playhead", FragmentShaderSource(true), r.objectLayout, r.playheadLayout); err != nil {
			return err
		}
	}
	return nil
}

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = size
	return entry
}

func (r *wgpuRenderer) uniformBuffer(label string, size int) (*wgpu.Buffer, error) {
	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	return buf, nil
}

// renderPipeline compiles the preview vertex stage with fragmentSource. Both faces are drawn.
func (r *wgpuRenderer) renderPipeline(label, fragmentSource string, layouts ...*wgpu.BindGroupLayout) (*wgpu.RenderPipeline, error) {
	vs, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " Vertex",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: VertexShaderSource()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s vertex shader: %w", label, err)
	}
	defer vs.Release()
	fs, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " Fragment",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: fragmentSource},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s fragment shader: %w", label, err)
	}
	defer fs.Release()

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label + " Pipeline Layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return nil, err
	}

	return r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{mesh.VertexBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
}

func (r *wgpuRenderer) UploadMesh(helicoid mesh.Upload, body *mesh.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.createMesh("Helicoid", helicoid)
	if err != nil {
		return err
	}
	r.helicoid = h
	if body != nil {
		if r.body, err = r.createMesh("Body", *body); err != nil {
			return err
		}
	}
	return nil
}

func (r *wgpuRenderer) createMesh(label string, up mesh.Upload) (*gpuMesh, error) {
	vb, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Vertex Buffer",
		Size:  uint64(len(up.VertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	r.queue.WriteBuffer(vb, 0, up.VertexData)

	ib, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Index Buffer",
		Size:  uint64(len(up.IndexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return nil, err
	}
	r.queue.WriteBuffer(ib, 0, up.IndexData)

	return &gpuMesh{vertex: vb, index: ib, indexCount: uint32(up.IndexCount), format: up.IndexFormat}, nil
}

// ensureObjects grows the per-object uniform buffers and bind groups to n.
func (r *wgpuRenderer) ensureObjects(n int) error {
	for len(r.objects) < n {
		label := fmt.Sprintf("Object %d", len(r.objects))
		buf, err := r.uniformBuffer(label+" Buffer", (&GPUObject{}).Size())
		if err != nil {
			return err
		}
		group, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  label + " Bind Group",
			Layout: r.objectLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: r.cameraBuffer, Size: wgpu.WholeSize},
				{Binding: 1, Buffer: buf, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			buf.Release()
			return err
		}
		r.objects = append(r.objects, gpuObject{buffer: buf, group: group})
	}
	return nil
}

func (r *wgpuRenderer) Render(sc *stage.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.helicoid == nil {
		return ErrNoMesh
	}
	drawBodies := r.body != nil && len(sc.Bodies) > 0
	count := 1
	if drawBodies {
		count += len(sc.Bodies)
	}
	if err := r.ensureObjects(count); err != nil {
		return err
	}

	cam := GPUCamera{ViewProj: [16]float32(r.camera.ViewProjection(float32(r.width) / float32(r.height)))}
	r.queue.WriteBuffer(r.cameraBuffer, 0, cam.Marshal())
	r.writeObject(0, sc.Mesh, r.helicoidColor)
	if drawBodies {
		for i, b := range sc.Bodies {
			r.writeObject(i+1, b, r.bodyColor)
		}
	}
	if sc.Playhead != nil {
		if w, ok := sc.Playhead.PendingWrite(); ok {
			r.queue.WriteBuffer(r.playheadBuffer, w.Offset, w.Data)
		}
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0.02, G: 0.02, B: 0.03, A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})

	if r.playhead != nil && sc.Playhead != nil {
		pass.SetPipeline(r.playhead)
		pass.SetBindGroup(1, r.playheadGroup, nil)
	} else {
		pass.SetPipeline(r.physical)
	}
	r.draw(pass, r.helicoid, r.objects[0].group)

	if drawBodies {
		pass.SetPipeline(r.physical)
		for i := range sc.Bodies {
			r.draw(pass, r.body, r.objects[i+1].group)
		}
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()
	r.queue.Submit(commandBuffer)
	r.surface.Present()
	return nil
}

func (r *wgpuRenderer) writeObject(i int, obj stage.SceneObject, color [4]float32) {
	var g GPUObject
	obj.ModelMatrix(g.Model[:])
	g.Color = color
	r.queue.WriteBuffer(r.objects[i].buffer, 0, g.Marshal())
}

func (r *wgpuRenderer) draw(pass *wgpu.RenderPassEncoder, m *gpuMesh, group *wgpu.BindGroup) {
	pass.SetBindGroup(0, group, nil)
	pass.SetVertexBuffer(0, m.vertex, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(m.index, m.format, 0, wgpu.WholeSize)
	pass.DrawIndexed(m.indexCount, 1, 0, 0, 0)
}

func (r *wgpuRenderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range []*gpuMesh{r.helicoid, r.body} {
		if m != nil {
			m.vertex.Release()
			m.index.Release()
		}
	}
	r.helicoid, r.body = nil, nil
	for _, o := range r.objects {
		o.group.Release()
		o.buffer.Release()
	}
	r.objects = nil
	for _, p := range []*wgpu.RenderPipeline{r.physical, r.playhead} {
		if p != nil {
			p.Release()
		}
	}
	r.physical, r.playhead = nil, nil
	for _, l := range []*wgpu.BindGroupLayout{r.objectLayout, r.playheadLayout} {
		if l != nil {
			l.Release()
		}
	}
	r.objectLayout, r.playheadLayout = nil, nil
	if r.playheadGroup != nil {
		r.playheadGroup.Release()
		r.playheadGroup = nil
	}
	for _, b := range []*wgpu.Buffer{r.cameraBuffer, r.playheadBuffer} {
		if b != nil {
			b.Release()
		}
	}
	r.cameraBuffer, r.playheadBuffer = nil, nil
	if r.depthView != nil {
		r.depthView.Release()
		r.depthTexture.Release()
		r.depthView, r.depthTexture = nil, nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.surface != nil {
		r.surface.Release()
		r.surface = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}
