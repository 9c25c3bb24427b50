package renderer

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	c := m.Mul4x1(p.Vec4(1))
	return mgl32.Vec3{c[0] / c[3], c[1] / c[3], c[2] / c[3]}
}

func TestViewProjectionCentersTarget(t *testing.T) {
	cam := DefaultCamera()
	ndc := project(cam.ViewProjection(16.0/9.0), cam.Target)
	if math.Abs(float64(ndc[0])) > 1e-5 || math.Abs(float64(ndc[1])) > 1e-5 {
		t.Fatalf("target projected to %v", ndc)
	}
	if ndc[2] <= 0 || ndc[2] >= 1 {
		t.Fatalf("target depth %v outside (0, 1)", ndc[2])
	}
}

func TestViewProjectionDepthRange(t *testing.T) {
	cam := DefaultCamera()
	vp := cam.ViewProjection(1)
	dir := cam.Target.Sub(cam.Eye).Normalize()

	near := project(vp, cam.Eye.Add(dir.Mul(cam.Near)))
	far := project(vp, cam.Eye.Add(dir.Mul(cam.Far)))
	if math.Abs(float64(near[2])) > 1e-4 {
		t.Fatalf("near plane depth = %v, want 0", near[2])
	}
	if math.Abs(float64(far[2])-1) > 1e-4 {
		t.Fatalf("far plane depth = %v, want 1", far[2])
	}
}

func TestViewProjectionInvalidAspect(t *testing.T) {
	cam := DefaultCamera()
	if !cam.ViewProjection(0).ApproxEqual(cam.ViewProjection(1)) {
		t.Fatal("aspect 0 not treated as 1")
	}
}

func TestGPUTypeSizes(t *testing.T) {
	var c GPUCamera
	var o GPUObject
	if c.Size() != 64 || len(c.Marshal()) != 64 {
		t.Fatalf("GPUCamera size = %d", c.Size())
	}
	if o.Size() != 80 || len(o.Marshal()) != 80 {
		t.Fatalf("GPUObject size = %d", o.Size())
	}
}

func TestGPUObjectMarshal(t *testing.T) {
	o := GPUObject{Color: [4]float32{0.25, 0.5, 0.75, 1}}
	o.Model[12] = 3
	buf := o.Marshal()
	read := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	if read(48) != 3 || read(64) != 0.25 || read(76) != 1 {
		t.Fatalf("marshal = %v %v %v", read(48), read(64), read(76))
	}
}

func TestHexColor(t *testing.T) {
	white := HexColor(0xffffff)
	black := HexColor(0x000000)
	for i := 0; i < 3; i++ {
		if math.Abs(float64(white[i])-1) > 1e-6 || black[i] != 0 {
			t.Fatalf("white = %v, black = %v", white, black)
		}
	}
	c := HexColor(0x3f07c5)
	if !(c[2] > c[0] && c[0] > c[1]) || c[3] != 1 {
		t.Fatalf("0x3f07c5 = %v", c)
	}
}

func TestShaderSources(t *testing.T) {
	vs := VertexShaderSource()
	for _, want := range []string{"struct VertexInput", "fn vs_main", "@location(2) color"} {
		if !strings.Contains(vs, want) {
			t.Fatalf("vertex source missing %q", want)
		}
	}
	if !strings.Contains(FragmentShaderSource(false), "fn fs_main") {
		t.Fatal("physical fragment source missing fs_main")
	}
	if !strings.Contains(FragmentShaderSource(true), "PlayheadParams") {
		t.Fatal("shaded fragment source is not the playhead template")
	}
}

func TestPresentModeMapping(t *testing.T) {
	if PresentModeUncapped.wgpuMode() == PresentModeVSync.wgpuMode() {
		t.Fatal("present modes map to the same wgpu mode")
	}
}
