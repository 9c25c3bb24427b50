package mesh

import (
	"encoding/binary"
	"math"
	"runtime"
	"testing"
	"time"

	"github.com/Carmen-Shannon/helicoid-go/engine/config"
	"github.com/Carmen-Shannon/helicoid-go/engine/surface"
	"github.com/go-gl/mathgl/mgl64"
)

func TestTessellateCounts(t *testing.T) {
	h := surface.NewHelicoid()
	for _, r := range []int{1, 2, 7, 32} {
		m, err := Tessellate(r, r, h)
		if err != nil {
			t.Fatalf("R=%d: %v", r, err)
		}
		if got, want := m.VertexCount(), (r+1)*(r+1); got != want {
			t.Fatalf("R=%d: vertices = %d, want %d", r, got, want)
		}
		if got, want := m.TriangleCount(), 2*r*r; got != want {
			t.Fatalf("R=%d: triangles = %d, want %d", r, got, want)
		}
		if err := m.Validate(); err != nil {
			t.Fatalf("R=%d: %v", r, err)
		}
	}
}

func TestTessellateRectangular(t *testing.T) {
	m, err := Tessellate(3, 5, surface.NewHelicoid())
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 4*6 || m.TriangleCount() != 2*3*5 {
		t.Fatalf("counts = %d, %d", m.VertexCount(), m.TriangleCount())
	}
}

func TestTessellateRejectsResolution(t *testing.T) {
	calls := 0
	counting := surface.SamplerFunc(func(u, v float64) surface.Point3 {
		calls++
		return surface.Point3{u, v, 0}
	})

	for _, tc := range []struct{ u, v int }{{0, 5}, {5, 0}, {-1, 5}, {5, -2}} {
		m, err := Tessellate(tc.u, tc.v, counting)
		if !config.IsConfigurationError(err) {
			t.Fatalf("Tessellate(%d, %d): expected ConfigurationError, got %v", tc.u, tc.v, err)
		}
		if m != nil {
			t.Fatalf("Tessellate(%d, %d): returned a mesh alongside the error", tc.u, tc.v)
		}
	}
	if calls != 0 {
		t.Fatalf("sampler called %d times for rejected configurations", calls)
	}
}

func TestTessellateRowMajorSampling(t *testing.T) {
	const resU, resV = 4, 3
	m, err := Tessellate(resU, resV, surface.SamplerFunc(func(u, v float64) surface.Point3 {
		return surface.Point3{u, v, 0}
	}))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= resU; i++ {
		for j := 0; j <= resV; j++ {
			p := m.Positions[i*(resV+1)+j]
			if p.X() != float64(i)/resU || p.Y() != float64(j)/resV {
				t.Fatalf("vertex (%d, %d) = %v", i, j, p)
			}
			uv := m.UVs[m.VertexIndex(i, j)]
			if uv[0] != p.X() || uv[1] != p.Y() {
				t.Fatalf("uv (%d, %d) = %v", i, j, uv)
			}
		}
	}
}

func TestTessellateWinding(t *testing.T) {
	m, err := Tessellate(1, 1, surface.SamplerFunc(func(u, v float64) surface.Point3 {
		return surface.Point3{u, v, 0}
	}))
	if err != nil {
		t.Fatal(err)
	}
	// a=0 (0,0), b=2 (1,0), c=1 (0,1), d=3 (1,1)
	want := []uint32{0, 2, 3, 0, 3, 1}
	for i, idx := range want {
		if m.Indices[i] != idx {
			t.Fatalf("indices = %v, want %v", m.Indices, want)
		}
	}
}

func TestPlaneNormals(t *testing.T) {
	m, err := Tessellate(6, 4, surface.SamplerFunc(func(u, v float64) surface.Point3 {
		return surface.Point3{2 * u, 3 * v, 0}
	}))
	if err != nil {
		t.Fatal(err)
	}
	up := mgl64.Vec3{0, 0, 1}
	for i, n := range m.Normals {
		if !n.ApproxEqual(up) {
			t.Fatalf("normal %d = %v, want %v", i, n, up)
		}
	}
	for tri := 0; tri < m.TriangleCount(); tri++ {
		if n := m.FaceNormal(tri); !n.ApproxEqual(up) {
			t.Fatalf("face %d normal = %v", tri, n)
		}
	}
}

func TestHelicoidNormals(t *testing.T) {
	const res = 64
	m, err := Tessellate(res, res, surface.NewHelicoid())
	if err != nil {
		t.Fatal(err)
	}

	for i, n := range m.Normals {
		l := n.Len()
		if math.IsNaN(l) || (l != 0 && math.Abs(l-1) > 1e-9) {
			t.Fatalf("normal %d has length %v", i, l)
		}
	}

	// Vertex normals must agree with the winding of the triangles that start at that vertex.
	agree, total := 0, 0
	for i := 1; i < res-1; i++ {
		for j := 1; j < res-1; j++ {
			tri := 2 * (i*res + j)
			face := m.FaceNormal(tri)
			vn := m.Normals[m.VertexIndex(i, j)]
			if face.Len() == 0 || vn.Len() == 0 {
				continue
			}
			total++
			if face.Dot(vn) > 0 {
				agree++
			}
		}
	}
	if total == 0 || float64(agree)/float64(total) < 0.95 {
		t.Fatalf("normals agree with winding on %d of %d interior cells", agree, total)
	}
}

func TestDisableNormals(t *testing.T) {
	m, err := Tessellate(4, 4, surface.NewHelicoid(), WithNormals(false))
	if err != nil {
		t.Fatal(err)
	}
	if m.Normals != nil {
		t.Fatal("normals computed despite WithNormals(false)")
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	h := surface.NewHelicoid(surface.PresetShaded()...)
	seq, err := Tessellate(50, 37, h)
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{2, 3, 8, 100} {
		par, err := Tessellate(50, 37, h, WithWorkers(workers))
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		for i := range seq.Positions {
			if seq.Positions[i] != par.Positions[i] || seq.Normals[i] != par.Normals[i] || seq.UVs[i] != par.UVs[i] {
				t.Fatalf("workers=%d: vertex %d differs", workers, i)
			}
		}
		for i := range seq.Indices {
			if seq.Indices[i] != par.Indices[i] {
				t.Fatalf("workers=%d: index %d differs", workers, i)
			}
		}
	}
}

func TestValidateDetectsBadIndex(t *testing.T) {
	m, err := Tessellate(2, 2, surface.NewHelicoid())
	if err != nil {
		t.Fatal(err)
	}
	m.Indices[4] = uint32(m.VertexCount())
	if err := m.Validate(); err == nil {
		t.Fatal("expected out of range index error")
	}
	m.Indices = m.Indices[:len(m.Indices)-1]
	if err := m.Validate(); err == nil {
		t.Fatal("expected partial triangle error")
	}
}

func TestBoundingRadius(t *testing.T) {
	m, err := Tessellate(20, 20, surface.NewHelicoid())
	if err != nil {
		t.Fatal(err)
	}
	r := m.BoundingRadius()
	for _, p := range m.Positions {
		if p.Len() > r+1e-12 {
			t.Fatalf("point %v outside bounding radius %v", p, r)
		}
	}
	if r <= 0 {
		t.Fatalf("bounding radius = %v", r)
	}
}

func TestSphere(t *testing.T) {
	m, err := Sphere(0.25, 12, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 13*9 || m.TriangleCount() != 2*12*8 {
		t.Fatalf("counts = %d, %d", m.VertexCount(), m.TriangleCount())
	}
	for i, p := range m.Positions {
		if math.Abs(p.Len()-0.25) > 1e-12 {
			t.Fatalf("vertex %d at distance %v", i, p.Len())
		}
	}
	for tri := 0; tri < m.TriangleCount(); tri++ {
		face := m.FaceNormal(tri)
		if face.Len() == 0 {
			continue // pole triangles are degenerate
		}
		a := m.Triangle(tri)[0]
		centroid := m.Positions[a]
		if face.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d faces inward", tri)
		}
	}

	for _, tc := range []struct {
		r        float64
		seg, rng int
	}{{0, 12, 8}, {-1, 12, 8}, {math.NaN(), 12, 8}, {1, 2, 8}, {1, 12, 1}} {
		if _, err := Sphere(tc.r, tc.seg, tc.rng); !config.IsConfigurationError(err) {
			t.Fatalf("Sphere(%v, %d, %d): expected ConfigurationError, got %v", tc.r, tc.seg, tc.rng, err)
		}
	}
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 0, 1},
		TexCoord: [2]float32{0.25, 0.75},
	}
	if v.Size() != GPUVertexSize {
		t.Fatalf("size = %d", v.Size())
	}
	buf := v.Marshal()
	if len(buf) != GPUVertexSize {
		t.Fatalf("marshal length = %d", len(buf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])); got != 3 {
		t.Fatalf("position z = %v", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[28:32])); got != 0.75 {
		t.Fatalf("texcoord v = %v", got)
	}
}

func TestPack(t *testing.T) {
	m, err := Tessellate(3, 3, surface.NewHelicoid())
	if err != nil {
		t.Fatal(err)
	}
	up := m.Pack()
	if len(up.VertexData) != m.VertexCount()*GPUVertexSize {
		t.Fatalf("vertex bytes = %d", len(up.VertexData))
	}
	if len(up.IndexData) != len(m.Indices)*4 || up.IndexCount != len(m.Indices) {
		t.Fatalf("index bytes = %d, count = %d", len(up.IndexData), up.IndexCount)
	}
	if up.Layout.ArrayStride != GPUVertexSize || len(up.Layout.Attributes) != 3 {
		t.Fatalf("layout = %+v", up.Layout)
	}
	if up.Layout.Attributes[2].Offset != 24 || up.Layout.Attributes[2].ShaderLocation != 2 {
		t.Fatalf("uv attribute = %+v", up.Layout.Attributes[2])
	}
}

func TestParallelReleasesWorkers(t *testing.T) {
	before := runtime.NumGoroutine()
	if _, err := Tessellate(40, 40, surface.NewHelicoid(), WithWorkers(8)); err != nil {
		t.Fatal(err)
	}
	// Idle workers would otherwise linger for the pool's one second timeout.
	deadline := time.Now().Add(500 * time.Millisecond)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("goroutines = %d after tessellation, %d before", runtime.NumGoroutine(), before)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
