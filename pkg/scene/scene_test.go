package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestColorRGB(t *testing.T) {
	got := Color(0x990000).RGB()
	if !near(got[0], 0.6) || got[1] != 0 || got[2] != 0 {
		t.Errorf("Expected (0.6, 0, 0), got %v", got)
	}
	white := Color(0xffffff).RGB()
	if white != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected white, got %v", white)
	}
}

// TestBoxGeometry verifies 6 flat faces of 4 vertices each
func TestBoxGeometry(t *testing.T) {
	g := NewBoxGeometry(1, 1, 1)

	if len(g.Positions) != 24 || len(g.Normals) != 24 {
		t.Fatalf("Expected 24 vertices, got %d/%d", len(g.Positions), len(g.Normals))
	}
	if g.TriangleCount() != 12 {
		t.Errorf("Expected 12 triangles, got %d", g.TriangleCount())
	}
	for i, p := range g.Positions {
		for axis := 0; axis < 3; axis++ {
			if !near(float32(math.Abs(float64(p[axis]))), 0.5) {
				t.Fatalf("Vertex %d off the unit box: %v", i, p)
			}
		}
		// flat normal: the vertex lies on the face the normal points to
		n := g.Normals[i]
		if !near(p.Dot(n), 0.5) {
			t.Errorf("Vertex %d not on its face: p=%v n=%v", i, p, n)
		}
	}
	if got := len(g.Interleaved()); got != 24*6 {
		t.Errorf("Expected %d interleaved floats, got %d", 24*6, got)
	}
}

func TestIcosahedronGeometry(t *testing.T) {
	cases := []struct {
		detail    int
		triangles int
	}{
		{0, 20},
		{1, 80},
		{2, 180},
	}

	for _, tc := range cases {
		g := NewIcosahedronGeometry(2, tc.detail)
		if g.TriangleCount() != tc.triangles {
			t.Errorf("detail %d: expected %d triangles, got %d", tc.detail, tc.triangles, g.TriangleCount())
		}
		for i, p := range g.Positions {
			if !near(p.Len(), 2) {
				t.Fatalf("detail %d: vertex %d not on sphere: len %f", tc.detail, i, p.Len())
			}
			if !near(g.Normals[i].Len(), 1) {
				t.Fatalf("detail %d: normal %d not unit", tc.detail, i)
			}
		}
	}
}

func TestObjectMatrix(t *testing.T) {
	o := newObject3D()
	o.Position = mgl32.Vec3{1, 2, 3}
	o.Rotation = mgl32.Vec3{0, float32(math.Pi / 2), 0}

	p := o.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	// rotating +X by 90deg about Y gives -Z, then translate
	want := mgl32.Vec4{1, 2, 2, 1}
	for i := range want {
		if !near(p[i], want[i]) {
			t.Fatalf("Expected %v, got %v", want, p)
		}
	}
}

// TestCameraAspect verifies resizing recomputes the projection
func TestCameraAspect(t *testing.T) {
	c := NewPerspectiveCamera(75, 1, 0.1, 1000)
	before := c.Projection()

	c.SetAspect(1600, 800)
	if !near(c.Aspect, 2) {
		t.Errorf("Expected aspect 2, got %f", c.Aspect)
	}
	after := c.Projection()
	if near(before.At(0, 0), after.At(0, 0)) {
		t.Error("Expected projection X scale to change with aspect")
	}
	if !near(before.At(1, 1), after.At(1, 1)) {
		t.Error("Expected projection Y scale to stay with fixed fov")
	}

	// degenerate sizes are ignored
	c.SetAspect(0, 100)
	if !near(c.Aspect, 2) {
		t.Errorf("Expected aspect unchanged, got %f", c.Aspect)
	}
}

func TestCameraView(t *testing.T) {
	c := NewPerspectiveCamera(75, 1, 0.1, 1000)
	c.Position = mgl32.Vec3{0, 1, 5}
	p := c.View().Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	if !near(p[2], -5) {
		t.Errorf("Expected origin 5 units in front, got z=%f", p[2])
	}
}

func TestLightDirection(t *testing.T) {
	l := NewDirectionalLight(0xffffff, 0.5)
	l.Position = mgl32.Vec3{1, 1, 1}
	d := l.Direction()
	if !near(d.Len(), 1) || d[0] >= 0 || d[1] >= 0 || d[2] >= 0 {
		t.Errorf("Expected unit vector towards origin, got %v", d)
	}
}

func TestFogFactor(t *testing.T) {
	f := &FogExp2{Density: 0.03}
	if f.Factor(0) != 0 {
		t.Errorf("Expected no fog at depth 0")
	}
	if f.Factor(10) >= f.Factor(40) {
		t.Errorf("Expected fog to thicken with depth")
	}
}

func TestSceneAdd(t *testing.T) {
	s := New()
	m := NewMesh("cube", NewBoxGeometry(1, 1, 1), &StandardMaterial{Color: 0x555577})
	l := NewDirectionalLight(0xffffff, 1)

	if err := s.Add(m, l); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.MeshByName("cube") != m || len(s.Lights) != 1 {
		t.Errorf("Expected mesh and light to be attached")
	}
	if err := s.Add("nope"); err == nil {
		t.Error("Expected error for unsupported object")
	}
	if !s.Filter.IsIdentity() {
		t.Error("Expected new scene to have no filter")
	}
}

// TestHueMatrixPreservesGray verifies rows sum to one for any angle
func TestHueMatrixPreservesGray(t *testing.T) {
	for _, deg := range []float32{0, 45, 90, 180, 270} {
		m := Filter{Contrast: 1, HueRotate: deg}.HueMatrix()
		gray := m.Mul3x1(mgl32.Vec3{0.4, 0.4, 0.4})
		for i := range gray {
			if !near(gray[i], 0.4) {
				t.Errorf("hue %v: gray shifted to %v", deg, gray)
				break
			}
		}
	}

	id := Filter{Contrast: 1}.HueMatrix()
	if !id.ApproxEqualThreshold(mgl32.Ident3(), eps) {
		t.Errorf("Expected identity at 0deg, got %v", id)
	}
}

func TestFilterApply(t *testing.T) {
	f := Filter{Contrast: 1.8, HueRotate: 45}
	if f.IsIdentity() {
		t.Fatal("Glitch filter must not be identity")
	}

	// mid gray is a contrast fixed point and hue-invariant
	mid := f.Apply(mgl32.Vec3{0.5, 0.5, 0.5})
	for i := range mid {
		if !near(mid[i], 0.5) {
			t.Errorf("Expected mid gray unchanged, got %v", mid)
		}
	}

	dark := f.Apply(mgl32.Vec3{0.1, 0.1, 0.1})
	if dark[0] != 0 {
		t.Errorf("Expected contrast to crush 0.1 to 0, got %v", dark)
	}

	red := f.Apply(mgl32.Vec3{0.6, 0, 0})
	if red[1] <= 0 && red[2] <= 0 {
		t.Errorf("Expected hue rotation to move red, got %v", red)
	}
}
