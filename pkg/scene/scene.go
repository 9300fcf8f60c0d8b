package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is everything one render call draws
type Scene struct {
	Background Color
	Fog        *FogExp2
	Meshes     []*Mesh
	Lights     []*DirectionalLight

	// Filter is applied to the whole rendered surface
	Filter Filter
}

// New creates an empty scene with no filter
func New() *Scene {
	return &Scene{Filter: NoFilter()}
}

// Add attaches a mesh or a light
func (s *Scene) Add(objects ...interface{}) error {
	for _, obj := range objects {
		switch o := obj.(type) {
		case *Mesh:
			s.Meshes = append(s.Meshes, o)
		case *DirectionalLight:
			s.Lights = append(s.Lights, o)
		default:
			return fmt.Errorf("scene: unsupported object %T", obj)
		}
	}
	return nil
}

// MeshByName returns the first mesh with the given name
func (s *Scene) MeshByName(name string) *Mesh {
	for _, m := range s.Meshes {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Filter is a CSS-style contrast + hue-rotate pass over the final image
type Filter struct {
	Contrast  float32 // 1 = unchanged
	HueRotate float32 // degrees
}

// NoFilter returns the identity filter
func NoFilter() Filter {
	return Filter{Contrast: 1}
}

// IsIdentity reports whether the filter leaves pixels unchanged
func (f Filter) IsIdentity() bool {
	return f.Contrast == 1 && math.Mod(float64(f.HueRotate), 360) == 0
}

// HueMatrix returns the luminance-preserving hue rotation matrix from the
// filter effects feColorMatrix hueRotate definition. It multiplies RGB
// column vectors.
func (f Filter) HueMatrix() mgl32.Mat3 {
	rad := float64(f.HueRotate) * math.Pi / 180
	c := float32(math.Cos(rad))
	s := float32(math.Sin(rad))

	// row-major coefficients
	r := [9]float32{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072,
	}

	// mgl32 is column-major
	return mgl32.Mat3{
		r[0], r[3], r[6],
		r[1], r[4], r[7],
		r[2], r[5], r[8],
	}
}

// Apply runs the filter on one colour on the CPU, mirroring the post shader.
// Contrast comes first, then hue rotation; both stages clamp to [0, 1].
func (f Filter) Apply(rgb mgl32.Vec3) mgl32.Vec3 {
	var c mgl32.Vec3
	for i := range rgb {
		c[i] = mgl32.Clamp((rgb[i]-0.5)*f.Contrast+0.5, 0, 1)
	}
	out := f.HueMatrix().Mul3x1(c)
	for i := range out {
		out[i] = mgl32.Clamp(out[i], 0, 1)
	}
	return out
}
