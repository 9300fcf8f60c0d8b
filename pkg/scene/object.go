// Package scene is a small retained-mode scene graph: meshes, lights, a
// perspective camera and fog, composed for a single render call.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a 0xRRGGBB value
type Color uint32

// RGB returns the colour as normalised components
func (c Color) RGB() mgl32.Vec3 {
	return mgl32.Vec3{
		float32((c>>16)&0xff) / 255,
		float32((c>>8)&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

// Object3D holds a local transform. Rotation is Euler XYZ in radians.
type Object3D struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool
}

func newObject3D() Object3D {
	return Object3D{Scale: mgl32.Vec3{1, 1, 1}, Visible: true}
}

// Matrix composes translation * rotation(XYZ) * scale
func (o *Object3D) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	r := mgl32.HomogRotate3DX(o.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z()))
	s := mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// StandardMaterial is a lit surface with a base and emissive colour
type StandardMaterial struct {
	Color    Color
	Emissive Color
}

// Mesh is a drawable geometry with a material
type Mesh struct {
	Object3D
	Name     string
	Geometry *Geometry
	Material *StandardMaterial
}

// NewMesh creates a visible mesh at the origin
func NewMesh(name string, geometry *Geometry, material *StandardMaterial) *Mesh {
	return &Mesh{
		Object3D: newObject3D(),
		Name:     name,
		Geometry: geometry,
		Material: material,
	}
}

// DirectionalLight shines from Position towards the origin
type DirectionalLight struct {
	Color     Color
	Intensity float32
	Position  mgl32.Vec3
}

// NewDirectionalLight creates a light placed at (0, 1, 0)
func NewDirectionalLight(color Color, intensity float32) *DirectionalLight {
	return &DirectionalLight{
		Color:     color,
		Intensity: intensity,
		Position:  mgl32.Vec3{0, 1, 0},
	}
}

// Direction returns the unit vector from the light towards the origin
func (l *DirectionalLight) Direction() mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return l.Position.Normalize().Mul(-1)
}

// FogExp2 attenuates colour by exp(-(density*depth)^2)
type FogExp2 struct {
	Color   Color
	Density float32
}

// Factor returns how much of the fog colour is mixed in at depth
func (f *FogExp2) Factor(depth float32) float32 {
	d := f.Density * depth
	return 1 - mgl32.Clamp(float32(math.Exp(float64(-d*d))), 0, 1)
}
