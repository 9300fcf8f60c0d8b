package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera looks down -Z from Position
type PerspectiveCamera struct {
	FOV      float32 // vertical, degrees
	Aspect   float32
	Near     float32
	Far      float32
	Position mgl32.Vec3

	projection mgl32.Mat4
}

// NewPerspectiveCamera creates a camera with an up to date projection
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{FOV: fov, Aspect: aspect, Near: near, Far: far}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the projection after FOV, Aspect or clip changes
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// SetAspect updates the aspect ratio from a viewport size
func (c *PerspectiveCamera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
	c.UpdateProjectionMatrix()
}

// Projection returns the cached projection matrix
func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return c.projection
}

// View returns the world-to-camera matrix
func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
}
