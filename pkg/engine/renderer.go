package engine

import (
	"umbra/pkg/scene"
)

// Renderer defines the interface for all renderers
type Renderer interface {
	// Render draws the scene from the camera, then applies the scene filter
	Render(sc *scene.Scene, cam *scene.PerspectiveCamera)

	// UpdateResolution updates the rendering resolution in pixels
	UpdateResolution(width, height int)

	// Close releases resources
	Close()
}
