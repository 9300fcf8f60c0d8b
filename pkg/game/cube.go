package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"umbra/pkg/config"
	"umbra/pkg/scene"
)

// CubeDemo spins one cube forever
type CubeDemo struct {
	scene  *scene.Scene
	camera *scene.PerspectiveCamera
	cube   *scene.Mesh
	step   [2]float32
}

// NewCubeDemo sets up a lit cube in front of the camera
func NewCubeDemo(cfg *config.Config) (*CubeDemo, error) {
	d := &CubeDemo{
		scene:  scene.New(),
		camera: newCamera(cfg),
		step:   [2]float32{float32(cfg.Cube.RotationStep[0]), float32(cfg.Cube.RotationStep[1])},
	}

	d.cube = scene.NewMesh("cube", scene.NewBoxGeometry(1, 1, 1), &scene.StandardMaterial{
		Color: scene.Color(cfg.Cube.Color),
	})

	light := scene.NewDirectionalLight(scene.Color(cfg.Cube.LightColor), float32(cfg.Cube.LightIntense))
	lp := cfg.Cube.LightPosition
	light.Position = mgl32.Vec3{float32(lp[0]), float32(lp[1]), float32(lp[2])}

	if err := d.scene.Add(d.cube, light); err != nil {
		return nil, fmt.Errorf("building cube scene: %w", err)
	}
	return d, nil
}

// Update rotates by a fixed amount per frame; elapsed time is ignored
func (d *CubeDemo) Update(float64) {
	d.cube.Rotation[0] += d.step[0]
	d.cube.Rotation[1] += d.step[1]
}

// Scene returns the graph to render
func (d *CubeDemo) Scene() *scene.Scene { return d.scene }

// Camera returns the viewing camera
func (d *CubeDemo) Camera() *scene.PerspectiveCamera { return d.camera }

// Done is always false; the demo runs until the window closes
func (d *CubeDemo) Done() bool { return false }

// Cube returns the spinning mesh
func (d *CubeDemo) Cube() *scene.Mesh { return d.cube }
