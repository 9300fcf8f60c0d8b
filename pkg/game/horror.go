package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"umbra/internal/logger"
	"umbra/pkg/config"
	"umbra/pkg/scene"
)

// Horror binds a Session to its scene graph and input sources
type Horror struct {
	session  *Session
	joystick *Joystick
	keys     MoveFlags

	scene  *scene.Scene
	camera *scene.PerspectiveCamera
	cube   *scene.Mesh
	entity *scene.Mesh

	glitchFilter scene.Filter
}

// NewHorror sets up the vignette: fogged scene, player cube, entity, one light
func NewHorror(cfg *config.Config, sound Sound, rng Chance, log *logger.Logger) (*Horror, error) {
	h := &Horror{
		session:  NewSession(cfg, sound, rng, log),
		joystick: NewJoystick(cfg.Input.Deadzone),
		scene:    scene.New(),
		camera:   newCamera(cfg),
		glitchFilter: scene.Filter{
			Contrast:  float32(cfg.Glitch.Contrast),
			HueRotate: float32(cfg.Glitch.HueRotate),
		},
	}

	if cfg.Camera.FogDensity > 0 {
		h.scene.Fog = &scene.FogExp2{
			Color:   scene.Color(cfg.Camera.FogColor),
			Density: float32(cfg.Camera.FogDensity),
		}
	}
	h.scene.Background = scene.Color(cfg.Camera.FogColor)

	h.cube = scene.NewMesh("player", scene.NewBoxGeometry(1, 1, 1), &scene.StandardMaterial{
		Color: scene.Color(cfg.Player.Color),
	})
	h.entity = scene.NewMesh("entity",
		scene.NewIcosahedronGeometry(float32(cfg.Entity.Radius), cfg.Entity.Detail),
		&scene.StandardMaterial{
			Color:    scene.Color(cfg.Entity.IdleColor),
			Emissive: scene.Color(cfg.Entity.Emissive),
		})

	light := scene.NewDirectionalLight(0xffffff, 0.5)
	light.Position = mgl32.Vec3{1, 1, 1}.Normalize()

	if err := h.scene.Add(h.cube, h.entity, light); err != nil {
		return nil, fmt.Errorf("building horror scene: %w", err)
	}

	h.sync()
	return h, nil
}

func newCamera(cfg *config.Config) *scene.PerspectiveCamera {
	cam := scene.NewPerspectiveCamera(
		float32(cfg.Camera.FOV),
		float32(cfg.Window.Width)/float32(cfg.Window.Height),
		float32(cfg.Camera.Near),
		float32(cfg.Camera.Far),
	)
	cam.Position = vec32(mgl64.Vec3(cfg.Camera.Position))
	return cam
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Update merges input, advances the session and mirrors it into the scene
func (h *Horror) Update(elapsed float64) {
	h.session.Input = h.joystick.Flags().Or(h.keys)
	h.session.Update(elapsed)
	h.sync()
}

func (h *Horror) sync() {
	s := h.session
	h.cube.Position = vec32(s.Player.Position)
	h.entity.Position = vec32(s.Entity.Position)
	h.entity.Material.Color = s.Entity.Color

	if s.Glitching() {
		h.scene.Filter = h.glitchFilter
	} else {
		h.scene.Filter = scene.NoFilter()
	}
}

// Scene returns the graph to render
func (h *Horror) Scene() *scene.Scene { return h.scene }

// Camera returns the viewing camera
func (h *Horror) Camera() *scene.PerspectiveCamera { return h.camera }

// Done reports whether the session is over
func (h *Horror) Done() bool { return h.session.Ended() }

// Session exposes the simulation state
func (h *Horror) Session() *Session { return h.session }

// TouchStart forwards a pointer press to the joystick
func (h *Horror) TouchStart(x, _ float64) { h.joystick.TouchStart(x) }

// TouchMove forwards a pointer drag to the joystick
func (h *Horror) TouchMove(x, _ float64) { h.joystick.TouchMove(x) }

// TouchEnd forwards a pointer release to the joystick
func (h *Horror) TouchEnd() { h.joystick.TouchEnd() }

// SetKeys replaces the keyboard movement flags
func (h *Horror) SetKeys(forward, backward, left, right bool) {
	h.keys = MoveFlags{Forward: forward, Backward: backward, Left: left, Right: right}
}
