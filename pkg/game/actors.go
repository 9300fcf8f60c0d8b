package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"umbra/pkg/config"
	"umbra/pkg/scene"
)

// Player is the proxy the user steers
type Player struct {
	Position mgl64.Vec3
	Speed    float64 // units per second
}

// Move applies every set flag along its axis, scaled by elapsed seconds.
// Forward is -Z, backward +Z, left -X, right +X.
func (p *Player) Move(flags MoveFlags, elapsed float64) {
	d := p.Speed * elapsed
	if flags.Forward {
		p.Position[2] -= d
	}
	if flags.Backward {
		p.Position[2] += d
	}
	if flags.Left {
		p.Position[0] -= d
	}
	if flags.Right {
		p.Position[0] += d
	}
}

// Pursuer oscillates along Z between MinZ and MaxZ
type Pursuer struct {
	Position  mgl64.Vec3
	Direction float64 // +1 or -1
	Step      float64 // units per frame

	MinZ, MaxZ float64

	IdleColor  scene.Color
	AlertColor scene.Color
	Color      scene.Color
}

// NewPursuer builds the entity from config, idle and heading +Z
func NewPursuer(cfg config.EntityConfig) Pursuer {
	return Pursuer{
		Position:   mgl64.Vec3(cfg.Position),
		Direction:  1,
		Step:       cfg.Step,
		MinZ:       cfg.MinZ,
		MaxZ:       cfg.MaxZ,
		IdleColor:  scene.Color(cfg.IdleColor),
		AlertColor: scene.Color(cfg.AlertColor),
		Color:      scene.Color(cfg.IdleColor),
	}
}

// Advance moves one step, then turns around if it just left the bounds.
// Overshoot is kept; a flip only happens while heading outwards, so each
// crossing flips exactly once.
func (p *Pursuer) Advance() (reversed bool) {
	p.Position[2] += p.Direction * p.Step

	z := p.Position.Z()
	if (z > p.MaxZ && p.Direction > 0) || (z < p.MinZ && p.Direction < 0) {
		p.Direction = -p.Direction
		return true
	}
	return false
}

// SetAlert switches between the alert and idle colours
func (p *Pursuer) SetAlert(alert bool) {
	if alert {
		p.Color = p.AlertColor
	} else {
		p.Color = p.IdleColor
	}
}
