package game

import (
	"umbra/pkg/config"
)

// Chance is a source of uniform floats in [0, 1); *rand.Rand satisfies it
type Chance interface {
	Float64() float64
}

// Glitch decides when the screen distortion shows. A frame counter acts as
// cooldown; once past it each frame rolls against Probability.
type Glitch struct {
	Cooldown    int
	Probability float64
	Duration    float64 // seconds

	counter   int
	remaining float64
	active    bool
}

// NewGlitch builds a glitch timer from config
func NewGlitch(cfg config.GlitchConfig) *Glitch {
	return &Glitch{
		Cooldown:    cfg.CooldownFrames,
		Probability: cfg.Chance,
		Duration:    cfg.Duration.Seconds(),
	}
}

// Update expires a running distortion and rolls for a new one
func (g *Glitch) Update(elapsed float64, rng Chance) (triggered bool) {
	if g.active {
		g.remaining -= elapsed
		if g.remaining <= 0 {
			g.active = false
			g.remaining = 0
		}
	}

	g.counter++
	// roll only after the cooldown, so the random source is untouched before it
	if g.counter > g.Cooldown && rng.Float64() < g.Probability {
		g.active = true
		g.remaining = g.Duration
		g.counter = 0
		return true
	}
	return false
}

// Active reports whether the distortion is currently shown
func (g *Glitch) Active() bool {
	return g.active
}

// Counter returns frames since the last trigger
func (g *Glitch) Counter() int {
	return g.counter
}
