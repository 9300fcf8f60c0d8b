package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"umbra/internal/logger"
	"umbra/pkg/audio"
	"umbra/pkg/config"
)

// Sound is the looping track the entity wakes up
type Sound interface {
	// Poll applies any finished load and returns the current state
	Poll() audio.State
	Start() error
}

// Session is the whole mutable state of one horror run
type Session struct {
	Player Player
	Entity Pursuer
	Sanity float64
	Input  MoveFlags

	drain     float64
	proximity float64

	sound          Sound
	soundAttempted bool

	glitch *Glitch
	rng    Chance

	alerted bool
	ended   bool
	onEnd   func()
	frame   uint64
	log     *logger.Logger
}

// NewSession creates a session; sound may be nil when audio is unavailable
func NewSession(cfg *config.Config, sound Sound, rng Chance, log *logger.Logger) *Session {
	return &Session{
		Player: Player{
			Position: mgl64.Vec3(cfg.Player.Position),
			Speed:    cfg.Player.Speed,
		},
		Entity:    NewPursuer(cfg.Entity),
		Sanity:    cfg.Sanity.Initial,
		drain:     cfg.Sanity.Drain,
		proximity: cfg.Sanity.Proximity,
		sound:     sound,
		glitch:    NewGlitch(cfg.Glitch),
		rng:       rng,
		log:       log,
	}
}

// OnEnd registers the callback run once when sanity runs out
func (s *Session) OnEnd(fn func()) {
	s.onEnd = fn
}

// Update advances the session by one frame. elapsed is in seconds.
func (s *Session) Update(elapsed float64) {
	if s.ended {
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}
	s.frame++

	s.Player.Move(s.Input, elapsed)

	if s.Entity.Advance() {
		s.log.Debugf("entity turned at z=%.2f (frame %d)", s.Entity.Position.Z(), s.frame)
	}

	s.checkProximity()

	if s.Sanity <= 0 {
		s.end()
		return
	}

	if s.glitch.Update(elapsed, s.rng) {
		s.log.Debugf("glitch on frame %d", s.frame)
	}
}

func (s *Session) checkProximity() {
	var state audio.State
	if s.sound != nil {
		state = s.sound.Poll()
	}

	s.alerted = s.Distance() < s.proximity
	if s.alerted {
		if state == audio.ReadyIdle && !s.soundAttempted {
			s.soundAttempted = true
			if err := s.sound.Start(); err != nil {
				s.log.Debugf("audio start ignored: %v", err)
			}
		}
		s.Sanity -= s.drain
	}
	s.Entity.SetAlert(s.alerted)
}

func (s *Session) end() {
	s.ended = true
	s.log.Infof("sanity depleted after %d frames", s.frame)
	if s.onEnd != nil {
		s.onEnd()
	}
}

// Distance between the player proxy and the entity
func (s *Session) Distance() float64 {
	return s.Player.Position.Sub(s.Entity.Position).Len()
}

// Alerted reports whether the entity was within range on the last frame
func (s *Session) Alerted() bool {
	return s.alerted
}

// Glitching reports whether the screen distortion is showing
func (s *Session) Glitching() bool {
	return s.glitch.Active()
}

// Ended reports whether sanity ran out
func (s *Session) Ended() bool {
	return s.ended
}

// Frame returns how many frames have been simulated
func (s *Session) Frame() uint64 {
	return s.frame
}
