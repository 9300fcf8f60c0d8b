package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Window WindowConfig `yaml:"window"`
	Log    LogConfig    `yaml:"log"`
	Camera CameraConfig `yaml:"camera"`
	Audio  AudioConfig  `yaml:"audio"`
	Input  InputConfig  `yaml:"input"`
	Player PlayerConfig `yaml:"player"`
	Entity EntityConfig `yaml:"entity"`
	Sanity SanityConfig `yaml:"sanity"`
	Glitch GlitchConfig `yaml:"glitch"`
	Cube   CubeConfig   `yaml:"cube"`
}

// WindowConfig contains window and frame loop configuration
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FrameRate  int    `yaml:"framerate"` // 0 = uncapped, rely on vsync
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional, console only when empty
}

// CameraConfig describes the perspective camera and scene fog
type CameraConfig struct {
	FOV        float64    `yaml:"fov"`
	Near       float64    `yaml:"near"`
	Far        float64    `yaml:"far"`
	Position   [3]float64 `yaml:"position"`
	FogColor   uint32     `yaml:"fog_color"`
	FogDensity float64    `yaml:"fog_density"` // 0 disables fog
}

// AudioConfig contains audio-related configuration
type AudioConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Asset           string  `yaml:"asset"` // file path or http(s) URL
	Volume          float64 `yaml:"volume"`
	Distortion      float64 `yaml:"distortion"`
	CurveSamples    int     `yaml:"curve_samples"`
	SampleRate      int     `yaml:"sample_rate"`
	FramesPerBuffer int     `yaml:"frames_per_buffer"`
}

// InputConfig contains virtual joystick configuration
type InputConfig struct {
	Deadzone float64 `yaml:"deadzone"` // horizontal delta before left/right engage
}

// PlayerConfig describes the player proxy cube
type PlayerConfig struct {
	Speed    float64    `yaml:"speed"`
	Position [3]float64 `yaml:"position"`
	Color    uint32     `yaml:"color"`
}

// EntityConfig describes the pursuing entity
type EntityConfig struct {
	Position   [3]float64 `yaml:"position"`
	Step       float64    `yaml:"step"`
	MinZ       float64    `yaml:"min_z"`
	MaxZ       float64    `yaml:"max_z"`
	Radius     float64    `yaml:"radius"`
	Detail     int        `yaml:"detail"`
	IdleColor  uint32     `yaml:"idle_color"`
	AlertColor uint32     `yaml:"alert_color"`
	Emissive   uint32     `yaml:"emissive"`
}

// SanityConfig contains the sanity meter rules
type SanityConfig struct {
	Initial   float64 `yaml:"initial"`
	Drain     float64 `yaml:"drain"`     // per frame while the entity is close
	Proximity float64 `yaml:"proximity"` // distance threshold
}

// GlitchConfig contains the screen glitch rules
type GlitchConfig struct {
	CooldownFrames int           `yaml:"cooldown_frames"`
	Chance         float64       `yaml:"chance"`
	Duration       time.Duration `yaml:"duration"`
	Contrast       float64       `yaml:"contrast"`
	HueRotate      float64       `yaml:"hue_rotate"` // degrees
}

// CubeConfig describes the rotating cube demo
type CubeConfig struct {
	Color         uint32     `yaml:"color"`
	RotationStep  [2]float64 `yaml:"rotation_step"` // radians per frame around X and Y
	LightPosition [3]float64 `yaml:"light_position"`
	LightColor    uint32     `yaml:"light_color"`
	LightIntense  float64    `yaml:"light_intensity"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     800,
			Height:    600,
			Title:     "umbra",
			VSync:     true,
			FrameRate: 0,
		},
		Log: LogConfig{
			Level: "info",
		},
		Camera: CameraConfig{
			FOV:        75,
			Near:       0.1,
			Far:        1000,
			Position:   [3]float64{0, 1, 5},
			FogColor:   0x000000,
			FogDensity: 0.03,
		},
		Audio: AudioConfig{
			Enabled:         true,
			Asset:           "audio/distorted_noise.mp3",
			Volume:          0.8,
			Distortion:      400,
			CurveSamples:    44100,
			SampleRate:      44100,
			FramesPerBuffer: 1024,
		},
		Input: InputConfig{
			Deadzone: 20,
		},
		Player: PlayerConfig{
			Speed: 2,
			Color: 0x555577,
		},
		Entity: EntityConfig{
			Position:   [3]float64{0, 0, -20},
			Step:       0.1,
			MinZ:       -30,
			MaxZ:       -10,
			Radius:     1,
			Detail:     1,
			IdleColor:  0x990000,
			AlertColor: 0x00ff00,
			Emissive:   0x440000,
		},
		Sanity: SanityConfig{
			Initial:   100,
			Drain:     0.5,
			Proximity: 5,
		},
		Glitch: GlitchConfig{
			CooldownFrames: 200,
			Chance:         0.03,
			Duration:       100 * time.Millisecond,
			Contrast:       1.8,
			HueRotate:      45,
		},
		Cube: CubeConfig{
			Color:         0x44aa88,
			RotationStep:  [2]float64{0.01, 0.01},
			LightPosition: [3]float64{-1, 2, 4},
			LightColor:    0xffffff,
			LightIntense:  1,
		},
	}
}

// Validate reports the first configuration value the game cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Window.FrameRate < 0:
		return fmt.Errorf("framerate must not be negative, got %d", c.Window.FrameRate)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera fov must be in (0, 180), got %g", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera clip range invalid: near %g far %g", c.Camera.Near, c.Camera.Far)
	case c.Player.Speed < 0:
		return fmt.Errorf("player speed must not be negative, got %g", c.Player.Speed)
	case c.Entity.Step < 0:
		return fmt.Errorf("entity step must not be negative, got %g", c.Entity.Step)
	case c.Entity.MinZ >= c.Entity.MaxZ:
		return fmt.Errorf("entity bounds inverted: min_z %g >= max_z %g", c.Entity.MinZ, c.Entity.MaxZ)
	case c.Sanity.Drain < 0:
		return fmt.Errorf("sanity drain must not be negative, got %g", c.Sanity.Drain)
	case c.Sanity.Proximity <= 0:
		return fmt.Errorf("sanity proximity must be positive, got %g", c.Sanity.Proximity)
	case c.Glitch.Chance < 0 || c.Glitch.Chance > 1:
		return fmt.Errorf("glitch chance must be in [0, 1], got %g", c.Glitch.Chance)
	case c.Glitch.CooldownFrames < 0 || c.Glitch.Duration < 0:
		return fmt.Errorf("glitch cooldown and duration must not be negative")
	case c.Input.Deadzone < 0:
		return fmt.Errorf("input deadzone must not be negative, got %g", c.Input.Deadzone)
	case c.Audio.Enabled && (c.Audio.SampleRate <= 0 || c.Audio.FramesPerBuffer <= 0 || c.Audio.CurveSamples < 2):
		return fmt.Errorf("audio sample rate, buffer and curve size must be positive")
	}
	return nil
}

// LoadConfig loads the configuration from a file on top of the defaults.
// The returned config is always usable, even alongside an error.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("reading config %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", filePath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
