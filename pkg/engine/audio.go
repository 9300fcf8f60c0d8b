package engine

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gordonklaus/portaudio"

	"umbra/pkg/config"
)

const numChannels = 2

// AudioEngine owns the default output device and feeds it from a streamer
type AudioEngine struct {
	config    config.AudioConfig
	source    beep.Streamer
	stream    *portaudio.Stream
	buffer    [][2]float64
	mu        sync.Mutex
	isRunning bool
}

// NewAudioEngine opens and starts the default output stream pulling from source
func NewAudioEngine(cfg config.AudioConfig, source beep.Streamer) (*AudioEngine, error) {
	// Initialize PortAudio
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	engine := &AudioEngine{
		config: cfg,
		source: source,
		buffer: make([][2]float64, cfg.FramesPerBuffer),
	}

	if err := engine.initAudio(); err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to initialize audio: %w", err)
	}

	return engine, nil
}

// initAudio initializes the audio output
func (ae *AudioEngine) initAudio() error {
	var err error

	ae.stream, err = portaudio.OpenDefaultStream(0, numChannels, float64(ae.config.SampleRate), ae.config.FramesPerBuffer, ae.audioCallback)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}

	if err := ae.stream.Start(); err != nil {
		ae.stream.Close()
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	ae.isRunning = true
	return nil
}

// audioCallback is called by PortAudio to fill the interleaved output buffer
func (ae *AudioEngine) audioCallback(out []float32) {
	frames := len(out) / numChannels
	if cap(ae.buffer) < frames {
		ae.buffer = make([][2]float64, frames)
	}
	buf := ae.buffer[:frames]

	n, _ := ae.source.Stream(buf)
	for i := 0; i < frames; i++ {
		if i >= n {
			out[i*numChannels] = 0
			out[i*numChannels+1] = 0
			continue
		}
		out[i*numChannels] = float32(buf[i][0])
		out[i*numChannels+1] = float32(buf[i][1])
	}
}

// Shutdown stops the stream and releases PortAudio
func (ae *AudioEngine) Shutdown() {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if !ae.isRunning {
		return
	}
	ae.isRunning = false

	if ae.stream != nil {
		ae.stream.Stop()
		ae.stream.Close()
	}
	portaudio.Terminate()
}
