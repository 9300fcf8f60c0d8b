// Package audio builds the distorted playback graph: a decoded looping
// source, a wave shaper and the output mix pulled by the device callback.
package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// Graph is the destination node. The device callback pulls from it on its
// own goroutine, so every mutation of the mix goes through the mutex.
type Graph struct {
	mu         sync.Mutex
	mixer      *beep.Mixer
	sampleRate beep.SampleRate
	volume     float64
}

// NewGraph creates an empty mix at the device sample rate
func NewGraph(sampleRate int, volume float64) *Graph {
	return &Graph{
		mixer:      &beep.Mixer{},
		sampleRate: beep.SampleRate(sampleRate),
		volume:     volume,
	}
}

// SampleRate returns the output rate every source is resampled to
func (g *Graph) SampleRate() beep.SampleRate {
	return g.sampleRate
}

func (g *Graph) add(s beep.Streamer) {
	g.mu.Lock()
	g.mixer.Add(s)
	g.mu.Unlock()
}

// Stream fills samples with the current mix, scaled by volume and hard-clipped.
// An empty mix yields silence and never reports exhaustion.
func (g *Graph) Stream(samples [][2]float64) (n int, ok bool) {
	g.mu.Lock()
	n, _ = g.mixer.Stream(samples)
	g.mu.Unlock()

	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	for i := range samples {
		samples[i][0] = clip(samples[i][0] * g.volume)
		samples[i][1] = clip(samples[i][1] * g.volume)
	}
	return len(samples), true
}

func (g *Graph) Err() error { return nil }

// Lock exposes the graph mutex so control changes stay atomic with respect to Stream
func (g *Graph) Lock() { g.mu.Lock() }

// Unlock releases the graph mutex
func (g *Graph) Unlock() { g.mu.Unlock() }

func clip(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
