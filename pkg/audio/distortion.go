package audio

import (
	"math"

	"github.com/gopxl/beep"
)

const defaultDistortion = 50

// MakeDistortionCurve precomputes a wave-shaping table of n entries:
//
//	curve[i] = ((3+k) * x * 20 * pi) / (pi + k*|x|),  x = 2i/n - 1
//
// A non-positive amount falls back to 50.
func MakeDistortionCurve(amount float64, n int) []float32 {
	k := amount
	if k <= 0 {
		k = defaultDistortion
	}
	if n < 2 {
		n = 2
	}

	curve := make([]float32, n)
	for i := range curve {
		x := float64(i)*2/float64(n) - 1
		curve[i] = float32(((3 + k) * x * 20 * math.Pi) / (math.Pi + k*math.Abs(x)))
	}
	return curve
}

// shape maps one sample through the curve with linear interpolation, like a
// Web Audio WaveShaperNode: input below -1 takes curve[0], above +1 the last entry.
func shape(curve []float32, x float64) float64 {
	last := len(curve) - 1
	v := float64(last) * (x + 1) / 2
	if v <= 0 {
		return float64(curve[0])
	}
	if v >= float64(last) {
		return float64(curve[last])
	}
	k := int(v)
	f := v - float64(k)
	return (1-f)*float64(curve[k]) + f*float64(curve[k+1])
}

// WaveShaper distorts a stream through a precomputed curve
type WaveShaper struct {
	Streamer beep.Streamer
	Curve    []float32
}

// NewWaveShaper wraps s with the given curve
func NewWaveShaper(s beep.Streamer, curve []float32) *WaveShaper {
	return &WaveShaper{Streamer: s, Curve: curve}
}

func (w *WaveShaper) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = w.Streamer.Stream(samples)
	if len(w.Curve) == 0 {
		return n, ok
	}
	for i := 0; i < n; i++ {
		samples[i][0] = shape(w.Curve, samples[i][0])
		samples[i][1] = shape(w.Curve, samples[i][1])
	}
	return n, ok
}

func (w *WaveShaper) Err() error { return w.Streamer.Err() }
