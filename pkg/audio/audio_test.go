package audio

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// constStream emits n frames of a fixed value
type constStream struct {
	value float64
	left  int
}

func (c *constStream) Stream(samples [][2]float64) (int, bool) {
	if c.left <= 0 {
		return 0, false
	}
	n := len(samples)
	if n > c.left {
		n = c.left
	}
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{c.value, c.value}
	}
	c.left -= n
	return n, true
}

func (c *constStream) Err() error { return nil }

func TestMakeDistortionCurve(t *testing.T) {
	curve := MakeDistortionCurve(400, 44100)

	if len(curve) != 44100 {
		t.Fatalf("Expected 44100 entries, got %d", len(curve))
	}

	// x = -1 at i = 0
	want := ((3 + 400.0) * -1 * 20 * math.Pi) / (math.Pi + 400)
	if math.Abs(float64(curve[0])-want) > 1e-3 {
		t.Errorf("curve[0] = %f, want %f", curve[0], want)
	}

	// x = 0 at the midpoint
	if curve[22050] != 0 {
		t.Errorf("Expected zero at the midpoint, got %f", curve[22050])
	}

	for i := 1; i < len(curve); i++ {
		if curve[i] < curve[i-1] {
			t.Fatalf("Curve not monotonic at %d", i)
		}
	}
}

// TestMakeDistortionCurveFallback verifies non-positive amounts use 50
func TestMakeDistortionCurveFallback(t *testing.T) {
	got := MakeDistortionCurve(0, 100)
	want := MakeDistortionCurve(50, 100)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Index %d: got %f, want %f", i, got[i], want[i])
		}
	}
	if len(MakeDistortionCurve(400, 0)) != 2 {
		t.Error("Expected minimum curve size of 2")
	}
}

func TestShapeInterpolation(t *testing.T) {
	curve := []float32{-1, 0, 3}

	cases := []struct {
		in, want float64
	}{
		{-2, -1},
		{-1, -1},
		{-0.5, -0.5},
		{0, 0},
		{0.5, 1.5},
		{1, 3},
		{5, 3},
	}
	for _, tc := range cases {
		if got := shape(curve, tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("shape(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWaveShaperStream(t *testing.T) {
	ws := NewWaveShaper(&constStream{value: 0.5, left: 10}, []float32{-1, 0, 3})

	samples := make([][2]float64, 16)
	n, ok := ws.Stream(samples)
	if !ok || n != 10 {
		t.Fatalf("Expected 10 samples, got n=%d ok=%v", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] != 1.5 || samples[i][1] != 1.5 {
			t.Fatalf("Sample %d not shaped: %v", i, samples[i])
		}
	}
	if ws.Err() != nil {
		t.Errorf("Unexpected error: %v", ws.Err())
	}
}

// TestGraphClipsAndPadsSilence verifies the destination hard-clips and never runs dry
func TestGraphClipsAndPadsSilence(t *testing.T) {
	g := NewGraph(44100, 0.5)
	g.add(&constStream{value: 4, left: 3})

	samples := make([][2]float64, 8)
	n, ok := g.Stream(samples)
	if n != 8 || !ok {
		t.Fatalf("Expected full buffer, got n=%d ok=%v", n, ok)
	}
	for i := 0; i < 3; i++ {
		if samples[i][0] != 1 {
			t.Errorf("Sample %d: expected clip to 1, got %f", i, samples[i][0])
		}
	}
	for i := 3; i < 8; i++ {
		if samples[i][0] != 0 || samples[i][1] != 0 {
			t.Errorf("Sample %d: expected silence, got %v", i, samples[i])
		}
	}
}

func writeTestWav(t *testing.T, frames int, value float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, &constStream{value: value, left: frames}, format); err != nil {
		t.Fatalf("Encoding wav failed: %v", err)
	}
	return path
}

func waitLoaded(t *testing.T, tr *Track) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		tr.Poll()
		if tr.pending == nil {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Timed out waiting for load")
}

// TestTrackLifecycle walks NotReady -> ReadyIdle -> Playing with a real wav file
func TestTrackLifecycle(t *testing.T) {
	path := writeTestWav(t, 4410, 0.01)
	g := NewGraph(44100, 1)
	tr := NewTrack(g, MakeDistortionCurve(400, 44100))

	if tr.State() != NotReady {
		t.Fatalf("Expected NotReady, got %v", tr.State())
	}
	if err := tr.Start(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady, got %v", err)
	}

	tr.Load(context.Background(), path)
	waitLoaded(t, tr)

	if tr.State() != ReadyIdle {
		t.Fatalf("Expected ReadyIdle, got %v (load err: %v)", tr.State(), tr.LoadErr())
	}

	// connected but not started: silence
	samples := make([][2]float64, 256)
	g.Stream(samples)
	for i := range samples {
		if samples[i][0] != 0 {
			t.Fatalf("Expected silence before start, got %v at %d", samples[i], i)
		}
	}

	if err := tr.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if tr.State() != Playing {
		t.Errorf("Expected Playing, got %v", tr.State())
	}
	if err := tr.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Expected ErrAlreadyStarted, got %v", err)
	}

	// the small positive tone is driven into clipping by the curve
	g.Stream(samples)
	if samples[10][0] < 0.9 {
		t.Errorf("Expected distorted output near 1, got %f", samples[10][0])
	}

	// the source loops past its 4410 frames
	long := make([][2]float64, 10000)
	g.Stream(long)
	if long[9000][0] < 0.9 {
		t.Errorf("Expected looping source, got %f", long[9000][0])
	}
}

// TestTrackLoadFailure verifies a failed fetch leaves the track NotReady for good
func TestTrackLoadFailure(t *testing.T) {
	tr := NewTrack(NewGraph(44100, 1), MakeDistortionCurve(400, 128))
	tr.Open = func(ctx context.Context, path string) (io.ReadCloser, error) {
		return nil, errors.New("network down")
	}

	tr.Load(context.Background(), "audio/distorted_noise.mp3")
	waitLoaded(t, tr)

	if tr.State() != NotReady {
		t.Errorf("Expected NotReady after failure, got %v", tr.State())
	}
	if tr.LoadErr() == nil {
		t.Error("Expected load error to be recorded")
	}
	if err := tr.Start(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady, got %v", err)
	}
}

func TestTrackCorruptData(t *testing.T) {
	tr := NewTrack(NewGraph(44100, 1), nil)
	tr.Open = func(ctx context.Context, path string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("definitely not a wav")), nil
	}

	tr.Load(context.Background(), "noise.wav")
	waitLoaded(t, tr)

	if tr.State() != NotReady || tr.LoadErr() == nil {
		t.Errorf("Expected decode failure, state=%v err=%v", tr.State(), tr.LoadErr())
	}
}

func TestDecoderFor(t *testing.T) {
	for _, p := range []string{"a.mp3", "A.MP3", "x/y.wav", "https://host/s.mp3?v=2"} {
		if _, err := DecoderFor(p); err != nil {
			t.Errorf("DecoderFor(%q) unexpected error: %v", p, err)
		}
	}
	if _, err := DecoderFor("sound.ogg"); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestOpenAssetMissingFile(t *testing.T) {
	_, err := OpenAsset(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestStateString(t *testing.T) {
	if NotReady.String() != "not-ready" || ReadyIdle.String() != "ready" || Playing.String() != "playing" {
		t.Error("Unexpected state names")
	}
}
