package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// State of a track's lifecycle
type State int

const (
	NotReady State = iota
	ReadyIdle
	Playing
)

func (s State) String() string {
	switch s {
	case NotReady:
		return "not-ready"
	case ReadyIdle:
		return "ready"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrNotReady       = errors.New("audio: track not ready")
	ErrAlreadyStarted = errors.New("audio: track already started")
	ErrEmpty          = errors.New("audio: decoded stream is empty")
)

// Decoder turns an encoded stream into samples
type Decoder func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

type loadResult struct {
	buf *beep.Buffer
	err error
}

// Pending is the handle of an in-flight fetch and decode
type Pending struct {
	result chan loadResult
}

// Poll returns the outcome once it is available without blocking
func (p *Pending) Poll() (buf *beep.Buffer, done bool, err error) {
	select {
	case r := <-p.result:
		return r.buf, true, r.err
	default:
		return nil, false, nil
	}
}

// Track is a looping source wired through a wave shaper into a Graph.
// All methods except the decode goroutine run on the frame loop.
type Track struct {
	graph   *Graph
	curve   []float32
	state   State
	pending *Pending
	ctrl    *beep.Ctrl
	loadErr error

	// Open fetches the encoded bytes; replaced in tests
	Open func(ctx context.Context, path string) (io.ReadCloser, error)
}

// NewTrack creates an unloaded track feeding graph
func NewTrack(graph *Graph, curve []float32) *Track {
	return &Track{
		graph: graph,
		curve: curve,
		state: NotReady,
		Open:  OpenAsset,
	}
}

// Load starts fetching and decoding path in the background. The track stays
// NotReady until Poll observes a successful result.
func (t *Track) Load(ctx context.Context, path string) *Pending {
	p := &Pending{result: make(chan loadResult, 1)}
	t.pending = p

	open := t.Open
	rate := t.graph.SampleRate()
	go func() {
		buf, err := fetchAndDecode(ctx, open, path, rate)
		p.result <- loadResult{buf: buf, err: err}
	}()

	return p
}

// Poll applies a finished load, if any, and returns the current state
func (t *Track) Poll() State {
	if t.pending == nil {
		return t.state
	}

	buf, done, err := t.pending.Poll()
	if !done {
		return t.state
	}
	t.pending = nil

	if err != nil {
		t.loadErr = err
		return t.state
	}

	source := beep.Loop(-1, buf.Streamer(0, buf.Len()))
	t.ctrl = &beep.Ctrl{Streamer: NewWaveShaper(source, t.curve), Paused: true}
	t.graph.add(t.ctrl)
	t.state = ReadyIdle

	return t.state
}

// State returns the state without polling the load
func (t *Track) State() State {
	return t.state
}

// LoadErr returns why the last load failed, if it did
func (t *Track) LoadErr() error {
	return t.loadErr
}

// Start unpauses the source. It succeeds once per track.
func (t *Track) Start() error {
	switch t.state {
	case NotReady:
		return ErrNotReady
	case Playing:
		return ErrAlreadyStarted
	}

	t.graph.Lock()
	t.ctrl.Paused = false
	t.graph.Unlock()

	t.state = Playing
	return nil
}

// OpenAsset opens a local file, or performs a GET for http(s) URLs
func OpenAsset(ctx context.Context, path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, fmt.Errorf("building request for %s: %w", path, err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetching %s: unexpected status %s", path, resp.Status)
		}
		return resp.Body, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

// DecoderFor picks a decoder from the file extension
func DecoderFor(path string) (Decoder, error) {
	// strip URL query before looking at the extension
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode, nil
	case ".wav":
		return func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return wav.Decode(rc)
		}, nil
	default:
		return nil, fmt.Errorf("no decoder for %q", path)
	}
}

func fetchAndDecode(ctx context.Context, open func(context.Context, string) (io.ReadCloser, error), path string, rate beep.SampleRate) (*beep.Buffer, error) {
	decode, err := DecoderFor(path)
	if err != nil {
		return nil, err
	}

	rc, err := open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	stream, format, err := decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer stream.Close()

	var src beep.Streamer = stream
	if format.SampleRate != rate {
		src = beep.Resample(4, format.SampleRate, rate, stream)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 3})
	buf.Append(src)

	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if buf.Len() == 0 {
		return nil, ErrEmpty
	}

	return buf, nil
}
