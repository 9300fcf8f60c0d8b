package logger

import (
	"bytes"
	"strings"
	"testing"
)

func newBufferLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(level)
	l.SetOutput(&buf)
	l.EnableColors(false)
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		" warn ":  WARN,
		"warning": WARN,
		"error":   ERROR,
		"fatal":   FATAL,
		"bogus":   INFO,
		"":        INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestLevelFiltering verifies messages below the threshold are dropped
func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger("warn")

	l.Debug("hidden debug")
	l.Infof("hidden %s", "info")
	l.Warnf("visible %d", 1)
	l.Error("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug/info to be filtered, got: %q", out)
	}
	if !strings.Contains(out, "[WARN ]") || !strings.Contains(out, "visible 1") {
		t.Errorf("Expected warn line, got: %q", out)
	}
	if !strings.Contains(out, "[ERROR]") {
		t.Errorf("Expected error line, got: %q", out)
	}
}

// TestCallerLocation verifies the reported file is the caller, not logger.go
func TestCallerLocation(t *testing.T) {
	l, buf := newBufferLogger("debug")
	l.Info("where")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Errorf("Expected caller file in prefix, got: %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := newBufferLogger("debug")
	l.With("audio").With("track").Info("decoded")
	if !strings.Contains(buf.String(), "(audio.track)") {
		t.Errorf("Expected component tag, got: %q", buf.String())
	}
}

// TestFatalExits verifies FATAL goes through the exit hook
func TestFatalExits(t *testing.T) {
	l, buf := newBufferLogger("info")
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatalf("boom %d", 7)

	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "boom 7") {
		t.Errorf("Expected fatal message, got: %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newBufferLogger("error")
	l.Info("before")
	l.SetLevel("debug")
	l.Debug("after")

	if l.Level() != DEBUG {
		t.Errorf("Expected DEBUG level, got %v", l.Level())
	}
	out := buf.String()
	if strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Errorf("Unexpected output after SetLevel: %q", out)
	}
}
