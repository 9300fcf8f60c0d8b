package game

import (
	"math/rand"
	"testing"
	"time"

	"umbra/pkg/config"
)

func testGlitch() *Glitch {
	return NewGlitch(config.GlitchConfig{
		CooldownFrames: 200,
		Chance:         0.03,
		Duration:       100 * time.Millisecond,
	})
}

// TestGlitchCooldown verifies no roll happens until the counter passes the threshold
func TestGlitchCooldown(t *testing.T) {
	g := testGlitch()
	rng := &countingChance{value: 0}

	for i := 0; i < 200; i++ {
		if g.Update(0.016, rng) {
			t.Fatalf("Triggered during cooldown at frame %d", i+1)
		}
	}
	if rng.rolls != 0 {
		t.Fatalf("Expected no rolls during cooldown, got %d", rng.rolls)
	}

	if !g.Update(0.016, rng) {
		t.Fatal("Expected trigger on the first frame past cooldown")
	}
	if g.Counter() != 0 {
		t.Errorf("Expected counter reset, got %d", g.Counter())
	}
}

// TestGlitchExpires verifies the distortion lasts its duration in simulated time
func TestGlitchExpires(t *testing.T) {
	g := testGlitch()
	g.Cooldown = 0
	g.Update(0.016, fixedChance(0))
	if !g.Active() {
		t.Fatal("Expected active glitch")
	}

	g.Probability = 0
	g.Update(0.05, fixedChance(0.5))
	if !g.Active() {
		t.Fatal("Expected glitch still active after 50ms")
	}
	g.Update(0.06, fixedChance(0.5))
	if g.Active() {
		t.Error("Expected glitch reverted after 110ms")
	}
}

func TestGlitchHighRollNeverTriggers(t *testing.T) {
	g := testGlitch()
	for i := 0; i < 1000; i++ {
		if g.Update(0.016, fixedChance(0.03)) {
			t.Fatalf("0.03 is not below 0.03, triggered at frame %d", i+1)
		}
	}
}

// TestGlitchRate sanity-checks the seeded trigger rate stays rare
func TestGlitchRate(t *testing.T) {
	g := testGlitch()
	rng := rand.New(rand.NewSource(42))

	triggers := 0
	const frames = 60 * 60 * 10
	for i := 0; i < frames; i++ {
		if g.Update(1.0/60, rng) {
			triggers++
		}
	}

	// at least 201 frames apart
	if triggers == 0 || triggers > frames/201 {
		t.Errorf("Unexpected trigger count %d over %d frames", triggers, frames)
	}
}
