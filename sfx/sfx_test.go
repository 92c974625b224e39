package sfx

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to the end and returns every left-channel sample.
func drain(t *testing.T, s beep.Streamer) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for range 10000 {
		n, ok := s.Stream(buf)
		for i := range n {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never drained")
	return nil
}

func TestWhooshLengthAndLevel(t *testing.T) {
	samples := drain(t, Whoosh(1))
	if want := SampleRate.N(WhooshDuration); len(samples) != want {
		t.Fatalf("samples = %d, want %d", len(samples), want)
	}
	if samples[0] != 0 {
		t.Errorf("attack should start silent, got %f", samples[0])
	}
	for i, v := range samples {
		if math.Abs(v) > 0.6+1e-9 {
			t.Fatalf("sample %d = %f exceeds gain", i, v)
		}
	}
}

func TestWhooshSilentAtZeroVolume(t *testing.T) {
	for i, v := range drain(t, Whoosh(0)) {
		if v != 0 {
			t.Fatalf("sample %d = %f, want silence", i, v)
		}
	}
}

func TestCrackleIsBoundedAndReproducible(t *testing.T) {
	a := drain(t, Crackle(1, 7))
	b := drain(t, Crackle(1, 7))
	if len(a) == 0 || len(a) > SampleRate.N(CrackleDuration) {
		t.Fatalf("crackle length = %d", len(a))
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs for the same seed", i)
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	s := shape(constant{}, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond)
	samples := drain(t, s)
	if len(samples) != SampleRate.N(100*time.Millisecond) {
		t.Fatalf("samples = %d", len(samples))
	}
	att := SampleRate.N(10 * time.Millisecond)
	if samples[0] != 0 || math.Abs(samples[att/2]-0.5) > 0.01 {
		t.Errorf("attack = %f, %f", samples[0], samples[att/2])
	}
	if samples[len(samples)/2] != 1 {
		t.Errorf("sustain = %f", samples[len(samples)/2])
	}
	if last := samples[len(samples)-1]; last <= 0 || last > 0.01 {
		t.Errorf("release tail = %f", last)
	}
}

type constant struct{}

func (constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{1, 1}
	}
	return len(samples), true
}

func (constant) Err() error { return nil }
