// Package sfx generates the procedural sound cues for the fall: a noise
// whoosh when the figure drops off the bottom of the screen and a glassy
// crackle when it crashes back in through the top.
//
// Every cue is a finite beep.Streamer built from oscillators, so no audio
// assets are shipped. Play them with speaker.Play after speaker.Init.
package sfx

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the rate every cue is generated at.
const SampleRate beep.SampleRate = 44100

// Cue durations.
const (
	WhooshDuration  = 600 * time.Millisecond
	CrackleDuration = 450 * time.Millisecond
	pingDuration    = 60 * time.Millisecond
)

// noise streams white noise for a fixed number of samples.
type noise struct {
	remaining int
	rng       *rand.Rand
}

func newNoise(d time.Duration, rng *rand.Rand) *noise {
	return &noise{remaining: SampleRate.N(d), rng: rng}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.remaining <= 0 {
		return 0, false
	}
	count := min(len(samples), n.remaining)
	for i := range count {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	n.remaining -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// envelope shapes a stream with a linear attack and release.
type envelope struct {
	s                       beep.Streamer
	pos, attack, sus, total int
}

func shape(s beep.Streamer, d, attack, release time.Duration) beep.Streamer {
	total := SampleRate.N(d)
	att := SampleRate.N(attack)
	rel := SampleRate.N(release)
	return &envelope{s: s, attack: att, sus: max(total-att-rel, 0), total: total}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.total {
		return 0, false
	}
	n, ok := e.s.Stream(samples[:min(len(samples), e.total-e.pos)])
	release := e.total - e.attack - e.sus
	for i := range n {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		} else if start := e.attack + e.sus; e.pos >= start && release > 0 {
			vol = float64(e.total-e.pos) / float64(release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// volume scales a stream linearly. 0 is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Whoosh returns the drop cue: filtered-sounding noise that swells and
// fades out. vol is a linear gain in [0, 1].
func Whoosh(vol float64) beep.Streamer {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	s := shape(newNoise(WhooshDuration, rng), WhooshDuration, 250*time.Millisecond, 300*time.Millisecond)
	return volume(s, vol*0.6)
}

// Crackle returns the glass cue: a burst of short high sine pings over a
// noise transient. seed makes the ping pattern reproducible.
func Crackle(vol float64, seed uint64) beep.Streamer {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	hit := shape(newNoise(40*time.Millisecond, rng), 40*time.Millisecond, time.Millisecond, 30*time.Millisecond)

	var pings []beep.Streamer
	for elapsed := time.Duration(0); elapsed+pingDuration <= CrackleDuration; {
		gap := time.Duration(rng.IntN(40)) * time.Millisecond
		if elapsed+gap+pingDuration > CrackleDuration {
			break
		}
		pings = append(pings, beep.Silence(SampleRate.N(gap)))
		elapsed += gap

		tone, err := generators.SineTone(SampleRate, 2500+rng.Float64()*3500)
		if err != nil {
			continue
		}
		ping := shape(beep.Take(SampleRate.N(pingDuration), tone), pingDuration, 2*time.Millisecond, 50*time.Millisecond)
		pings = append(pings, volume(ping, 0.25+rng.Float64()*0.25))
		elapsed += pingDuration
	}

	return volume(beep.Mix(hit, beep.Seq(pings...)), vol)
}
