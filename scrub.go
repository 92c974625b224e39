package stickfall

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Scrub advances a progress value linearly from 0 to 1 over a fixed duration.
// It can be paused and resumed without losing its position. A scrub starts
// stopped; Play begins from 0.
type Scrub struct {
	tween    *gween.Tween
	duration float32
	progress float64
	running  bool
}

// NewScrub creates a scrub that takes duration seconds to reach 1.
func NewScrub(duration float32) *Scrub {
	if duration <= 0 {
		duration = 1
	}
	return &Scrub{
		tween:    gween.New(0, 1, duration, ease.Linear),
		duration: duration,
	}
}

// Play rewinds to 0 and starts advancing.
func (s *Scrub) Play() {
	s.tween.Reset()
	s.progress = 0
	s.running = true
}

// Pause holds the current progress.
func (s *Scrub) Pause() { s.running = false }

// Resume continues from the held progress.
func (s *Scrub) Resume() { s.running = true }

// Running reports whether Update advances the progress.
func (s *Scrub) Running() bool { return s.running }

// Progress returns the current value in [0, 1].
func (s *Scrub) Progress() float64 { return s.progress }

// Duration returns the seconds needed to go from 0 to 1.
func (s *Scrub) Duration() float32 { return s.duration }

// Update advances the progress by dt seconds when running. It reports whether
// the scrub was running; the progress holds at 1 once reached.
func (s *Scrub) Update(dt float32) bool {
	if !s.running {
		return false
	}
	v, _ := s.tween.Update(dt)
	s.progress = clamp01(float64(v))
	return true
}
