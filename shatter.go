package stickfall

import (
	"math"

	"github.com/tanema/gween/ease"
)

// ShatterConfig controls the glass shatter burst. Ranges are sampled
// independently for every shard.
type ShatterConfig struct {
	Count         int
	Width, Height float64 // viewport size

	SpreadX  Range // start x offset from the viewport centre
	StartY   float64
	DriftX   Range // end x offset from the start x
	EndY     Range // end y as a fraction of Height
	Rotation Range // final rotation in degrees
	Size     Range
	Duration Range // seconds
	Delay    Range // seconds

	StartOpacity float64
	EndScale     float64
	Ease         ease.TweenFunc
	// Lifetime hides the whole effect this many seconds after Trigger.
	Lifetime float32
	Color    Color
}

// DefaultShatterConfig returns the burst used when the figure crashes
// through the top of the screen.
func DefaultShatterConfig(w, h float64) ShatterConfig {
	return ShatterConfig{
		Count:        50,
		Width:        w,
		Height:       h,
		SpreadX:      Range{Min: -40, Max: 40},
		StartY:       -5,
		DriftX:       Range{Min: -250, Max: 250},
		EndY:         Range{Min: 0.2, Max: 0.8},
		Rotation:     Range{Min: -270, Max: 270},
		Size:         Range{Min: 2, Max: 6},
		Duration:     Range{Min: 2.5, Max: 4.5},
		Delay:        Range{Min: 0, Max: 0.2},
		StartOpacity: 0.9,
		EndScale:     0.3,
		Ease:         ease.OutQuad,
		Lifetime:     5,
		Color:        Color{R: 1, G: 1, B: 1, A: 0.85},
	}
}

// Shard is one glass fragment: a diamond of side Size at Placement.
type Shard struct {
	Placement
	Size float64

	delay float32
	tween *TweenGroup
}

// Corners returns the diamond's four corners in screen coordinates.
func (s *Shard) Corners() [4]Vec2 {
	h := s.Size * s.Scale / 2
	m := Translate(s.X, s.Y).Mul(Rotate(s.Rotation))
	return [4]Vec2{
		m.Apply(Vec2{0, -h}),
		m.Apply(Vec2{h, 0}),
		m.Apply(Vec2{0, h}),
		m.Apply(Vec2{-h, 0}),
	}
}

// Shatter is a one-shot burst of glass shards. Shards are preallocated and
// reused across triggers.
type Shatter struct {
	cfg     ShatterConfig
	shards  []Shard
	elapsed float32
	visible bool

	armed   bool
	pending float32
}

// NewShatter allocates cfg.Count shards. The effect starts hidden.
func NewShatter(cfg ShatterConfig) *Shatter {
	if cfg.Ease == nil {
		cfg.Ease = ease.OutQuad
	}
	return &Shatter{cfg: cfg, shards: make([]Shard, max(cfg.Count, 0))}
}

// Config returns the shatter configuration.
func (s *Shatter) Config() ShatterConfig { return s.cfg }

// Trigger shows the effect and restarts every shard from the top centre.
func (s *Shatter) Trigger() {
	s.armed = false
	cfg := &s.cfg
	for i := range s.shards {
		sh := &s.shards[i]
		startX := cfg.Width/2 + cfg.SpreadX.Random()
		sh.Placement = Placement{X: startX, Y: cfg.StartY, Scale: 1, Opacity: cfg.StartOpacity}
		sh.Size = cfg.Size.Random()
		sh.delay = float32(cfg.Delay.Random())
		to := Placement{
			X:        startX + cfg.DriftX.Random(),
			Y:        cfg.Height * cfg.EndY.Random(),
			Scale:    cfg.EndScale,
			Rotation: cfg.Rotation.Random() * math.Pi / 180,
			Opacity:  0,
		}
		sh.tween = TweenPlacement(&sh.Placement, to, float32(cfg.Duration.Random()), cfg.Ease)
	}
	s.elapsed = 0
	s.visible = true
}

// TriggerAfter arms the effect to trigger once delay seconds of Update have
// passed. A later call replaces the pending delay.
func (s *Shatter) TriggerAfter(delay float32) {
	s.armed = true
	s.pending = delay
}

// Visible reports whether the effect should be drawn.
func (s *Shatter) Visible() bool { return s.visible }

// Shards returns the shards. Only meaningful while Visible.
func (s *Shatter) Shards() []Shard { return s.shards }

// Update advances every shard by dt seconds.
func (s *Shatter) Update(dt float32) {
	if s.armed {
		s.pending -= dt
		if s.pending > 0 {
			return
		}
		s.armed = false
		s.Trigger()
		dt = -s.pending
	}
	if !s.visible {
		return
	}
	s.elapsed += dt
	if s.elapsed >= s.cfg.Lifetime {
		s.visible = false
		return
	}
	for i := range s.shards {
		sh := &s.shards[i]
		step := dt
		if sh.delay > 0 {
			sh.delay -= dt
			if sh.delay >= 0 {
				continue
			}
			step = -sh.delay
			sh.delay = 0
		}
		sh.tween.Update(step)
	}
}
