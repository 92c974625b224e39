package stickfall

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Placement is the screen-space transform of the whole figure: the gross
// motion layered on top of the limb pose. Rotation is in radians and is
// applied around the pose centroid.
type Placement struct {
	X, Y     float64
	Scale    float64
	Rotation float64
	Opacity  float64
}

// DefaultPlacement is the resting transform at the origin.
var DefaultPlacement = Placement{Scale: 1, Opacity: 1}

// maxTweenFields is the number of Placement fields.
const maxTweenFields = 5

// TweenGroup animates up to five float64 fields of a Placement at once. Create
// one with TweenPlacement, TweenPosition, TweenScale, TweenRotation or
// TweenOpacity and call Update(dt) each frame; values are written straight
// into the target.
//
// There is no global animation manager: callers pump Update themselves.
type TweenGroup struct {
	tweens   [maxTweenFields]*gween.Tween
	fields   [maxTweenFields]*float64
	count    int
	elapsed  float32
	duration float32
	Done     bool
}

// Update advances every tween by dt seconds and writes the eased values to
// the target fields. Calls after Done are no-ops.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	g.elapsed += dt

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Elapsed returns the seconds advanced so far.
func (g *TweenGroup) Elapsed() float32 { return g.elapsed }

// Duration returns the configured duration in seconds.
func (g *TweenGroup) Duration() float32 { return g.duration }

// Remaining returns the seconds left before the group completes, never
// negative.
func (g *TweenGroup) Remaining() float32 {
	return max(g.duration-g.elapsed, 0)
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
	g.duration = duration
}

// TweenField pairs a float64 field with the value it should reach.
type TweenField struct {
	field *float64
	to    float64
}

// FieldTo returns a TweenField animating *field toward to.
func FieldTo(field *float64, to float64) TweenField {
	return TweenField{field: field, to: to}
}

// TweenGroupOf animates up to five arbitrary fields with one duration and
// easing. Extra fields are ignored.
func TweenGroupOf(duration float32, fn ease.TweenFunc, fields ...TweenField) *TweenGroup {
	g := &TweenGroup{duration: duration}
	for _, f := range fields[:min(len(fields), maxTweenFields)] {
		g.add(f.field, f.to, duration, fn)
	}
	return g
}

// TweenPlacement animates every Placement field toward to.
func TweenPlacement(p *Placement, to Placement, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&p.X, to.X, duration, fn)
	g.add(&p.Y, to.Y, duration, fn)
	g.add(&p.Scale, to.Scale, duration, fn)
	g.add(&p.Rotation, to.Rotation, duration, fn)
	g.add(&p.Opacity, to.Opacity, duration, fn)
	return g
}

// TweenPosition animates p.X and p.Y.
func TweenPosition(p *Placement, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&p.X, toX, duration, fn)
	g.add(&p.Y, toY, duration, fn)
	return g
}

// TweenScale animates p.Scale.
func TweenScale(p *Placement, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&p.Scale, to, duration, fn)
	return g
}

// TweenRotation animates p.Rotation (radians).
func TweenRotation(p *Placement, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&p.Rotation, to, duration, fn)
	return g
}

// TweenOpacity animates p.Opacity.
func TweenOpacity(p *Placement, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&p.Opacity, to, duration, fn)
	return g
}
