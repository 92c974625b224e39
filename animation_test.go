package stickfall

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	p := Placement{X: 10, Y: 20, Scale: 1, Opacity: 1}

	g := TweenPosition(&p, 100, 200, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(p.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", p.X)
	}
	if math.Abs(p.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", p.Y)
	}
	if p.Scale != 1 || p.Opacity != 1 {
		t.Errorf("untouched fields changed: %+v", p)
	}
}

func TestTweenPlacementAllFields(t *testing.T) {
	p := DefaultPlacement
	to := Placement{X: 4, Y: 8, Scale: 2, Rotation: 1, Opacity: 0}

	g := TweenPlacement(&p, to, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done")
	}
	for name, pair := range map[string][2]float64{
		"X":        {p.X, to.X},
		"Y":        {p.Y, to.Y},
		"Scale":    {p.Scale, to.Scale},
		"Rotation": {p.Rotation, to.Rotation},
		"Opacity":  {p.Opacity, to.Opacity},
	} {
		if math.Abs(pair[0]-pair[1]) > 0.01 {
			t.Errorf("%s = %f, want %f", name, pair[0], pair[1])
		}
	}
}

func TestTweenOpacityHalfway(t *testing.T) {
	p := DefaultPlacement
	g := TweenOpacity(&p, 0, 1.0, ease.Linear)
	g.Update(0.5)

	if g.Done {
		t.Fatal("should not be done halfway")
	}
	if math.Abs(p.Opacity-0.5) > 0.01 {
		t.Errorf("Opacity = %f, want ~0.5", p.Opacity)
	}
}

func TestTweenGroupRemaining(t *testing.T) {
	p := DefaultPlacement
	g := TweenScale(&p, 3, 1.0, ease.Linear)

	if g.Duration() != 1 {
		t.Errorf("Duration = %v, want 1", g.Duration())
	}
	g.Update(0.25)
	if math.Abs(float64(g.Remaining()-0.75)) > 1e-6 {
		t.Errorf("Remaining = %v, want 0.75", g.Remaining())
	}
	g.Update(2)
	if g.Remaining() != 0 {
		t.Errorf("Remaining = %v after overrun, want 0", g.Remaining())
	}
}

func TestTweenGroupUpdateAfterDoneIsNoop(t *testing.T) {
	p := DefaultPlacement
	g := TweenRotation(&p, 2, 0.5, ease.Linear)
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done")
	}

	p.Rotation = 42
	g.Update(0.5)
	if p.Rotation != 42 {
		t.Errorf("Rotation = %f, Update after Done must not write", p.Rotation)
	}
}

func TestTweenGroupOfDropsExtraFields(t *testing.T) {
	vals := make([]float64, maxTweenFields+2)
	fields := make([]TweenField, len(vals))
	for i := range vals {
		fields[i] = FieldTo(&vals[i], 1)
	}

	g := TweenGroupOf(1, ease.Linear, fields...)
	g.Update(1)

	for i, v := range vals {
		want := 1.0
		if i >= maxTweenFields {
			want = 0
		}
		if math.Abs(v-want) > 1e-6 {
			t.Errorf("vals[%d] = %f, want %f", i, v, want)
		}
	}
}
