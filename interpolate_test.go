package stickfall

import (
	"math"
	"testing"
)

// keyPair returns two limb-consistent keyframes from the default sequence.
func keyPair(t *testing.T) (*Pose, *Pose, []Constraint) {
	t.Helper()
	seq := DefaultSequence()
	keys := seq.BodyKeys()
	if len(keys) < 2 {
		t.Fatalf("default sequence has %d body keys", len(keys))
	}
	return keys[0], keys[1], seq.Constraints
}

func TestInterpolateEndpoints(t *testing.T) {
	a, b, cs := keyPair(t)

	at0 := Interpolate(a, b, 0, cs)
	at1 := Interpolate(a, b, 1, cs)
	for _, j := range a.Joints() {
		assertVec(t, "t=0 "+j.ID, mustPos(t, at0, j.ID), j.Pos())
		if want, ok := b.Position(j.ID); ok {
			assertVec(t, "t=1 "+j.ID, mustPos(t, at1, j.ID), want)
		}
	}
	assertNear(t, "head radius t=0", at0.HeadRadius, a.HeadRadius)
	assertNear(t, "head radius t=1", at1.HeadRadius, b.HeadRadius)
}

func TestInterpolateUnconstrainedJointsAreMonotonic(t *testing.T) {
	a, b, cs := keyPair(t)
	for _, id := range []string{"head", "neck", "hip"} {
		pa, pb := mustPos(t, a, id), mustPos(t, b, id)
		dir := pb.Sub(pa)
		prev := -1.0
		for i := 0; i <= 20; i++ {
			p := mustPos(t, Interpolate(a, b, float64(i)/20, cs), id)
			// Projection onto the A->B line must not decrease.
			along := p.Sub(pa).X*dir.X + p.Sub(pa).Y*dir.Y
			if along < prev-1e-9 {
				t.Fatalf("%s moved backwards at step %d", id, i)
			}
			prev = along
			// And the point stays on the line.
			cross := p.Sub(pa).X*dir.Y - p.Sub(pa).Y*dir.X
			if math.Abs(cross) > 1e-6 {
				t.Fatalf("%s left the A-B line at step %d (cross %g)", id, i, cross)
			}
		}
	}
}

func TestInterpolateKeepsLimbLengths(t *testing.T) {
	a, b, cs := keyPair(t)
	for i := 1; i < 10; i++ {
		p := Interpolate(a, b, float64(i)/10, cs)
		for _, c := range cs {
			d := Dist(mustPos(t, p, c.Parent), mustPos(t, p, c.Child))
			if math.Abs(d-c.Length) > ConstraintEpsilon {
				t.Errorf("t=%.1f %s->%s = %f, want %f", float64(i)/10, c.Parent, c.Child, d, c.Length)
			}
		}
	}
}

func TestInterpolateJointMissingFromB(t *testing.T) {
	a := twoBonePose()
	b := NewPose([]Joint{{ID: "a", X: 10, Y: 0}}, nil, 0)
	p := Interpolate(a, b, 0.5, nil)

	assertVec(t, "a", mustPos(t, p, "a"), Vec2{5, 0})
	assertVec(t, "b keeps A", mustPos(t, p, "b"), Vec2{3, 4})
	assertNear(t, "head radius", p.HeadRadius, 6)
}

func TestLerpTransforms(t *testing.T) {
	a := []AttachmentTransform{{OffsetX: 0, Rotation: 0}, {OffsetY: 10}}
	b := []AttachmentTransform{{OffsetX: 10, Rotation: 90, RotationX: 30}}
	out := LerpTransforms(a, b, 0.5)
	if len(out) != 1 {
		t.Fatalf("len = %d, want shorter input length 1", len(out))
	}
	want := AttachmentTransform{OffsetX: 5, Rotation: 45, RotationX: 15}
	if out[0] != want {
		t.Errorf("got %+v, want %+v", out[0], want)
	}
}
