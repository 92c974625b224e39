package stickfall

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v)", name, i, got[i], want[i], got)
			return
		}
	}
}

func TestIdentityLeavesPointsAlone(t *testing.T) {
	assertVec(t, "apply", IdentityAffine.Apply(Vec2{3, -4}), Vec2{3, -4})
}

func TestMulAppliesRightOperandFirst(t *testing.T) {
	m := Translate(10, 0).Mul(ScaleXY(2, 2))
	// Scale first: (1,1) -> (2,2), then translate -> (12,2).
	assertVec(t, "scale then translate", m.Apply(Vec2{1, 1}), Vec2{12, 2})

	m = ScaleXY(2, 2).Mul(Translate(10, 0))
	assertVec(t, "translate then scale", m.Apply(Vec2{1, 1}), Vec2{22, 2})
}

func TestRotateQuarterTurn(t *testing.T) {
	assertVec(t, "rotate", Rotate(math.Pi/2).Apply(Vec2{1, 0}), Vec2{0, 1})
}

func TestInvertRoundTrip(t *testing.T) {
	m := Translate(5, -3).Mul(Rotate(0.7)).Mul(ScaleXY(2, 0.5))
	assertMatrix(t, "m * inv", m.Mul(m.Invert()), IdentityAffine)
	p := Vec2{12, 34}
	assertVec(t, "round trip", m.Invert().Apply(m.Apply(p)), p)
}

func TestInvertSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", ScaleXY(0, 1).Invert(), IdentityAffine)
}

func TestPlacementMatrixMovesPivot(t *testing.T) {
	pl := Placement{X: 100, Y: 50, Scale: 2, Opacity: 1}
	pivot := Vec2{10, 10}
	m := pl.Matrix(pivot)

	assertVec(t, "pivot", m.Apply(pivot), Vec2{100, 50})
	assertVec(t, "offset point", m.Apply(Vec2{11, 10}), Vec2{102, 50})

	pl.Rotation = math.Pi / 2
	assertVec(t, "rotated", pl.Matrix(pivot).Apply(Vec2{11, 10}), Vec2{100, 52})
}
