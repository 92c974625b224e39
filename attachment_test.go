package stickfall

import (
	"math"
	"testing"
)

func TestResolveMissingJoint(t *testing.T) {
	a := Attachment{ID: "x", JointID: "nonexistent", Scale: 1}
	if _, ok := Resolve(a, DefaultPose()); ok {
		t.Error("attachment on a missing joint should not resolve")
	}
}

func TestResolvePositionAndMatrix(t *testing.T) {
	pose := DefaultPose() // shoulder_l at (160,130)
	a := Attachment{ID: "w", JointID: "shoulder_l", OffsetX: 5, OffsetY: -10, Scale: 2, Rotation: 90}

	rt, ok := Resolve(a, pose)
	if !ok {
		t.Fatal("expected resolve")
	}
	assertVec(t, "position", rt.Position, Vec2{165, 120})
	assertNear(t, "rotation", rt.Rotation, math.Pi/2)
	assertVec(t, "origin", rt.Matrix.Apply(Vec2{}), Vec2{165, 120})
	// Scale 2, then a quarter turn: +x becomes +y.
	assertVec(t, "unit x", rt.Matrix.Apply(Vec2{1, 0}), Vec2{165, 122})
}

func TestResolveTiltForeshortens(t *testing.T) {
	pose := DefaultPose()
	a := Attachment{JointID: "hip", Scale: 1, RotationX: 60, RotationY: 60}
	rt, _ := Resolve(a, pose)
	// hip at (200,200); cos 60 = 0.5 on both axes.
	assertVec(t, "y axis", rt.Matrix.Apply(Vec2{0, 2}), Vec2{200, 201})
	assertVec(t, "x axis", rt.Matrix.Apply(Vec2{2, 0}), Vec2{201, 200})
}

func TestResolveLayersSplitsAndSorts(t *testing.T) {
	pose := DefaultPose()
	atts := []Attachment{
		{ID: "front2", JointID: "hip", ZIndex: 2},
		{ID: "back", JointID: "hip", ZIndex: -1},
		{ID: "front0", JointID: "hip", ZIndex: 0},
		{ID: "ghost", JointID: "nonexistent", ZIndex: 5},
		{ID: "deep", JointID: "hip", ZIndex: -3},
		{ID: "front0b", JointID: "hip", ZIndex: 0},
	}
	l := ResolveLayers(atts, pose)

	ids := func(rts []RenderTransform) []string {
		var out []string
		for _, rt := range rts {
			out = append(out, rt.AttachmentID)
		}
		return out
	}
	if got, want := ids(l.Behind), []string{"deep", "back"}; !equalStrings(got, want) {
		t.Errorf("Behind = %v, want %v", got, want)
	}
	if got, want := ids(l.Front), []string{"front0", "front0b", "front2"}; !equalStrings(got, want) {
		t.Errorf("Front = %v, want %v", got, want)
	}
}

func TestApplyWingFrameOnlyLeadingTwo(t *testing.T) {
	atts := []Attachment{
		{ID: "a", Scale: 1, ZIndex: 4},
		{ID: "b", Scale: 1},
		{ID: "c", OffsetX: 7},
	}
	frame := []AttachmentTransform{{OffsetX: 1, Rotation: 10}, {OffsetY: 2}, {OffsetX: 99}}
	ApplyWingFrame(atts, frame)

	if atts[0].OffsetX != 1 || atts[0].Rotation != 10 || atts[0].ZIndex != 4 || atts[0].Scale != 1 {
		t.Errorf("atts[0] = %+v", atts[0])
	}
	if atts[1].OffsetY != 2 {
		t.Errorf("atts[1] = %+v", atts[1])
	}
	if atts[2].OffsetX != 7 {
		t.Errorf("third attachment must keep its static offset, got %+v", atts[2])
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestImageMatrixFitsBox(t *testing.T) {
	rt := RenderTransform{Matrix: Translate(100, 100)}
	m := rt.ImageMatrix(200, 100)
	assertVec(t, "top-left", m.Apply(Vec2{0, 0}), Vec2{75, 87.5})
	assertVec(t, "centre", m.Apply(Vec2{100, 50}), Vec2{100, 100})
	assertVec(t, "bottom-right", m.Apply(Vec2{200, 100}), Vec2{125, 112.5})

	if rt.ImageMatrix(0, 0) != rt.Matrix {
		t.Error("empty image should fall back to the attachment matrix")
	}
}
