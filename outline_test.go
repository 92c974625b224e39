package stickfall

import "testing"

func TestFrameOutline(t *testing.T) {
	pose := twoBonePose()
	pose.AddJoint(Joint{ID: HeadJoint, X: 0, Y: -10})
	pose.HeadRadius = 5
	f := Frame{
		Pose:      pose,
		Placement: Placement{X: 100, Y: 50, Scale: 2, Opacity: 0.5},
		Attachments: []Attachment{
			{ID: "front", JointID: HeadJoint, Scale: 1},
			{ID: "back", JointID: HeadJoint, Scale: 1, ZIndex: -1},
			{ID: "lost", JointID: "missing", Scale: 1},
		},
	}

	o := f.Outline()
	if !o.HasHead {
		t.Fatal("head not found")
	}
	assertVec(t, "head", o.Head, Vec2{100, 30})
	assertNear(t, "head radius", o.HeadRadius, 10)
	assertNear(t, "opacity", o.Opacity, 0.5)

	if len(o.Bones) != len(pose.Segments()) {
		t.Fatalf("bones = %d", len(o.Bones))
	}
	for i, s := range pose.Segments() {
		assertVec(t, "from", o.Bones[i].From, f.Matrix().Apply(s.From))
		assertVec(t, "to", o.Bones[i].To, f.Matrix().Apply(s.To))
	}

	if len(o.Front) != 1 || len(o.Behind) != 1 {
		t.Fatalf("layers = %d front, %d behind", len(o.Front), len(o.Behind))
	}
	assertVec(t, "attachment", o.Front[0].Position, Vec2{100, 30})
	assertVec(t, "attachment origin", o.Front[0].Matrix.Apply(Vec2{}), Vec2{100, 30})
	assertVec(t, "attachment unit x", o.Front[0].Matrix.Apply(Vec2{1, 0}), Vec2{102, 30})
}

func TestOutlineWithoutHead(t *testing.T) {
	f := Frame{Pose: twoBonePose(), Placement: DefaultPlacement}
	if f.Outline().HasHead {
		t.Error("pose has no head joint")
	}
}
