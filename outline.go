package stickfall

// HeadJoint is the id of the joint the head circle is centred on.
const HeadJoint = "head"

// Outline is a frame resolved into screen space: bones as line segments, the
// head as a circle, and attachment matrices composed with the figure
// placement. Renderers draw an Outline with whatever primitives they have.
type Outline struct {
	Bones      []Segment
	Head       Vec2
	HeadRadius float64
	HasHead    bool
	// Scale is the placement scale, for stroke widths.
	Scale   float64
	Opacity float64
	Behind  []RenderTransform
	Front   []RenderTransform
}

// Outline resolves the frame. Dangling bones and attachments whose joint is
// missing are skipped.
func (f Frame) Outline() Outline {
	m := f.Matrix()
	o := Outline{
		Scale:      f.Placement.Scale,
		Opacity:    f.Placement.Opacity,
		HeadRadius: f.Pose.HeadRadius * f.Placement.Scale,
	}

	segs := f.Pose.Segments()
	for i := range segs {
		segs[i].From = m.Apply(segs[i].From)
		segs[i].To = m.Apply(segs[i].To)
	}
	o.Bones = segs

	if head, ok := f.Pose.Position(HeadJoint); ok {
		o.Head = m.Apply(head)
		o.HasHead = true
	}

	layers := f.Layers()
	o.Behind = toScreen(layers.Behind, m)
	o.Front = toScreen(layers.Front, m)
	return o
}

func toScreen(rts []RenderTransform, m Affine) []RenderTransform {
	for i := range rts {
		rts[i].Position = m.Apply(rts[i].Position)
		rts[i].Matrix = m.Mul(rts[i].Matrix)
	}
	return rts
}
