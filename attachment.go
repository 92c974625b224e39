package stickfall

import (
	"math"
	"slices"
)

// Attachment binds an image to a joint. Rotations are in degrees: Rotation
// spins in place, RotationX tilts forward/back and RotationY tilts
// left/right. Negative ZIndex draws behind the skeleton, otherwise in front.
type Attachment struct {
	ID        string  `json:"id" yaml:"id"`
	JointID   string  `json:"jointId" yaml:"jointId"`
	ImageData string  `json:"imageData" yaml:"imageData"`
	OffsetX   float64 `json:"offsetX" yaml:"offsetX"`
	OffsetY   float64 `json:"offsetY" yaml:"offsetY"`
	Scale     float64 `json:"scale" yaml:"scale"`
	Rotation  float64 `json:"rotation" yaml:"rotation"`
	RotationX float64 `json:"rotationX" yaml:"rotationX"`
	RotationY float64 `json:"rotationY" yaml:"rotationY"`
	ZIndex    int     `json:"zIndex" yaml:"zIndex"`
}

// Transform returns the animated subset of a.
func (a Attachment) Transform() AttachmentTransform {
	return AttachmentTransform{
		OffsetX:   a.OffsetX,
		OffsetY:   a.OffsetY,
		Rotation:  a.Rotation,
		RotationX: a.RotationX,
		RotationY: a.RotationY,
	}
}

// WithTransform returns a copy of a whose offset and rotations come from t.
// Identity, target joint, image, scale and z-order are preserved.
func (a Attachment) WithTransform(t AttachmentTransform) Attachment {
	a.OffsetX = t.OffsetX
	a.OffsetY = t.OffsetY
	a.Rotation = t.Rotation
	a.RotationX = t.RotationX
	a.RotationY = t.RotationY
	return a
}

// Behind reports whether the attachment draws under the skeleton.
func (a Attachment) Behind() bool { return a.ZIndex < 0 }

// RenderTransform is a resolved attachment ready for drawing. Matrix maps the
// image's unit space, centred on its origin, into pose coordinates.
type RenderTransform struct {
	AttachmentID string
	ImageData    string
	Position     Vec2
	Rotation     float64 // radians
	TiltX        float64 // radians, foreshortens vertically
	TiltY        float64 // radians, foreshortens horizontally
	Scale        float64
	ZIndex       int
	Matrix       Affine
}

// Resolve places an attachment against the pose. It reports false when the
// target joint is missing, in which case nothing should be drawn this frame.
//
// The matrix is Translate(joint+offset) * Tilt * RotateZ * Scale. X/Y tilts
// are flat cosmetic foreshortening by their cosines, not a perspective
// projection.
func Resolve(a Attachment, pose *Pose) (RenderTransform, bool) {
	jp, ok := pose.Position(a.JointID)
	if !ok {
		return RenderTransform{}, false
	}
	scale := a.Scale
	pos := jp.Add(Vec2{a.OffsetX, a.OffsetY})
	rt := RenderTransform{
		AttachmentID: a.ID,
		ImageData:    a.ImageData,
		Position:     pos,
		Rotation:     degToRad(a.Rotation),
		TiltX:        degToRad(a.RotationX),
		TiltY:        degToRad(a.RotationY),
		Scale:        scale,
		ZIndex:       a.ZIndex,
	}
	rt.Matrix = Translate(pos.X, pos.Y).
		Mul(ScaleXY(math.Cos(rt.TiltY), math.Cos(rt.TiltX))).
		Mul(Rotate(rt.Rotation)).
		Mul(ScaleXY(scale, scale))
	return rt, true
}

// AttachmentBox is the side of the square every attachment image is fitted
// into before scale is applied.
const AttachmentBox = 50

// ImageMatrix maps pixel coordinates of a w x h image into the same space as
// Matrix. The image is fitted into an AttachmentBox square, aspect preserved,
// and centred on the attachment origin.
func (rt RenderTransform) ImageMatrix(w, h int) Affine {
	side := max(w, h)
	if side <= 0 {
		return rt.Matrix
	}
	fit := float64(AttachmentBox) / float64(side)
	return rt.Matrix.
		Mul(ScaleXY(fit, fit)).
		Mul(Translate(-float64(w)/2, -float64(h)/2))
}

// Layers holds resolved attachments split by draw order relative to the
// skeleton, each stable-sorted by ZIndex.
type Layers struct {
	Behind []RenderTransform
	Front  []RenderTransform
}

// ResolveLayers resolves every attachment, skipping those whose joint is
// missing.
func ResolveLayers(atts []Attachment, pose *Pose) Layers {
	var l Layers
	for _, a := range atts {
		rt, ok := Resolve(a, pose)
		if !ok {
			continue
		}
		if a.Behind() {
			l.Behind = append(l.Behind, rt)
		} else {
			l.Front = append(l.Front, rt)
		}
	}
	byZ := func(a, b RenderTransform) int { return a.ZIndex - b.ZIndex }
	slices.SortStableFunc(l.Behind, byZ)
	slices.SortStableFunc(l.Front, byZ)
	return l
}

// ApplyWingFrame overwrites the offset and rotations of the leading
// attachments, in input order, from the frame. At most len(frame) and at most
// AnimatedAttachments attachments change; the rest keep their static values.
// atts is modified in place.
func ApplyWingFrame(atts []Attachment, frame []AttachmentTransform) {
	n := min(len(atts), len(frame), AnimatedAttachments)
	for i := range n {
		atts[i] = atts[i].WithTransform(frame[i])
	}
}

// AnimatedAttachments is how many leading attachments follow the wing table
// during a fall.
const AnimatedAttachments = 2
