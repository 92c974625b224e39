package stickfall

// Interpolate blends pose a toward pose b by t and then applies the
// constraints. Joints missing from b keep a's coordinate; joints only in b are
// ignored. Bones are taken from a. Interpolating before constraining keeps
// limbs from stretching when a and b bend them differently.
func Interpolate(a, b *Pose, t float64, constraints []Constraint) *Pose {
	out := a.Clone()
	InterpolateInto(out, a, b, t, constraints)
	return out
}

// InterpolateInto writes the blend of a and b into dst, which must share a's
// joint layout (a clone of a, or a itself).
func InterpolateInto(dst, a, b *Pose, t float64, constraints []Constraint) {
	for i, ja := range a.joints {
		x, y := ja.X, ja.Y
		if bi, ok := b.index[ja.ID]; ok {
			jb := b.joints[bi]
			x = lerp(ja.X, jb.X, t)
			y = lerp(ja.Y, jb.Y, t)
		}
		if i < len(dst.joints) && dst.joints[i].ID == ja.ID {
			dst.joints[i].X = x
			dst.joints[i].Y = y
		} else {
			dst.SetJoint(ja.ID, x, y)
		}
	}
	dst.HeadRadius = lerp(a.HeadRadius, b.HeadRadius, t)
	ApplyConstraints(dst, constraints)
}

// AttachmentTransform is the animated subset of an attachment: its offset
// from the target joint and its three rotations in degrees.
type AttachmentTransform struct {
	OffsetX   float64 `json:"offsetX" yaml:"offsetX"`
	OffsetY   float64 `json:"offsetY" yaml:"offsetY"`
	Rotation  float64 `json:"rotation" yaml:"rotation"`
	RotationX float64 `json:"rotationX" yaml:"rotationX"`
	RotationY float64 `json:"rotationY" yaml:"rotationY"`
}

// Lerp interpolates every field linearly. There is no constraint pass.
func (a AttachmentTransform) Lerp(b AttachmentTransform, t float64) AttachmentTransform {
	return AttachmentTransform{
		OffsetX:   lerp(a.OffsetX, b.OffsetX, t),
		OffsetY:   lerp(a.OffsetY, b.OffsetY, t),
		Rotation:  lerp(a.Rotation, b.Rotation, t),
		RotationX: lerp(a.RotationX, b.RotationX, t),
		RotationY: lerp(a.RotationY, b.RotationY, t),
	}
}

// LerpTransforms interpolates two snapshots element-wise. The result has the
// length of the shorter input.
func LerpTransforms(a, b []AttachmentTransform, t float64) []AttachmentTransform {
	n := min(len(a), len(b))
	out := make([]AttachmentTransform, n)
	for i := range n {
		out[i] = a[i].Lerp(b[i], t)
	}
	return out
}
