package stickfall

// ConstraintEpsilon is the tolerance, in pose units, below which a bone is
// considered to already have its target length, and below which a
// parent-child distance is treated as degenerate.
const ConstraintEpsilon = 0.001

// Constraint pins the distance from Parent to Child at Length.
type Constraint struct {
	Parent string
	Child  string
	Length float64
}

// LimbChain lists the limb pairs constrained by default, ordered root to
// extremity so corrections compose along each chain. The head, neck, spine
// and hip hub are deliberately absent: they follow authored keyframes
// exactly.
var LimbChain = []BonePair{
	{"shoulder_l", "elbow_l"},
	{"elbow_l", "hand_l"},
	{"shoulder_r", "elbow_r"},
	{"elbow_r", "hand_r"},
	{"hip_l", "knee_l"},
	{"knee_l", "foot_l"},
	{"hip_r", "knee_r"},
	{"knee_r", "foot_r"},
}

// NewConstraints measures each pair in the reference pose and returns the
// constraints in the same order. Pairs with a missing joint are dropped.
func NewConstraints(reference *Pose, pairs []BonePair) []Constraint {
	bones := make([]Bone, len(pairs))
	for i, pr := range pairs {
		bones[i] = Bone{From: pr.Parent, To: pr.Child}
	}
	return ConstraintsFromLengths(CanonicalLengths(reference, bones), pairs)
}

// ConstraintsFromLengths orders precomputed lengths by pairs. Pairs without a
// canonical length are dropped.
func ConstraintsFromLengths(lengths BoneLengths, pairs []BonePair) []Constraint {
	out := make([]Constraint, 0, len(pairs))
	for _, pr := range pairs {
		l, ok := lengths[pr]
		if !ok {
			continue
		}
		out = append(out, Constraint{Parent: pr.Parent, Child: pr.Child, Length: l})
	}
	return out
}

// Solve returns a copy of p with every constraint applied in order.
func Solve(p *Pose, constraints []Constraint) *Pose {
	out := p.Clone()
	ApplyConstraints(out, constraints)
	return out
}

// ApplyConstraints corrects p in place. For each constraint, in order, the
// child is moved along the existing parent-to-child direction to exactly the
// target length. The parent is never moved. Pairs with a missing joint or
// coincident joints are skipped.
func ApplyConstraints(p *Pose, constraints []Constraint) {
	for _, c := range constraints {
		pi, ok := p.index[c.Parent]
		if !ok {
			continue
		}
		ci, ok := p.index[c.Child]
		if !ok {
			continue
		}
		parent := p.joints[pi].Pos()
		child := p.joints[ci].Pos()

		d := Dist(parent, child)
		if d <= ConstraintEpsilon {
			continue
		}
		diff := d - c.Length
		if diff > -ConstraintEpsilon && diff < ConstraintEpsilon {
			continue
		}

		dir := child.Sub(parent).Scale(1 / d)
		fixed := parent.Add(dir.Scale(c.Length))
		p.joints[ci].X = fixed.X
		p.joints[ci].Y = fixed.Y
	}
}
