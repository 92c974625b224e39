package stickfall

import (
	"math"
	"strconv"
)

// Joint is a named 2D point in a skeletal pose.
type Joint struct {
	ID   string  `json:"id" yaml:"id"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Name string  `json:"name" yaml:"name"`
}

// Pos returns the joint coordinate as a vector.
func (j Joint) Pos() Vec2 { return Vec2{j.X, j.Y} }

// Bone connects two joints by id. A bone whose endpoints are not both present
// in the pose is kept but never rendered.
type Bone struct {
	ID   string `json:"id" yaml:"id"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// BonePair keys canonical lengths and constraints by (parent, child) joint id.
type BonePair struct {
	Parent, Child string
}

// BoneLengths maps a (parent, child) pair to its canonical length.
type BoneLengths map[BonePair]float64

// Segment is a bone resolved against the current joint positions.
type Segment struct {
	Bone     Bone
	From, To Vec2
}

// Pose is a complete skeletal snapshot: joints in insertion order, an id
// index, the bone list, and the head radius. The zero value is an empty pose.
type Pose struct {
	joints     []Joint
	index      map[string]int
	bones      []Bone
	HeadRadius float64

	boneSeq int
}

// NewPose creates a pose from joint and bone tables. The slices are copied.
// Later joints with a duplicate id replace earlier ones.
func NewPose(joints []Joint, bones []Bone, headRadius float64) *Pose {
	p := &Pose{HeadRadius: headRadius}
	for _, j := range joints {
		p.AddJoint(j)
	}
	p.bones = append([]Bone(nil), bones...)
	return p
}

// Len returns the number of joints.
func (p *Pose) Len() int { return len(p.joints) }

// Joints returns a copy of the joints in insertion order.
func (p *Pose) Joints() []Joint {
	return append([]Joint(nil), p.joints...)
}

// Bones returns a copy of the bone list.
func (p *Pose) Bones() []Bone {
	return append([]Bone(nil), p.bones...)
}

// Joint returns the joint with the given id.
func (p *Pose) Joint(id string) (Joint, bool) {
	i, ok := p.index[id]
	if !ok {
		return Joint{}, false
	}
	return p.joints[i], true
}

// Position returns the coordinate of the joint with the given id.
func (p *Pose) Position(id string) (Vec2, bool) {
	i, ok := p.index[id]
	if !ok {
		return Vec2{}, false
	}
	return p.joints[i].Pos(), true
}

// Has reports whether a joint with the given id exists.
func (p *Pose) Has(id string) bool {
	_, ok := p.index[id]
	return ok
}

// SetJoint overwrites a joint's coordinate. It reports false, and changes
// nothing, when the joint does not exist.
func (p *Pose) SetJoint(id string, x, y float64) bool {
	i, ok := p.index[id]
	if !ok {
		return false
	}
	p.joints[i].X = x
	p.joints[i].Y = y
	return true
}

// AddJoint appends a joint, or replaces the existing joint with the same id.
func (p *Pose) AddJoint(j Joint) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[j.ID]; ok {
		p.joints[i] = j
		return
	}
	p.index[j.ID] = len(p.joints)
	p.joints = append(p.joints, j)
}

// RemoveJoint removes the joint and every bone that references it.
// Removing an unknown id is a no-op.
func (p *Pose) RemoveJoint(id string) {
	i, ok := p.index[id]
	if !ok {
		return
	}
	p.joints = append(p.joints[:i], p.joints[i+1:]...)
	delete(p.index, id)
	for k := i; k < len(p.joints); k++ {
		p.index[p.joints[k].ID] = k
	}

	kept := p.bones[:0]
	for _, b := range p.bones {
		if b.From != id && b.To != id {
			kept = append(kept, b)
		}
	}
	p.bones = kept
}

// AddBone appends a bone from one joint to another. Linking a joint to
// itself is ignored. The endpoints are not required to exist.
func (p *Pose) AddBone(from, to string) (Bone, bool) {
	if from == to {
		return Bone{}, false
	}
	b := Bone{ID: p.nextBoneID(), From: from, To: to}
	p.bones = append(p.bones, b)
	return b, true
}

// RemoveBone removes the bone with the given id.
func (p *Pose) RemoveBone(id string) bool {
	for i, b := range p.bones {
		if b.ID == id {
			p.bones = append(p.bones[:i], p.bones[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Pose) nextBoneID() string {
	for {
		p.boneSeq++
		id := "bone_" + strconv.Itoa(p.boneSeq)
		taken := false
		for _, b := range p.bones {
			if b.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

// Segments resolves every bone whose endpoints both exist. Dangling bones are
// skipped.
func (p *Pose) Segments() []Segment {
	segs := make([]Segment, 0, len(p.bones))
	for _, b := range p.bones {
		from, ok := p.Position(b.From)
		if !ok {
			continue
		}
		to, ok := p.Position(b.To)
		if !ok {
			continue
		}
		segs = append(segs, Segment{Bone: b, From: from, To: to})
	}
	return segs
}

// Clone returns a deep copy of the pose.
func (p *Pose) Clone() *Pose {
	c := &Pose{
		joints:     append([]Joint(nil), p.joints...),
		index:      make(map[string]int, len(p.index)),
		bones:      append([]Bone(nil), p.bones...),
		HeadRadius: p.HeadRadius,
		boneSeq:    p.boneSeq,
	}
	for id, i := range p.index {
		c.index[id] = i
	}
	return c
}

// CopyFrom overwrites p with the contents of src, reusing p's storage.
func (p *Pose) CopyFrom(src *Pose) {
	p.joints = append(p.joints[:0], src.joints...)
	if p.index == nil {
		p.index = make(map[string]int, len(src.index))
	} else {
		clear(p.index)
	}
	for id, i := range src.index {
		p.index[id] = i
	}
	p.bones = append(p.bones[:0], src.bones...)
	p.HeadRadius = src.HeadRadius
	p.boneSeq = src.boneSeq
}

// Bounds returns the axis-aligned box enclosing every joint. An empty pose
// has a zero Rect.
func (p *Pose) Bounds() Rect {
	if len(p.joints) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, j := range p.joints {
		minX = math.Min(minX, j.X)
		minY = math.Min(minY, j.Y)
		maxX = math.Max(maxX, j.X)
		maxY = math.Max(maxY, j.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Centroid returns the mean joint coordinate.
func (p *Pose) Centroid() Vec2 {
	if len(p.joints) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, j := range p.joints {
		sum = sum.Add(j.Pos())
	}
	return sum.Scale(1 / float64(len(p.joints)))
}

// CanonicalLengths measures every bone in the reference pose. Bones with a
// missing endpoint are skipped. Compute once per skeleton topology and reuse.
func CanonicalLengths(reference *Pose, bones []Bone) BoneLengths {
	lengths := make(BoneLengths, len(bones))
	for _, b := range bones {
		from, ok := reference.Position(b.From)
		if !ok {
			continue
		}
		to, ok := reference.Position(b.To)
		if !ok {
			continue
		}
		lengths[BonePair{Parent: b.From, Child: b.To}] = Dist(from, to)
	}
	return lengths
}
