package stickfall

import (
	"embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed keyframes/*.yaml
var keyframeFS embed.FS

// Default subdivision counts used when a sequence file leaves them out.
const (
	DefaultBodySubdivisions = 20
	DefaultWingSubdivisions = 12
)

// Sequence is an immutable keyframe set with its precomputed dense tables.
// Body keys drive the joint buffer; wing keys drive the leading attachments.
// Both tables are sampled with the same progress value even when their key
// counts differ.
type Sequence struct {
	Name        string
	Constraints []Constraint

	bodyKeys []*Pose
	wingKeys [][]AttachmentTransform
	body     *FrameTable[*Pose]
	wings    *FrameTable[[]AttachmentTransform]
}

// NewSequence measures limb lengths on the first body key, conforms every
// key to them and builds both dense tables. Pass nil pairs to use LimbChain.
func NewSequence(name string, body []*Pose, wings [][]AttachmentTransform, bodyPerGap, wingPerGap int, pairs []BonePair) *Sequence {
	if pairs == nil {
		pairs = LimbChain
	}
	s := &Sequence{Name: name}
	if len(body) > 0 {
		s.Constraints = NewConstraints(body[0], pairs)
	}
	for _, p := range body {
		s.bodyKeys = append(s.bodyKeys, Solve(p, s.Constraints))
	}
	for _, w := range wings {
		s.wingKeys = append(s.wingKeys, append([]AttachmentTransform(nil), w...))
	}
	cs := s.Constraints
	s.body = NewFrameTable(s.bodyKeys, bodyPerGap, func(a, b *Pose, t float64) *Pose {
		return Interpolate(a, b, t, cs)
	})
	s.wings = NewFrameTable(s.wingKeys, wingPerGap, LerpTransforms)
	return s
}

// BodyKeys returns the conformed body keyframes.
func (s *Sequence) BodyKeys() []*Pose { return s.bodyKeys }

// WingKeys returns the wing keyframes.
func (s *Sequence) WingKeys() [][]AttachmentTransform { return s.wingKeys }

// BodyTable returns the dense body table.
func (s *Sequence) BodyTable() *FrameTable[*Pose] { return s.body }

// WingTable returns the dense wing table.
func (s *Sequence) WingTable() *FrameTable[[]AttachmentTransform] { return s.wings }

// sequenceFile is the YAML layout of a keyframe sequence.
type sequenceFile struct {
	Name             string                  `yaml:"name"`
	BodySubdivisions int                     `yaml:"bodySubdivisions"`
	WingSubdivisions int                     `yaml:"wingSubdivisions"`
	Constrain        [][2]string             `yaml:"constrain"`
	Body             []poseKey               `yaml:"body"`
	Wings            [][]AttachmentTransform `yaml:"wings"`
}

// poseKey is either a preset reference or an inline pose.
type poseKey struct {
	Preset     string  `yaml:"preset"`
	HeadRadius float64 `yaml:"headRadius"`
	Joints     []Joint `yaml:"joints"`
	Bones      []Bone  `yaml:"bones"`
}

func (k poseKey) pose() (*Pose, error) {
	if k.Preset == "" {
		return NewPose(k.Joints, k.Bones, k.HeadRadius), nil
	}
	p, ok := PresetByName(k.Preset)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", k.Preset)
	}
	pose := p.Pose()
	for _, j := range k.Joints {
		pose.AddJoint(j)
	}
	if k.HeadRadius > 0 {
		pose.HeadRadius = k.HeadRadius
	}
	return pose, nil
}

// ParseSequence decodes a YAML keyframe sequence.
func ParseSequence(data []byte) (*Sequence, error) {
	var f sequenceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("stickfall: parse sequence: %w", err)
	}
	if len(f.Body) == 0 {
		return nil, fmt.Errorf("stickfall: parse sequence %q: no body keyframes", f.Name)
	}
	body := make([]*Pose, 0, len(f.Body))
	for i, k := range f.Body {
		p, err := k.pose()
		if err != nil {
			return nil, fmt.Errorf("stickfall: parse sequence %q: body key %d: %w", f.Name, i, err)
		}
		body = append(body, p)
	}
	var pairs []BonePair
	for _, c := range f.Constrain {
		pairs = append(pairs, BonePair{Parent: c[0], Child: c[1]})
	}
	if f.BodySubdivisions == 0 {
		f.BodySubdivisions = DefaultBodySubdivisions
	}
	if f.WingSubdivisions == 0 {
		f.WingSubdivisions = DefaultWingSubdivisions
	}
	return NewSequence(f.Name, body, f.Wings, f.BodySubdivisions, f.WingSubdivisions, pairs), nil
}

// LoadSequence reads and decodes a YAML keyframe sequence.
func LoadSequence(r io.Reader) (*Sequence, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stickfall: read sequence: %w", err)
	}
	return ParseSequence(data)
}

// DefaultSequence returns the built-in fall sequence. Each call returns an
// independent Sequence.
func DefaultSequence() *Sequence {
	data, err := keyframeFS.ReadFile("keyframes/fall.yaml")
	if err != nil {
		panic(fmt.Sprintf("stickfall: embedded sequence: %v", err))
	}
	s, err := ParseSequence(data)
	if err != nil {
		panic(err)
	}
	return s
}
