package stickfall

import (
	"math"
	"strings"
	"testing"
)

func TestDefaultSequenceTables(t *testing.T) {
	seq := DefaultSequence()
	if len(seq.BodyKeys()) != 3 {
		t.Fatalf("body keys = %d, want 3", len(seq.BodyKeys()))
	}
	if len(seq.WingKeys()) != 5 {
		t.Fatalf("wing keys = %d, want 5", len(seq.WingKeys()))
	}
	if n := seq.BodyTable().Len(); n != 2*DefaultBodySubdivisions+1 {
		t.Errorf("body table = %d frames", n)
	}
	if n := seq.WingTable().Len(); n != 4*DefaultWingSubdivisions+1 {
		t.Errorf("wing table = %d frames", n)
	}
	if len(seq.Constraints) != len(LimbChain) {
		t.Errorf("constraints = %d, want %d", len(seq.Constraints), len(LimbChain))
	}
}

func TestSequenceKeysConformToFirstKey(t *testing.T) {
	seq := DefaultSequence()
	for i, key := range seq.BodyKeys() {
		for _, c := range seq.Constraints {
			d := Dist(mustPos(t, key, c.Parent), mustPos(t, key, c.Child))
			if math.Abs(d-c.Length) > ConstraintEpsilon {
				t.Errorf("key %d %s->%s = %f, want %f", i, c.Parent, c.Child, d, c.Length)
			}
		}
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	a := DefaultSequence()
	b := DefaultSequence()
	a.BodyKeys()[0].SetJoint("head", -1000, -1000)
	if got := mustPos(t, b.BodyKeys()[0], "head"); got.X == -1000 {
		t.Error("sequences share keyframe storage")
	}
}

func TestParseSequenceInlineKeys(t *testing.T) {
	src := `
name: swing
bodySubdivisions: 2
constrain: [[a, b]]
body:
  - joints: [{id: a, x: 0, y: 0}, {id: b, x: 0, y: 10}]
  - joints: [{id: a, x: 0, y: 0}, {id: b, x: 0, y: 30}]
    headRadius: 8
`
	seq, err := ParseSequence([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if seq.Name != "swing" || seq.BodyTable().Len() != 3 {
		t.Fatalf("name %q, frames %d", seq.Name, seq.BodyTable().Len())
	}
	// The second key is conformed to the first key's length of 10.
	assertVec(t, "b", mustPos(t, seq.BodyKeys()[1], "b"), Vec2{0, 10})
	if seq.WingTable().Len() != 0 {
		t.Errorf("wing table = %d, want empty", seq.WingTable().Len())
	}
}

func TestParseSequenceErrors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":       "body: [",
		"no body":        "name: empty\n",
		"unknown preset": "body:\n  - preset: Cartwheel\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSequence([]byte(src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "stickfall: ") {
				t.Errorf("error %q lacks package prefix", err)
			}
		})
	}
}

func TestLoadSequenceFromReader(t *testing.T) {
	seq, err := LoadSequence(strings.NewReader("body:\n  - preset: standing\n  - preset: flailing\n"))
	if err != nil {
		t.Fatal(err)
	}
	if seq.BodyTable().Len() != DefaultBodySubdivisions+1 {
		t.Errorf("frames = %d", seq.BodyTable().Len())
	}
}
