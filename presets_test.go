package stickfall

import "testing"

func TestPresetTables(t *testing.T) {
	tests := []struct {
		name       string
		headRadius float64
		joints     int
		bones      int
		hasBone    string
	}{
		{PresetStanding, 20, 15, 13, "spine_upper"},
		{PresetTumbling, 35, 15, 14, "head_neck"},
		{PresetFlailing, 34, 16, 15, "chest_shoulder"},
	}
	presets := Presets()
	if len(presets) != len(tests) {
		t.Fatalf("presets = %d, want %d", len(presets), len(tests))
	}
	for i, tt := range tests {
		p := presets[i]
		if p.Name != tt.name || p.HeadRadius != tt.headRadius {
			t.Errorf("preset %d = %s/%v, want %s/%v", i, p.Name, p.HeadRadius, tt.name, tt.headRadius)
		}
		if len(p.Joints) != tt.joints || len(p.Bones) != tt.bones {
			t.Errorf("%s: %d joints %d bones, want %d and %d", p.Name, len(p.Joints), len(p.Bones), tt.joints, tt.bones)
		}
		found := false
		for _, b := range p.Bones {
			found = found || b.ID == tt.hasBone
		}
		if !found {
			t.Errorf("%s: missing bone %s", p.Name, tt.hasBone)
		}
	}
}

func TestPresetPoseIsACopy(t *testing.T) {
	p, ok := PresetByName("standing")
	if !ok {
		t.Fatal("lookup should ignore case")
	}
	pose := p.Pose()
	pose.SetJoint("head", 0, 0)
	pose.RemoveJoint("neck")

	again := DefaultPose()
	if got := mustPos(t, again, "head"); got != (Vec2{200, 80}) {
		t.Errorf("head = %v, want (200,80)", got)
	}
	if !again.Has("neck") {
		t.Error("preset lost a joint")
	}
}

func TestPresetByNameUnknown(t *testing.T) {
	if _, ok := PresetByName("Cartwheel"); ok {
		t.Error("unknown preset found")
	}
}

func TestParsePresetsRequiresName(t *testing.T) {
	if _, err := ParsePresets([]byte("- headRadius: 3\n")); err == nil {
		t.Error("expected error for unnamed preset")
	}
}
