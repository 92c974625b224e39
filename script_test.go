package stickfall

import "testing"

func TestParseScriptErrors(t *testing.T) {
	tests := map[string]string{
		"bad json":       `{`,
		"no steps":       `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "jump"}]}`,
		"unknown phase":  `{"steps": [{"action": "wait", "until": "flying"}]}`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseScript([]byte(src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScriptDrivesFullFall(t *testing.T) {
	s, err := ParseScript([]byte(`{"steps": [
		{"action": "start"},
		{"action": "wait", "until": "settled"},
		{"action": "snapshot", "label": "mid"},
		{"action": "wait", "frames": 30},
		{"action": "resume"},
		{"action": "wait", "until": "landed"},
		{"action": "snapshot", "label": "end"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	c := NewFallController(DefaultSequence(), nil, DefaultFallConfig(640, 480))

	var labels []string
	var phases []Phase
	s.OnSnapshot = func(label string) {
		labels = append(labels, label)
		phases = append(phases, c.Phase())
	}

	for range 5000 {
		if s.Done() {
			break
		}
		s.Step(c)
		c.Update(tick)
	}
	if !s.Done() {
		t.Fatalf("script did not finish, phase %v", c.Phase())
	}
	if len(labels) != 2 || labels[0] != "mid" || labels[1] != "end" {
		t.Fatalf("labels = %v", labels)
	}
	if phases[0] != PhaseWaiting || phases[1] != PhaseLanded {
		t.Errorf("phases at snapshots = %v", phases)
	}
}

func TestScriptWaitFrames(t *testing.T) {
	s, err := ParseScript([]byte(`{"steps": [{"action": "wait", "frames": 3}, {"action": "start"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	c := NewFallController(DefaultSequence(), nil, DefaultFallConfig(640, 480))
	for i := range 3 {
		s.Step(c)
		if c.Phase() != PhaseIdle {
			t.Fatalf("started early at frame %d", i)
		}
	}
	s.Step(c)
	if c.Phase() != PhaseFalling || !s.Done() {
		t.Errorf("phase %v done %v", c.Phase(), s.Done())
	}
}
