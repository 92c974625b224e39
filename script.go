package stickfall

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
	Until  string `json:"until,omitempty"`
}

// scriptFile is the top-level JSON structure for a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences controller commands across frames for demos, exports
// and automated runs. Supported actions:
//
//	start, resume, reset         call the matching controller method
//	wait {"frames": n}           idle for n frames
//	wait {"until": "settled"}    idle until the figure holds at the midpoint
//	wait {"until": "<phase>"}    idle until the controller is in that phase
//	snapshot {"label": "..."}    call OnSnapshot with the label
//
// Call Step once per frame before FallController.Update.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	until     string
	done      bool

	// OnSnapshot receives the label of every snapshot step.
	OnSnapshot func(label string)
}

var knownPhases = map[string]Phase{
	"idle":       PhaseIdle,
	"falling":    PhaseFalling,
	"waiting":    PhaseWaiting,
	"final-fall": PhaseFinalFall,
	"landed":     PhaseLanded,
}

// ParseScript parses a JSON script.
func ParseScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("stickfall: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("stickfall: parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "start", "resume", "reset", "snapshot":
		case "wait":
			if st.Until == "" || st.Until == "settled" {
				break
			}
			if _, ok := knownPhases[st.Until]; !ok {
				return nil, fmt.Errorf("stickfall: parse script: step %d: unknown phase %q", i, st.Until)
			}
		default:
			return nil, fmt.Errorf("stickfall: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool { return s.done }

func (s *Script) waiting(c *FallController) bool {
	switch s.until {
	case "":
		return false
	case "settled":
		if c.Settled() {
			s.until = ""
			return false
		}
	default:
		if c.Phase() == knownPhases[s.until] {
			s.until = ""
			return false
		}
	}
	return true
}

// Step advances the script by one frame.
func (s *Script) Step(c *FallController) {
	if s.done {
		return
	}
	if s.waiting(c) {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "start":
		c.Start()
	case "resume":
		c.Resume()
	case "reset":
		c.Reset()
	case "snapshot":
		if s.OnSnapshot != nil {
			s.OnSnapshot(st.Label)
		}
	case "wait":
		if st.Until != "" {
			s.until = st.Until
		} else if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && s.until == "" {
		s.done = true
	}
}
