package stickfall

import (
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Preset is a named skeleton the editor can load.
type Preset struct {
	Name       string  `yaml:"name"`
	HeadRadius float64 `yaml:"headRadius"`
	Joints     []Joint `yaml:"joints"`
	Bones      []Bone  `yaml:"bones"`
}

// Pose returns a fresh pose built from the preset tables.
func (p Preset) Pose() *Pose {
	return NewPose(p.Joints, p.Bones, p.HeadRadius)
}

// Preset names shipped in keyframes/presets.yaml.
const (
	PresetStanding = "Standing"
	PresetTumbling = "Tumbling"
	PresetFlailing = "Flailing"
)

var (
	presetsOnce sync.Once
	presets     []Preset
)

// Presets returns the built-in presets in display order. The returned slice
// is a copy; the joint and bone tables inside it must not be modified.
func Presets() []Preset {
	presetsOnce.Do(func() {
		data, err := keyframeFS.ReadFile("keyframes/presets.yaml")
		if err == nil {
			presets, err = ParsePresets(data)
		}
		if err != nil {
			panic(fmt.Sprintf("stickfall: embedded presets: %v", err))
		}
	})
	return append([]Preset(nil), presets...)
}

// ParsePresets decodes a YAML list of presets.
func ParsePresets(data []byte) ([]Preset, error) {
	var out []Preset
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("stickfall: parse presets: %w", err)
	}
	for i, p := range out {
		if p.Name == "" {
			return nil, fmt.Errorf("stickfall: parse presets: entry %d has no name", i)
		}
	}
	return out, nil
}

// PresetByName looks up a built-in preset, ignoring case.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// DefaultPose returns the standing skeleton used when nothing else is loaded.
func DefaultPose() *Pose {
	p, _ := PresetByName(PresetStanding)
	return p.Pose()
}
