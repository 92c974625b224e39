package stickfall

import (
	"encoding/json"
	"fmt"
)

// DefaultHeadRadius is the standing preset's head radius.
const DefaultHeadRadius = 20

// Config is the persisted editor configuration: the attachment list and the
// head radius.
type Config struct {
	Attachments []Attachment `json:"attachments"`
	HeadRadius  float64      `json:"headRadius"`
}

// DefaultConfig returns an empty configuration with the default head radius.
func DefaultConfig() Config {
	return Config{HeadRadius: DefaultHeadRadius}
}

// storedAttachment mirrors Attachment with optional numeric fields so that
// absent values can be told apart from zero.
type storedAttachment struct {
	ID        string   `json:"id"`
	JointID   string   `json:"jointId"`
	ImageData string   `json:"imageData"`
	OffsetX   float64  `json:"offsetX"`
	OffsetY   float64  `json:"offsetY"`
	Scale     *float64 `json:"scale"`
	Rotation  float64  `json:"rotation"`
	RotationX float64  `json:"rotationX"`
	RotationY float64  `json:"rotationY"`
	ZIndex    int      `json:"zIndex"`
}

type storedConfig struct {
	Attachments []storedAttachment `json:"attachments"`
	HeadRadius  *float64           `json:"headRadius"`
}

// DecodeConfig parses a configuration blob. Missing rotation fields default
// to 0, a missing scale to 1 and a missing head radius to the default.
func DecodeConfig(data []byte) (Config, error) {
	var raw storedConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultConfig(), fmt.Errorf("stickfall: decode config: %w", err)
	}
	cfg := DefaultConfig()
	if raw.HeadRadius != nil {
		cfg.HeadRadius = *raw.HeadRadius
	}
	for _, s := range raw.Attachments {
		a := Attachment{
			ID:        s.ID,
			JointID:   s.JointID,
			ImageData: s.ImageData,
			OffsetX:   s.OffsetX,
			OffsetY:   s.OffsetY,
			Scale:     1,
			Rotation:  s.Rotation,
			RotationX: s.RotationX,
			RotationY: s.RotationY,
			ZIndex:    s.ZIndex,
		}
		if s.Scale != nil {
			a.Scale = *s.Scale
		}
		cfg.Attachments = append(cfg.Attachments, a)
	}
	return cfg, nil
}

// ParseConfig is DecodeConfig that fails closed: malformed input yields the
// default configuration.
func ParseConfig(data []byte) Config {
	cfg, err := DecodeConfig(data)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Marshal encodes the configuration in its persisted JSON form.
func (c Config) Marshal() ([]byte, error) {
	if c.Attachments == nil {
		c.Attachments = []Attachment{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("stickfall: encode config: %w", err)
	}
	return data, nil
}
