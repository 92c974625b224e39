package stickfall

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Storage layout: the configuration blob and the character library live as
// two properties of one object.
const (
	storageObject = "stickfigure"
	configProp    = "config"
	libraryProp   = "characters"
)

// Store persists the configuration blob and the character library. A Store
// with a nil manager keeps nothing: loads return defaults and saves succeed
// without writing.
type Store struct {
	m *gdata.Manager
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("stickfall: open store: %w", err)
	}
	return &Store{m: m}, nil
}

// NewStore wraps an existing manager, which may be nil.
func NewStore(m *gdata.Manager) *Store {
	return &Store{m: m}
}

func (s *Store) load(prop string) ([]byte, bool, error) {
	if s == nil || s.m == nil || !s.m.ObjectPropExists(storageObject, prop) {
		return nil, false, nil
	}
	data, err := s.m.LoadObjectProp(storageObject, prop)
	if err != nil {
		return nil, false, fmt.Errorf("stickfall: load %s: %w", prop, err)
	}
	return data, true, nil
}

func (s *Store) save(prop string, data []byte) error {
	if s == nil || s.m == nil {
		return nil
	}
	if err := s.m.SaveObjectProp(storageObject, prop, data); err != nil {
		return fmt.Errorf("stickfall: save %s: %w", prop, err)
	}
	return nil
}

// LoadConfig returns the saved configuration. The second result reports
// whether one was found. Unreadable or corrupt data yields the default
// configuration and a logged warning.
func (s *Store) LoadConfig() (Config, bool) {
	data, ok, err := s.load(configProp)
	if err != nil {
		log.Printf("[Store] Warning: %v (using defaults)", err)
		return DefaultConfig(), false
	}
	if !ok {
		return DefaultConfig(), false
	}
	cfg, err := DecodeConfig(data)
	if err != nil {
		log.Printf("[Store] Warning: %v (using defaults)", err)
		return DefaultConfig(), false
	}
	return cfg, true
}

// SaveConfig writes the configuration blob.
func (s *Store) SaveConfig(cfg Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	return s.save(configProp, data)
}

// LoadLibrary returns the saved character library, or an empty one when
// nothing is stored or the data is corrupt.
func (s *Store) LoadLibrary() *Library {
	data, ok, err := s.load(libraryProp)
	if err != nil {
		log.Printf("[Store] Warning: %v (starting with an empty library)", err)
		return NewLibrary(nil)
	}
	if !ok {
		return NewLibrary(nil)
	}
	var chars []SavedCharacter
	if err := yaml.Unmarshal(data, &chars); err != nil {
		log.Printf("[Store] Warning: decode library: %v (starting with an empty library)", err)
		return NewLibrary(nil)
	}
	return NewLibrary(chars)
}

// SaveLibrary writes every character in lib.
func (s *Store) SaveLibrary(lib *Library) error {
	data, err := yaml.Marshal(lib.Characters())
	if err != nil {
		return fmt.Errorf("stickfall: encode library: %w", err)
	}
	return s.save(libraryProp, data)
}
