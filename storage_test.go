package stickfall

import (
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	m, err := gdata.Open(gdata.Config{AppName: "stickfall_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestStoreConfigRoundTrip(t *testing.T) {
	s := NewStore(openTestManager(t))

	if cfg, found := s.LoadConfig(); found || cfg.HeadRadius != DefaultHeadRadius {
		t.Fatalf("fresh store: %+v found=%v", cfg, found)
	}

	want := Config{HeadRadius: 26, Attachments: []Attachment{{ID: "a", JointID: "hand_r", Scale: 2, ZIndex: 3}}}
	if err := s.SaveConfig(want); err != nil {
		t.Fatal(err)
	}
	got, found := s.LoadConfig()
	if !found {
		t.Fatal("saved config not found")
	}
	if got.HeadRadius != 26 || len(got.Attachments) != 1 || got.Attachments[0] != want.Attachments[0] {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestStoreCorruptConfigFallsBack(t *testing.T) {
	m := openTestManager(t)
	if err := m.SaveObjectProp(storageObject, configProp, []byte("{oops")); err != nil {
		t.Fatal(err)
	}
	cfg, found := NewStore(m).LoadConfig()
	if found || cfg.HeadRadius != DefaultHeadRadius || len(cfg.Attachments) != 0 {
		t.Errorf("corrupt config gave %+v found=%v", cfg, found)
	}
}

func TestStoreLibraryRoundTrip(t *testing.T) {
	s := NewStore(openTestManager(t))
	if s.LoadLibrary().Len() != 0 {
		t.Fatal("fresh store should have an empty library")
	}

	lib := NewLibrary(nil)
	lib.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	lib.Save("Hero", DefaultPose(), []Attachment{{ID: "cape", JointID: "neck", Scale: 1}})
	lib.Save("", DefaultPose(), nil)
	if err := s.SaveLibrary(lib); err != nil {
		t.Fatal(err)
	}

	back := s.LoadLibrary()
	if back.Len() != 2 {
		t.Fatalf("loaded %d characters, want 2", back.Len())
	}
	c, _ := back.At(0)
	if c.Name != "Hero" || c.CreatedAt != 1700000000000 || len(c.Joints) != 15 || c.Attachments[0].ID != "cape" {
		t.Errorf("character 0 = %+v", c)
	}
	if c2, _ := back.At(1); c2.Name != "Character 2" {
		t.Errorf("character 1 name = %q", c2.Name)
	}
}

func TestStoreCorruptLibraryFallsBack(t *testing.T) {
	m := openTestManager(t)
	if err := m.SaveObjectProp(storageObject, libraryProp, []byte(":\n\t- [")); err != nil {
		t.Fatal(err)
	}
	if n := NewStore(m).LoadLibrary().Len(); n != 0 {
		t.Errorf("corrupt library loaded %d characters", n)
	}
}

func TestNilManagerStore(t *testing.T) {
	s := NewStore(nil)
	if err := s.SaveConfig(Config{HeadRadius: 50}); err != nil {
		t.Errorf("SaveConfig: %v", err)
	}
	if cfg, found := s.LoadConfig(); found || cfg.HeadRadius != DefaultHeadRadius {
		t.Errorf("nil store loaded %+v found=%v", cfg, found)
	}
	if err := s.SaveLibrary(NewLibrary(nil)); err != nil {
		t.Errorf("SaveLibrary: %v", err)
	}
}
