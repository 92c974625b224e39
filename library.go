package stickfall

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrCharacterNotFound is returned when an id is not in the library.
	ErrCharacterNotFound = errors.New("stickfall: character not found")
	// ErrNoCurrentCharacter is returned by UpdateCurrent when nothing is
	// loaded or saved yet.
	ErrNoCurrentCharacter = errors.New("stickfall: no current character")
)

// SavedCharacter is a named snapshot of a skeleton and its attachments.
type SavedCharacter struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Joints      []Joint      `json:"joints" yaml:"joints"`
	Bones       []Bone       `json:"bones" yaml:"bones"`
	HeadRadius  float64      `json:"headRadius" yaml:"headRadius"`
	Attachments []Attachment `json:"attachments" yaml:"attachments"`
	CreatedAt   int64        `json:"createdAt" yaml:"createdAt"` // unix milliseconds
}

// Pose rebuilds the character's skeleton.
func (c SavedCharacter) Pose() *Pose {
	return NewPose(c.Joints, c.Bones, c.HeadRadius)
}

func (c SavedCharacter) clone() SavedCharacter {
	c.Joints = slices.Clone(c.Joints)
	c.Bones = slices.Clone(c.Bones)
	c.Attachments = slices.Clone(c.Attachments)
	return c
}

// Library is an ordered collection of saved characters with a notion of the
// character currently being edited.
type Library struct {
	chars   []SavedCharacter
	current string

	// Now supplies timestamps for ids and CreatedAt. Nil means time.Now.
	Now func() time.Time
}

// NewLibrary returns a library holding copies of chars.
func NewLibrary(chars []SavedCharacter) *Library {
	l := &Library{}
	for _, c := range chars {
		l.chars = append(l.chars, c.clone())
	}
	return l
}

func (l *Library) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// newID returns "char_<unix ms>", bumping the timestamp past any id in use.
func (l *Library) newID(ms int64) string {
	for {
		id := "char_" + strconv.FormatInt(ms, 10)
		if l.index(id) < 0 {
			return id
		}
		ms++
	}
}

func (l *Library) index(id string) int {
	return slices.IndexFunc(l.chars, func(c SavedCharacter) bool { return c.ID == id })
}

// Len returns the number of saved characters.
func (l *Library) Len() int { return len(l.chars) }

// Characters returns copies of the saved characters in order.
func (l *Library) Characters() []SavedCharacter {
	out := make([]SavedCharacter, len(l.chars))
	for i, c := range l.chars {
		out[i] = c.clone()
	}
	return out
}

// At returns the character at index i.
func (l *Library) At(i int) (SavedCharacter, bool) {
	if i < 0 || i >= len(l.chars) {
		return SavedCharacter{}, false
	}
	return l.chars[i].clone(), true
}

// Current returns the id of the character being edited, or "".
func (l *Library) Current() string { return l.current }

// Detach forgets the current character without changing the library, so the
// next save creates a new entry.
func (l *Library) Detach() { l.current = "" }

// Save appends a new character built from pose and atts and makes it
// current. A blank name becomes "Character N".
func (l *Library) Save(name string, pose *Pose, atts []Attachment) SavedCharacter {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Character " + strconv.Itoa(len(l.chars)+1)
	}
	ms := l.now().UnixMilli()
	c := SavedCharacter{
		ID:          l.newID(ms),
		Name:        name,
		Joints:      pose.Joints(),
		Bones:       pose.Bones(),
		HeadRadius:  pose.HeadRadius,
		Attachments: slices.Clone(atts),
		CreatedAt:   ms,
	}
	l.chars = append(l.chars, c)
	l.current = c.ID
	return c.clone()
}

// Load returns the character and makes it current.
func (l *Library) Load(id string) (SavedCharacter, error) {
	i := l.index(id)
	if i < 0 {
		return SavedCharacter{}, ErrCharacterNotFound
	}
	l.current = id
	return l.chars[i].clone(), nil
}

// Last returns the most recently saved character without making it current.
func (l *Library) Last() (SavedCharacter, bool) {
	return l.At(len(l.chars) - 1)
}

// UpdateCurrent overwrites the current character's skeleton and
// attachments, keeping its id, name and creation time.
func (l *Library) UpdateCurrent(pose *Pose, atts []Attachment) error {
	if l.current == "" {
		return ErrNoCurrentCharacter
	}
	i := l.index(l.current)
	if i < 0 {
		return ErrCharacterNotFound
	}
	c := &l.chars[i]
	c.Joints = pose.Joints()
	c.Bones = pose.Bones()
	c.HeadRadius = pose.HeadRadius
	c.Attachments = slices.Clone(atts)
	return nil
}

// Delete removes a character. Deleting the current one detaches it.
func (l *Library) Delete(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.chars = slices.Delete(l.chars, i, i+1)
	if l.current == id {
		l.current = ""
	}
	return true
}

// Duplicate appends a copy named "<name> (copy)". The current character does
// not change.
func (l *Library) Duplicate(id string) (SavedCharacter, error) {
	i := l.index(id)
	if i < 0 {
		return SavedCharacter{}, ErrCharacterNotFound
	}
	ms := l.now().UnixMilli()
	c := l.chars[i].clone()
	c.ID = l.newID(ms)
	c.Name += " (copy)"
	c.CreatedAt = ms
	l.chars = append(l.chars, c)
	return c.clone(), nil
}

// Clear removes every character.
func (l *Library) Clear() {
	l.chars = nil
	l.current = ""
}

// Previous returns the character before the current one.
func (l *Library) Previous() (SavedCharacter, bool) {
	i := l.index(l.current)
	if l.current == "" || i <= 0 {
		return SavedCharacter{}, false
	}
	return l.chars[i-1].clone(), true
}

// Next returns the character after the current one.
func (l *Library) Next() (SavedCharacter, bool) {
	i := l.index(l.current)
	if l.current == "" || i < 0 {
		return SavedCharacter{}, false
	}
	return l.At(i + 1)
}

// DefaultPlaybackInterval is the time each saved character is shown.
const DefaultPlaybackInterval = 200 * time.Millisecond

// Playback flips through a library's characters at a fixed interval, like a
// flip book.
type Playback struct {
	lib      *Library
	Interval time.Duration
	index    int
	elapsed  time.Duration
	playing  bool
}

// NewPlayback returns a stopped playback over lib.
func NewPlayback(lib *Library) *Playback {
	return &Playback{lib: lib, Interval: DefaultPlaybackInterval}
}

// Toggle starts or stops playback. Starting rewinds to the first character.
// It reports false, and stays stopped, when the library is empty.
func (p *Playback) Toggle() bool {
	if p.playing {
		p.playing = false
		return true
	}
	if p.lib.Len() == 0 {
		return false
	}
	p.playing = true
	p.index = 0
	p.elapsed = 0
	return true
}

// Playing reports whether Update advances frames.
func (p *Playback) Playing() bool { return p.playing }

// Index returns the frame being shown.
func (p *Playback) Index() int { return p.index }

// Frame returns the character being shown.
func (p *Playback) Frame() (SavedCharacter, bool) { return p.lib.At(p.index) }

// Update advances playback by dt seconds.
func (p *Playback) Update(dt float32) {
	n := p.lib.Len()
	if !p.playing || n == 0 || p.Interval <= 0 {
		return
	}
	p.elapsed += time.Duration(float64(dt) * float64(time.Second))
	for p.elapsed >= p.Interval {
		p.elapsed -= p.Interval
		p.index = (p.index + 1) % n
	}
}
