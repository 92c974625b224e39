package stickfall

import (
	"math"
	"slices"
	"strconv"
	"time"
)

const (
	// JointHitRadius is how close, in pose units, a pointer must be to grab a
	// joint.
	JointHitRadius = 10.0
	// defaultDragDeadZone keeps a click that selects a joint from nudging it.
	defaultDragDeadZone = 4.0
	// newJointX and newJointY place joints created by AddJoint.
	newJointX, newJointY = 200, 200
	// defaultAttachJoint is the joint new attachments bind to.
	defaultAttachJoint = "shoulder_l"
)

// Editor is the interactive skeleton editor: joint selection and dragging,
// bone linking, joint and attachment management. It is driven by pointer
// samples in pose coordinates and never draws anything itself.
type Editor struct {
	pose        *Pose
	attachments []Attachment

	selected    string
	selectedAtt string
	addingBone  string
	attachTo    string

	down     bool
	dragging bool
	startX   float64
	startY   float64
	held     string // joint under the pointer at press time
	locked   []Constraint

	// LockBones re-applies the limb constraints, measured when a drag
	// starts, after every drag step.
	LockBones bool
	// DragDeadZone is the distance the pointer must travel before a press
	// becomes a drag.
	DragDeadZone float64
	// Now supplies timestamps for generated ids. Nil means time.Now.
	Now func() time.Time
}

// NewEditor edits a copy of pose. A nil pose starts from the standing preset.
func NewEditor(pose *Pose) *Editor {
	if pose == nil {
		pose = DefaultPose()
	} else {
		pose = pose.Clone()
	}
	return &Editor{
		pose:         pose,
		attachTo:     defaultAttachJoint,
		DragDeadZone: defaultDragDeadZone,
	}
}

// Pose returns the pose being edited.
func (e *Editor) Pose() *Pose { return e.pose }

// Attachments returns the attachment list. The slice is owned by the editor.
func (e *Editor) Attachments() []Attachment { return e.attachments }

// Selected returns the selected joint id, or "".
func (e *Editor) Selected() string { return e.selected }

// SelectedAttachment returns the selected attachment id, or "".
func (e *Editor) SelectedAttachment() string { return e.selectedAtt }

// AddingBone returns the joint a pending bone starts from, or "".
func (e *Editor) AddingBone() string { return e.addingBone }

// Dragging reports whether a joint is being dragged.
func (e *Editor) Dragging() bool { return e.dragging }

func (e *Editor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// HitTest returns the joint closest to (x, y) within JointHitRadius. Later
// joints win ties, matching draw order.
func (e *Editor) HitTest(x, y float64) (string, bool) {
	best, bestD := "", JointHitRadius
	for _, j := range e.pose.joints {
		d := math.Hypot(j.X-x, j.Y-y)
		if d <= bestD {
			best, bestD = j.ID, d
		}
	}
	return best, best != ""
}

// Pointer feeds one pointer sample. It runs press, move and release from
// the pressed flag and the previous sample.
func (e *Editor) Pointer(x, y float64, pressed bool) {
	switch {
	case pressed && !e.down:
		e.PointerDown(x, y)
	case pressed && e.down:
		e.PointerMove(x, y)
	case !pressed && e.down:
		e.PointerUp()
	}
}

// PointerDown handles a press. In add-bone mode a press on a joint completes
// the bone (a press on the starting joint cancels it); otherwise the joint
// under the pointer is selected and may be dragged.
func (e *Editor) PointerDown(x, y float64) {
	e.down = true
	e.dragging = false
	e.startX, e.startY = x, y
	id, hit := e.HitTest(x, y)
	e.held = id
	if !hit {
		return
	}
	if e.addingBone != "" {
		if e.addingBone != id {
			e.pose.AddBone(e.addingBone, id)
		}
		e.addingBone = ""
		e.held = ""
		return
	}
	e.selected = id
}

// PointerMove drags the held joint once the pointer leaves the dead zone.
// Coordinates are rounded to whole units.
func (e *Editor) PointerMove(x, y float64) {
	if !e.down || e.held == "" {
		return
	}
	if !e.dragging {
		if math.Hypot(x-e.startX, y-e.startY) <= e.DragDeadZone {
			return
		}
		e.dragging = true
		if e.LockBones {
			e.locked = NewConstraints(e.pose, LimbChain)
		}
	}
	e.pose.SetJoint(e.held, math.Round(x), math.Round(y))
	if e.LockBones {
		ApplyConstraints(e.pose, e.locked)
	}
}

// PointerUp ends a press or drag.
func (e *Editor) PointerUp() {
	e.down = false
	e.dragging = false
	e.held = ""
	e.locked = nil
}

// Select selects a joint by id; "" clears the selection.
func (e *Editor) Select(id string) {
	if id == "" || e.pose.Has(id) {
		e.selected = id
	}
}

// BeginBone enters add-bone mode starting at from.
func (e *Editor) BeginBone(from string) {
	if e.pose.Has(from) {
		e.addingBone = from
	}
}

// CancelBone leaves add-bone mode.
func (e *Editor) CancelBone() { e.addingBone = "" }

// AddJoint creates a joint at the default spot named "Joint N".
func (e *Editor) AddJoint() Joint {
	ms := e.now().UnixMilli()
	id := "joint_" + strconv.FormatInt(ms, 10)
	for e.pose.Has(id) {
		ms++
		id = "joint_" + strconv.FormatInt(ms, 10)
	}
	j := Joint{ID: id, X: newJointX, Y: newJointY, Name: "Joint " + strconv.Itoa(e.pose.Len()+1)}
	e.pose.AddJoint(j)
	return j
}

// RenameJoint changes a joint's display name.
func (e *Editor) RenameJoint(id, name string) bool {
	i, ok := e.pose.index[id]
	if !ok {
		return false
	}
	e.pose.joints[i].Name = name
	return true
}

// DeleteJoint removes a joint and its bones and clears the selection.
func (e *Editor) DeleteJoint(id string) {
	e.pose.RemoveJoint(id)
	e.selected = ""
	if e.addingBone == id {
		e.addingBone = ""
	}
}

// DeleteBone removes a bone by id.
func (e *Editor) DeleteBone(id string) bool { return e.pose.RemoveBone(id) }

// SetHeadRadius sets the head circle radius.
func (e *Editor) SetHeadRadius(r float64) { e.pose.HeadRadius = r }

// LoadPreset replaces the skeleton with a preset's. Attachments stay.
func (e *Editor) LoadPreset(p Preset) {
	e.pose = p.Pose()
	e.selected = ""
	e.addingBone = ""
}

// ResetToDefault loads the standing preset.
func (e *Editor) ResetToDefault() {
	p, _ := PresetByName(PresetStanding)
	e.LoadPreset(p)
}

// LoadCharacter replaces the skeleton and attachments with a saved
// character's.
func (e *Editor) LoadCharacter(c SavedCharacter) {
	e.pose = c.Pose()
	e.attachments = slices.Clone(c.Attachments)
	e.selected = ""
	e.selectedAtt = ""
	e.addingBone = ""
}

// AttachTo returns the joint new attachments bind to.
func (e *Editor) AttachTo() string { return e.attachTo }

// SetAttachTo changes the joint new attachments bind to.
func (e *Editor) SetAttachTo(jointID string) { e.attachTo = jointID }

// AddAttachment binds an image to the attach-to joint, behind the skeleton,
// and selects it.
func (e *Editor) AddAttachment(imageData string) Attachment {
	ms := e.now().UnixMilli()
	id := "attachment_" + strconv.FormatInt(ms, 10)
	for e.attachmentIndex(id) >= 0 {
		ms++
		id = "attachment_" + strconv.FormatInt(ms, 10)
	}
	a := Attachment{
		ID:        id,
		JointID:   e.attachTo,
		ImageData: imageData,
		Scale:     1,
		ZIndex:    -1,
	}
	e.attachments = append(e.attachments, a)
	e.selectedAtt = id
	return a
}

func (e *Editor) attachmentIndex(id string) int {
	return slices.IndexFunc(e.attachments, func(a Attachment) bool { return a.ID == id })
}

// UpdateAttachment applies fn to the attachment with the given id. The id
// itself cannot be changed.
func (e *Editor) UpdateAttachment(id string, fn func(*Attachment)) bool {
	i := e.attachmentIndex(id)
	if i < 0 {
		return false
	}
	fn(&e.attachments[i])
	e.attachments[i].ID = id
	return true
}

// SelectAttachment selects an attachment by id; "" clears it.
func (e *Editor) SelectAttachment(id string) {
	if id == "" || e.attachmentIndex(id) >= 0 {
		e.selectedAtt = id
	}
}

// DeleteAttachment removes an attachment, clearing the selection if it was
// selected.
func (e *Editor) DeleteAttachment(id string) bool {
	i := e.attachmentIndex(id)
	if i < 0 {
		return false
	}
	e.attachments = slices.Delete(e.attachments, i, i+1)
	if e.selectedAtt == id {
		e.selectedAtt = ""
	}
	return true
}

// Config returns the persisted form of the editor state.
func (e *Editor) Config() Config {
	return Config{Attachments: slices.Clone(e.attachments), HeadRadius: e.pose.HeadRadius}
}

// ApplyConfig restores attachments and head radius from a saved config.
func (e *Editor) ApplyConfig(cfg Config) {
	e.attachments = slices.Clone(cfg.Attachments)
	if cfg.HeadRadius > 0 {
		e.pose.HeadRadius = cfg.HeadRadius
	}
	e.selectedAtt = ""
}
