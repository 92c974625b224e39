package stickfall

import "github.com/tanema/gween/ease"

// Phase is a state of the fall timeline.
type Phase uint8

const (
	PhaseIdle      Phase = iota // not started, or explicitly reset
	PhaseFalling                // phase 1: accelerating toward the bottom edge
	PhaseWaiting                // re-entry from the top and the hold at the midpoint
	PhaseFinalFall              // phase 2: exit off the bottom and fade out
	PhaseLanded                 // frozen until the next Start
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFalling:
		return "falling"
	case PhaseWaiting:
		return "waiting"
	case PhaseFinalFall:
		return "final-fall"
	case PhaseLanded:
		return "landed"
	default:
		return "unknown"
	}
}

// Active reports whether the phase animates the figure.
func (p Phase) Active() bool {
	return p == PhaseFalling || p == PhaseWaiting || p == PhaseFinalFall
}

// FallConfig holds the timings and destinations of a fall. Positions are in
// screen pixels and describe where the figure's pivot is placed.
type FallConfig struct {
	ScreenWidth  float64
	ScreenHeight float64

	// StartX and StartY place the figure when a fall starts.
	StartX, StartY float64
	// BottomY is the off-screen destination of both falling phases.
	BottomY float64
	// ReentryY is where the figure reappears above the top edge.
	ReentryY float64
	// MiddleY is where the figure settles while waiting.
	MiddleY float64

	FallDuration float32
	FallEase     ease.TweenFunc
	FallScale    float64

	EntryDuration float32
	EntryEase     ease.TweenFunc

	ExitDuration float32
	ExitEase     ease.TweenFunc
	ExitScale    float64

	FadeDuration float32
	FadeEase     ease.TweenFunc

	// ScrubDuration is how long the limb animation takes to play from the
	// first to the last dense frame while running.
	ScrubDuration float32
	// LimbStopLead pauses the limbs this many seconds before the entry tween
	// ends, so the limbs settle before the body does.
	LimbStopLead float32

	// HeadRadius, when positive, replaces the keyframe head radius, usually
	// with the one from the persisted Config.
	HeadRadius float64
}

// DefaultFallConfig returns the standard sequence for a screen of the given
// size: a 2.2s accelerating drop to 110% of the height, re-entry from above
// decelerating to the centre, then a 3s exit with a 0.5s fade.
func DefaultFallConfig(screenW, screenH float64) FallConfig {
	return FallConfig{
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
		StartX:       screenW / 2,
		StartY:       screenH * 0.25,
		BottomY:      screenH * 1.1,
		ReentryY:     -(screenH / 2) - 150,
		MiddleY:      screenH / 2,

		FallDuration: 2.2,
		FallEase:     ease.InCubic,
		FallScale:    1.4,

		EntryDuration: 1.8,
		EntryEase:     ease.OutCubic,

		ExitDuration: 3,
		ExitEase:     ease.InQuad,
		ExitScale:    1.8,

		FadeDuration: 0.5,
		FadeEase:     ease.InCubic,

		ScrubDuration: 6,
		LimbStopLead:  0.3,
	}
}

// Frame is what a renderer needs to draw one tick. Pose and Attachments are
// the controller's live buffers: read them before the next Update.
type Frame struct {
	Pose        *Pose
	Placement   Placement
	Pivot       Vec2
	Attachments []Attachment
	Revision    uint64
}

// Matrix maps pose coordinates to screen coordinates.
func (f Frame) Matrix() Affine { return f.Placement.Matrix(f.Pivot) }

// Layers resolves the frame's attachments against its pose.
func (f Frame) Layers() Layers { return ResolveLayers(f.Attachments, f.Pose) }

// FallController runs the fall timeline. It owns the joint buffer, the
// working attachment list and the figure placement. All methods must be
// called from the goroutine that calls Update.
type FallController struct {
	cfg   FallConfig
	seq   *Sequence
	body  *FrameTable[*Pose]
	wings *FrameTable[[]AttachmentTransform]

	pose        *Pose
	static      []Attachment
	attachments []Attachment
	placement   Placement
	pivot       Vec2

	phase    Phase
	scrub    *Scrub
	motion   *TweenGroup
	fade     *TweenGroup
	settled  bool
	revision uint64

	handlers handlerRegistry
	sink     EventSink
}

// NewFallController builds the dense tables for seq once and returns an idle
// controller showing the first body keyframe.
func NewFallController(seq *Sequence, attachments []Attachment, cfg FallConfig) *FallController {
	c := &FallController{
		cfg:    cfg,
		seq:    seq,
		body:   seq.BodyTable(),
		wings:  seq.WingTable(),
		static: append([]Attachment(nil), attachments...),
		scrub:  NewScrub(cfg.ScrubDuration),
	}
	if c.body.Len() > 0 {
		c.pose = c.body.Frame(0).Clone()
	} else {
		c.pose = &Pose{}
	}
	c.pivot = c.pose.Centroid()
	c.restore()
	return c
}

// restore puts the buffers and placement back to the start of a fall.
func (c *FallController) restore() {
	if c.body.Len() > 0 {
		c.pose.CopyFrom(c.body.Frame(0))
	}
	if c.cfg.HeadRadius > 0 {
		c.pose.HeadRadius = c.cfg.HeadRadius
	}
	c.attachments = append(c.attachments[:0], c.static...)
	c.placement = Placement{X: c.cfg.StartX, Y: c.cfg.StartY, Scale: 1, Opacity: 1}
	c.motion = nil
	c.fade = nil
	c.settled = false
}

// Config returns the controller's configuration.
func (c *FallController) Config() FallConfig { return c.cfg }

// Phase returns the current phase.
func (c *FallController) Phase() Phase { return c.phase }

// Settled reports whether the figure is holding at the midpoint and will
// accept Resume.
func (c *FallController) Settled() bool { return c.phase == PhaseWaiting && c.settled }

// Progress returns the shared scrub value used to sample both frame tables.
func (c *FallController) Progress() float64 { return c.scrub.Progress() }

// Revision counts writes to the joint buffer. It does not change while
// waiting at the midpoint or after landing.
func (c *FallController) Revision() uint64 { return c.revision }

// Placement returns the figure's current screen transform.
func (c *FallController) Placement() Placement { return c.placement }

// Pose returns the live joint buffer.
func (c *FallController) Pose() *Pose { return c.pose }

// Frame returns a renderable view of the current state.
func (c *FallController) Frame() Frame {
	return Frame{
		Pose:        c.pose,
		Placement:   c.placement,
		Pivot:       c.pivot,
		Attachments: c.attachments,
		Revision:    c.revision,
	}
}

// SetAttachments replaces the static attachment list. The working list is
// refreshed immediately unless a fall is in progress, in which case it picks
// up the change on the next Start or Reset.
func (c *FallController) SetAttachments(atts []Attachment) {
	c.static = append(c.static[:0], atts...)
	if !c.phase.Active() {
		c.attachments = append(c.attachments[:0], c.static...)
	}
}

// SetEventSink forwards every notification to sink. Pass nil to detach.
func (c *FallController) SetEventSink(sink EventSink) { c.sink = sink }

// OnReachBottom registers fn to run when phase 1 reaches the bottom edge.
func (c *FallController) OnReachBottom(fn func(FallEvent)) CallbackHandle {
	return c.handlers.add(EventReachBottom, fn)
}

// OnReachMiddle registers fn to run when the figure settles at the midpoint.
func (c *FallController) OnReachMiddle(fn func(FallEvent)) CallbackHandle {
	return c.handlers.add(EventReachMiddle, fn)
}

// OnFallComplete registers fn to run when the fade-out finishes.
func (c *FallController) OnFallComplete(fn func(FallEvent)) CallbackHandle {
	return c.handlers.add(EventFallComplete, fn)
}

// OnPhaseChange registers fn to run on every phase transition.
func (c *FallController) OnPhaseChange(fn func(FallEvent)) CallbackHandle {
	return c.handlers.add(EventPhaseChange, fn)
}

// OnFrame registers fn to run after each write to the joint buffer.
func (c *FallController) OnFrame(fn func(FallEvent)) CallbackHandle {
	return c.handlers.add(EventFrame, fn)
}

func (c *FallController) emit(t FallEventType) {
	e := FallEvent{Type: t, Phase: c.phase, Progress: c.scrub.Progress(), Revision: c.revision}
	c.handlers.fire(e)
	if c.sink != nil {
		c.sink.EmitFallEvent(e)
	}
}

func (c *FallController) setPhase(p Phase) {
	if c.phase == p {
		return
	}
	c.phase = p
	c.emit(EventPhaseChange)
}

// Start begins a fall from idle or landed. It is ignored while a fall is in
// progress.
func (c *FallController) Start() {
	if c.phase.Active() {
		return
	}
	c.restore()
	c.motion = TweenGroupOf(
		c.cfg.FallDuration, c.cfg.FallEase,
		FieldTo(&c.placement.Y, c.cfg.BottomY),
		FieldTo(&c.placement.Scale, c.cfg.FallScale),
	)
	c.scrub.Play()
	c.setPhase(PhaseFalling)
	c.writeFrame()
}

// Resume starts the final fall. It only has an effect once the figure has
// settled at the midpoint; the limb scrub continues from where it paused.
func (c *FallController) Resume() {
	if !c.Settled() {
		return
	}
	c.settled = false
	c.motion = TweenGroupOf(
		c.cfg.ExitDuration, c.cfg.ExitEase,
		FieldTo(&c.placement.Y, c.cfg.BottomY),
		FieldTo(&c.placement.Scale, c.cfg.ExitScale),
	)
	c.fade = nil
	c.scrub.Resume()
	c.setPhase(PhaseFinalFall)
}

// Reset abandons any fall and returns to idle at the start pose.
func (c *FallController) Reset() {
	c.scrub.Play()
	c.scrub.Pause()
	c.restore()
	c.revision++
	c.emitFrame()
	c.setPhase(PhaseIdle)
}

// Update advances the timeline by dt seconds.
func (c *FallController) Update(dt float32) {
	switch c.phase {
	case PhaseFalling:
		c.motion.Update(dt)
		c.advance(dt)
		if c.motion.Done {
			c.reachBottom()
		}
	case PhaseWaiting:
		if c.settled {
			return
		}
		c.motion.Update(dt)
		if c.scrub.Running() && c.motion.Remaining() <= c.cfg.LimbStopLead {
			c.scrub.Pause()
		}
		c.advance(dt)
		if c.motion.Done {
			c.scrub.Pause()
			c.settled = true
			c.emit(EventReachMiddle)
		}
	case PhaseFinalFall:
		if c.fade == nil {
			c.motion.Update(dt)
			if c.motion.Done {
				c.fade = TweenOpacity(&c.placement, 0, c.cfg.FadeDuration, c.cfg.FadeEase)
			}
		} else {
			c.fade.Update(dt)
		}
		c.advance(dt)
		if c.fade != nil && c.fade.Done {
			c.land()
		}
	}
}

func (c *FallController) reachBottom() {
	c.scrub.Pause()
	c.placement = Placement{X: c.cfg.StartX, Y: c.cfg.ReentryY, Scale: 1, Opacity: 1}
	c.motion = TweenPosition(&c.placement, c.cfg.StartX, c.cfg.MiddleY, c.cfg.EntryDuration, c.cfg.EntryEase)
	c.scrub.Resume()
	c.setPhase(PhaseWaiting)
	c.emit(EventReachBottom)
}

func (c *FallController) land() {
	c.scrub.Pause()
	c.setPhase(PhaseLanded)
	c.emit(EventFallComplete)
}

// advance steps the scrub and, when it moved, rewrites the buffers from the
// frame tables.
func (c *FallController) advance(dt float32) {
	if !c.scrub.Update(dt) {
		return
	}
	c.writeFrame()
}

func (c *FallController) writeFrame() {
	progress := c.scrub.Progress()
	switch c.body.Len() {
	case 0:
	case 1:
		c.pose.CopyFrom(c.body.Frame(0))
	default:
		i, frac := FrameIndex(progress, c.body.Len())
		InterpolateInto(c.pose, c.body.Frame(i), c.body.Frame(i+1), frac, c.seq.Constraints)
	}
	if c.cfg.HeadRadius > 0 {
		c.pose.HeadRadius = c.cfg.HeadRadius
	}
	if wing, ok := c.wings.Sample(progress); ok {
		ApplyWingFrame(c.attachments, wing)
	}
	c.revision++
	c.emitFrame()
}

func (c *FallController) emitFrame() { c.emit(EventFrame) }
