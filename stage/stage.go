// Package stage hosts the fall and the pose editor in an Ebitengine window.
//
// A Stage owns a FallController, an optional Editor and an optional glass
// Shatter, reads mouse, touch and keyboard input, and draws frames with
// ebiten's vector package. Run opens the window and blocks.
//
//	st := stage.New(controller, stage.DefaultConfig(800, 600))
//	if err := stage.Run(st, stage.RunConfig{Title: "Fall", Width: 800, Height: 600}); err != nil {
//		log.Fatal(err)
//	}
package stage

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/stickfall"
)

// Config controls how a stage looks and behaves.
type Config struct {
	Width, Height int
	ClearColor    stickfall.Color
	Stroke        stickfall.Color
	// StrokeWidth is in pose units and is multiplied by the placement scale.
	StrokeWidth float32
	// ShatterDelay is how long after the figure leaves the bottom of the
	// screen the shatter triggers, in seconds.
	ShatterDelay float32
	// ScreenshotDir is where Screenshot writes PNGs.
	ScreenshotDir string
}

// DefaultConfig returns a dark stage of the given size.
func DefaultConfig(w, h int) Config {
	return Config{
		Width:         w,
		Height:        h,
		ClearColor:    stickfall.Color{R: 0.098, G: 0.098, B: 0.137, A: 1},
		Stroke:        stickfall.ColorWhite,
		StrokeWidth:   3,
		ShatterDelay:  0.4,
		ScreenshotDir: "screenshots",
	}
}

// Stage implements ebiten.Game.
type Stage struct {
	cfg        Config
	controller *stickfall.FallController
	editor     *stickfall.Editor
	shatter    *stickfall.Shatter
	script     *stickfall.Script
	images     *imageCache
	debug      bool

	showFPS bool
	fps     fpsCounter

	pointer     pointerState
	injectQueue []syntheticPointerEvent

	screenshotQueue []string

	shatterHandle stickfall.CallbackHandle
	updateFunc    func() error
	overlayFunc   func(screen *ebiten.Image)
}

// New creates a stage running c. c may be nil for an editor-only stage.
func New(c *stickfall.FallController, cfg Config) *Stage {
	return &Stage{
		cfg:        cfg,
		controller: c,
		images:     newImageCache(),
	}
}

// Config returns the stage configuration.
func (s *Stage) Config() Config { return s.cfg }

// Controller returns the fall controller, or nil.
func (s *Stage) Controller() *stickfall.FallController { return s.controller }

// SetEditor switches the stage into edit mode. Pointer input goes to e and
// the editor pose is drawn instead of the fall. Pass nil to return to the
// fall.
func (s *Stage) SetEditor(e *stickfall.Editor) { s.editor = e }

// Editor returns the active editor, or nil.
func (s *Stage) Editor() *stickfall.Editor { return s.editor }

// SetShatter attaches a glass shatter effect, triggered ShatterDelay seconds
// after the figure drops off the bottom of the screen.
func (s *Stage) SetShatter(sh *stickfall.Shatter) {
	s.shatterHandle.Remove()
	s.shatter = sh
	if sh == nil || s.controller == nil {
		return
	}
	s.shatterHandle = s.controller.OnReachBottom(func(stickfall.FallEvent) {
		sh.TriggerAfter(s.cfg.ShatterDelay)
	})
}

// SetScript drives the controller from a script, one step per tick.
func (s *Stage) SetScript(sc *stickfall.Script) { s.script = sc }

// SetUpdateFunc registers a callback run at the end of every Update. A
// non-nil error stops the game loop.
func (s *Stage) SetUpdateFunc(fn func() error) { s.updateFunc = fn }

// SetOverlayFunc registers a callback that draws over every frame, before
// the FPS overlay and screenshots.
func (s *Stage) SetOverlayFunc(fn func(screen *ebiten.Image)) { s.overlayFunc = fn }

// SetDebugMode enables per-frame timing output on stderr.
func (s *Stage) SetDebugMode(enabled bool) { s.debug = enabled }

// SetShowFPS toggles the FPS overlay.
func (s *Stage) SetShowFPS(show bool) { s.showFPS = show }

// Trigger resumes a settled figure, otherwise starts a new fall. Starting is
// ignored while a fall is running.
func (s *Stage) Trigger() {
	if s.controller == nil {
		return
	}
	if s.controller.Settled() {
		s.controller.Resume()
		return
	}
	s.controller.Start()
}

// Update advances input, the script, the controller and the shatter by one
// tick.
func (s *Stage) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	return s.step(dt, true)
}

// step is Update with an explicit dt. readDevices is false in tests.
func (s *Stage) step(dt float32, readDevices bool) error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.processInput(readDevices)
	if s.controller != nil {
		if s.script != nil {
			s.script.Step(s.controller)
		}
		s.controller.Update(dt)
	}
	if s.shatter != nil {
		s.shatter.Update(dt)
	}
	if s.showFPS {
		s.fps.update(dt)
	}

	if s.debug {
		s.debugLog(debugStats{updateTime: time.Since(t0), phase: s.phase()})
	}
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

func (s *Stage) phase() stickfall.Phase {
	if s.controller == nil {
		return stickfall.PhaseIdle
	}
	return s.controller.Phase()
}

// Draw renders the current frame.
func (s *Stage) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(s.cfg.ClearColor.RGBA())
	if s.shatter != nil {
		s.drawShatter(screen, s.shatter)
	}
	switch {
	case s.editor != nil:
		s.drawEditor(screen, s.editor)
	case s.controller != nil:
		s.drawFrame(screen, s.controller.Frame())
	}
	if s.overlayFunc != nil {
		s.overlayFunc(screen)
	}
	if s.showFPS {
		s.fps.draw(screen)
	}
	s.flushScreenshots(screen)

	if s.debug {
		s.debugLog(debugStats{drawTime: time.Since(t0), phase: s.phase(), images: s.images.Len()})
	}
}

// Layout returns the fixed logical screen size.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.cfg.Width, s.cfg.Height
}
