package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Keyboard shortcuts.
const (
	KeyTrigger    = ebiten.KeySpace // start, or resume once settled
	KeyReset      = ebiten.KeyR
	KeyScreenshot = ebiten.KeyF12
	KeyFPS        = ebiten.KeyF3
	KeyDebug      = ebiten.KeyF4
)

// pointerState tracks the primary pointer between ticks.
type pointerState struct {
	down         bool
	x, y         float64
	touch        ebiten.TouchID
	touchActive  bool
	prevTouchIDs []ebiten.TouchID
}

// processInput feeds one pointer sample per tick. Injected events take
// priority over real devices.
func (s *Stage) processInput(readDevices bool) {
	if s.processInjectedInput() || !readDevices {
		return
	}
	s.processKeys()

	if x, y, pressed, ok := s.readTouch(); ok {
		s.processPointer(x, y, pressed)
		return
	}
	mx, my := ebiten.CursorPosition()
	s.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (s *Stage) processKeys() {
	if inpututil.IsKeyJustPressed(KeyTrigger) && s.editor == nil {
		s.Trigger()
	}
	if inpututil.IsKeyJustPressed(KeyReset) && s.controller != nil {
		s.controller.Reset()
	}
	if inpututil.IsKeyJustPressed(KeyScreenshot) {
		s.Screenshot(s.phase().String())
	}
	if inpututil.IsKeyJustPressed(KeyFPS) {
		s.showFPS = !s.showFPS
	}
	if inpututil.IsKeyJustPressed(KeyDebug) {
		s.debug = !s.debug
	}
}

// readTouch follows the first finger down until it lifts. It reports false
// when no touch is in progress and none ended this tick.
func (s *Stage) readTouch() (x, y float64, pressed, ok bool) {
	p := &s.pointer
	ids := ebiten.AppendTouchIDs(p.prevTouchIDs[:0])
	p.prevTouchIDs = ids

	if p.touchActive {
		for _, id := range ids {
			if id == p.touch {
				tx, ty := ebiten.TouchPosition(id)
				return float64(tx), float64(ty), true, true
			}
		}
		p.touchActive = false
		return p.x, p.y, false, true
	}
	if len(ids) == 0 {
		return 0, 0, false, false
	}
	p.touch = ids[0]
	p.touchActive = true
	tx, ty := ebiten.TouchPosition(p.touch)
	return float64(tx), float64(ty), true, true
}

// processPointer runs the press/move/release state machine for the primary
// pointer. In edit mode every sample goes to the editor, which applies its
// own drag dead zone. Otherwise a press triggers the fall.
func (s *Stage) processPointer(x, y float64, pressed bool) {
	p := &s.pointer
	wasDown := p.down
	p.down = pressed
	p.x, p.y = x, y

	if s.editor != nil {
		if wasDown && !pressed {
			s.editor.PointerMove(x, y) // the release sample may have moved
		}
		s.editor.Pointer(x, y, pressed)
		return
	}
	if pressed && !wasDown {
		s.Trigger()
	}
}
