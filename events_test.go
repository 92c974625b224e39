package stickfall

import "testing"

func TestCallbackHandleRemove(t *testing.T) {
	var r handlerRegistry
	var a, b int
	ha := r.add(EventReachBottom, func(FallEvent) { a++ })
	r.add(EventReachBottom, func(FallEvent) { b++ })

	r.fire(FallEvent{Type: EventReachBottom})
	ha.Remove()
	ha.Remove() // second remove is harmless
	r.fire(FallEvent{Type: EventReachBottom})
	r.fire(FallEvent{Type: EventReachMiddle})

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want 1 and 2", a, b)
	}
}

func TestCallbackRemovingItselfWhileFiring(t *testing.T) {
	c := NewFallController(DefaultSequence(), nil, DefaultFallConfig(800, 600))
	var a, b, d int
	var ha CallbackHandle
	ha = c.OnPhaseChange(func(FallEvent) {
		a++
		ha.Remove()
	})
	c.OnPhaseChange(func(FallEvent) { b++ })
	c.OnPhaseChange(func(FallEvent) { d++ })

	c.Start()
	if a != 1 || b != 1 || d != 1 {
		t.Fatalf("after Start a=%d b=%d d=%d, want 1 each", a, b, d)
	}
	c.Reset()
	if a != 1 || b != 2 || d != 2 {
		t.Errorf("after Reset a=%d b=%d d=%d, want 1 2 2", a, b, d)
	}
}

func TestZeroCallbackHandleRemove(t *testing.T) {
	var h CallbackHandle
	h.Remove()
}

func TestEventAndPhaseNames(t *testing.T) {
	names := map[string]string{
		EventReachBottom.String():  "reach-bottom",
		EventReachMiddle.String():  "reach-middle",
		EventFallComplete.String(): "fall-complete",
		PhaseFinalFall.String():    "final-fall",
		Phase(99).String():         "unknown",
	}
	for got, want := range names {
		if got != want {
			t.Errorf("name %q, want %q", got, want)
		}
	}
}
