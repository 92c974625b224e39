package stickfall

import "slices"

// FallEventType identifies a notification emitted by a FallController.
type FallEventType uint8

const (
	EventReachBottom  FallEventType = iota // phase-1 tween reached the bottom edge
	EventReachMiddle                       // entry tween settled at the midpoint
	EventFallComplete                      // fade-out finished; the figure has landed
	EventPhaseChange                       // the controller moved to another phase
	EventFrame                             // the pose buffer was rewritten this tick
)

// String returns a short lowercase name for the event type.
func (t FallEventType) String() string {
	switch t {
	case EventReachBottom:
		return "reach-bottom"
	case EventReachMiddle:
		return "reach-middle"
	case EventFallComplete:
		return "fall-complete"
	case EventPhaseChange:
		return "phase-change"
	case EventFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// FallEvent carries notification data.
type FallEvent struct {
	Type     FallEventType
	Phase    Phase
	Progress float64
	Revision uint64
}

// EventSink is the interface for optional ECS integration. When set on a
// FallController, every notification is forwarded to it after the callbacks.
type EventSink interface {
	EmitFallEvent(event FallEvent)
}

type fallHandler struct {
	id uint32
	fn func(FallEvent)
}

type handlerRegistry struct {
	byType [EventFrame + 1][]fallHandler
	nextID uint32
}

func (r *handlerRegistry) add(t FallEventType, fn func(FallEvent)) CallbackHandle {
	r.nextID++
	r.byType[t] = append(r.byType[t], fallHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: t}
}

func (r *handlerRegistry) fire(e FallEvent) {
	for _, h := range r.byType[e.Type] {
		h.fn(e)
	}
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event FallEventType
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// from inside a callback.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	list := h.reg.byType[h.event]
	for i, fh := range list {
		if fh.id == h.id {
			// Build a new slice: fire may be ranging over the old one.
			h.reg.byType[h.event] = slices.Concat(list[:i], list[i+1:])
			return
		}
	}
}
