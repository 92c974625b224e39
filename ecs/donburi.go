package ecs

import (
	"github.com/phanxgames/stickfall"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// FallEventType is the Donburi event type for stickfall fall events.
var FallEventType = events.NewEventType[stickfall.FallEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on FallEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) stickfall.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitFallEvent(event stickfall.FallEvent) {
	FallEventType.Publish(s.world, event)
}

// Figure is the component data for a falling figure.
type Figure struct {
	Controller *stickfall.FallController
}

// FigureComponent attaches a Figure to an entity.
var FigureComponent = donburi.NewComponentType[Figure]()

var figureQuery = donburi.NewQuery(filter.Contains(FigureComponent))

// AddFigure creates an entity for c and routes its events into the world.
func AddFigure(world donburi.World, c *stickfall.FallController) donburi.Entity {
	e := world.Create(FigureComponent)
	FigureComponent.SetValue(world.Entry(e), Figure{Controller: c})
	c.SetEventSink(NewDonburiSink(world))
	return e
}

// UpdateFigures advances every figure in the world by dt seconds.
func UpdateFigures(world donburi.World, dt float32) {
	figureQuery.Each(world, func(entry *donburi.Entry) {
		if f := FigureComponent.Get(entry); f.Controller != nil {
			f.Controller.Update(dt)
		}
	})
}
