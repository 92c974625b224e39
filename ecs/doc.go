// Package ecs bridges stickfall fall notifications and controllers into a
// [Donburi] world.
//
// [NewDonburiSink] publishes every FallEvent (reach-bottom, reach-middle,
// fall-complete, phase changes and frame writes) as a typed Donburi event.
// Subscribe to [FallEventType] in your ECS systems to receive them:
//
//	sink := ecs.NewDonburiSink(world)
//	controller.SetEventSink(sink)
//
// Controllers can also live on entities as a [Figure] component and be
// advanced together with [UpdateFigures].
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
