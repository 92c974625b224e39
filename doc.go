// Package stickfall is a skeletal stick-figure animation core: a joint and
// bone pose model, bone-length constraints, keyframe interpolation, dense
// in-between tables, and a multi-phase fall timeline that pauses at a
// user-gated midpoint.
//
// The package never draws. Renderers poll [FallController.Frame] each tick
// and draw the joints, bones, head circle and resolved attachments. Three
// renderers ship with the module: stickfall/stage for [Ebitengine],
// stickfall/raster for offline images and animated WebP, and stickfall/term
// for terminals.
//
// # Quick start
//
//	seq := stickfall.DefaultSequence()
//	fall := stickfall.NewFallController(seq, nil, stickfall.DefaultFallConfig(800, 600))
//	fall.OnReachMiddle(func(stickfall.FallEvent) { fmt.Println("click to continue") })
//	fall.Start()
//
//	// every tick:
//	fall.Update(1.0 / 60)
//	frame := fall.Frame()
//
// # Timeline
//
// Start moves idle or landed to [PhaseFalling]. When the first drop reaches
// the bottom edge the figure re-enters from above and decelerates to the
// midpoint ([PhaseWaiting]), where it stays until [FallController.Resume].
// The final fall exits and fades out, then [PhaseLanded] freezes the pose
// until the next Start. Commands in the wrong phase are ignored.
//
// # Constraints
//
// Only limb chains are constrained ([LimbChain]). The head, neck and spine
// follow the authored keyframes exactly.
//
// Tweens use [gween]; keyframe and preset files are YAML; user data is kept
// with [gdata]. ECS integration lives in the stickfall/ecs module ([Donburi]).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [gdata]: https://github.com/quasilyte/gdata
// [Donburi]: https://github.com/yohamta/donburi
package stickfall
