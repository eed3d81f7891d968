// Package vignette is an animation-channel and scene-transition engine for a
// small space vignette built on [Ebitengine]: a warp-travel scene and a
// battle scene, joined by choreographed transitions.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	d, err := vignette.NewDirector(vignette.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	vignette.Run(d, vignette.RunConfig{
//		Title: "Vignette", Width: 960, Height: 540,
//		Draw:  func(screen *ebiten.Image, f *vignette.Frame) { /* ... */ },
//	})
//
// For full control, call [Director.Tick] yourself once per frame and render
// the returned [Frame]. Deliver key presses with [Director.KeyDown].
//
// # Channels
//
// A [Channel] interpolates one value (number, vector, quaternion, or color)
// from start to end, or through a list of waypoints, advancing a fixed timer
// step per tick through an easing curve from [gween]. Channels are grouped in
// a [ChannelSet] and ticked in declaration order:
//
//	set := vignette.NewChannelSet()
//	jump := vignette.Add(set, "jump", vignette.Number, vignette.ChannelConfig[float64]{
//		Start: 500, End: -5, Ease: vignette.EaseInCubic,
//	})
//	jump.Start()
//	for !jump.Finished() {
//		set.Tick()
//	}
//
// # Scenes
//
// The [Store] holds the current, next, and previous scene. A scene change is
// a request followed by a confirmation: pressing "b" requests the battle
// scene, the warp scene plays its jump, and only then confirms. The
// [Director] notices the confirmed change on the next tick and mounts the new
// scene.
//
// Scene tuning, key bindings, and the battle preset come from [Config],
// loadable from YAML with [LoadConfig] and hot-reloaded with [WatchConfig].
// ECS integration is available via the [Donburi] adapter in vignette/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package vignette
