// Package ecs provides ECS adapters for vignette's frame output.
//
// The primary adapter is [NewDonburiSink], which bridges vignette frames and
// scene changes into a [Donburi] world as typed events. Subscribe to
// [FrameEventType] or [SceneChangeEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	director.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
