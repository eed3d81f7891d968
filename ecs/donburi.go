// Package ecs provides ECS adapters for vignette.
package ecs

import (
	"github.com/phanxgames/vignette"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FrameEventType is the Donburi event type for vignette frames. Subscribe
// to it in your ECS systems to read camera, ship, and effect state.
var FrameEventType = events.NewEventType[vignette.Frame]()

// SceneChangeEventType is the Donburi event type published each time the
// current scene is replaced.
var SceneChangeEventType = events.NewEventType[vignette.SceneChangeEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued and delivered by events.ProcessAllEvents or ProcessEvents on the
// individual event types. Frames are cloned on publish, so subscribers may
// keep them past the next tick.
func NewDonburiSink(world donburi.World) vignette.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitFrame(f vignette.Frame) {
	FrameEventType.Publish(s.world, f.Clone())
}

func (s *donburiSink) EmitSceneChange(ev vignette.SceneChangeEvent) {
	SceneChangeEventType.Publish(s.world, ev)
}
