package ecs

import (
	"github.com/phanxgames/perch"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType carries every chart interaction into the world:
// point and series mouse-over, mouse-out and click, plot clicks, released
// selections with their box, and tooltip refreshes. Events name the chart,
// series and point by id and carry the pointer's chart coordinates, button
// and modifiers.
var InteractionEventType = events.NewEventType[perch.InteractionEvent]()

// donburiSink publishes into one world. Events queue until the world's
// systems call InteractionEventType.ProcessEvents.
type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns a perch.EventSink to set as ChartConfig.Sink.
// HoverTracker subscribes to the same event type.
func NewDonburiSink(world donburi.World) perch.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event perch.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
