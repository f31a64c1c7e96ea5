// Package ecs provides ECS adapters for perch's chart interaction events.
//
// The primary adapter is [NewDonburiSink], which forwards chart interaction
// events (hover, click, selection, tooltip refresh) into a [Donburi] world
// as typed events. Subscribe to [InteractionEventType] in your ECS systems
// to receive them, or attach a [HoverTracker] to keep one entity per chart
// holding its latest hover state.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	chart := perch.NewChart(rt, perch.ChartConfig{Container: ct, Sink: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
