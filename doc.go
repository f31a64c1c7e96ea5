// Package perch is the pointer-interaction and tooltip-placement layer of a
// charting library.
//
// Perch turns raw mouse and touch events into chart interactions: it
// resolves the point nearest to the pointer, keeps hover, inactive and
// selected states in sync, drives drag-to-zoom, panning and pinch-to-zoom,
// and places single, shared and split tooltips without overlaps. Rendering,
// axis ticks and series geometry live outside the package and are reached
// through the [Renderer], [SceneFacade], [Axis] and [Zoomer] interfaces.
//
// # Quick start
//
// Create a [Runtime] once per host, then one [Chart] per chart container:
//
//	rt := perch.NewRuntime()
//	chart := perch.NewChart(rt, perch.ChartConfig{
//		Container: perch.NewContainer(perch.Rect{Width: 640, Height: 400}),
//		PlotBox:   perch.Rect{X: 40, Y: 10, Width: 580, Height: 350},
//	})
//	chart.AddXAxis(perch.NewLinearAxis(perch.AxisConfig{Horizontal: true, IsX: true, Plot: chart.PlotBox(), Max: 100}))
//	chart.AddYAxis(perch.NewLinearAxis(perch.AxisConfig{Plot: chart.PlotBox(), Max: 10}))
//	s := chart.AddSeries("temperature")
//	s.AddPoint(0, 4, 0, 210)
//
// The host dispatches raw events to the container (which bubble to
// [Runtime.Document]) and calls [Runtime.Update] once per frame; all timers
// run on the runtime's virtual-clock [Scheduler].
//
// # Identity
//
// Points and series are addressed by [PointID] and [SeriesID]. The pointer
// session only stores ids, and [Chart.Point] and [Chart.Series] return nil
// once an entity is removed, so a stale hover reference can never be
// dereferenced.
//
// # Observers
//
// Interaction events are delivered to observers registered with
// [Chart.OnPointMouseOver], [Chart.OnSelection] and friends. Events with a
// default action (tooltip refresh on mouse-over, zoom on selection, point
// selection on click) can be cancelled with PreventDefault. Every event is
// also forwarded to an optional [EventSink]; the perch/ecs module publishes
// them into a Donburi world.
//
// # Scripted input
//
// Synthetic input can be queued with [Chart.InjectMove], [Chart.InjectDrag],
// [Chart.InjectPinch] and related calls, or replayed from a JSON trace via
// [LoadTrace] and [Runtime.SetTraceRunner].
package perch
