package ecs

import (
	"github.com/phanxgames/perch"

	"github.com/yohamta/donburi"
)

// HoverState is the latest hover state of one chart.
type HoverState struct {
	Chart  perch.ChartID
	Series perch.SeriesID
	Point  perch.PointID
	// ChartX and ChartY are the pointer position of the last hover event.
	ChartX, ChartY float64
	// Selection is the box of the last released selection.
	Selection perch.Rect
	Clicks    int
}

// Hover is the component holding a chart's HoverState.
var Hover = donburi.NewComponentType[HoverState]()

// HoverTracker keeps one entity per chart up to date with the chart's
// interaction events.
type HoverTracker struct {
	world    donburi.World
	entities map[perch.ChartID]donburi.Entity
}

// NewHoverTracker subscribes a tracker to InteractionEventType on world.
// Entities are updated when the world's events are processed.
func NewHoverTracker(world donburi.World) *HoverTracker {
	t := &HoverTracker{world: world, entities: make(map[perch.ChartID]donburi.Entity)}
	InteractionEventType.Subscribe(world, t.handle)
	return t
}

// Entity returns the entity tracking chart id, if any event was seen for it.
func (t *HoverTracker) Entity(id perch.ChartID) (donburi.Entity, bool) {
	e, ok := t.entities[id]
	return e, ok
}

// State returns the tracked state of chart id.
func (t *HoverTracker) State(id perch.ChartID) (HoverState, bool) {
	e, ok := t.entities[id]
	if !ok || !t.world.Valid(e) {
		return HoverState{}, false
	}
	return *Hover.Get(t.world.Entry(e)), true
}

func (t *HoverTracker) handle(w donburi.World, ev perch.InteractionEvent) {
	e, ok := t.entities[ev.ChartID]
	if !ok || !w.Valid(e) {
		e = w.Create(Hover)
		t.entities[ev.ChartID] = e
		Hover.Get(w.Entry(e)).Chart = ev.ChartID
	}
	st := Hover.Get(w.Entry(e))
	switch ev.Type {
	case perch.EventPointMouseOver:
		st.Series, st.Point = ev.SeriesID, ev.PointID
		st.ChartX, st.ChartY = ev.ChartX, ev.ChartY
	case perch.EventPointMouseOut:
		if st.Point == ev.PointID {
			st.Point = 0
		}
	case perch.EventSeriesMouseOut:
		if st.Series == ev.SeriesID {
			st.Series, st.Point = 0, 0
		}
	case perch.EventSelection:
		st.Selection = ev.Box
	case perch.EventChartClick, perch.EventPointClick:
		st.Clicks++
	}
}
