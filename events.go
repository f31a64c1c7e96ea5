package perch

// --- Typed events ---

// PointEvent is delivered to point mouse-over, mouse-out and click
// observers. Observers may replace Default or call PreventDefault.
type PointEvent struct {
	Type    EventType
	Chart   *Chart
	Point   *Point
	Series  *Series
	Pointer *PointerEvent
	// Default runs after all observers unless prevented.
	Default func(e *PointEvent)

	prevented bool
}

// PreventDefault cancels the default action.
func (e *PointEvent) PreventDefault() { e.prevented = true }

// SeriesEvent is delivered to series mouse-over, mouse-out and click
// observers.
type SeriesEvent struct {
	Type   EventType
	Chart  *Chart
	Series *Series
	// Point is the clicked point for EventSeriesClick.
	Point   *Point
	Pointer *PointerEvent
	Default func(e *SeriesEvent)

	prevented bool
}

// PreventDefault cancels the default action.
func (e *SeriesEvent) PreventDefault() { e.prevented = true }

// AxisValue is a pointer coordinate translated into one axis' values.
type AxisValue struct {
	Axis  Axis
	Value float64
}

// ClickEvent is delivered to chart click observers for clicks inside the
// plot area.
type ClickEvent struct {
	Chart   *Chart
	Pointer *PointerEvent
	XAxis   []AxisValue
	YAxis   []AxisValue
}

// SelectionEvent is fired when a drag or pinch selection is released. The
// default action zooms to Region.
type SelectionEvent struct {
	Chart  *Chart
	Region SelectionRegion
	// Box is the selection rectangle in chart coordinates.
	Box Rect
	// Animate is false for pinch selections.
	Animate bool
	Pointer *PointerEvent
	Default func(e *SelectionEvent)

	prevented bool
}

// PreventDefault cancels the zoom.
func (e *SelectionEvent) PreventDefault() { e.prevented = true }

// TooltipEvent reports a tooltip refresh.
type TooltipEvent struct {
	Chart  *Chart
	Points []*Point
	Labels []Label
}

// --- ECS bridge ---

// EventSink is the interface for optional ECS integration. When set on a
// chart, interaction events are forwarded to it after observers ran.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	ChartID  ChartID
	SeriesID SeriesID
	PointID  PointID
	ChartX   float64
	ChartY   float64
	// Box is the selection rectangle for EventSelection.
	Box       Rect
	Button    MouseButton
	Modifiers KeyModifiers
}

// --- Observer registry ---

type observers struct {
	pointMouseOver  handlerList[func(*PointEvent)]
	pointMouseOut   handlerList[func(*PointEvent)]
	pointClick      handlerList[func(*PointEvent)]
	seriesMouseOver handlerList[func(*SeriesEvent)]
	seriesMouseOut  handlerList[func(*SeriesEvent)]
	seriesClick     handlerList[func(*SeriesEvent)]
	chartClick      handlerList[func(*ClickEvent)]
	selection       handlerList[func(*SelectionEvent)]
	tooltipRefresh  handlerList[func(TooltipEvent)]
	nextID          uint32
}

func register[F any](c *Chart, list *handlerList[F], fn F) CallbackHandle {
	c.obs.nextID++
	id := c.obs.nextID
	list.add(id, fn)
	return CallbackHandle{id: id, remove: list.remove}
}

// OnPointMouseOver registers fn for points becoming the hover point.
func (c *Chart) OnPointMouseOver(fn func(*PointEvent)) CallbackHandle {
	return register(c, &c.obs.pointMouseOver, fn)
}

// OnPointMouseOut registers fn for the hover point being left.
func (c *Chart) OnPointMouseOut(fn func(*PointEvent)) CallbackHandle {
	return register(c, &c.obs.pointMouseOut, fn)
}

// OnPointClick registers fn for clicks on tracked points.
func (c *Chart) OnPointClick(fn func(*PointEvent)) CallbackHandle {
	return register(c, &c.obs.pointClick, fn)
}

// OnSeriesMouseOver registers fn for series becoming the hover series.
func (c *Chart) OnSeriesMouseOver(fn func(*SeriesEvent)) CallbackHandle {
	return register(c, &c.obs.seriesMouseOver, fn)
}

// OnSeriesMouseOut registers fn for the hover series being left.
func (c *Chart) OnSeriesMouseOut(fn func(*SeriesEvent)) CallbackHandle {
	return register(c, &c.obs.seriesMouseOut, fn)
}

// OnSeriesClick registers fn for clicks on tracked series elements.
func (c *Chart) OnSeriesClick(fn func(*SeriesEvent)) CallbackHandle {
	return register(c, &c.obs.seriesClick, fn)
}

// OnClick registers fn for clicks inside the plot area that did not hit a
// tracked point.
func (c *Chart) OnClick(fn func(*ClickEvent)) CallbackHandle {
	return register(c, &c.obs.chartClick, fn)
}

// OnSelection registers fn for released drag and pinch selections.
func (c *Chart) OnSelection(fn func(*SelectionEvent)) CallbackHandle {
	return register(c, &c.obs.selection, fn)
}

// OnTooltipRefresh registers fn for tooltip refreshes.
func (c *Chart) OnTooltipRefresh(fn func(TooltipEvent)) CallbackHandle {
	return register(c, &c.obs.tooltipRefresh, fn)
}

// --- Firing ---

func (c *Chart) emit(ev InteractionEvent) {
	ev.ChartID = c.id
	if c.sink != nil {
		c.sink.EmitEvent(ev)
	}
	c.rt.debugf("chart %d: %v series=%d point=%d", c.id, ev.Type, ev.SeriesID, ev.PointID)
}

func pointerPos(e *PointerEvent) (x, y float64, button MouseButton, mods KeyModifiers) {
	if e == nil {
		return 0, 0, 0, 0
	}
	if e.Raw != nil {
		button, mods = e.Raw.Button, e.Raw.Modifiers
	}
	return e.ChartX, e.ChartY, button, mods
}

func (c *Chart) firePointEvent(typ EventType, p *Point, e *PointerEvent, def func(*PointEvent)) {
	s := c.seriesByID[p.series]
	ev := &PointEvent{Type: typ, Chart: c, Point: p, Series: s, Pointer: e, Default: def}
	var list *handlerList[func(*PointEvent)]
	switch typ {
	case EventPointMouseOver:
		list = &c.obs.pointMouseOver
	case EventPointMouseOut:
		list = &c.obs.pointMouseOut
	default:
		list = &c.obs.pointClick
	}
	for _, h := range list.snapshot() {
		h.fn(ev)
	}
	x, y, b, m := pointerPos(e)
	c.emit(InteractionEvent{Type: typ, SeriesID: p.series, PointID: p.ID, ChartX: x, ChartY: y, Button: b, Modifiers: m})
	if !ev.prevented && ev.Default != nil {
		ev.Default(ev)
	}
}

func (c *Chart) fireSeriesEvent(typ EventType, s *Series, p *Point, e *PointerEvent, def func(*SeriesEvent)) {
	ev := &SeriesEvent{Type: typ, Chart: c, Series: s, Point: p, Pointer: e, Default: def}
	var list *handlerList[func(*SeriesEvent)]
	switch typ {
	case EventSeriesMouseOver:
		list = &c.obs.seriesMouseOver
	case EventSeriesMouseOut:
		list = &c.obs.seriesMouseOut
	default:
		list = &c.obs.seriesClick
	}
	for _, h := range list.snapshot() {
		h.fn(ev)
	}
	ie := InteractionEvent{Type: typ, SeriesID: s.ID}
	if p != nil {
		ie.PointID = p.ID
	}
	ie.ChartX, ie.ChartY, ie.Button, ie.Modifiers = pointerPos(e)
	c.emit(ie)
	if !ev.prevented && ev.Default != nil {
		ev.Default(ev)
	}
}

func (c *Chart) fireChartClick(ev *ClickEvent) {
	for _, h := range c.obs.chartClick.snapshot() {
		h.fn(ev)
	}
	ie := InteractionEvent{Type: EventChartClick}
	ie.ChartX, ie.ChartY, ie.Button, ie.Modifiers = pointerPos(ev.Pointer)
	c.emit(ie)
}

func (c *Chart) fireSelection(ev *SelectionEvent) {
	for _, h := range c.obs.selection.snapshot() {
		h.fn(ev)
	}
	ie := InteractionEvent{Type: EventSelection, Box: ev.Box}
	ie.ChartX, ie.ChartY, ie.Button, ie.Modifiers = pointerPos(ev.Pointer)
	c.emit(ie)
	if !ev.prevented && ev.Default != nil {
		ev.Default(ev)
	}
}

func (c *Chart) fireTooltipRefresh(ev TooltipEvent) {
	for _, h := range c.obs.tooltipRefresh.snapshot() {
		h.fn(ev)
	}
	ie := InteractionEvent{Type: EventTooltipRefresh}
	if len(ev.Points) > 0 {
		ie.SeriesID, ie.PointID = ev.Points[0].series, ev.Points[0].ID
	}
	c.emit(ie)
}
