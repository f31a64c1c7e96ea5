package perch

// Pointer is a chart's pointer session: hover references, drag and pinch
// state, and the cached container offset. Hover references are ids that are
// resolved through the chart on access, so destroyed points read as nil.
type Pointer struct {
	chart *Chart

	hoverPoint  PointID
	hoverSeries SeriesID
	hoverPoints []PointID
	// isDirectTouch is set while the pointer is over a direct-touch
	// series' own element.
	isDirectTouch bool

	// Drag state.
	mouseIsDown            bool
	mouseDownX, mouseDownY float64
	hasDragged             float64
	cancelClick            bool
	zoomX, zoomY           bool
	zoomHor, zoomVert      bool
	hasZoom                bool
	selectionMarker        *Rect
	// touchMarker marks a selection marker created by a pinch.
	touchMarker bool

	// Pinch state.
	pinch pinchState

	offset *Offset

	docMove      CallbackHandle
	docMoveBound bool
}

func newPointer(c *Chart) *Pointer {
	return &Pointer{chart: c}
}

// HoverPoint returns the current hover point or nil.
func (p *Pointer) HoverPoint() *Point {
	if p.chart == nil {
		return nil
	}
	return p.chart.Point(p.hoverPoint)
}

// HoverSeries returns the current hover series or nil.
func (p *Pointer) HoverSeries() *Series {
	if p.chart == nil {
		return nil
	}
	return p.chart.Series(p.hoverSeries)
}

// HoverPoints returns the live points shown by the tooltip.
func (p *Pointer) HoverPoints() []*Point {
	if p.chart == nil {
		return nil
	}
	return p.chart.resolvePoints(p.hoverPoints)
}

// Snapshot returns the committed hover state.
func (p *Pointer) Snapshot() HoverSnapshot {
	return HoverSnapshot{
		HoverPoint:  p.HoverPoint(),
		HoverSeries: p.HoverSeries(),
		HoverPoints: p.HoverPoints(),
	}
}

// commit writes a snapshot into the session in one step.
func (p *Pointer) commit(s HoverSnapshot) {
	p.hoverPoint, p.hoverSeries, p.hoverPoints = 0, 0, nil
	if s.HoverPoint != nil {
		p.hoverPoint = s.HoverPoint.ID
	}
	if s.HoverSeries != nil {
		p.hoverSeries = s.HoverSeries.ID
	}
	if len(s.HoverPoints) > 0 {
		p.hoverPoints = make([]PointID, len(s.HoverPoints))
		for i, q := range s.HoverPoints {
			p.hoverPoints[i] = q.ID
		}
	}
}

// MouseIsDown reports whether a press is in progress.
func (p *Pointer) MouseIsDown() bool {
	return p.mouseIsDown
}

// HasDragged returns the distance dragged since the last press.
func (p *Pointer) HasDragged() float64 {
	return p.hasDragged
}

// HasPinched reports whether the current touch gesture scaled the chart.
func (p *Pointer) HasPinched() bool {
	return p.pinch.hasPinched
}

// SelectionMarker returns the drag selection rectangle, if any.
func (p *Pointer) SelectionMarker() (Rect, bool) {
	if p.selectionMarker == nil {
		return Rect{}, false
	}
	return *p.selectionMarker, true
}

func (p *Pointer) destroy() {
	p.unbindDocumentMouseMove()
	p.chart = nil
	p.hoverPoints = nil
	p.selectionMarker = nil
	p.offset = nil
	p.pinch = pinchState{}
}
