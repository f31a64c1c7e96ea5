package perch

import (
	"slices"
	"time"
)

// --- Point actions ---

// RunPointActions resolves the hover target for e and reconciles hover
// state, tooltip and crosshairs. A non-nil point is an explicit direct-touch
// target and skips the proximity search.
func (p *Pointer) RunPointActions(e *PointerEvent, point *Point) {
	c := p.chart
	if c == nil || c.destroyed {
		return
	}
	tt := c.tooltip
	shared := tt.Enabled() && tt.Shared()

	hoverPoint := point
	if hoverPoint.Destroyed() {
		hoverPoint = p.HoverPoint()
	}
	hoverSeries := p.HoverSeries()
	if hoverPoint != nil {
		hoverSeries = c.seriesByID[hoverPoint.series]
	}
	isDirectTouch := (e == nil || e.Kind() != KindTouchMove) &&
		(point != nil || (hoverSeries != nil && hoverSeries.DirectTouch && p.isDirectTouch))

	ev := PointerEvent{}
	if e != nil {
		ev = *e
	}
	snap := c.HoverData(hoverPoint, hoverSeries, isDirectTouch, shared, ev)
	hoverPoint, hoverSeries = snap.HoverPoint, snap.HoverSeries

	followPointer := hoverSeries != nil &&
		(hoverSeries.Tooltip.FollowPointer || c.opts.Tooltip.FollowPointer) && !c.opts.Tooltip.Split
	useShared := shared && hoverSeries != nil && !hoverSeries.NoSharedTooltip

	if hoverPoint != nil && (hoverPoint.ID != p.hoverPoint || tt.Hidden()) {
		p.reconcile(snap, e, useShared)
		if p.chart == nil || hoverPoint.Destroyed() {
			return
		}
	} else if followPointer && tt.Enabled() && !tt.Hidden() {
		x, y, _ := tt.Anchor(nil, e)
		if c.IsInsidePlot(x, y) {
			tt.UpdatePosition(AnchorPoint{PlotX: x, PlotY: y})
		}
	}

	p.bindDocumentMouseMove()
	p.drawCrosshairs(e, snap.HoverPoints)
}

// reconcile applies a new hover snapshot: visual states, series and point
// transitions, then the tooltip refresh as the hover point's default
// mouse-over action.
func (p *Pointer) reconcile(snap HoverSnapshot, e *PointerEvent, useShared bool) {
	c := p.chart
	hoverPoint, hoverSeries := snap.HoverPoint, snap.HoverSeries
	oldPoints := p.HoverPoints()

	for _, q := range oldPoints {
		if !slices.Contains(snap.HoverPoints, q) {
			c.setPointState(q, StateNormal)
		}
	}
	if p.hoverSeries != hoverSeries.ID {
		p.onSeriesMouseOver(hoverSeries, e)
	}
	p.applyInactiveState(snap.HoverPoints)
	for _, q := range snap.HoverPoints {
		c.setPointState(q, StateHover)
	}

	if old := p.HoverPoint(); old != nil {
		c.firePointEvent(EventPointMouseOut, old, e, nil)
	}
	// Observers may have removed the point or the chart.
	if hoverPoint.Destroyed() || c.destroyed {
		return
	}

	p.commit(snap)
	c.rt.debugf("chart %d: hover point %d series %d (%d points)",
		c.id, hoverPoint.ID, hoverSeries.ID, len(snap.HoverPoints))

	c.firePointEvent(EventPointMouseOver, hoverPoint, e, func(*PointEvent) {
		if !c.tooltip.Enabled() {
			return
		}
		if useShared {
			c.tooltip.Refresh(snap.HoverPoints, e)
		} else {
			c.tooltip.Refresh([]*Point{hoverPoint}, e)
		}
	})
	for _, q := range snap.HoverPoints {
		if q == hoverPoint || q.Destroyed() || slices.Contains(oldPoints, q) {
			continue
		}
		c.firePointEvent(EventPointMouseOver, q, e, nil)
	}
}

// applyInactiveState dims every series that is not related to one of the
// hovered points.
func (p *Pointer) applyInactiveState(points []*Point) {
	c := p.chart
	active := make(map[SeriesID]bool)
	for _, q := range points {
		s := c.seriesByID[q.series]
		if s == nil {
			continue
		}
		active[s.ID] = true
		if s.LinkedTo != 0 {
			active[s.LinkedTo] = true
		}
		for _, l := range s.LinkedSeries() {
			active[l.ID] = true
		}
		if s.Navigator != 0 {
			active[s.Navigator] = true
		}
	}
	for _, s := range c.series {
		switch {
		case !active[s.ID]:
			s.SetState(StateInactive, true)
		case s.InactiveOtherPoints:
			s.SetAllPointsToState(StateInactive)
		}
	}
}

// drawCrosshairs draws snapping crosshairs at a hover point on their axis
// and free crosshairs at the pointer.
func (p *Pointer) drawCrosshairs(e *PointerEvent, hoverPoints []*Point) {
	c := p.chart
	hp := p.HoverPoint()
	for _, ax := range c.axisRefs() {
		enabled, snap := ax.axis.CrosshairOptions()
		if !enabled {
			continue
		}
		var point *Point
		if snap {
			if hp != nil && c.seriesAxis(c.seriesByID[hp.series], ax.isX) == ax.axis {
				point = hp
			} else {
				for _, q := range hoverPoints {
					if c.seriesAxis(c.seriesByID[q.series], ax.isX) == ax.axis {
						point = q
						break
					}
				}
			}
		}
		if point != nil || !snap {
			ax.axis.DrawCrosshair(e, point)
		} else {
			ax.axis.HideCrosshair()
		}
	}
}

// --- Series transitions ---

// onSeriesMouseOver makes s the hover series.
func (p *Pointer) onSeriesMouseOver(s *Series, e *PointerEvent) {
	c := p.chart
	p.setHoverChart()
	if prev := p.HoverSeries(); prev != nil && prev != s {
		p.onSeriesMouseOut(prev, e)
	}
	c.fireSeriesEvent(EventSeriesMouseOver, s, nil, e, nil)
	s.SetState(StateHover, false)
	p.hoverSeries = s.ID
}

// onSeriesMouseOut leaves s: the hover point is left, a non-sticky tooltip
// hides and every series returns to normal.
func (p *Pointer) onSeriesMouseOut(s *Series, e *PointerEvent) {
	c := p.chart
	p.hoverSeries = 0
	if hp := p.HoverPoint(); hp != nil {
		p.onPointMouseOut(hp, e)
	}
	c.fireSeriesEvent(EventSeriesMouseOut, s, nil, e, nil)
	tt := c.tooltip
	if !s.StickyTracking && (!tt.Shared() || s.NoSharedTooltip) {
		tt.Hide(-1)
	}
	for _, o := range c.series {
		o.SetState(StateNormal, true)
	}
}

// onPointMouseOut leaves the hover point.
func (p *Pointer) onPointMouseOut(hp *Point, e *PointerEvent) {
	c := p.chart
	c.firePointEvent(EventPointMouseOut, hp, e, nil)
	if p.chart == nil {
		return
	}
	if s := c.seriesByID[hp.series]; s == nil || !s.InactiveOtherPoints {
		for _, q := range p.HoverPoints() {
			c.setPointState(q, StateNormal)
		}
	}
	p.hoverPoints = nil
	p.hoverPoint = 0
}

// --- Reset ---

// Reset clears the hover state. With allowMove, and while every tooltip
// point is still plotted, only the tooltip and crosshairs follow the points.
// A negative delay hides the tooltip after its configured hide delay.
// Calling Reset repeatedly, or after Destroy, is a no-op.
func (p *Pointer) Reset(allowMove bool, delay time.Duration) {
	c := p.chart
	if c == nil || c.destroyed {
		return
	}
	tt := c.tooltip
	hoverPoint := p.HoverPoint()
	hoverPoints := p.HoverPoints()
	var tooltipPoints []*Point
	switch {
	case tt.Shared():
		tooltipPoints = hoverPoints
	case hoverPoint != nil:
		tooltipPoints = []*Point{hoverPoint}
	}

	if allowMove {
		for _, q := range tooltipPoints {
			s := c.seriesByID[q.series]
			if s != nil && s.Cartesian && !q.plotted() {
				allowMove = false
				break
			}
		}
	}

	if allowMove {
		if len(tooltipPoints) == 0 || !tt.Enabled() {
			return
		}
		tt.Refresh(tooltipPoints, nil)
		for _, q := range tooltipPoints {
			s := c.seriesByID[q.series]
			if s == nil || !s.Cartesian {
				continue
			}
			for _, ax := range []Axis{s.XAxisOf(), s.YAxisOf()} {
				if ax == nil {
					continue
				}
				if enabled, _ := ax.CrosshairOptions(); enabled {
					ax.DrawCrosshair(nil, q)
				}
			}
		}
		return
	}

	if hoverPoint != nil {
		p.onPointMouseOut(hoverPoint, nil)
		if p.chart == nil {
			return
		}
	}
	for _, q := range hoverPoints {
		c.setPointState(q, StateNormal)
	}
	if hs := p.HoverSeries(); hs != nil {
		p.onSeriesMouseOut(hs, nil)
	}
	tt.Hide(delay)
	p.unbindDocumentMouseMove()
	for _, ax := range c.axisRefs() {
		ax.axis.HideCrosshair()
	}
	p.hoverPoint, p.hoverSeries, p.hoverPoints = 0, 0, nil
}

// --- Document listeners ---

func (p *Pointer) bindDocumentMouseMove() {
	if p.docMoveBound {
		return
	}
	rt := p.chart.rt
	p.docMove = rt.document.Listen(KindMouseMove, func(raw *RawEvent) {
		if hc := rt.HoverChart(); hc != nil {
			hc.pointer.onDocumentMouseMove(raw)
		}
	})
	p.docMoveBound = true
}

func (p *Pointer) unbindDocumentMouseMove() {
	if !p.docMoveBound {
		return
	}
	p.docMove.Remove()
	p.docMove = CallbackHandle{}
	p.docMoveBound = false
}

// DocumentMouseMoveBound reports whether the lazy document mousemove
// listener is bound.
func (p *Pointer) DocumentMouseMoveBound() bool {
	return p.docMoveBound
}

func (p *Pointer) onDocumentMouseMove(raw *RawEvent) {
	c := p.chart
	if c == nil || c.destroyed || p.offset == nil {
		return
	}
	e := p.Normalize(raw)
	if !c.IsInsidePlot(e.ChartX-c.plot.X, e.ChartY-c.plot.Y) && !p.inClass(raw.Target, ClassTracker) {
		p.Reset(false, -1)
	}
}

// onDocumentMouseUp ends a drag on the chart that owns the pointer.
func (rt *Runtime) onDocumentMouseUp(raw *RawEvent) {
	if hc := rt.HoverChart(); hc != nil {
		e := hc.pointer.Normalize(raw)
		hc.pointer.Drop(&e)
	}
}

// --- Container listeners ---

func (p *Pointer) inClass(id ElementID, class string) bool {
	if id == 0 || p.chart == nil || p.chart.scene == nil {
		return false
	}
	return p.chart.scene.ClassListContains(id, class)
}

// setHoverChart takes pointer focus for this chart. The previous focus
// owner receives a mouseleave, and keeps focus while its mouse is down.
func (p *Pointer) setHoverChart() {
	c := p.chart
	rt := c.rt
	if hc := rt.HoverChart(); hc != nil && hc != c {
		hc.pointer.onContainerMouseLeave(&RawEvent{Kind: KindMouseLeave})
		if hc.pointer.mouseIsDown {
			return
		}
	}
	rt.setHoverChart(c.id)
}

func (p *Pointer) onContainerMouseMove(raw *RawEvent) {
	c := p.chart
	if c == nil || c.destroyed {
		return
	}
	e := p.Normalize(raw)
	p.setHoverChart()
	if p.mouseIsDown {
		p.Drag(&e)
	}
	if !p.inClass(raw.Target, ClassTracker) && !c.IsInsidePlot(e.ChartX-c.plot.X, e.ChartY-c.plot.Y) {
		return
	}
	if p.inClass(raw.Target, ClassNoTooltip) {
		p.Reset(false, 0)
		return
	}
	p.RunPointActions(&e, p.directTouchTarget(raw))
}

// directTouchTarget returns the point under a direct-touch series' tracker
// element, or nil when the pointer is in proximity mode.
func (p *Pointer) directTouchTarget(raw *RawEvent) *Point {
	p.isDirectTouch = false
	c := p.chart
	if c.scene == nil || !p.inClass(raw.Target, ClassTracker) {
		return nil
	}
	id, ok := c.scene.Owner(raw.Target)
	if !ok {
		return nil
	}
	pt := c.Point(id)
	if pt == nil {
		return nil
	}
	if s := c.seriesByID[pt.series]; s == nil || !s.DirectTouch || !s.EnableMouseTracking {
		return nil
	}
	p.isDirectTouch = true
	return pt
}

func (p *Pointer) onContainerMouseLeave(raw *RawEvent) {
	c := p.chart
	if c == nil || c.destroyed {
		return
	}
	if p.inClass(raw.RelatedTarget, ClassTooltip) {
		return
	}
	if hc := c.rt.HoverChart(); hc != nil && hc != c {
		hc.pointer.Reset(false, -1)
		hc.pointer.InvalidateOffset()
	}
	p.Reset(false, -1)
	p.InvalidateOffset()
}

func (p *Pointer) onContainerMouseDown(raw *RawEvent) {
	c := p.chart
	if c == nil || c.destroyed || raw.Button != MouseButtonLeft {
		return
	}
	e := p.Normalize(raw)
	p.zoomOption(&e)
	raw.PreventDefault()
	p.DragStart(&e)
}

func (p *Pointer) onContainerClick(raw *RawEvent) {
	c := p.chart
	if c == nil || c.destroyed || p.cancelClick {
		return
	}
	e := p.Normalize(raw)
	hp := p.HoverPoint()
	if hp != nil && p.inClass(raw.Target, ClassTracker) {
		s := c.seriesByID[hp.series]
		c.fireSeriesEvent(EventSeriesClick, s, hp, &e, nil)
		if p.HoverPoint() != nil {
			c.firePointEvent(EventPointClick, hp, &e, func(ev *PointEvent) {
				if ev.Series != nil && ev.Series.AllowPointSelect {
					accumulate := raw.Modifiers&(ModCtrl|ModMeta|ModShift) != 0
					c.selectPoint(hp, accumulate)
				}
			})
		}
		return
	}
	if c.IsInsidePlot(e.ChartX-c.plot.X, e.ChartY-c.plot.Y) {
		c.fireChartClick(c.clickEvent(&e))
	}
}

// clickEvent translates the pointer into values on every axis.
func (c *Chart) clickEvent(e *PointerEvent) *ClickEvent {
	ev := &ClickEvent{Chart: c, Pointer: e}
	for _, ax := range c.axisRefs() {
		px := e.ChartY
		if ax.axis.Horizontal() {
			px = e.ChartX
		}
		v := AxisValue{Axis: ax.axis, Value: ax.axis.ToValue(px)}
		if ax.isX {
			ev.XAxis = append(ev.XAxis, v)
		} else {
			ev.YAxis = append(ev.YAxis, v)
		}
	}
	return ev
}
