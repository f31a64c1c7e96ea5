package perch

import "math"

// AxisRange is a selected value range on one axis.
type AxisRange struct {
	Axis     Axis
	Min, Max float64
}

// SelectionRegion is the per-axis value range of a released selection.
type SelectionRegion struct {
	XAxis []AxisRange
	YAxis []AxisRange
}

// Empty reports whether no axis contributed to the region.
func (r SelectionRegion) Empty() bool {
	return len(r.XAxis) == 0 && len(r.YAxis) == 0
}

// zoomOption resolves which axes the gesture starting with e zooms. Touch
// gestures use the pinch type when one is set.
func (p *Pointer) zoomOption(e *PointerEvent) {
	o := &p.chart.opts
	zt := o.ZoomType
	if e.Kind().IsTouch() && o.PinchType != ZoomNone {
		zt = o.PinchType
	}
	p.zoomX, p.zoomY = zt.HasX(), zt.HasY()
	inverted := o.Inverted
	p.zoomHor = (p.zoomX && !inverted) || (p.zoomY && inverted)
	p.zoomVert = (p.zoomY && !inverted) || (p.zoomX && inverted)
	p.hasZoom = p.zoomX || p.zoomY
}

// DragStart records the press origin.
func (p *Pointer) DragStart(e *PointerEvent) {
	if p.chart == nil {
		return
	}
	p.mouseIsDown = true
	p.cancelClick = false
	p.mouseDownX, p.mouseDownY = e.ChartX, e.ChartY
}

// Drag handles a move while the button is down. Nothing happens until the
// pointer has travelled more than the drag threshold; then the move either
// sizes the selection marker or pans.
func (p *Pointer) Drag(e *PointerEvent) {
	c := p.chart
	if c == nil || c.destroyed {
		return
	}
	// Touch gestures own their marker.
	if p.selectionMarker != nil && p.touchMarker {
		return
	}
	plot := c.plot
	x := clamp(e.ChartX, plot.X, plot.X+plot.Width)
	y := clamp(e.ChartY, plot.Y, plot.Y+plot.Height)

	p.hasDragged = math.Hypot(p.mouseDownX-x, p.mouseDownY-y)
	if p.hasDragged <= c.opts.Tunables.DragThreshold {
		return
	}
	clickedInside := c.IsInsidePlot(p.mouseDownX-plot.X, p.mouseDownY-plot.Y)
	panKey := c.opts.PanKey != 0 && e.Raw != nil && e.Raw.Modifiers&c.opts.PanKey != 0

	if c.hasCartesianSeries() && (p.zoomX || p.zoomY) && clickedInside && !panKey && p.selectionMarker == nil {
		m := Rect{X: plot.X, Y: plot.Y, Width: plot.Width, Height: plot.Height}
		if p.zoomHor {
			m.Width = 1
		}
		if p.zoomVert {
			m.Height = 1
		}
		p.selectionMarker = &m
		c.rt.debugf("chart %d: selection started at (%.0f, %.0f)", c.id, p.mouseDownX, p.mouseDownY)
	}
	if m := p.selectionMarker; m != nil {
		if p.zoomHor {
			size := x - p.mouseDownX
			m.Width = math.Abs(size)
			m.X = min(size, 0) + p.mouseDownX
		}
		if p.zoomVert {
			size := y - p.mouseDownY
			m.Height = math.Abs(size)
			m.Y = min(size, 0) + p.mouseDownY
		}
		c.renderer.SelectionMarker(*m, true)
		return
	}
	if clickedInside && c.opts.Panning.Enabled {
		p.pan(e)
	}
}

// pan shifts the first x and/or y axis by the pointer travel since the last
// pan step.
func (p *Pointer) pan(e *PointerEvent) {
	c := p.chart
	for _, q := range p.HoverPoints() {
		c.setPointState(q, StateNormal)
	}
	t := c.opts.Panning.Type
	if t == ZoomNone {
		t = ZoomX
	}
	panAxis := func(ax Axis) {
		if ax == nil {
			return
		}
		if ax.Horizontal() {
			c.zoomer.Pan(ax, p.mouseDownX, e.ChartX)
			p.mouseDownX = e.ChartX
		} else {
			c.zoomer.Pan(ax, p.mouseDownY, e.ChartY)
			p.mouseDownY = e.ChartY
		}
	}
	if t.HasX() {
		panAxis(c.XAxis(0))
	}
	if t.HasY() {
		panAxis(c.YAxis(0))
	}
}

// Drop ends a drag or pinch. A real selection fires a cancelable selection
// event whose default action zooms; drag state is always cleared.
func (p *Pointer) Drop(e *PointerEvent) {
	c := p.chart
	if c == nil || c.destroyed {
		return
	}
	hasPinched := p.pinch.hasPinched
	if m := p.selectionMarker; m != nil {
		if p.hasDragged > 0 || hasPinched {
			var region SelectionRegion
			for _, ax := range c.axisRefs() {
				if !ax.axis.ZoomEnabled() {
					continue
				}
				if !hasPinched && !(ax.isX && p.zoomX) && !(!ax.isX && p.zoomY) {
					continue
				}
				ext := ax.axis.Extremes()
				if isNaN(ext.Min) || isNaN(ext.Max) {
					continue
				}
				var lo, hi float64
				if ax.axis.Horizontal() {
					lo, hi = ax.axis.ToValue(m.X), ax.axis.ToValue(m.X+m.Width)
				} else {
					lo, hi = ax.axis.ToValue(m.Y), ax.axis.ToValue(m.Y+m.Height)
				}
				r := AxisRange{Axis: ax.axis, Min: min(lo, hi), Max: max(lo, hi)}
				if ax.isX {
					region.XAxis = append(region.XAxis, r)
				} else {
					region.YAxis = append(region.YAxis, r)
				}
			}
			if !region.Empty() {
				zoomer := c.zoomer
				c.fireSelection(&SelectionEvent{
					Chart:   c,
					Region:  region,
					Box:     *m,
					Animate: !hasPinched,
					Pointer: e,
					Default: func(ev *SelectionEvent) {
						zoomer.Zoom(ev.Region, ev.Animate)
					},
				})
			}
		}
		if p.chart == nil {
			return
		}
		p.selectionMarker = nil
		p.touchMarker = false
		c.renderer.SelectionMarker(Rect{}, false)
		if hasPinched {
			c.renderer.ScaleGroups(nil)
		}
	}
	p.cancelClick = p.hasDragged > c.opts.Tunables.DragThreshold
	p.mouseIsDown = false
	p.hasDragged = 0
	p.pinch.hasPinched = false
	p.pinch.down = nil
}
