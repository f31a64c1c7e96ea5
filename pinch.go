package perch

import "math"

// pixelBounds is the pixel extent of an axis' data range.
type pixelBounds struct {
	min, max float64
}

type pinchState struct {
	// down holds the touch start positions in chart coordinates.
	down []Vec2
	// lastValidX and lastValidY are the last finger positions that kept
	// the selection inside the data bounds.
	lastValidX, lastValidY [2]float64
	boundsH, boundsV       pixelBounds
	initiated              bool
	hasPinched             bool
	// res requests a hover reset on the first pinch move.
	res bool
}

// Touch handles a container touch event. One finger inside the plot runs
// point actions and follows the finger; two fingers pinch.
func (p *Pointer) Touch(e *PointerEvent, start bool) {
	c := p.chart
	if c == nil || c.destroyed {
		return
	}
	p.setHoverChart()
	switch len(e.Touches) {
	case 1:
		inside := c.IsInsidePlot(e.ChartX-c.plot.X, e.ChartY-c.plot.Y)
		if !inside {
			if start {
				p.Reset(false, -1)
			}
			return
		}
		if start {
			p.RunPointActions(e, nil)
		}
		hasMoved := true
		if e.Kind() == KindTouchMove {
			hasMoved = false
			if len(p.pinch.down) > 0 {
				d := p.pinch.down[0]
				hasMoved = math.Hypot(d.X-e.ChartX, d.Y-e.ChartY) >= c.opts.Tunables.TouchJitter
			}
		}
		if hasMoved {
			p.Pinch(e)
		}
	case 2:
		p.Pinch(e)
	}
}

// Pinch records touch starts, follows a single finger with the tooltip, or
// scales and translates the series groups for a two-finger pinch.
func (p *Pointer) Pinch(e *PointerEvent) {
	c := p.chart
	ps := &p.pinch
	touches := e.Touches
	followTouchMove := len(touches) == 1 && c.opts.Tooltip.FollowTouchMove

	if len(touches) > 1 {
		ps.initiated = true
	} else if followTouchMove {
		ps.initiated = false
	}
	if p.hasZoom && ps.initiated && e.Raw != nil {
		e.Raw.PreventDefault()
	}

	switch {
	case e.Kind() == KindTouchStart:
		ps.down = append(ps.down[:0], touches...)
		if len(ps.down) == 0 {
			return
		}
		ps.lastValidX = [2]float64{ps.down[0].X, 0}
		ps.lastValidY = [2]float64{ps.down[0].Y, 0}
		if len(ps.down) > 1 {
			ps.lastValidX[1], ps.lastValidY[1] = ps.down[1].X, ps.down[1].Y
		}
		for _, ax := range c.axisRefs() {
			if !ax.axis.ZoomEnabled() {
				continue
			}
			ext := ax.axis.Extremes()
			lo := ax.axis.ToPixels(min(ext.Min, ext.DataMin))
			hi := ax.axis.ToPixels(max(ext.Max, ext.DataMax))
			b := pixelBounds{
				min: min(ax.axis.Pos(), min(lo, hi)),
				max: max(ax.axis.Pos()+ax.axis.Len(), max(lo, hi)),
			}
			if ax.axis.Horizontal() {
				ps.boundsH = b
			} else {
				ps.boundsV = b
			}
		}
		ps.res = true

	case followTouchMove:
		p.RunPointActions(e, nil)

	case len(ps.down) > 0:
		plot := c.plot
		if p.selectionMarker == nil {
			m := plot
			p.selectionMarker = &m
			p.touchMarker = true
		}
		t := GroupTransform{
			ScaleX: 1,
			ScaleY: 1,
			Clip:   Rect{Width: plot.Width, Height: plot.Height},
		}
		if p.zoomHor {
			p.pinchTranslateDirection(true, touches, &t)
		}
		if p.zoomVert {
			p.pinchTranslateDirection(false, touches, &t)
		}
		ps.hasPinched = p.hasZoom
		c.renderer.ScaleGroups(&t)
		if ps.res {
			ps.res = false
			p.Reset(false, 0)
		}
	}
}

// pinchTranslateDirection updates the selection marker and group transform
// along one direction. Fingers dragged beyond the data bounds move
// elastically.
func (p *Pointer) pinchTranslateDirection(horiz bool, touches []Vec2, t *GroupTransform) {
	c := p.chart
	ps := &p.pinch
	plot := c.plot
	m := p.selectionMarker

	coord := func(v Vec2) float64 {
		if horiz {
			return v.X
		}
		return v.Y
	}
	plotLeftTop, plotWH := plot.Y, plot.Height
	bounds := ps.boundsV
	lastValid := &ps.lastValidY
	if horiz {
		plotLeftTop, plotWH = plot.X, plot.Width
		bounds = ps.boundsH
		lastValid = &ps.lastValidX
	}

	single := len(ps.down) == 1 || len(touches) == 1
	t0Start := coord(ps.down[0])
	t0Now := coord(touches[0])
	var t1Start, t1Now float64
	if !single {
		t1Start, t1Now = coord(ps.down[1]), coord(touches[1])
	}

	scale := 1.0
	var clipXY, selectionWH float64
	setScale := func() {
		if !single && math.Abs(t0Start-t1Start) > c.opts.Tunables.PinchMinSpread {
			scale = math.Abs(t0Now-t1Now) / math.Abs(t0Start-t1Start)
		}
		clipXY = (plotLeftTop-t0Now)/scale + t0Start
		selectionWH = plotWH / scale
	}
	setScale()

	selectionXY := clipXY
	outOfBounds := false
	if selectionXY < bounds.min {
		selectionXY = bounds.min
		outOfBounds = true
	} else if selectionXY+selectionWH > bounds.max {
		selectionXY = bounds.max - selectionWH
		outOfBounds = true
	}
	if outOfBounds {
		t0Now -= 0.8 * (t0Now - lastValid[0])
		if !single {
			t1Now -= 0.8 * (t1Now - lastValid[1])
		}
		setScale()
	} else {
		*lastValid = [2]float64{t0Now, t1Now}
	}

	inverted := c.opts.Inverted
	transformScale := scale
	if inverted {
		transformScale = 1 / scale
	}
	translate := transformScale*plotLeftTop + (t0Now - transformScale*t0Start)
	if horiz {
		if !inverted {
			t.Clip.X, t.Clip.Width = clipXY-plotLeftTop, selectionWH
		}
		m.X, m.Width = selectionXY, selectionWH
		if inverted {
			t.ScaleY = scale
		} else {
			t.ScaleX = scale
		}
		t.TranslateX = translate
		return
	}
	if !inverted {
		t.Clip.Y, t.Clip.Height = clipXY-plotLeftTop, selectionWH
	}
	m.Y, m.Height = selectionXY, selectionWH
	if inverted {
		t.ScaleX = scale
	} else {
		t.ScaleY = scale
	}
	t.TranslateY = translate
}

func (p *Pointer) onContainerTouchStart(raw *RawEvent) {
	if p.chart == nil || p.chart.destroyed {
		return
	}
	e := p.Normalize(raw)
	p.zoomOption(&e)
	p.Touch(&e, true)
}

func (p *Pointer) onContainerTouchMove(raw *RawEvent) {
	if p.chart == nil || p.chart.destroyed {
		return
	}
	e := p.Normalize(raw)
	p.Touch(&e, false)
}

// onDocumentTouchEnd ends a touch gesture on the chart that owns the
// pointer.
func (rt *Runtime) onDocumentTouchEnd(raw *RawEvent) {
	if hc := rt.HoverChart(); hc != nil {
		e := hc.pointer.Normalize(raw)
		hc.pointer.Drop(&e)
	}
}
