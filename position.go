package perch

import "math"

// AnchorPoint is the plot-relative reference a tooltip box is placed
// against.
type AnchorPoint struct {
	PlotX, PlotY float64
	// Negative points prefer the near side.
	Negative bool
	Side     SideHint
	// H offsets single-point tooltips of stacked shapes on inverted charts.
	H float64
	// Header is set for the header box of a split tooltip.
	Header bool
	Point  *Point
}

// placement is one dimension's input to Position: the outer size, box
// size, the anchor in chart coordinates and the plot's extent.
type placement struct {
	axis         int // 0 for x, 1 for y
	outer, inner float64
	point        float64
	lower, upper float64
}

// Position places a box of the given size next to the anchor. The box goes
// above or below the anchor and is centered horizontally; if that fails the
// dimensions swap once, and a box that fits neither way lands at (0, 0).
func (t *Tooltip) Position(boxWidth, boxHeight float64, pt AnchorPoint) Vec2 {
	c := t.chart
	distance := t.distance
	var ret [2]float64
	h := 0.0
	if c.opts.Inverted {
		h = pt.H
	}
	plot := c.plot

	first := placement{axis: 1, outer: c.height, inner: boxHeight, point: pt.PlotY + plot.Y, lower: plot.Y, upper: plot.Y + plot.Height}
	second := placement{axis: 0, outer: c.width, inner: boxWidth, point: pt.PlotX + plot.X, lower: plot.X, upper: plot.X + plot.Width}

	flipped := pt.Negative
	if hs := t.chart.pointer.HoverSeries(); hs != nil {
		if ya := hs.YAxisOf(); ya != nil && ya.Reversed() {
			flipped = !flipped
		}
	}
	var preferFar bool
	switch pt.Side {
	case SideFar:
		preferFar = true
	case SideNear:
		preferFar = false
	default:
		preferFar = c.opts.Inverted == flipped
	}
	if t.followPointer {
		preferFar = false
	}

	firstDimension := func(d placement) bool {
		roomLeft := d.inner < d.point-distance
		roomRight := d.point+distance+d.inner < d.outer
		alignedLeft := d.point - distance - d.inner
		alignedRight := d.point + distance
		switch {
		case preferFar && roomRight:
			ret[d.axis] = alignedRight
		case !preferFar && roomLeft:
			ret[d.axis] = alignedLeft
		case roomLeft:
			v := alignedLeft - h
			if alignedLeft-h < 0 {
				v = alignedLeft
			}
			ret[d.axis] = math.Min(d.upper-d.inner, v)
		case roomRight:
			v := alignedRight + h
			if alignedRight+h+d.inner > d.outer {
				v = alignedRight
			}
			ret[d.axis] = math.Max(d.lower, v)
		default:
			return false
		}
		return true
	}
	secondDimension := func(d placement) bool {
		switch {
		case d.point < distance || d.point > d.outer-distance:
			return false
		case d.point < d.inner/2:
			ret[d.axis] = 1
		case d.point > d.outer-d.inner/2:
			ret[d.axis] = d.outer - d.inner - 2
		default:
			ret[d.axis] = d.point - d.inner/2
		}
		return true
	}

	if c.opts.Inverted || t.len > 1 {
		first, second = second, first
	}
	for swapped := false; ; {
		if firstDimension(first) {
			if !secondDimension(second) && !swapped {
				first, second = second, first
				swapped = true
				continue
			}
			break
		}
		if swapped {
			ret = [2]float64{}
			break
		}
		first, second = second, first
		swapped = true
	}
	return Vec2{X: ret[0], Y: ret[1]}
}

// Anchor returns the plot-relative point the tooltip refers to, plus the
// stacked shape height used by Position on inverted charts.
func (t *Tooltip) Anchor(points []*Point, e *PointerEvent) (x, y, h float64) {
	c := t.chart
	plot := c.plot
	if (t.followPointer || len(points) == 0) && e != nil {
		return roundHalfUp(e.ChartX - plot.X), roundHalfUp(e.ChartY - plot.Y), 0
	}
	if len(points) == 0 {
		return 0, 0, 0
	}
	if a := points[0].TooltipAnchor; a != nil {
		return roundHalfUp(a.X), roundHalfUp(a.Y), 0
	}

	var sx, sy float64
	for _, p := range points {
		px, py := c.pointPlotPos(p)
		sx += px
		sy += py
	}
	n := float64(len(points))
	sx /= n
	sy /= n
	if c.opts.Inverted {
		x, y = plot.Width-sy, plot.Height-sx
	} else {
		x, y = sx, sy
	}
	if t.Shared() && len(points) > 1 && e != nil {
		if c.opts.Inverted {
			x = e.ChartX - plot.X
		} else {
			y = e.ChartY - plot.Y
		}
	}
	if c.opts.Inverted && len(points) == 1 {
		h = points[0].ShapeHeight
	}
	return roundHalfUp(x), roundHalfUp(y), h
}

// pointPlotPos returns the point's position relative to the plot box,
// adjusted for axes that do not span the plot. Range points use their
// midpoint.
func (c *Chart) pointPlotPos(p *Point) (float64, float64) {
	x, y := p.PlotX, p.PlotY
	if p.HasRange {
		y = (p.PlotLow + p.PlotHigh) / 2
	}
	s := c.seriesByID[p.series]
	if s == nil {
		return x, y
	}
	xa, ya := s.XAxisOf(), s.YAxisOf()
	if xa == nil || ya == nil {
		return x, y
	}
	plot := c.plot
	if c.opts.Inverted {
		return x + plot.Y + plot.Height - xa.Len() - xa.Pos(), y + plot.X + plot.Width - ya.Len() - ya.Pos()
	}
	return x + xa.Pos() - plot.X, y + ya.Pos() - plot.Y
}
