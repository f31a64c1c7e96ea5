package perch

import "math"

// splitBox carries one split label through positioning and distribution.
type splitBox struct {
	Box
	label            Label
	anchorX, anchorY float64
	header           bool
}

// renderSplit lays out a header box below the plot plus one box per point
// next to its anchor, then distributes the boxes vertically so that none
// overlap. Boxes that do not fit are hidden.
func (t *Tooltip) renderSplit(text []string, points []*Point) {
	c := t.chart
	plot := c.plot
	distance := t.distance
	positioner := c.opts.Tooltip.Positioner
	boundsLeft, boundsRight := 0.0, c.width
	chartBottom := c.height
	headerBottom := plot.Y + plot.Height

	defaultPositioner := func(anchorX, anchorY float64, header bool, width float64, alignedLeft bool) (x, y float64) {
		if header {
			return clamp(anchorX-width/2, boundsLeft, boundsRight-width), headerBottom
		}
		if alignedLeft {
			x = anchorX - width - distance
			return math.Min(x, boundsRight), anchorY
		}
		return clamp(anchorX+distance, boundsLeft, boundsRight), anchorY
	}

	var boxes []*splitBox
	for i, str := range text {
		if str == "" || i > len(points) {
			continue
		}
		sb := &splitBox{header: i == 0}
		sb.label = Label{Text: str, Header: sb.header, HasAnchor: true}
		if !sb.header {
			sb.label.Point = points[i-1].ID
		}
		t.measure(&sb.label)

		var ok bool
		if sb.header {
			px, _ := t.splitPlotPos(points[0])
			sb.anchorX, sb.anchorY, ok = plot.X+px, plot.Y+plot.Height/2, true
			chartBottom += sb.label.Height
		} else {
			sb.anchorX, sb.anchorY, ok = t.splitAnchor(points[i-1])
		}
		if !ok {
			continue
		}
		sb.anchorX = clamp(sb.anchorX, boundsLeft-distance, boundsRight+distance)

		size := sb.label.Height + 1
		var x, y float64
		if positioner != nil {
			pt := AnchorPoint{PlotX: sb.anchorX - plot.X, PlotY: sb.anchorY - plot.Y, Header: sb.header}
			if !sb.header {
				pt.Point = points[i-1]
				pt.Negative = pt.Point.Negative
			}
			pos := positioner(sb.label.Width, size, pt)
			x, y = pos.X, pos.Y
			sb.AlignTop = true
		} else {
			x, y = defaultPositioner(sb.anchorX, sb.anchorY, sb.header, sb.label.Width, true)
		}
		sb.ID, sb.X, sb.Target, sb.Size = len(boxes), x, y, size
		if sb.header {
			sb.Rank = 1
		}
		boxes = append(boxes, sb)
	}

	// Realign towards the right when any box has no room on the left.
	if positioner == nil {
		realign := false
		for _, b := range boxes {
			start := b.anchorX
			if (start < boundsLeft && start+b.label.Width < boundsRight) ||
				(start < b.label.Width-boundsLeft && boundsRight-start > start) {
				realign = true
				break
			}
		}
		if realign {
			for _, b := range boxes {
				b.X, b.Target = defaultPositioner(b.anchorX, b.anchorY, b.header, b.label.Width, false)
			}
		}
	}

	dist := make([]*Box, len(boxes))
	for i, b := range boxes {
		dist[i] = &b.Box
	}
	Distribute(dist, chartBottom, 0)

	t.split = t.split[:0]
	for _, b := range boxes {
		l := b.label
		l.X, l.Y = math.Round(b.X), math.Round(b.Pos)
		l.AnchorX, l.AnchorY = b.anchorX, b.anchorY
		l.Visible = b.Placed
		t.split = append(t.split, l)
	}
	t.splitActive = true
	t.main.Visible = false
}

// splitPlotPos returns the point's plot-relative position with inversion
// applied.
func (t *Tooltip) splitPlotPos(p *Point) (float64, float64) {
	c := t.chart
	x, y := c.pointPlotPos(p)
	if c.opts.Inverted {
		return c.plot.Width - y, c.plot.Height - x
	}
	return x, y
}

// splitAnchor returns a point's anchor in chart coordinates. Points whose
// anchor lies outside the plot vertically get no box.
func (t *Tooltip) splitAnchor(p *Point) (x, y float64, ok bool) {
	c := t.chart
	plot := c.plot
	px, py := t.splitPlotPos(p)
	if py < 0 || py > plot.Height {
		return 0, 0, false
	}
	return plot.X + clamp(px, -t.distance, plot.Width+t.distance), plot.Y + py, true
}
