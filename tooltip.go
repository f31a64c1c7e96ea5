package perch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tanema/gween/ease"
)

// Label is one tooltip box in chart coordinates.
type Label struct {
	Text          string
	X, Y          float64
	Width, Height float64
	// AnchorX and AnchorY are where the box's connector points, valid when
	// HasAnchor is set.
	AnchorX, AnchorY float64
	HasAnchor        bool
	Header           bool
	Point            PointID
	Visible          bool
}

// PointLabel describes one point to a Formatter.
type PointLabel struct {
	Point  *Point
	Series string
	// Key is the point's name, or its formatted x value.
	Key  string
	X, Y float64
}

// LabelContext is the input of a Formatter.
type LabelContext struct {
	PointLabel
	// Points lists every point of a shared or split tooltip.
	Points []PointLabel
	Shared bool
}

// DefaultFormatter renders a header with the point key and one
// "series: value" line per point.
func DefaultFormatter(ctx LabelContext) []string {
	pts := ctx.Points
	if !ctx.Shared {
		pts = []PointLabel{ctx.PointLabel}
	}
	out := make([]string, 0, len(pts)+1)
	out = append(out, ctx.Key)
	for _, p := range pts {
		out = append(out, fmt.Sprintf("%s: %s", p.Series, formatNumber(p.Y)))
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Tooltip shows the hovered point or points. It owns a smoothing move loop
// and a delayed, fading hide, both driven by the runtime's scheduler.
type Tooltip struct {
	chart *Chart

	hidden        bool
	opacity       float64
	followPointer bool
	distance      float64
	// len is the number of points of a shared tooltip.
	len int

	main  Label
	split []Label
	// splitActive is set while the split labels are shown.
	splitActive bool

	hideTimer *Task
	moveTask  *Task
	fade      *TweenGroup
	destroyed bool
}

func newTooltip(c *Chart) *Tooltip {
	return &Tooltip{chart: c, hidden: true, distance: c.opts.Tooltip.Distance}
}

// Enabled reports whether the tooltip is configured to show.
func (t *Tooltip) Enabled() bool {
	return t != nil && !t.destroyed && t.chart.opts.Tooltip.Enabled
}

// Shared reports whether the tooltip aggregates points at one x value.
func (t *Tooltip) Shared() bool {
	return t != nil && t.chart != nil && t.chart.opts.shared()
}

// Hidden reports whether the tooltip is hidden or hiding.
func (t *Tooltip) Hidden() bool {
	return t == nil || t.hidden
}

// Opacity returns the current label opacity, 0 once the fade completed.
func (t *Tooltip) Opacity() float64 {
	return t.opacity
}

// Destroyed reports whether the tooltip was destroyed with its chart.
func (t *Tooltip) Destroyed() bool {
	return t == nil || t.destroyed
}

// Labels returns the visible boxes: one for a regular tooltip, a header and
// one per point for a split tooltip.
func (t *Tooltip) Labels() []Label {
	if t == nil || t.destroyed || t.opacity == 0 {
		return nil
	}
	if t.splitActive {
		out := make([]Label, 0, len(t.split))
		for _, l := range t.split {
			if l.Visible {
				out = append(out, l)
			}
		}
		return out
	}
	if !t.main.Visible {
		return nil
	}
	return []Label{t.main}
}

// Refresh shows points, replacing the tooltip's content and position. A
// pending hide is cancelled.
func (t *Tooltip) Refresh(points []*Point, e *PointerEvent) {
	if !t.Enabled() || len(points) == 0 || points[0].Destroyed() {
		return
	}
	c := t.chart
	point := points[0]
	series := c.seriesByID[point.series]
	if series == nil {
		return
	}
	t.hideTimer.Cancel()
	t.hideTimer = nil

	allowShared := !(len(points) == 1 && series.NoSharedTooltip)
	t.followPointer = !c.opts.Tooltip.Split && (series.Tooltip.FollowPointer || c.opts.Tooltip.FollowPointer)
	x, y, h := t.Anchor(points, e)

	ctx := LabelContext{PointLabel: c.pointLabel(point)}
	if t.Shared() && allowShared {
		c.pointer.applyInactiveState(points)
		for _, p := range points {
			c.setPointState(p, StateHover)
			ctx.Points = append(ctx.Points, c.pointLabel(p))
		}
		ctx.Shared = true
	}
	t.len = len(ctx.Points)
	t.distance = series.tooltipDistance(c.opts.Tooltip.Distance)

	format := c.opts.Tooltip.Formatter
	if format == nil {
		format = DefaultFormatter
	}
	text := format(ctx)
	if text == nil {
		t.Hide(-1)
		return
	}

	if c.opts.Tooltip.Split && allowShared {
		t.renderSplit(text, points)
	} else {
		checkX, checkY := x, y
		if e != nil && c.pointer.isDirectTouch {
			checkX, checkY = e.ChartX-c.plot.X, e.ChartY-c.plot.Y
		}
		if !c.IsInsidePlot(checkX, checkY) {
			t.Hide(-1)
			return
		}
		t.splitActive = false
		t.main.Text = strings.Join(text, "\n")
		t.main.Point = point.ID
		t.measure(&t.main)
		t.UpdatePosition(AnchorPoint{
			PlotX:    x,
			PlotY:    y,
			Negative: point.Negative,
			Side:     point.TooltipSide,
			H:        h,
			Point:    point,
		})
	}

	if t.hidden {
		t.fade = nil
		t.opacity = 1
	}
	t.hidden = false
	t.main.Visible = !t.splitActive
	c.rt.debugf("chart %d: tooltip refresh (%d points)", c.id, len(points))
	c.fireTooltipRefresh(TooltipEvent{Chart: c, Points: points, Labels: t.Labels()})
}

func (c *Chart) pointLabel(p *Point) PointLabel {
	pl := PointLabel{Point: p, X: p.X, Y: p.Y, Key: p.Name}
	if pl.Key == "" {
		pl.Key = formatNumber(p.X)
	}
	if s := c.seriesByID[p.series]; s != nil {
		pl.Series = s.Name
	}
	return pl
}

// measure sizes a label from its text plus padding.
func (t *Tooltip) measure(l *Label) {
	sz := t.chart.renderer.Measure(l.Text)
	pad := t.chart.opts.Tooltip.Padding
	l.Width = sz.Width + 2*pad
	l.Height = sz.Height + 2*pad
}

// UpdatePosition places the main label against the anchor, through the
// configured Positioner when there is one.
func (t *Tooltip) UpdatePosition(pt AnchorPoint) {
	c := t.chart
	var pos Vec2
	if p := c.opts.Tooltip.Positioner; p != nil {
		pos = p(t.main.Width, t.main.Height, pt)
	} else {
		pos = t.Position(t.main.Width, t.main.Height, pt)
	}
	t.Move(math.Round(pos.X), math.Round(pos.Y), pt.PlotX+c.plot.X, pt.PlotY+c.plot.Y)
}

// Move moves the main label towards (x, y). While animated, each tick
// covers a third of the horizontal and half of the vertical distance and
// schedules the next tick until the label is within a pixel.
func (t *Tooltip) Move(x, y, anchorX, anchorY float64) {
	if t.destroyed {
		return
	}
	now := &t.main
	animate := t.chart.opts.Tooltip.Animation && !t.hidden &&
		(math.Abs(x-now.X) > 1 || math.Abs(y-now.Y) > 1)
	skipAnchor := t.followPointer || t.len > 1

	if animate {
		now.X = (2*now.X + x) / 3
		now.Y = (now.Y + y) / 2
	} else {
		now.X, now.Y = x, y
	}
	now.HasAnchor = !skipAnchor
	if !skipAnchor {
		if animate {
			now.AnchorX = (2*now.AnchorX + anchorX) / 3
			now.AnchorY = (now.AnchorY + anchorY) / 2
		} else {
			now.AnchorX, now.AnchorY = anchorX, anchorY
		}
	}

	t.moveTask.Cancel()
	t.moveTask = nil
	if animate {
		t.moveTask = t.chart.rt.sched.After(t.chart.opts.Tunables.MoveTick, func() {
			t.moveTask = nil
			t.Move(x, y, anchorX, anchorY)
		})
	}
}

// Moving reports whether a smoothing tick is scheduled.
func (t *Tooltip) Moving() bool {
	return t.moveTask.Pending()
}

// Hide hides the tooltip after delay, or after the configured hide delay
// when delay is negative. A zero delay hides immediately without fading.
// Each call replaces a pending hide.
func (t *Tooltip) Hide(delay time.Duration) {
	if t == nil || t.destroyed {
		return
	}
	t.hideTimer.Cancel()
	t.hideTimer = nil
	if delay < 0 {
		delay = t.chart.opts.hideDelay()
	}
	if t.hidden {
		return
	}
	if delay == 0 {
		t.hideNow(0)
		return
	}
	t.hideTimer = t.chart.rt.sched.After(delay, func() {
		t.hideTimer = nil
		t.hideNow(t.chart.opts.Tunables.FadeDuration)
	})
}

func (t *Tooltip) hideNow(fade time.Duration) {
	t.hidden = true
	t.moveTask.Cancel()
	t.moveTask = nil
	if fade <= 0 {
		t.fade = nil
		t.opacity = 0
		return
	}
	t.fade = TweenOpacity(t, 0, float32(fade.Seconds()), ease.Linear)
	t.chart.rt.debugf("chart %d: tooltip fading out", t.chart.id)
}

// Update advances the fade-out by dt seconds.
func (t *Tooltip) Update(dt float32) {
	if t == nil || t.fade == nil {
		return
	}
	t.fade.Update(dt)
	if t.fade.Done {
		t.fade = nil
	}
}

// Destroy cancels the tooltip's timers. Safe to call repeatedly.
func (t *Tooltip) Destroy() {
	if t == nil || t.destroyed {
		return
	}
	t.hideTimer.Cancel()
	t.moveTask.Cancel()
	t.hideTimer, t.moveTask, t.fade = nil, nil, nil
	t.split = nil
	t.destroyed = true
	t.hidden = true
	t.opacity = 0
}
