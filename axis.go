package perch

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Extremes is an axis' visible range and the range of its data.
type Extremes struct {
	Min, Max         float64
	DataMin, DataMax float64
}

// Axis is the axis collaborator. Pixel arguments and results are chart
// coordinates.
type Axis interface {
	// Horizontal reports whether the axis runs along the chart's width.
	Horizontal() bool
	// Pos is the chart coordinate where the axis starts.
	Pos() float64
	// Len is the axis length in pixels.
	Len() float64
	Reversed() bool
	ToValue(pixel float64) float64
	ToPixels(value float64) float64
	Extremes() Extremes
	SetExtremes(min, max float64, animate bool)
	// ZoomEnabled reports whether selections may zoom this axis.
	ZoomEnabled() bool
	// CrosshairOptions reports whether a crosshair is configured and
	// whether it snaps to points.
	CrosshairOptions() (enabled, snap bool)
	// DrawCrosshair draws the crosshair at the point, or at the pointer
	// when p is nil or the crosshair does not snap.
	DrawCrosshair(e *PointerEvent, p *Point)
	HideCrosshair()
	// PlotLinePath returns the line across the plot at value.
	PlotLinePath(value float64) (from, to Vec2, ok bool)
	// PlotBandPath returns the plot area band between two values.
	PlotBandPath(from, to float64) (Rect, bool)
}

// AxisConfig configures a LinearAxis.
type AxisConfig struct {
	Horizontal bool
	// IsX marks an x axis; crosshairs snap to PlotX instead of PlotY.
	IsX bool
	// Plot is the chart's plot box. Pos and Len derive from it unless Len
	// is set.
	Plot     Rect
	Pos, Len float64
	Min, Max float64
	// DataMin and DataMax default to Min and Max.
	DataMin, DataMax float64
	Reversed         bool
	NoZoom           bool
	Crosshair        bool
	Snap             bool
	// Animation is the length of animated extreme changes. Zero means 250ms.
	Animation time.Duration
}

// Crosshair is the last drawn crosshair of a LinearAxis.
type Crosshair struct {
	Visible  bool
	Value    float64
	From, To Vec2
}

// LinearAxis is a linear Axis whose extreme changes can be animated.
type LinearAxis struct {
	cfg       AxisConfig
	pos, len  float64
	min, max  float64
	crosshair Crosshair
	tween     *TweenGroup
	destroyed bool
}

// NewLinearAxis creates an axis from cfg.
func NewLinearAxis(cfg AxisConfig) *LinearAxis {
	if cfg.DataMin == 0 && cfg.DataMax == 0 {
		cfg.DataMin, cfg.DataMax = cfg.Min, cfg.Max
	}
	if cfg.Animation == 0 {
		cfg.Animation = 250 * time.Millisecond
	}
	a := &LinearAxis{cfg: cfg, min: cfg.Min, max: cfg.Max}
	a.SetPlot(cfg.Plot)
	return a
}

// SetPlot updates the plot box after a resize.
func (a *LinearAxis) SetPlot(plot Rect) {
	a.cfg.Plot = plot
	switch {
	case a.cfg.Len > 0:
		a.pos, a.len = a.cfg.Pos, a.cfg.Len
	case a.cfg.Horizontal:
		a.pos, a.len = plot.X, plot.Width
	default:
		a.pos, a.len = plot.Y, plot.Height
	}
}

func (a *LinearAxis) Horizontal() bool  { return a.cfg.Horizontal }
func (a *LinearAxis) Pos() float64      { return a.pos }
func (a *LinearAxis) Len() float64      { return a.len }
func (a *LinearAxis) Reversed() bool    { return a.cfg.Reversed }
func (a *LinearAxis) ZoomEnabled() bool { return !a.cfg.NoZoom }
func (a *LinearAxis) Destroyed() bool   { return a.destroyed }

// CrosshairOptions implements Axis.
func (a *LinearAxis) CrosshairOptions() (bool, bool) {
	return a.cfg.Crosshair, a.cfg.Snap
}

// Crosshair returns the current crosshair.
func (a *LinearAxis) Crosshair() Crosshair {
	return a.crosshair
}

// flipped reports whether values grow against the pixel direction:
// vertical axes grow upwards unless reversed.
func (a *LinearAxis) flipped() bool {
	return a.cfg.Horizontal == a.cfg.Reversed
}

// ToValue converts a chart pixel to an axis value.
func (a *LinearAxis) ToValue(pixel float64) float64 {
	if a.len == 0 {
		return a.min
	}
	// Whole pixels map to exact values.
	d := pixel - a.pos
	if a.flipped() {
		d = a.len - d
	}
	return a.min + d*(a.max-a.min)/a.len
}

// ToPixels converts an axis value to a chart pixel.
func (a *LinearAxis) ToPixels(value float64) float64 {
	if a.max == a.min {
		return a.pos
	}
	d := (value - a.min) * a.len / (a.max - a.min)
	if a.flipped() {
		d = a.len - d
	}
	return a.pos + d
}

// Extremes implements Axis.
func (a *LinearAxis) Extremes() Extremes {
	return Extremes{Min: a.min, Max: a.max, DataMin: a.cfg.DataMin, DataMax: a.cfg.DataMax}
}

// SetExtremes sets the visible range, tweening towards it when animate is
// set. A running tween is finished first.
func (a *LinearAxis) SetExtremes(min, max float64, animate bool) {
	a.tween.Finish()
	a.tween = nil
	if !animate {
		a.min, a.max = min, max
		return
	}
	a.tween = TweenExtremes(a, min, max, float32(a.cfg.Animation.Seconds()), ease.OutQuad)
}

// Animating reports whether an extremes tween is running.
func (a *LinearAxis) Animating() bool {
	return a.tween != nil && !a.tween.Done
}

// Update advances the extremes tween by dt seconds.
func (a *LinearAxis) Update(dt float32) {
	if a.tween == nil {
		return
	}
	a.tween.Update(dt)
	if a.tween.Done {
		a.tween = nil
	}
}

// Destroy stops the extremes tween and hides the crosshair.
func (a *LinearAxis) Destroy() {
	a.tween = nil
	a.crosshair = Crosshair{}
	a.destroyed = true
}

// DrawCrosshair implements Axis.
func (a *LinearAxis) DrawCrosshair(e *PointerEvent, p *Point) {
	if !a.cfg.Crosshair {
		return
	}
	var px float64
	switch {
	case a.cfg.Snap && p != nil:
		if a.cfg.IsX {
			px = a.pos + p.PlotX
		} else {
			px = a.pos + p.PlotY
		}
	case e != nil:
		if a.cfg.Horizontal {
			px = e.ChartX
		} else {
			px = e.ChartY
		}
	default:
		a.HideCrosshair()
		return
	}
	value := a.ToValue(px)
	from, to, ok := a.PlotLinePath(value)
	if !ok {
		a.HideCrosshair()
		return
	}
	a.crosshair = Crosshair{Visible: true, Value: value, From: from, To: to}
}

// HideCrosshair implements Axis.
func (a *LinearAxis) HideCrosshair() {
	a.crosshair.Visible = false
}

// PlotLinePath implements Axis. Values outside the visible range have no
// path.
func (a *LinearAxis) PlotLinePath(value float64) (Vec2, Vec2, bool) {
	px := a.ToPixels(value)
	if px < a.pos-0.5 || px > a.pos+a.len+0.5 {
		return Vec2{}, Vec2{}, false
	}
	plot := a.cfg.Plot
	if a.cfg.Horizontal {
		return Vec2{X: px, Y: plot.Y}, Vec2{X: px, Y: plot.Y + plot.Height}, true
	}
	return Vec2{X: plot.X, Y: px}, Vec2{X: plot.X + plot.Width, Y: px}, true
}

// PlotBandPath implements Axis. The band is clipped to the axis.
func (a *LinearAxis) PlotBandPath(from, to float64) (Rect, bool) {
	p0 := clamp(a.ToPixels(from), a.pos, a.pos+a.len)
	p1 := clamp(a.ToPixels(to), a.pos, a.pos+a.len)
	if p0 > p1 {
		p0, p1 = p1, p0
	}
	if p1-p0 <= 0 {
		return Rect{}, false
	}
	plot := a.cfg.Plot
	if a.cfg.Horizontal {
		return Rect{X: p0, Y: plot.Y, Width: p1 - p0, Height: plot.Height}, true
	}
	return Rect{X: plot.X, Y: p0, Width: plot.Width, Height: p1 - p0}, true
}

// --- Zoom collaborator ---

// Zoomer applies selections and pan steps to axes.
type Zoomer interface {
	// Zoom applies new extremes for every range of the region. It reports
	// whether anything changed.
	Zoom(region SelectionRegion, animate bool) bool
	// Pan shifts an axis by the pointer travel from startPos to mousePos
	// (chart pixels along the axis). It reports whether the axis moved.
	Pan(a Axis, startPos, mousePos float64) bool
}

// AxisZoomer is the default Zoomer. It sets extremes directly on the axes.
type AxisZoomer struct{}

// Zoom implements Zoomer.
func (AxisZoomer) Zoom(region SelectionRegion, animate bool) bool {
	changed := false
	for _, ranges := range [][]AxisRange{region.XAxis, region.YAxis} {
		for _, r := range ranges {
			r.Axis.SetExtremes(r.Min, r.Max, animate)
			changed = true
		}
	}
	return changed
}

// Pan implements Zoomer. The new range must stay within the data range.
func (AxisZoomer) Pan(a Axis, startPos, mousePos float64) bool {
	ext := a.Extremes()
	newMin := a.ToValue(a.Pos() + startPos - mousePos)
	newMax := a.ToValue(a.Pos() + startPos + a.Len() - mousePos)
	if newMax < newMin {
		newMin, newMax = newMax, newMin
	}
	paddedMin := min(ext.DataMin, ext.Min)
	paddedMax := max(ext.DataMax, ext.Max)
	if newMin == ext.Min || newMax == ext.Max || newMin < paddedMin || newMax > paddedMax {
		return false
	}
	a.SetExtremes(newMin, newMax, false)
	return true
}
