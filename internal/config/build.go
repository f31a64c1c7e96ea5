package config

import (
	"io"
	"time"

	"github.com/phanxgames/perch"
)

// Build creates a runtime with the scenario's charts. env may be nil; its
// tunables override every chart's defaults and its Debug flag logs
// transitions to logOut.
func (sc *Scenario) Build(env *Env, logOut io.Writer) (*perch.Runtime, []*perch.Chart) {
	rt := perch.NewRuntime()
	if env != nil && env.Debug {
		rt.SetDebugMode(true)
		rt.SetLogOutput(logOut)
	}
	charts := make([]*perch.Chart, 0, len(sc.Charts))
	for _, spec := range sc.Charts {
		charts = append(charts, spec.build(rt, env))
	}
	return rt, charts
}

// Options converts the chart description into options. It must have passed
// Validate.
func (spec *ChartSpec) Options(env *Env) perch.Options {
	opts := perch.DefaultOptions()
	opts.ZoomType, _ = ParseZoom(spec.Zoom)
	opts.PinchType, _ = ParseZoom(spec.Pinch)
	opts.PanKey = perch.ParseModifiers(spec.PanKey)
	opts.Panning.Enabled = spec.Panning
	opts.Inverted = spec.Inverted

	tt := &opts.Tooltip
	tt.Enabled = !spec.Tooltip.Disabled
	tt.Shared = spec.Tooltip.Shared
	tt.Split = spec.Tooltip.Split
	tt.FollowPointer = spec.Tooltip.FollowPointer
	if spec.Tooltip.HideDelay != "" {
		tt.HideDelay, _ = time.ParseDuration(spec.Tooltip.HideDelay)
	}
	if env != nil {
		env.Apply(&opts.Tunables)
	}
	return opts
}

// PlotBox returns the plot box in chart coordinates.
func (spec *ChartSpec) PlotBox() perch.Rect {
	if len(spec.Plot) != 4 {
		return perch.Rect{Width: spec.Width, Height: spec.Height}
	}
	return perch.Rect{X: spec.Plot[0], Y: spec.Plot[1], Width: spec.Plot[2], Height: spec.Plot[3]}
}

func (spec *ChartSpec) build(rt *perch.Runtime, env *Env) *perch.Chart {
	opts := spec.Options(env)
	c := perch.NewChart(rt, perch.ChartConfig{
		Container: perch.NewContainer(perch.Rect{X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height}),
		Options:   &opts,
		PlotBox:   spec.PlotBox(),
	})
	plot := c.PlotBox()
	x := spec.XAxis.axis(plot, !spec.Inverted, true)
	y := spec.YAxis.axis(plot, spec.Inverted, false)
	c.AddXAxis(x)
	c.AddYAxis(y)

	for _, ss := range spec.Series {
		s := c.AddSeries(ss.Name)
		s.DirectTouch = ss.DirectTouch
		s.NearestBy, _ = ParseNearest(ss.Nearest)
		for _, p := range ss.Points {
			s.AddPoint(p[0], p[1], plotOffset(x, p[0]), plotOffset(y, p[1]))
		}
	}
	return c
}

func (a AxisSpec) axis(plot perch.Rect, horizontal, isX bool) *perch.LinearAxis {
	lo, hi := a.Min, a.Max
	if lo == 0 && hi == 0 {
		hi = 100
	}
	return perch.NewLinearAxis(perch.AxisConfig{
		Horizontal: horizontal,
		IsX:        isX,
		Plot:       plot,
		Min:        lo,
		Max:        hi,
		Reversed:   a.Reversed,
		Crosshair:  a.Crosshair,
		Snap:       a.Snap,
	})
}

// plotOffset is the pixel offset of value from the start of a.
func plotOffset(a perch.Axis, value float64) float64 {
	return a.ToPixels(value) - a.Pos()
}
