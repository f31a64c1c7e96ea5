// Package ebitenhost runs perch charts inside an ebiten game: it polls
// mouse, touch and keyboard input into raw chart events, advances the
// runtime's virtual clock once per tick and draws each chart with a
// Renderer.
//
// Usage:
//
//	host := ebitenhost.New(nil, 800, 600)
//	chart, _ := host.AddChart(perch.ChartConfig{Container: perch.NewContainer(bounds)})
//	log.Fatal(ebitenhost.Run(host, "Chart"))
package ebitenhost

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/perch"
)

// Host is an ebiten.Game driving a perch runtime.
type Host struct {
	Runtime *perch.Runtime
	Input   *Input
	// Width and Height are the logical screen size.
	Width, Height int
	// OnUpdate runs once per tick after input and before the runtime
	// advances.
	OnUpdate func()

	renderers map[perch.ChartID]*Renderer
	markers   map[perch.ChartID]*Markers
	extremes  map[perch.ChartID][]perch.Extremes
}

// New creates a host for rt, or for a fresh runtime when rt is nil.
func New(rt *perch.Runtime, width, height int) *Host {
	if rt == nil {
		rt = perch.NewRuntime()
	}
	return &Host{
		Runtime:   rt,
		Input:     NewInput(rt),
		Width:     width,
		Height:    height,
		renderers: make(map[perch.ChartID]*Renderer),
		markers:   make(map[perch.ChartID]*Markers),
		extremes:  make(map[perch.ChartID][]perch.Extremes),
	}
}

// AddChart creates a chart on the host's runtime drawn by a new Renderer.
// A Renderer already set on cfg is replaced. Without a Scene the chart gets
// a Markers scene that Step keeps in sync with its points.
func (h *Host) AddChart(cfg perch.ChartConfig) (*perch.Chart, *Renderer) {
	r := NewRenderer()
	cfg.Renderer = r
	var m *Markers
	if cfg.Scene == nil {
		m = NewMarkers(DefaultMarkerRadius)
		cfg.Scene = m
	}
	c := perch.NewChart(h.Runtime, cfg)
	h.renderers[c.ID()] = r
	if cfg.Scene != nil {
		h.Input.SetScene(c.ID(), cfg.Scene)
	}
	if m != nil {
		h.markers[c.ID()] = m
	}
	return c, r
}

// Markers returns the marker scene AddChart created for c, or nil.
func (h *Host) Markers(c *perch.Chart) *Markers {
	return h.markers[c.ID()]
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	h.Input.Poll()
	if h.OnUpdate != nil {
		h.OnUpdate()
	}
	h.Step(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// Step advances the runtime by dt, re-plots charts whose axis extremes
// changed and moves their markers.
func (h *Host) Step(dt time.Duration) {
	h.Runtime.Update(dt)
	for _, c := range h.Runtime.Charts() {
		if h.extremesChanged(c) {
			Replot(c)
		}
		if m := h.markers[c.ID()]; m != nil {
			m.Sync(c)
		}
	}
	for id := range h.renderers {
		if !h.live(id) {
			delete(h.renderers, id)
			delete(h.markers, id)
			delete(h.extremes, id)
			h.Input.SetScene(id, nil)
		}
	}
}

func (h *Host) live(id perch.ChartID) bool {
	for _, c := range h.Runtime.Charts() {
		if c.ID() == id {
			return true
		}
	}
	return false
}

func (h *Host) extremesChanged(c *perch.Chart) bool {
	var cur []perch.Extremes
	for _, list := range [][]perch.Axis{xAxes(c), yAxes(c)} {
		for _, a := range list {
			cur = append(cur, a.Extremes())
		}
	}
	prev := h.extremes[c.ID()]
	h.extremes[c.ID()] = cur
	if len(prev) != len(cur) {
		return true
	}
	for i := range cur {
		if cur[i] != prev[i] {
			return true
		}
	}
	return false
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(DefaultPalette.Background)
	for _, c := range h.Runtime.Charts() {
		if r := h.renderers[c.ID()]; r != nil {
			r.Draw(screen, c)
		}
	}
}

// Layout implements ebiten.Game.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.Width, h.Height
}

// Run opens a window and runs h until it is closed.
func Run(h *Host, title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(h.Width, h.Height)
	return ebiten.RunGame(h)
}

// Replot recomputes every point's pixel position from its series' current
// axis extremes and marks points beyond the axes as outside.
func Replot(c *perch.Chart) {
	for _, s := range c.SeriesList() {
		xa, ya := s.XAxisOf(), s.YAxisOf()
		if xa == nil || ya == nil {
			continue
		}
		for _, p := range s.Points() {
			if p.Null {
				continue
			}
			p.PlotX = xa.ToPixels(p.X) - xa.Pos()
			p.PlotY = ya.ToPixels(p.Y) - ya.Pos()
			p.Outside = p.PlotX < 0 || p.PlotX > xa.Len() || p.PlotY < 0 || p.PlotY > ya.Len() ||
				math.IsNaN(p.PlotX) || math.IsNaN(p.PlotY)
		}
		s.Invalidate()
	}
}
