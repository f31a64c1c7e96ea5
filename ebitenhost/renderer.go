package ebitenhost

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/perch"
)

// DebugPrint draws text in 6x16 pixel cells.
const (
	cellWidth  = 6
	cellHeight = 16
)

// Palette holds the colors a Renderer draws with.
type Palette struct {
	Background color.RGBA
	Plot       color.RGBA
	Series     []color.RGBA
	Hover      color.RGBA
	Selected   color.RGBA
	Crosshair  color.RGBA
	Marker     color.RGBA
	Tooltip    color.RGBA
}

// DefaultPalette is a dark theme.
var DefaultPalette = Palette{
	Background: color.RGBA{R: 35, G: 30, B: 45, A: 255},
	Plot:       color.RGBA{R: 45, G: 40, B: 60, A: 255},
	Series: []color.RGBA{
		{R: 230, G: 77, B: 77, A: 255},
		{R: 77, G: 178, B: 230, A: 255},
		{R: 77, G: 230, B: 128, A: 255},
		{R: 255, G: 178, B: 51, A: 255},
	},
	Hover:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Selected:  color.RGBA{R: 255, G: 230, B: 77, A: 255},
	Crosshair: color.RGBA{R: 200, G: 200, B: 200, A: 120},
	Marker:    color.RGBA{R: 77, G: 128, B: 255, A: 64},
	Tooltip:   color.RGBA{R: 20, G: 20, B: 28, A: 230},
}

// whitePixel is a 1x1 white image scaled and tinted to draw solid rects.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// Renderer is a perch.Renderer that records visual state changes and draws
// one chart onto an ebiten image.
type Renderer struct {
	Palette Palette
	// PointSize is the side of a drawn point marker.
	PointSize float64

	seriesStates map[perch.SeriesID]perch.State
	pointStates  map[perch.PointID]perch.State
	marker       perch.Rect
	markerShown  bool
	transform    *perch.GroupTransform
}

// NewRenderer creates a Renderer using DefaultPalette.
func NewRenderer() *Renderer {
	return &Renderer{
		Palette:      DefaultPalette,
		PointSize:    6,
		seriesStates: make(map[perch.SeriesID]perch.State),
		pointStates:  make(map[perch.PointID]perch.State),
	}
}

func (r *Renderer) SeriesState(s *perch.Series, state perch.State) { r.seriesStates[s.ID] = state }
func (r *Renderer) PointState(p *perch.Point, state perch.State)   { r.pointStates[p.ID] = state }

func (r *Renderer) SelectionMarker(m perch.Rect, visible bool) {
	r.marker, r.markerShown = m, visible
}

func (r *Renderer) ScaleGroups(t *perch.GroupTransform) {
	if t == nil {
		r.transform = nil
		return
	}
	cp := *t
	r.transform = &cp
}

// Measure returns the size of text printed with ebitenutil.DebugPrintAt.
func (r *Renderer) Measure(text string) perch.Size {
	return perch.MonospaceSize(text, cellWidth, cellHeight)
}

// SeriesStateOf returns the last state reported for series id.
func (r *Renderer) SeriesStateOf(id perch.SeriesID) perch.State { return r.seriesStates[id] }

// PointStateOf returns the last state reported for point id.
func (r *Renderer) PointStateOf(id perch.PointID) perch.State { return r.pointStates[id] }

// Transform returns the live pinch transform, nil when none is applied.
func (r *Renderer) Transform() *perch.GroupTransform { return r.transform }

// --- Drawing ---

// Draw paints c at its container's position: plot background, points,
// crosshairs, selection marker and tooltip labels.
func (r *Renderer) Draw(dst *ebiten.Image, c *perch.Chart) {
	if c.Destroyed() {
		return
	}
	var ox, oy float64
	if ct := c.Container(); ct != nil {
		ox, oy = ct.Bounds.X, ct.Bounds.Y
	}
	plot := c.PlotBox()
	fillRect(dst, ox+plot.X, oy+plot.Y, plot.Width, plot.Height, r.Palette.Plot)

	for _, s := range c.SeriesList() {
		if !s.Visible {
			continue
		}
		r.drawSeries(dst, c, s, ox, oy)
	}

	for _, a := range axes(c) {
		ch := a.Crosshair()
		if !ch.Visible {
			continue
		}
		fillRect(dst, ox+math.Min(ch.From.X, ch.To.X), oy+math.Min(ch.From.Y, ch.To.Y),
			math.Max(math.Abs(ch.To.X-ch.From.X), 1), math.Max(math.Abs(ch.To.Y-ch.From.Y), 1), r.Palette.Crosshair)
	}

	if r.markerShown {
		m := r.marker
		fillRect(dst, ox+m.X, oy+m.Y, m.Width, m.Height, r.Palette.Marker)
	}

	r.drawTooltip(dst, c, ox, oy)
}

func (r *Renderer) drawSeries(dst *ebiten.Image, c *perch.Chart, s *perch.Series, ox, oy float64) {
	clr := r.Palette.Series[s.Index%len(r.Palette.Series)]
	if r.seriesStates[s.ID] == perch.StateInactive {
		clr.A /= 3
	}
	xa, ya := s.XAxisOf(), s.YAxisOf()
	if xa == nil || ya == nil {
		return
	}
	half := r.PointSize / 2
	for _, p := range s.Points() {
		if p.Null || p.Outside || math.IsNaN(p.PlotX) || math.IsNaN(p.PlotY) {
			continue
		}
		x, y := xa.Pos()+p.PlotX, ya.Pos()+p.PlotY
		if t := r.transform; t != nil {
			x, y = x*t.ScaleX+t.TranslateX, y*t.ScaleY+t.TranslateY
		}
		pc, size := clr, r.PointSize
		switch r.pointStates[p.ID] {
		case perch.StateHover:
			pc, size = r.Palette.Hover, r.PointSize*1.5
		case perch.StateSelect:
			pc = r.Palette.Selected
		case perch.StateInactive:
			pc.A /= 3
		}
		half = size / 2
		fillRect(dst, ox+x-half, oy+y-half, size, size, pc)
	}
}

func (r *Renderer) drawTooltip(dst *ebiten.Image, c *perch.Chart, ox, oy float64) {
	tt := c.Tooltip()
	bg := r.Palette.Tooltip
	bg.A = uint8(float64(bg.A) * tt.Opacity())
	pad := c.Options().Tooltip.Padding
	for _, l := range tt.Labels() {
		fillRect(dst, ox+l.X, oy+l.Y, l.Width, l.Height, bg)
		ebitenutil.DebugPrintAt(dst, l.Text, int(ox+l.X+pad), int(oy+l.Y+pad))
	}
}

type crosshairAxis interface {
	Crosshair() perch.Crosshair
}

func axes(c *perch.Chart) []crosshairAxis {
	var out []crosshairAxis
	for _, list := range [][]perch.Axis{xAxes(c), yAxes(c)} {
		for _, a := range list {
			if ca, ok := a.(crosshairAxis); ok {
				out = append(out, ca)
			}
		}
	}
	return out
}

func xAxes(c *perch.Chart) []perch.Axis {
	var out []perch.Axis
	for i := 0; c.XAxis(i) != nil; i++ {
		out = append(out, c.XAxis(i))
	}
	return out
}

func yAxes(c *perch.Chart) []perch.Axis {
	var out []perch.Axis
	for i := 0; c.YAxis(i) != nil; i++ {
		out = append(out, c.YAxis(i))
	}
	return out
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.RGBA) {
	if w <= 0 || h <= 0 || clr.A == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(ensureWhitePixel(), &op)
}
