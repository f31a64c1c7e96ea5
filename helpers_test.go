package perch

import (
	"testing"
	"time"
)

// recordingRenderer records the visual side effects it receives.
type recordingRenderer struct {
	NopRenderer
	seriesStates  map[SeriesID]State
	pointStates   map[PointID]State
	marker        Rect
	markerVisible bool
	markerCalls   int
	transforms    []*GroupTransform
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		seriesStates: make(map[SeriesID]State),
		pointStates:  make(map[PointID]State),
	}
}

func (r *recordingRenderer) SeriesState(s *Series, state State) { r.seriesStates[s.ID] = state }
func (r *recordingRenderer) PointState(p *Point, state State)   { r.pointStates[p.ID] = state }
func (r *recordingRenderer) SelectionMarker(m Rect, visible bool) {
	r.marker, r.markerVisible = m, visible
	r.markerCalls++
}
func (r *recordingRenderer) ScaleGroups(t *GroupTransform) { r.transforms = append(r.transforms, t) }

// recordingZoomer records zoom and pan calls.
type recordingZoomer struct {
	zooms    []SelectionRegion
	animated []bool
	pans     int
}

func (z *recordingZoomer) Zoom(region SelectionRegion, animate bool) bool {
	z.zooms = append(z.zooms, region)
	z.animated = append(z.animated, animate)
	return true
}

func (z *recordingZoomer) Pan(Axis, float64, float64) bool {
	z.pans++
	return true
}

// testChart is a 400x300 chart whose plot covers the whole container at
// page (0, 0), with x and y axes spanning 0..100.
type testChart struct {
	rt       *Runtime
	chart    *Chart
	renderer *recordingRenderer
	zoomer   *recordingZoomer
	scene    *ElementTree
	x, y     *LinearAxis
}

func newTestChart(t *testing.T, configure func(o *Options)) *testChart {
	t.Helper()
	opts := DefaultOptions()
	opts.Tooltip.Animation = false
	if configure != nil {
		configure(&opts)
	}
	tc := &testChart{
		rt:       NewRuntime(),
		renderer: newRecordingRenderer(),
		zoomer:   &recordingZoomer{},
		scene:    NewElementTree(Rect{Width: 400, Height: 300}),
	}
	plot := Rect{Width: 400, Height: 300}
	tc.chart = NewChart(tc.rt, ChartConfig{
		Container: NewContainer(Rect{Width: 400, Height: 300}),
		Scene:     tc.scene,
		Renderer:  tc.renderer,
		Zoomer:    tc.zoomer,
		Options:   &opts,
		PlotBox:   plot,
	})
	tc.x = NewLinearAxis(AxisConfig{Horizontal: true, IsX: true, Plot: plot, Max: 100})
	tc.y = NewLinearAxis(AxisConfig{Plot: plot, Max: 100})
	tc.chart.AddXAxis(tc.x)
	tc.chart.AddYAxis(tc.y)
	return tc
}

// addPoint adds a data point at (x, y) positioned through the test axes.
func (tc *testChart) addPoint(s *Series, x, y float64) *Point {
	return s.AddPoint(x, y, tc.x.ToPixels(x)-tc.x.Pos(), tc.y.ToPixels(y)-tc.y.Pos())
}

// line adds a series with one point per y value at x = 0, 10, 20, ...
func (tc *testChart) line(name string, ys ...float64) *Series {
	s := tc.chart.AddSeries(name)
	for i, y := range ys {
		tc.addPoint(s, float64(i*10), y)
	}
	return s
}

func (tc *testChart) move(x, y float64) {
	tc.chart.Dispatch(&RawEvent{Kind: KindMouseMove, PageX: x, PageY: y})
}

func (tc *testChart) press(x, y float64, mods KeyModifiers) {
	tc.chart.Dispatch(&RawEvent{Kind: KindMouseDown, PageX: x, PageY: y, Modifiers: mods})
}

func (tc *testChart) release(x, y float64) {
	tc.rt.Document().Dispatch(&RawEvent{Kind: KindMouseUp, PageX: x, PageY: y})
}

func (tc *testChart) advance(d time.Duration) {
	tc.rt.Update(d)
}

// pixel returns the chart coordinates of a data point.
func (tc *testChart) pixel(x, y float64) (float64, float64) {
	return tc.x.ToPixels(x), tc.y.ToPixels(y)
}
