package perch

import (
	"testing"
	"time"
)

func newChartAt(rt *Runtime, x float64) (*Chart, *Container) {
	ct := NewContainer(Rect{X: x, Width: 400, Height: 300})
	c := NewChart(rt, ChartConfig{Container: ct})
	c.AddXAxis(NewLinearAxis(AxisConfig{Horizontal: true, IsX: true, Plot: c.PlotBox(), Max: 100}))
	c.AddYAxis(NewLinearAxis(AxisConfig{Plot: c.PlotBox(), Max: 100}))
	s := c.AddSeries("s")
	s.AddPoint(50, 50, 200, 150)
	return c, ct
}

func TestNewChartDefaults(t *testing.T) {
	c := NewChart(nil, ChartConfig{Container: NewContainer(Rect{X: 10, Y: 20, Width: 640, Height: 480})})
	if c.Runtime() == nil {
		t.Fatal("no runtime created")
	}
	if w, h := c.Size(); w != 640 || h != 480 {
		t.Errorf("Size = %vx%v, want container size", w, h)
	}
	if c.PlotBox() != (Rect{Width: 640, Height: 480}) {
		t.Errorf("PlotBox = %+v, want the whole chart", c.PlotBox())
	}
	if !c.Options().Tooltip.Enabled || c.Options().Tunables.DragThreshold != 10 {
		t.Errorf("Options = %+v, want defaults", c.Options())
	}
	if c.ID() == 0 {
		t.Error("ID = 0")
	}
}

func TestDocumentListenersRefcounted(t *testing.T) {
	rt := NewRuntime()
	a, _ := newChartAt(rt, 0)
	b, _ := newChartAt(rt, 400)

	for _, kind := range []EventKind{KindMouseUp, KindTouchEnd} {
		if n := rt.DocumentListenerCount(kind); n != 1 {
			t.Errorf("%v listeners = %d with two charts, want 1", kind, n)
		}
	}
	a.Destroy()
	if n := rt.DocumentListenerCount(KindMouseUp); n != 1 {
		t.Errorf("mouseup listeners = %d after first destroy, want 1", n)
	}
	b.Destroy()
	for _, kind := range []EventKind{KindMouseUp, KindTouchEnd} {
		if n := rt.DocumentListenerCount(kind); n != 0 {
			t.Errorf("%v listeners = %d after last destroy, want 0", kind, n)
		}
	}
	if len(rt.Charts()) != 0 {
		t.Errorf("Charts = %d, want 0", len(rt.Charts()))
	}
}

func TestDestroy(t *testing.T) {
	rt := NewRuntime()
	c, ct := newChartAt(rt, 0)
	p := c.SeriesList()[0].Points()[0]

	ct.Dispatch(&RawEvent{Kind: KindMouseMove, PageX: 200, PageY: 150})
	rt.Document().Dispatch(&RawEvent{Kind: KindMouseMove, PageX: 200, PageY: 150})
	if c.Pointer().HoverPoint() != p {
		t.Fatal("no hover point before destroy")
	}
	if !c.Pointer().DocumentMouseMoveBound() {
		t.Fatal("document mousemove not bound while hovering")
	}
	c.Tooltip().Hide(-1)
	c.Reflow(500, 500)

	c.Destroy()
	c.Destroy()

	if !c.Destroyed() || !c.Tooltip().Destroyed() {
		t.Error("chart or tooltip not destroyed")
	}
	if ct.ListenerCount(KindMouseMove) != 0 || ct.ListenerCount(KindTouchStart) != 0 {
		t.Error("container listeners left bound")
	}
	if rt.DocumentListenerCount(KindMouseMove) != 0 {
		t.Error("document mousemove left bound")
	}
	if n := rt.Scheduler().Pending(); n != 0 {
		t.Errorf("pending tasks = %d, want 0", n)
	}
	if rt.HoverChart() != nil {
		t.Error("destroyed chart keeps pointer focus")
	}
	if !p.Destroyed() || c.Point(p.ID) != nil {
		t.Error("point survived its chart")
	}
	if c.Pointer().HoverPoint() != nil {
		t.Error("hover point readable after destroy")
	}

	// Events after destroy are ignored.
	c.Dispatch(&RawEvent{Kind: KindMouseMove, PageX: 200, PageY: 150})
	rt.Document().Dispatch(&RawEvent{Kind: KindMouseUp})
	c.Reflow(10, 10)
	rt.Update(time.Second)
}

func TestDestroyFromObserver(t *testing.T) {
	tc := newTestChart(t, nil)
	tc.line("a", 50, 50, 50)
	tc.chart.OnPointMouseOver(func(*PointEvent) { tc.chart.Destroy() })

	tc.move(40, 150)
	if !tc.chart.Destroyed() {
		t.Fatal("chart not destroyed")
	}
	if !tc.chart.Tooltip().Hidden() {
		t.Error("tooltip shown by a destroyed chart")
	}
}

func TestReflowDebounce(t *testing.T) {
	tc := newTestChart(t, nil)
	tc.chart.Reflow(500, 400)
	tc.advance(50 * time.Millisecond)
	tc.chart.Reflow(600, 400)

	tc.advance(99 * time.Millisecond)
	if w, _ := tc.chart.Size(); w != 400 {
		t.Fatalf("width = %v before the debounce elapsed, want 400", w)
	}
	tc.advance(time.Millisecond)
	if w, h := tc.chart.Size(); w != 600 || h != 400 {
		t.Errorf("Size = %vx%v, want 600x400", w, h)
	}
	if pb := tc.chart.PlotBox(); pb.Width != 600 || pb.Height != 400 {
		t.Errorf("PlotBox = %+v, want 600x400", pb)
	}
	if tc.x.Len() != 600 {
		t.Errorf("x axis length = %v, want 600", tc.x.Len())
	}
}

func TestHoverChartSwitch(t *testing.T) {
	rt := NewRuntime()
	a, ca := newChartAt(rt, 0)
	b, cb := newChartAt(rt, 400)

	ca.Dispatch(&RawEvent{Kind: KindMouseMove, PageX: 200, PageY: 150})
	if rt.HoverChart() != a || a.Pointer().HoverPoint() == nil {
		t.Fatal("first chart not hovered")
	}

	cb.Dispatch(&RawEvent{Kind: KindMouseMove, PageX: 600, PageY: 150})
	if rt.HoverChart() != b {
		t.Errorf("HoverChart = %v, want the second chart", rt.HoverChart())
	}
	if a.Pointer().HoverPoint() != nil {
		t.Error("first chart kept its hover point")
	}
	if b.Pointer().HoverPoint() == nil {
		t.Error("second chart has no hover point")
	}
}

func TestHoverChartKeptWhileDragging(t *testing.T) {
	rt := NewRuntime()
	a, ca := newChartAt(rt, 0)
	_, cb := newChartAt(rt, 400)

	ca.Dispatch(&RawEvent{Kind: KindMouseMove, PageX: 200, PageY: 150})
	ca.Dispatch(&RawEvent{Kind: KindMouseDown, PageX: 200, PageY: 150})
	cb.Dispatch(&RawEvent{Kind: KindMouseMove, PageX: 600, PageY: 150})
	if rt.HoverChart() != a {
		t.Errorf("HoverChart = %v, want the dragging chart", rt.HoverChart())
	}
}

func TestRemoveSeries(t *testing.T) {
	tc := newTestChart(t, nil)
	a := tc.line("a", 10)
	b := tc.line("b", 20)
	pa := a.Points()[0]

	tc.chart.RemoveSeries(a)
	tc.chart.RemoveSeries(a)
	if len(tc.chart.SeriesList()) != 1 || b.Index != 0 {
		t.Errorf("series = %d, b.Index = %d", len(tc.chart.SeriesList()), b.Index)
	}
	if tc.chart.Series(a.ID) != nil || tc.chart.Point(pa.ID) != nil {
		t.Error("removed series still resolvable")
	}
}

func TestSelectPoint(t *testing.T) {
	tc := newTestChart(t, nil)
	s := tc.line("a", 10, 20, 30)
	pts := s.Points()

	tc.chart.selectPoint(pts[0], false)
	tc.chart.selectPoint(pts[1], true)
	if got := tc.chart.SelectedPoints(); len(got) != 2 {
		t.Fatalf("selected = %d, want 2 when accumulating", len(got))
	}
	tc.chart.selectPoint(pts[2], false)
	if got := tc.chart.SelectedPoints(); len(got) != 1 || got[0] != pts[2] {
		t.Errorf("selected = %v, want only the last point", got)
	}
	if pts[2].State != StateSelect || tc.renderer.pointStates[pts[0].ID] != StateNormal {
		t.Errorf("states = %v, %v", pts[2].State, tc.renderer.pointStates[pts[0].ID])
	}
}
