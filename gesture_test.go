package perch

import (
	"testing"
	"time"
)

func TestDragThreshold(t *testing.T) {
	tc := newTestChart(t, func(o *Options) { o.ZoomType = ZoomX })
	tc.line("a", 10, 20, 30)
	p := tc.chart.Pointer()

	tc.press(100, 100, 0)
	for _, at := range [][2]float64{{105, 105}, {107, 107}, {110, 100}, {100, 110}} {
		tc.move(at[0], at[1])
		if _, ok := p.SelectionMarker(); ok {
			t.Fatalf("marker after move to %v, want none within 10px", at)
		}
	}
	if tc.renderer.markerCalls != 0 || tc.zoomer.pans != 0 {
		t.Fatalf("marker calls = %d, pans = %d, want 0", tc.renderer.markerCalls, tc.zoomer.pans)
	}

	tc.move(111, 100)
	m, ok := p.SelectionMarker()
	if !ok {
		t.Fatal("no marker after crossing the threshold")
	}
	if m.X != 100 || m.Width != 11 || m.Y != 0 || m.Height != 300 {
		t.Errorf("marker = %+v, want x=100 w=11 spanning the plot height", m)
	}
	if !tc.renderer.markerVisible {
		t.Error("renderer marker hidden")
	}
}

func TestDragSelectionZooms(t *testing.T) {
	tc := newTestChart(t, func(o *Options) { o.ZoomType = ZoomX })
	tc.line("a", 10, 20, 30)
	var sel *SelectionEvent
	tc.chart.OnSelection(func(e *SelectionEvent) { sel = e })
	var clicked bool
	tc.chart.OnClick(func(*ClickEvent) { clicked = true })

	tc.press(100, 100, 0)
	tc.move(200, 120)
	tc.move(300, 120)
	tc.release(300, 120)

	if sel == nil {
		t.Fatal("no selection event")
	}
	if !sel.Animate {
		t.Error("Animate = false, want true for mouse selections")
	}
	if len(tc.zoomer.zooms) != 1 {
		t.Fatalf("zooms = %d, want 1", len(tc.zoomer.zooms))
	}
	region := tc.zoomer.zooms[0]
	if len(region.YAxis) != 0 {
		t.Errorf("YAxis ranges = %v, want none for x zoom", region.YAxis)
	}
	if len(region.XAxis) != 1 || region.XAxis[0].Min != 25 || region.XAxis[0].Max != 75 {
		t.Errorf("XAxis ranges = %+v, want [25, 75]", region.XAxis)
	}
	if _, ok := tc.chart.Pointer().SelectionMarker(); ok || tc.renderer.markerVisible {
		t.Error("marker still shown after release")
	}

	// The drag cancels the following click.
	tc.chart.Dispatch(&RawEvent{Kind: KindClick, PageX: 300, PageY: 120})
	if clicked {
		t.Error("click fired after a drag")
	}
	tc.press(50, 50, 0)
	tc.release(50, 50)
	tc.chart.Dispatch(&RawEvent{Kind: KindClick, PageX: 50, PageY: 50})
	if !clicked {
		t.Error("click suppressed after a plain press")
	}
}

func TestSelectionPreventDefault(t *testing.T) {
	tc := newTestChart(t, func(o *Options) { o.ZoomType = ZoomXY })
	tc.line("a", 10, 20, 30)
	tc.chart.OnSelection(func(e *SelectionEvent) { e.PreventDefault() })

	tc.press(100, 100, 0)
	tc.move(200, 200)
	tc.release(200, 200)
	if len(tc.zoomer.zooms) != 0 {
		t.Errorf("zooms = %d, want 0", len(tc.zoomer.zooms))
	}
	if _, ok := tc.chart.Pointer().SelectionMarker(); ok {
		t.Error("marker kept after a cancelled selection")
	}
}

func TestDragWithoutCartesianSeries(t *testing.T) {
	tc := newTestChart(t, func(o *Options) { o.ZoomType = ZoomX })
	s := tc.line("pie", 10, 20)
	s.Cartesian = false

	tc.press(100, 100, 0)
	tc.move(200, 100)
	if _, ok := tc.chart.Pointer().SelectionMarker(); ok {
		t.Error("marker on a chart without cartesian series")
	}
}

func TestPanning(t *testing.T) {
	tests := []struct {
		name     string
		zoom     ZoomType
		panKey   KeyModifiers
		mods     KeyModifiers
		wantPans int
		marker   bool
	}{
		{"panning without zoom", ZoomNone, 0, 0, 1, false},
		{"zoom wins without pan key", ZoomX, ModShift, 0, 0, true},
		{"pan key switches to pan", ZoomX, ModShift, ModShift, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestChart(t, func(o *Options) {
				o.ZoomType = tt.zoom
				o.PanKey = tt.panKey
				o.Panning = PanOptions{Enabled: true}
			})
			tc.line("a", 10, 20, 30)

			tc.press(100, 100, tt.mods)
			tc.chart.Dispatch(&RawEvent{Kind: KindMouseMove, PageX: 150, PageY: 100, Modifiers: tt.mods})
			if tc.zoomer.pans != tt.wantPans {
				t.Errorf("pans = %d, want %d", tc.zoomer.pans, tt.wantPans)
			}
			if _, ok := tc.chart.Pointer().SelectionMarker(); ok != tt.marker {
				t.Errorf("marker = %v, want %v", ok, tt.marker)
			}
		})
	}
}

func TestAxisZoomerPan(t *testing.T) {
	a := NewLinearAxis(AxisConfig{Horizontal: true, Plot: Rect{Width: 400, Height: 300}, Max: 100, DataMin: -50, DataMax: 150})
	z := AxisZoomer{}

	if !z.Pan(a, 200, 160) {
		t.Fatal("Pan = false, want true")
	}
	if ext := a.Extremes(); ext.Min != 10 || ext.Max != 110 {
		t.Errorf("extremes = [%v, %v], want [10, 110]", ext.Min, ext.Max)
	}

	b := NewLinearAxis(AxisConfig{Horizontal: true, Plot: Rect{Width: 400, Height: 300}, Max: 100})
	if z.Pan(b, 200, 160) {
		t.Error("Pan beyond the data range = true, want false")
	}
	if ext := b.Extremes(); ext.Min != 0 || ext.Max != 100 {
		t.Errorf("extremes = [%v, %v], want unchanged", ext.Min, ext.Max)
	}
}

func TestAxisZoomerAnimatedZoom(t *testing.T) {
	tc := newTestChart(t, nil)
	z := AxisZoomer{}
	z.Zoom(SelectionRegion{XAxis: []AxisRange{{Axis: tc.x, Min: 20, Max: 40}}}, true)
	if !tc.x.Animating() {
		t.Fatal("axis not animating")
	}
	tc.advance(100 * time.Millisecond)
	if ext := tc.x.Extremes(); ext.Min == 0 || ext.Min == 20 {
		t.Errorf("Min = %v, want between 0 and 20 mid-tween", ext.Min)
	}
	tc.advance(200 * time.Millisecond)
	if ext := tc.x.Extremes(); ext.Min != 20 || ext.Max != 40 {
		t.Errorf("extremes = [%v, %v], want [20, 40]", ext.Min, ext.Max)
	}
	if tc.x.Animating() {
		t.Error("axis still animating")
	}
}
