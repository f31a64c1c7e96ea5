package perch

import (
	"slices"
	"testing"
	"time"
)

func TestTooltipMoveSmoothing(t *testing.T) {
	tc := newTestChart(t, func(o *Options) { o.Tooltip.Animation = true })
	tc.line("a", 50, 50, 50)
	tc.move(40, 150)

	tt := tc.chart.Tooltip()
	labels := tt.Labels()
	if len(labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(labels))
	}
	// The first placement of a hidden tooltip is immediate.
	if tt.Moving() {
		t.Fatal("Moving = true after the first refresh")
	}
	x0, y0 := labels[0].X, labels[0].Y

	tt.Move(x0+90, y0+60, 0, 0)
	if l := tt.Labels()[0]; l.X != x0+30 || l.Y != y0+30 {
		t.Errorf("after one step = (%v, %v), want (%v, %v)", l.X, l.Y, x0+30, y0+30)
	}
	if !tt.Moving() {
		t.Fatal("Moving = false, want a scheduled tick")
	}
	tc.advance(32 * time.Millisecond)
	if l := tt.Labels()[0]; l.X != x0+50 || l.Y != y0+45 {
		t.Errorf("after two steps = (%v, %v), want (%v, %v)", l.X, l.Y, x0+50, y0+45)
	}

	tc.advance(time.Second)
	if l := tt.Labels()[0]; l.X != x0+90 || l.Y != y0+60 {
		t.Errorf("settled = (%v, %v), want (%v, %v)", l.X, l.Y, x0+90, y0+60)
	}
	if tt.Moving() {
		t.Error("Moving = true after settling")
	}
}

func TestTooltipHideLastWriteWins(t *testing.T) {
	tc := newTestChart(t, nil)
	tc.line("a", 50, 50, 50)
	tc.move(40, 150)
	tt := tc.chart.Tooltip()

	tt.Hide(500 * time.Millisecond)
	tt.Hide(100 * time.Millisecond)
	tc.advance(99 * time.Millisecond)
	if tt.Hidden() {
		t.Fatal("hidden before the replacing delay elapsed")
	}
	tc.advance(time.Millisecond)
	if !tt.Hidden() {
		t.Fatal("not hidden after the replacing delay")
	}
	tc.advance(75 * time.Millisecond)
	if tt.Opacity() <= 0 || tt.Opacity() >= 1 {
		t.Errorf("Opacity = %v mid-fade, want below 1", tt.Opacity())
	}
	tc.advance(150 * time.Millisecond)
	if tt.Opacity() != 0 || tt.Labels() != nil {
		t.Errorf("Opacity = %v labels = %v, want faded out", tt.Opacity(), tt.Labels())
	}
	if n := tc.rt.Scheduler().Pending(); n != 0 {
		t.Errorf("pending tasks = %d, want 0", n)
	}
}

func TestTooltipRefreshCancelsHide(t *testing.T) {
	tc := newTestChart(t, nil)
	s := tc.line("a", 50, 50, 50)
	tc.move(40, 150)
	tt := tc.chart.Tooltip()

	tt.Hide(100 * time.Millisecond)
	tt.Refresh([]*Point{s.Points()[2]}, nil)
	tc.advance(200 * time.Millisecond)
	if tt.Hidden() || tt.Opacity() != 1 {
		t.Errorf("Hidden = %v Opacity = %v, want shown", tt.Hidden(), tt.Opacity())
	}
}

func TestTooltipHideZeroDelay(t *testing.T) {
	tc := newTestChart(t, nil)
	tc.line("a", 50, 50, 50)
	tc.move(40, 150)
	tt := tc.chart.Tooltip()

	tt.Hide(0)
	if !tt.Hidden() || tt.Opacity() != 0 {
		t.Errorf("Hidden = %v Opacity = %v, want hidden at once", tt.Hidden(), tt.Opacity())
	}
}

func TestTooltipFormatter(t *testing.T) {
	tests := []struct {
		name      string
		format    Formatter
		wantShown bool
		wantText  string
	}{
		{"default", nil, true, "10\na: 20"},
		{"custom", func(ctx LabelContext) []string { return []string{ctx.Series + "@" + ctx.Key} }, true, "a@10"},
		{"nil hides", func(LabelContext) []string { return nil }, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestChart(t, func(o *Options) { o.Tooltip.Formatter = tt.format })
			tc.line("a", 10, 20, 30)
			tc.move(40, 240)

			labels := tc.chart.Tooltip().Labels()
			if shown := len(labels) == 1; shown != tt.wantShown {
				t.Fatalf("shown = %v, want %v", shown, tt.wantShown)
			}
			if tt.wantShown && labels[0].Text != tt.wantText {
				t.Errorf("Text = %q, want %q", labels[0].Text, tt.wantText)
			}
		})
	}
}

func TestTooltipPositioner(t *testing.T) {
	var gotW, gotH float64
	tc := newTestChart(t, func(o *Options) {
		o.Tooltip.Positioner = func(w, h float64, _ AnchorPoint) Vec2 {
			gotW, gotH = w, h
			return Vec2{X: 7.4, Y: 9.6}
		}
	})
	tc.line("a", 10, 20, 30)
	tc.move(40, 240)

	l := tc.chart.Tooltip().Labels()[0]
	if l.X != 7 || l.Y != 10 {
		t.Errorf("position = (%v, %v), want (7, 10)", l.X, l.Y)
	}
	// "a: 20" is five 7px cells plus 8px padding on each side.
	if gotW != 51 || gotH != 46 {
		t.Errorf("box = %vx%v, want 51x46", gotW, gotH)
	}
}

func TestTooltipOutsidePlotHides(t *testing.T) {
	tc := newTestChart(t, nil)
	s := tc.chart.AddSeries("a")
	p := tc.addPoint(s, 50, 50)
	p.PlotY = -20

	tc.chart.Tooltip().Refresh([]*Point{p}, nil)
	if !tc.chart.Tooltip().Hidden() {
		t.Error("tooltip shown for a point above the plot")
	}
}

func TestSplitTooltipLabelsDoNotOverlap(t *testing.T) {
	tc := newTestChart(t, func(o *Options) { o.Tooltip.Split = true })
	for _, v := range []struct {
		name string
		y    float64
	}{{"a", 20}, {"b", 50}, {"c", 52}} {
		tc.addPoint(tc.chart.AddSeries(v.name), 50, v.y)
	}
	tc.move(200, 150)

	labels := tc.chart.Tooltip().Labels()
	if len(labels) != 4 {
		t.Fatalf("labels = %d, want header plus three", len(labels))
	}
	if !labels[0].Header || labels[0].Text != "50" {
		t.Errorf("first label = %+v, want the header", labels[0])
	}
	if labels[0].X != 185 || labels[0].Y != 284 {
		t.Errorf("header at (%v, %v), want (185, 284)", labels[0].X, labels[0].Y)
	}
	for _, l := range labels[1:] {
		// Left of the anchor: 200 - 51 - 16.
		if l.X != 133 {
			t.Errorf("%q X = %v, want 133", l.Text, l.X)
		}
	}

	byY := slices.Clone(labels)
	slices.SortFunc(byY, func(a, b Label) int { return int(a.Y - b.Y) })
	for i := 1; i < len(byY); i++ {
		if prev := byY[i-1]; prev.Y+prev.Height > byY[i].Y {
			t.Errorf("%q [%v, %v) overlaps %q at %v", prev.Text, prev.Y, prev.Y+prev.Height, byY[i].Text, byY[i].Y)
		}
	}
	if got := []float64{labels[1].Y, labels[2].Y, labels[3].Y}; !slices.Equal(got, []float64{224, 147, 115}) {
		t.Errorf("point label Y = %v, want [224 147 115]", got)
	}
}

func TestSplitTooltipRealignsRight(t *testing.T) {
	tc := newTestChart(t, func(o *Options) { o.Tooltip.Split = true })
	s := tc.chart.AddSeries("a")
	tc.addPoint(s, 5, 50)
	tc.move(20, 150)

	labels := tc.chart.Tooltip().Labels()
	if len(labels) != 2 {
		t.Fatalf("labels = %d, want 2", len(labels))
	}
	// The one-cell header "5" is 23px wide and centered on x=20.
	if labels[0].X != 9 {
		t.Errorf("header X = %v, want 9", labels[0].X)
	}
	// No room on the left of x=20, so the box sits right of the anchor.
	if labels[1].X != 36 {
		t.Errorf("point X = %v, want 36", labels[1].X)
	}
}

func TestTooltipDestroy(t *testing.T) {
	tc := newTestChart(t, func(o *Options) { o.Tooltip.Animation = true })
	tc.line("a", 50, 50, 50)
	tc.move(40, 150)
	tt := tc.chart.Tooltip()
	tt.Move(300, 200, 0, 0)
	tt.Hide(-1)

	tt.Destroy()
	tt.Destroy()
	if !tt.Destroyed() || tt.Labels() != nil {
		t.Errorf("Destroyed = %v labels = %v", tt.Destroyed(), tt.Labels())
	}
	if n := tc.rt.Scheduler().Pending(); n != 0 {
		t.Errorf("pending tasks = %d, want 0", n)
	}
	tt.Refresh(tc.chart.SeriesList()[0].Points(), nil)
	if !tt.Hidden() {
		t.Error("destroyed tooltip refreshed")
	}
}
