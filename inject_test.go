package perch

import (
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

func TestInjectClick(t *testing.T) {
	tc := newTestChart(t, nil)

	var clicked *ClickEvent
	tc.chart.OnClick(func(e *ClickEvent) { clicked = e })

	tc.chart.InjectClick(100, 150)
	if n := tc.rt.QueuedEvents(); n != 3 {
		t.Fatalf("expected 3 queued events, got %d", n)
	}

	// Frame 1: press
	tc.advance(frame)
	if n := tc.rt.QueuedEvents(); n != 2 {
		t.Fatalf("expected 2 remaining events after frame 1, got %d", n)
	}
	if !tc.chart.Pointer().MouseIsDown() {
		t.Error("mouse should be down after the press frame")
	}

	// Frame 2: release
	tc.advance(frame)
	if clicked != nil {
		t.Error("click should not fire before the click frame")
	}

	// Frame 3: click
	tc.advance(frame)
	if tc.rt.QueuedEvents() != 0 {
		t.Fatalf("expected empty queue after frame 3, got %d", tc.rt.QueuedEvents())
	}
	if clicked == nil {
		t.Fatal("click should fire on the click frame")
	}
	if v := clicked.XAxis[0].Value; v != 25 {
		t.Errorf("x value = %v, want 25", v)
	}
}

func TestInjectDrag(t *testing.T) {
	tc := newTestChart(t, func(o *Options) { o.ZoomType = ZoomX })
	tc.line("a", 10, 20, 30)

	// Drag from (100,100) to (300,100) over 4 frames:
	// frame 0: press at (100,100)
	// frame 1: move to (200,100)
	// frame 2: move to (300,100)
	// frame 3: release at (300,100)
	tc.chart.InjectDrag(100, 100, 300, 100, 4, 0)
	if n := tc.rt.QueuedEvents(); n != 4 {
		t.Fatalf("expected 4 queued events, got %d", n)
	}

	for i := 0; i < 3; i++ {
		tc.advance(frame)
	}
	if m, ok := tc.chart.Pointer().SelectionMarker(); !ok || m.Width != 200 {
		t.Fatalf("marker = %+v (%v), want width 200 before release", m, ok)
	}
	tc.advance(frame)

	if len(tc.zoomer.zooms) != 1 {
		t.Fatalf("zooms = %d, want 1", len(tc.zoomer.zooms))
	}
	if r := tc.zoomer.zooms[0].XAxis[0]; r.Min != 25 || r.Max != 75 {
		t.Errorf("range = [%v, %v], want [25, 75]", r.Min, r.Max)
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	tc := newTestChart(t, nil)
	tc.chart.InjectDrag(0, 0, 100, 100, 1, 0) // should clamp to 2
	if n := tc.rt.QueuedEvents(); n != 2 {
		t.Fatalf("expected 2 queued events (clamped), got %d", n)
	}
}

func TestInjectQueueOrder(t *testing.T) {
	tc := newTestChart(t, nil)

	tc.chart.InjectPress(10, 20, ModShift)
	tc.chart.InjectMove(30, 40)
	tc.chart.InjectRelease(50, 60)

	q := tc.rt.injectQueue
	if len(q) != 3 {
		t.Fatalf("expected 3 events, got %d", len(q))
	}

	// Verify order: press, move, release.
	if q[0].raw.Kind != KindMouseDown || q[0].raw.PageX != 10 || q[0].raw.Modifiers != ModShift {
		t.Error("first event should be a shift press at (10,20)")
	}
	if q[1].raw.Kind != KindMouseMove || q[1].raw.PageX != 30 {
		t.Error("second event should be move at (30,40)")
	}
	if q[2].raw.Kind != KindMouseUp || q[2].raw.PageX != 50 {
		t.Error("third event should be release at (50,60)")
	}
}

func TestInjectTouch(t *testing.T) {
	tc := newTestChart(t, nil)
	tc.chart.InjectTouch(KindTouchStart, Vec2{X: 1, Y: 2}, Vec2{X: 3, Y: 4})
	tc.chart.InjectTouch(KindTouchEnd, Vec2{X: 1, Y: 2})

	q := tc.rt.injectQueue
	if len(q[0].raw.Touches) != 2 || q[0].raw.Touches[1].PageX != 3 {
		t.Errorf("touchstart touches = %+v", q[0].raw.Touches)
	}
	if len(q[1].raw.Touches) != 0 || len(q[1].raw.ChangedTouches) != 1 {
		t.Errorf("touchend touches = %d changed = %d, want 0 and 1",
			len(q[1].raw.Touches), len(q[1].raw.ChangedTouches))
	}
}

func TestInjectPinch(t *testing.T) {
	tc := newTestChart(t, func(o *Options) { o.ZoomType = ZoomX })
	tc.line("a", 10, 20, 30)

	from := [2]Vec2{{X: 150, Y: 150}, {X: 250, Y: 150}}
	to := [2]Vec2{{X: 100, Y: 150}, {X: 300, Y: 150}}
	tc.chart.InjectPinch(from, to, 4)
	if n := tc.rt.QueuedEvents(); n != 4 {
		t.Fatalf("expected 4 queued events, got %d", n)
	}
	for i := 0; i < 4; i++ {
		tc.advance(frame)
	}
	if len(tc.zoomer.zooms) != 1 || tc.zoomer.animated[0] {
		t.Fatalf("zooms = %d, want one unanimated zoom", len(tc.zoomer.zooms))
	}
	if r := tc.zoomer.zooms[0].XAxis[0]; r.Min != 25 || r.Max != 75 {
		t.Errorf("range = [%v, %v], want [25, 75]", r.Min, r.Max)
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	rt := NewRuntime()
	if rt.processInjected() {
		t.Error("processInjected should return false on an empty queue")
	}
}

func TestInjectAfterDestroyGoesToDocument(t *testing.T) {
	tc := newTestChart(t, nil)
	var docEvents int
	tc.rt.Document().Listen(KindMouseMove, func(*RawEvent) { docEvents++ })

	tc.chart.InjectMove(10, 10)
	tc.chart.Destroy()
	tc.advance(frame)
	if docEvents != 1 {
		t.Errorf("document events = %d, want 1", docEvents)
	}
}
