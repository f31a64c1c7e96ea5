package perch

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DestroyedChartPanics(t *testing.T) {
	tc := newTestChart(t, nil)
	tc.rt.SetDebugMode(true)
	tc.chart.Destroy()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on inject into destroyed chart, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "destroyed chart") {
			t.Errorf("panic message should mention 'destroyed chart', got: %s", msg)
		}
	}()

	tc.chart.InjectMove(10, 10)
}

func TestReleaseMode_DestroyedChartNoOp(t *testing.T) {
	tc := newTestChart(t, nil)
	tc.chart.Destroy()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode should not panic on destroyed chart, got: %v", r)
		}
	}()

	tc.chart.InjectMove(10, 10)
	tc.advance(frame)
}

func TestDebugMode_LogsTransitions(t *testing.T) {
	tc := newTestChart(t, nil)
	tc.line("a", 50, 50, 50)
	var buf bytes.Buffer
	tc.rt.SetLogOutput(&buf)
	tc.rt.SetDebugMode(true)

	tc.move(40, 150)
	tc.chart.Reflow(500, 300)
	tc.advance(100 * time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"[perch] hover chart 0 -> 1",
		"hover point",
		"tooltip refresh (1 points)",
		"reflow to 500x300",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
}

func TestReleaseMode_Silent(t *testing.T) {
	tc := newTestChart(t, nil)
	tc.line("a", 50, 50, 50)
	var buf bytes.Buffer
	tc.rt.SetLogOutput(&buf)

	tc.move(40, 150)
	if buf.Len() != 0 {
		t.Errorf("expected no output without debug mode, got: %q", buf.String())
	}
}

func TestDebugMode_BacklogWarning(t *testing.T) {
	rt := NewRuntime()
	rt.SetDebugMode(true)
	rt.SetLogOutput(nil)

	// Capture stderr output.
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	for i := 0; i < debugMaxPendingTasks+1; i++ {
		rt.Scheduler().After(time.Hour, func() {})
	}
	rt.Update(frame)

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if !strings.Contains(output, "warning: 65 pending tasks") {
		t.Errorf("expected backlog warning in stderr, got: %q", output)
	}
}

func TestDebugStats(t *testing.T) {
	rt := NewRuntime()
	if got := rt.DebugStats(); got != (DebugStats{}) {
		t.Errorf("empty runtime stats = %+v, want zero", got)
	}

	a := NewChart(rt, ChartConfig{Container: NewContainer(Rect{Width: 400, Height: 300})})
	NewChart(rt, ChartConfig{Container: NewContainer(Rect{X: 400, Width: 400, Height: 300})})
	a.InjectMove(10, 10)
	a.Reflow(300, 300)

	got := rt.DebugStats()
	want := DebugStats{Charts: 2, PendingTasks: 1, DocumentListeners: 2, QueuedEvents: 1}
	if got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}

	rt.Update(frame)
	if got := rt.DebugStats(); got.HoverChart != a.ID() {
		t.Errorf("HoverChart = %d, want %d", got.HoverChart, a.ID())
	}
}
