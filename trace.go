package perch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTrace is returned when a trace has no steps.
var ErrEmptyTrace = errors.New("trace has no steps")

// TraceStep is a single action of a scripted input trace. Coordinates are
// page coordinates.
type TraceStep struct {
	Action string `json:"action" toml:"action"`
	// Chart indexes the runtime's charts; 0 is the first chart.
	Chart int     `json:"chart,omitempty" toml:"chart"`
	Label string  `json:"label,omitempty" toml:"label"`
	X     float64 `json:"x,omitempty" toml:"x"`
	Y     float64 `json:"y,omitempty" toml:"y"`
	FromX float64 `json:"fromX,omitempty" toml:"from_x"`
	FromY float64 `json:"fromY,omitempty" toml:"from_y"`
	ToX   float64 `json:"toX,omitempty" toml:"to_x"`
	ToY   float64 `json:"toY,omitempty" toml:"to_y"`
	// Fingers are the touch positions of touch and pinch steps. A pinch
	// lists the two start positions followed by the two end positions.
	Fingers []Vec2 `json:"fingers,omitempty" toml:"fingers"`
	Frames  int    `json:"frames,omitempty" toml:"frames"`
	// Mods is a "+" separated modifier list, e.g. "shift+ctrl".
	Mods string `json:"mods,omitempty" toml:"mods"`
	// Width and Height are the new chart size of a reflow step.
	Width  float64 `json:"width,omitempty" toml:"width"`
	Height float64 `json:"height,omitempty" toml:"height"`
}

// Trace is the top-level structure of a trace file.
type Trace struct {
	Steps []TraceStep `json:"steps" toml:"steps"`
}

// TraceSnapshot records the interaction state at a "snapshot" step.
type TraceSnapshot struct {
	Label          string
	HoverPoint     PointID
	HoverSeries    SeriesID
	HoverPoints    []PointID
	TooltipVisible bool
	Labels         []Label
	Selection      Rect
	HasSelection   bool
}

// TraceRunner sequences injected input across frames. Attach it with
// Runtime.SetTraceRunner; it takes one step per Runtime.Update.
type TraceRunner struct {
	steps     []TraceStep
	cursor    int
	waitCount int
	done      bool
	snapshots []TraceSnapshot
	err       error
}

// LoadTrace parses a JSON trace.
func LoadTrace(data []byte) (*TraceRunner, error) {
	var tr Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}
	return NewTraceRunner(tr)
}

// NewTraceRunner validates tr and returns a runner for it.
func NewTraceRunner(tr Trace) (*TraceRunner, error) {
	if len(tr.Steps) == 0 {
		return nil, fmt.Errorf("parse trace: %w", ErrEmptyTrace)
	}
	for i, st := range tr.Steps {
		switch st.Action {
		case "move", "press", "release", "click", "drag", "leave", "wait", "snapshot", "reflow":
		case "touchstart", "touchmove", "touchend":
			if len(st.Fingers) == 0 {
				return nil, fmt.Errorf("parse trace: step %d: %s without fingers", i, st.Action)
			}
		case "pinch":
			if len(st.Fingers) != 4 {
				return nil, fmt.Errorf("parse trace: step %d: pinch needs 4 fingers, got %d", i, len(st.Fingers))
			}
		default:
			return nil, fmt.Errorf("parse trace: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TraceRunner{steps: tr.Steps}, nil
}

// SetTraceRunner attaches r to the runtime. A nil runner detaches.
func (rt *Runtime) SetTraceRunner(r *TraceRunner) {
	rt.traceRunner = r
}

// Done reports whether every step ran and the injected input drained.
func (r *TraceRunner) Done() bool {
	return r.done
}

// Err returns the first step that could not run, e.g. one addressing a
// missing chart.
func (r *TraceRunner) Err() error {
	return r.err
}

// Snapshots returns the states recorded by snapshot steps.
func (r *TraceRunner) Snapshots() []TraceSnapshot {
	return r.snapshots
}

// ParseModifiers converts "shift+ctrl" style lists into KeyModifiers.
// Unknown names are ignored.
func ParseModifiers(s string) KeyModifiers {
	var m KeyModifiers
	for _, part := range strings.Split(strings.ToLower(s), "+") {
		switch strings.TrimSpace(part) {
		case "shift":
			m |= ModShift
		case "ctrl", "control":
			m |= ModCtrl
		case "alt", "option":
			m |= ModAlt
		case "meta", "cmd", "command":
			m |= ModMeta
		}
	}
	return m
}

// step advances the runner by one frame.
func (r *TraceRunner) step(rt *Runtime) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(rt.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if st.Chart < 0 || st.Chart >= len(rt.charts) {
		if r.err == nil {
			r.err = fmt.Errorf("trace step %d: no chart %d", r.cursor-1, st.Chart)
		}
	} else {
		r.run(rt.charts[st.Chart], st)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(rt.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TraceRunner) run(c *Chart, st TraceStep) {
	mods := ParseModifiers(st.Mods)
	switch st.Action {
	case "move":
		c.inject(RawEvent{Kind: KindMouseMove, PageX: st.X, PageY: st.Y, Modifiers: mods})
	case "press":
		c.InjectPress(st.X, st.Y, mods)
	case "release":
		c.InjectRelease(st.X, st.Y)
	case "click":
		c.InjectClick(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, mods)
	case "leave":
		c.InjectLeave()
	case "touchstart":
		c.InjectTouch(KindTouchStart, st.Fingers...)
	case "touchmove":
		c.InjectTouch(KindTouchMove, st.Fingers...)
	case "touchend":
		c.InjectTouch(KindTouchEnd, st.Fingers...)
	case "pinch":
		f := st.Fingers
		c.InjectPinch([2]Vec2{f[0], f[1]}, [2]Vec2{f[2], f[3]}, st.Frames)
	case "reflow":
		c.Reflow(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		r.snapshots = append(r.snapshots, snapshotOf(c, st.Label))
	}
}

func snapshotOf(c *Chart, label string) TraceSnapshot {
	p := c.pointer
	s := TraceSnapshot{
		Label:          label,
		HoverPoint:     p.hoverPoint,
		HoverSeries:    p.hoverSeries,
		HoverPoints:    append([]PointID(nil), p.hoverPoints...),
		TooltipVisible: !c.tooltip.Hidden(),
		Labels:         c.tooltip.Labels(),
	}
	s.Selection, s.HasSelection = p.SelectionMarker()
	return s
}
