package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/perch"
)

// Frame is one tick of polled input state in screen coordinates.
type Frame struct {
	CursorX, CursorY float64
	// Pressed is the mouse button held this frame, valid when Down is set.
	Pressed   perch.MouseButton
	Down      bool
	Touches   []perch.Touch
	Modifiers perch.KeyModifiers
}

// Input turns polled frames into the raw events a browser would deliver:
// container events go to the chart under the pointer, releases go to the
// document.
type Input struct {
	rt *perch.Runtime

	prev    Frame
	started bool

	// over is the chart the cursor was last over.
	over *perch.Chart
	// pressed is the chart that received the last mousedown.
	pressed *perch.Chart
	// touched is the chart that received the first touchstart.
	touched *perch.Chart

	touchBuf []ebiten.TouchID
	scenes   map[perch.ChartID]perch.SceneFacade
}

// NewInput creates an Input dispatching into rt's charts.
func NewInput(rt *perch.Runtime) *Input {
	return &Input{rt: rt, scenes: make(map[perch.ChartID]perch.SceneFacade)}
}

// SetScene makes mouse events on chart id carry the element of scene under
// the cursor as their target. A nil scene removes it.
func (in *Input) SetScene(id perch.ChartID, scene perch.SceneFacade) {
	if scene == nil {
		delete(in.scenes, id)
		return
	}
	in.scenes[id] = scene
}

// target returns the scene element of c under the page point (x, y).
func (in *Input) target(c *perch.Chart, x, y float64) perch.ElementID {
	scene := in.scenes[c.ID()]
	ct := c.Container()
	if scene == nil || ct == nil {
		return 0
	}
	return scene.ElementAt(x-ct.Bounds.X, y-ct.Bounds.Y)
}

// Poll reads the current ebiten mouse, touch and keyboard state and
// dispatches the resulting events. Call it once per Update.
func (in *Input) Poll() {
	in.Process(in.read())
}

func (in *Input) read() Frame {
	mx, my := ebiten.CursorPosition()
	f := Frame{CursorX: float64(mx), CursorY: float64(my), Modifiers: readModifiers()}

	// Keep the button of an ongoing press so it does not change mid-drag.
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		f.Down = true
		switch {
		case in.prev.Down:
			f.Pressed = in.prev.Pressed
		case left:
			f.Pressed = perch.MouseButtonLeft
		case right:
			f.Pressed = perch.MouseButtonRight
		default:
			f.Pressed = perch.MouseButtonMiddle
		}
	}

	in.touchBuf = ebiten.AppendTouchIDs(in.touchBuf[:0])
	for _, id := range in.touchBuf {
		tx, ty := ebiten.TouchPosition(id)
		f.Touches = append(f.Touches, perch.Touch{ID: int(id), PageX: float64(tx), PageY: float64(ty)})
	}
	return f
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() perch.KeyModifiers {
	var mods perch.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= perch.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= perch.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= perch.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= perch.ModMeta
	}
	return mods
}

// Process dispatches the events implied by the change from the previous
// frame to f.
func (in *Input) Process(f Frame) {
	in.processMouse(f)
	in.processTouches(f)
	in.prev = f
	in.started = true
}

// ChartAt returns the topmost live chart whose container contains the page
// point (x, y).
func (in *Input) ChartAt(x, y float64) *perch.Chart {
	charts := in.rt.Charts()
	for i := len(charts) - 1; i >= 0; i-- {
		c := charts[i]
		if ct := c.Container(); ct != nil && ct.Bounds.Contains(x, y) {
			return c
		}
	}
	return nil
}

// --- Mouse ---

func (in *Input) processMouse(f Frame) {
	x, y := f.CursorX, f.CursorY
	chart := in.ChartAt(x, y)

	if !in.started || x != in.prev.CursorX || y != in.prev.CursorY {
		if in.over != nil && in.over != chart && !in.over.Destroyed() {
			in.over.Dispatch(&perch.RawEvent{Kind: perch.KindMouseLeave, PageX: x, PageY: y, Modifiers: f.Modifiers})
		}
		move := &perch.RawEvent{Kind: perch.KindMouseMove, PageX: x, PageY: y, Modifiers: f.Modifiers}
		if chart != nil {
			move.Target = in.target(chart, x, y)
			chart.Dispatch(move)
		} else {
			in.rt.Document().Dispatch(move)
		}
	}
	in.over = chart

	switch {
	case f.Down && !in.prev.Down:
		in.pressed = chart
		if chart != nil {
			chart.Dispatch(&perch.RawEvent{Kind: perch.KindMouseDown, PageX: x, PageY: y, Button: f.Pressed, Modifiers: f.Modifiers, Target: in.target(chart, x, y)})
		}
	case !f.Down && in.prev.Down:
		in.rt.Document().Dispatch(&perch.RawEvent{Kind: perch.KindMouseUp, PageX: x, PageY: y, Button: in.prev.Pressed, Modifiers: f.Modifiers})
		if chart != nil && chart == in.pressed {
			chart.Dispatch(&perch.RawEvent{Kind: perch.KindClick, PageX: x, PageY: y, Button: in.prev.Pressed, Modifiers: f.Modifiers, Target: in.target(chart, x, y)})
		}
		in.pressed = nil
	}
}

// --- Touch ---

func (in *Input) processTouches(f Frame) {
	prev := in.prev.Touches
	cur := f.Touches

	var ended []perch.Touch
	for _, t := range prev {
		if !hasTouch(cur, t.ID) {
			ended = append(ended, t)
		}
	}
	if len(ended) > 0 {
		in.rt.Document().Dispatch(&perch.RawEvent{
			Kind:           perch.KindTouchEnd,
			Touches:        cur,
			ChangedTouches: ended,
			Modifiers:      f.Modifiers,
		})
		if len(cur) == 0 {
			in.touched = nil
		}
	}
	if len(cur) == 0 {
		return
	}

	added := false
	for _, t := range cur {
		if !hasTouch(prev, t.ID) {
			added = true
			break
		}
	}
	switch {
	case added:
		if in.touched == nil || in.touched.Destroyed() {
			in.touched = in.ChartAt(cur[0].PageX, cur[0].PageY)
		}
		if in.touched != nil {
			ev := touchEvent(perch.KindTouchStart, cur, f.Modifiers)
			ev.Target = in.target(in.touched, ev.PageX, ev.PageY)
			in.touched.Dispatch(ev)
		}
	case touchesMoved(prev, cur) && in.touched != nil:
		ev := touchEvent(perch.KindTouchMove, cur, f.Modifiers)
		ev.Target = in.target(in.touched, ev.PageX, ev.PageY)
		in.touched.Dispatch(ev)
	}
}

func touchEvent(kind perch.EventKind, touches []perch.Touch, mods perch.KeyModifiers) *perch.RawEvent {
	return &perch.RawEvent{
		Kind:           kind,
		PageX:          touches[0].PageX,
		PageY:          touches[0].PageY,
		Touches:        touches,
		ChangedTouches: touches,
		Modifiers:      mods,
	}
}

func hasTouch(touches []perch.Touch, id int) bool {
	for _, t := range touches {
		if t.ID == id {
			return true
		}
	}
	return false
}

func touchesMoved(prev, cur []perch.Touch) bool {
	for _, t := range cur {
		for _, p := range prev {
			if p.ID == t.ID && (p.PageX != t.PageX || p.PageY != t.PageY) {
				return true
			}
		}
	}
	return false
}
