package perch

// syntheticEvent is a queued raw event. A nil chart delivers it to the
// document only.
type syntheticEvent struct {
	chart *Chart
	raw   RawEvent
}

func (c *Chart) inject(raw RawEvent) {
	debugCheckDestroyed(c, "inject")
	c.rt.injectQueue = append(c.rt.injectQueue, syntheticEvent{chart: c, raw: raw})
}

// InjectMove queues a mousemove at the given page coordinates. The event
// is dispatched on the next Runtime.Update.
func (c *Chart) InjectMove(x, y float64) {
	c.inject(RawEvent{Kind: KindMouseMove, PageX: x, PageY: y})
}

// InjectPress queues a left-button mousedown at the given page coordinates.
func (c *Chart) InjectPress(x, y float64, mods KeyModifiers) {
	c.inject(RawEvent{Kind: KindMouseDown, PageX: x, PageY: y, Modifiers: mods})
}

// InjectRelease queues a mouseup at the given page coordinates.
func (c *Chart) InjectRelease(x, y float64) {
	c.inject(RawEvent{Kind: KindMouseUp, PageX: x, PageY: y})
}

// InjectClick queues a press, a release and a click at the same page
// coordinates. Consumes three frames.
func (c *Chart) InjectClick(x, y float64) {
	c.InjectPress(x, y, 0)
	c.InjectRelease(x, y)
	c.inject(RawEvent{Kind: KindClick, PageX: x, PageY: y})
}

// InjectLeave queues a mouseleave of the chart container.
func (c *Chart) InjectLeave() {
	c.inject(RawEvent{Kind: KindMouseLeave})
}

// InjectDrag queues a full drag over frames events: press at
// (fromX, fromY), frames-2 linearly interpolated moves ending at (toX, toY),
// and release there. Minimum frames is 2 (press + release).
func (c *Chart) InjectDrag(fromX, fromY, toX, toY float64, frames int, mods KeyModifiers) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY, mods)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.inject(RawEvent{
			Kind:      KindMouseMove,
			PageX:     fromX + (toX-fromX)*t,
			PageY:     fromY + (toY-fromY)*t,
			Modifiers: mods,
		})
	}
	c.InjectRelease(toX, toY)
}

// InjectTouch queues a touch event with one finger per position, given in
// page coordinates. A touchend lists the lifted fingers as changed touches.
func (c *Chart) InjectTouch(kind EventKind, fingers ...Vec2) {
	raw := RawEvent{Kind: kind}
	touches := make([]Touch, len(fingers))
	for i, f := range fingers {
		touches[i] = Touch{ID: i, PageX: f.X, PageY: f.Y}
	}
	if kind == KindTouchEnd {
		raw.ChangedTouches = touches
	} else {
		raw.Touches = touches
		raw.ChangedTouches = touches
	}
	c.inject(raw)
}

// InjectPinch queues a two-finger pinch: touchstart at from, interpolated
// touchmoves over frames-2 frames ending at to, and a touchend.
func (c *Chart) InjectPinch(from, to [2]Vec2, frames int) {
	if frames < 3 {
		frames = 3
	}
	c.InjectTouch(KindTouchStart, from[0], from[1])
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		lerp := func(a, b Vec2) Vec2 {
			return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		}
		c.InjectTouch(KindTouchMove, lerp(from[0], to[0]), lerp(from[1], to[1]))
	}
	c.InjectTouch(KindTouchEnd, to[0], to[1])
}

// QueuedEvents returns the number of injected events not yet dispatched.
func (rt *Runtime) QueuedEvents() int {
	return len(rt.injectQueue)
}

// processInjected pops one event from the inject queue and dispatches it.
// Returns true if an event was consumed; hosts skip real input that frame.
func (rt *Runtime) processInjected() bool {
	if len(rt.injectQueue) == 0 {
		return false
	}
	ev := rt.injectQueue[0]
	copy(rt.injectQueue, rt.injectQueue[1:])
	rt.injectQueue = rt.injectQueue[:len(rt.injectQueue)-1]

	raw := ev.raw
	if ev.chart == nil || ev.chart.destroyed {
		rt.document.Dispatch(&raw)
		return true
	}
	switch raw.Kind {
	case KindMouseUp, KindTouchEnd:
		rt.document.Dispatch(&raw)
	default:
		ev.chart.Dispatch(&raw)
	}
	return true
}
