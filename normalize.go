package perch

import "math"

// PointerEvent is a raw event translated into chart coordinates. It is
// created fresh for every dispatch and never stored.
type PointerEvent struct {
	ChartX, ChartY float64
	Raw            *RawEvent
	// Touches holds every finger of a touch event in chart coordinates.
	Touches []Vec2
}

// Kind returns the raw event kind, or KindMouseMove for synthetic events.
func (e *PointerEvent) Kind() EventKind {
	if e == nil || e.Raw == nil {
		return KindMouseMove
	}
	return e.Raw.Kind
}

// roundHalfUp rounds .5 towards positive infinity like browser pixel math.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Normalize converts raw into chart coordinates relative to off. A nil
// offset leaves page coordinates untouched apart from rounding.
func Normalize(raw *RawEvent, off *Offset) PointerEvent {
	o := Offset{ScaleX: 1, ScaleY: 1}
	if off != nil {
		o = *off
		if o.ScaleX == 0 {
			o.ScaleX = 1
		}
		if o.ScaleY == 0 {
			o.ScaleY = 1
		}
	}
	toChart := func(px, py float64) Vec2 {
		return Vec2{
			X: roundHalfUp((px - o.Left) / o.ScaleX),
			Y: roundHalfUp((py - o.Top) / o.ScaleY),
		}
	}

	px, py := raw.PageX, raw.PageY
	switch {
	case len(raw.Touches) > 0:
		px, py = raw.Touches[0].PageX, raw.Touches[0].PageY
	case len(raw.ChangedTouches) > 0:
		px, py = raw.ChangedTouches[0].PageX, raw.ChangedTouches[0].PageY
	}
	at := toChart(px, py)
	e := PointerEvent{ChartX: at.X, ChartY: at.Y, Raw: raw}
	if len(raw.Touches) > 0 {
		e.Touches = make([]Vec2, len(raw.Touches))
		for i, t := range raw.Touches {
			e.Touches[i] = toChart(t.PageX, t.PageY)
		}
	}
	return e
}

// Normalize converts raw into the chart's coordinates, looking the container
// offset up once and caching it until InvalidateOffset.
func (p *Pointer) Normalize(raw *RawEvent) PointerEvent {
	return Normalize(raw, p.chartOffset())
}

// InvalidateOffset drops the cached container offset.
func (p *Pointer) InvalidateOffset() {
	p.offset = nil
}

func (p *Pointer) chartOffset() *Offset {
	if p.offset != nil {
		return p.offset
	}
	if p.chart == nil || p.chart.offsets == nil {
		return nil
	}
	off, ok := p.chart.offsets.ContainerOffset()
	if !ok {
		return nil
	}
	p.offset = &off
	return p.offset
}
