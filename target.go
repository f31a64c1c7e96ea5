package perch

// EventKind identifies a raw host input event.
type EventKind uint8

const (
	KindMouseDown  EventKind = iota // button pressed over the container
	KindMouseMove                   // pointer moved
	KindMouseUp                     // button released anywhere in the document
	KindClick                       // press and release on the container
	KindMouseLeave                  // pointer left the container
	KindTouchStart                  // finger down on the container
	KindTouchMove                   // finger moved
	KindTouchEnd                    // finger lifted anywhere in the document
	kindCount
)

func (k EventKind) String() string {
	switch k {
	case KindMouseDown:
		return "mousedown"
	case KindMouseMove:
		return "mousemove"
	case KindMouseUp:
		return "mouseup"
	case KindClick:
		return "click"
	case KindMouseLeave:
		return "mouseleave"
	case KindTouchStart:
		return "touchstart"
	case KindTouchMove:
		return "touchmove"
	case KindTouchEnd:
		return "touchend"
	default:
		return "unknown"
	}
}

// IsTouch reports whether the kind belongs to the touch family.
func (k EventKind) IsTouch() bool {
	return k == KindTouchStart || k == KindTouchMove || k == KindTouchEnd
}

// Touch is one finger of a touch event in page coordinates.
type Touch struct {
	ID           int
	PageX, PageY float64
}

// RawEvent is a host input event before normalization.
type RawEvent struct {
	Kind         EventKind
	PageX, PageY float64
	// Touches lists the fingers still on the surface.
	Touches []Touch
	// ChangedTouches lists the fingers that changed in this event.
	ChangedTouches []Touch
	Button         MouseButton
	Modifiers      KeyModifiers
	// Target is the element under the pointer, 0 for none.
	Target ElementID
	// RelatedTarget is the element the pointer moved to on mouseleave.
	RelatedTarget ElementID

	defaultPrevented bool
}

// PreventDefault marks the host default action as cancelled.
func (e *RawEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *RawEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// --- Handler registry ---

type handler[F any] struct {
	id uint32
	fn F
}

// handlerList keeps registration order. Removal compacts the slice so
// dispatch never walks dead entries.
type handlerList[F any] struct {
	list []handler[F]
}

func (h *handlerList[F]) add(id uint32, fn F) {
	h.list = append(h.list, handler[F]{id: id, fn: fn})
}

func (h *handlerList[F]) remove(id uint32) {
	for i := range h.list {
		if h.list[i].id == id {
			copy(h.list[i:], h.list[i+1:])
			h.list[len(h.list)-1] = handler[F]{}
			h.list = h.list[:len(h.list)-1]
			return
		}
	}
}

// snapshot copies the list so handlers may unregister during dispatch.
func (h *handlerList[F]) snapshot() []handler[F] {
	if len(h.list) == 0 {
		return nil
	}
	out := make([]handler[F], len(h.list))
	copy(out, h.list)
	return out
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	remove func(id uint32)
}

// Remove unregisters the callback. Calling it more than once, or on a zero
// handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove(h.id)
}

// --- Event targets ---

// Target is a host object raw events are dispatched to: a chart container
// or the shared document.
type Target struct {
	handlers [kindCount]handlerList[func(*RawEvent)]
	nextID   uint32
}

// NewTarget creates an event target with no listeners.
func NewTarget() *Target {
	return &Target{}
}

// Listen registers fn for events of the given kind.
func (t *Target) Listen(kind EventKind, fn func(*RawEvent)) CallbackHandle {
	t.nextID++
	id := t.nextID
	t.handlers[kind].add(id, fn)
	return CallbackHandle{id: id, remove: func(id uint32) { t.handlers[kind].remove(id) }}
}

// ListenerCount returns the number of listeners bound for kind.
func (t *Target) ListenerCount(kind EventKind) int {
	return len(t.handlers[kind].list)
}

// Dispatch delivers e to every listener of its kind in registration order.
func (t *Target) Dispatch(e *RawEvent) {
	if e == nil || e.Kind >= kindCount {
		return
	}
	for _, h := range t.handlers[e.Kind].snapshot() {
		h.fn(e)
	}
}

// Offset is a container's position in page coordinates plus the scale
// applied by the host (1 when unscaled).
type Offset struct {
	Left, Top      float64
	ScaleX, ScaleY float64
}

// OffsetProvider looks up a container's page offset. The lookup may fail,
// for example when the container is detached.
type OffsetProvider interface {
	ContainerOffset() (Offset, bool)
}

// Container is a chart's host element: an event target with a page
// position.
type Container struct {
	Target
	// Bounds is the container's position and size in page coordinates.
	Bounds Rect
	// ScaleX and ScaleY describe host scaling; zero means 1.
	ScaleX, ScaleY float64
	// Detached makes offset lookups fail.
	Detached bool
}

// NewContainer creates a container at the given page bounds.
func NewContainer(bounds Rect) *Container {
	return &Container{Bounds: bounds}
}

// ContainerOffset implements OffsetProvider.
func (c *Container) ContainerOffset() (Offset, bool) {
	if c.Detached {
		return Offset{}, false
	}
	sx, sy := c.ScaleX, c.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return Offset{Left: c.Bounds.X, Top: c.Bounds.Y, ScaleX: sx, ScaleY: sy}, true
}
