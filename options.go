package perch

import "time"

// Tunables holds the empirically tuned constants of the interaction layer.
// They are defaults, not invariants; hosts may override any of them.
type Tunables struct {
	// DragThreshold is the distance in pixels a pressed pointer must travel
	// before a drag is interpreted as zoom or pan.
	DragThreshold float64
	// MoveTick is the interval of the tooltip smoothing loop.
	MoveTick time.Duration
	// HideDelay is the default delay before a hidden tooltip fades out.
	HideDelay time.Duration
	// FadeDuration is the length of the tooltip fade-out tween.
	FadeDuration time.Duration
	// ReflowDebounce coalesces rapid resize requests.
	ReflowDebounce time.Duration
	// TouchJitter is the minimum single-touch travel before a touchmove
	// is handled.
	TouchJitter float64
	// PinchMinSpread is the minimum finger spread on an axis for a pinch
	// to scale that axis.
	PinchMinSpread float64
}

// DefaultTunables returns the stock tunables.
func DefaultTunables() Tunables {
	return Tunables{
		DragThreshold:  10,
		MoveTick:       32 * time.Millisecond,
		HideDelay:      500 * time.Millisecond,
		FadeDuration:   150 * time.Millisecond,
		ReflowDebounce: 100 * time.Millisecond,
		TouchJitter:    4,
		PinchMinSpread: 20,
	}
}

// PanOptions configures drag panning.
type PanOptions struct {
	Enabled bool
	// Type selects the panned axes. ZoomNone is treated as ZoomX.
	Type ZoomType
}

// Positioner overrides the default tooltip placement.
type Positioner func(boxWidth, boxHeight float64, p AnchorPoint) Vec2

// Formatter builds tooltip labels. The first entry is the header; one entry
// per point follows. A nil result hides the tooltip.
type Formatter func(ctx LabelContext) []string

// TooltipOptions configures the tooltip.
type TooltipOptions struct {
	Enabled bool
	// Shared aggregates all series' points at the hovered x value.
	Shared bool
	// Split renders one box per point plus a header box. Implies Shared.
	Split bool
	// FollowPointer anchors the tooltip at the pointer instead of the point.
	FollowPointer bool
	// FollowTouchMove moves the tooltip with a single dragging finger.
	FollowTouchMove bool
	// Animation enables the smoothing move loop.
	Animation bool
	// Distance is the gap between the anchor and the box.
	Distance float64
	// Padding is added around the measured label text.
	Padding float64
	// HideDelay overrides Tunables.HideDelay when non-zero.
	HideDelay  time.Duration
	Positioner Positioner
	Formatter  Formatter
}

// Options configures a chart's interaction behavior.
type Options struct {
	// ZoomType enables drag zooming along the given axes.
	ZoomType ZoomType
	// PinchType enables pinch zooming. ZoomNone falls back to ZoomType.
	PinchType ZoomType
	// PanKey is the modifier that switches a zoom drag into a pan.
	PanKey  KeyModifiers
	Panning PanOptions
	// Inverted swaps the x and y axes.
	Inverted bool
	Tooltip  TooltipOptions
	Tunables Tunables
}

// DefaultOptions returns options with the library defaults.
func DefaultOptions() Options {
	return Options{
		Tooltip: TooltipOptions{
			Enabled:         true,
			FollowTouchMove: true,
			Animation:       true,
			Distance:        16,
			Padding:         8,
		},
		Tunables: DefaultTunables(),
	}
}

func (o *Options) hideDelay() time.Duration {
	if o.Tooltip.HideDelay > 0 {
		return o.Tooltip.HideDelay
	}
	return o.Tunables.HideDelay
}

func (o *Options) shared() bool {
	return o.Tooltip.Shared || o.Tooltip.Split
}
