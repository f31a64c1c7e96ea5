package perch

import "math"

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Size is a measured width and height.
type Size struct {
	Width, Height float64
}

// State is the visual state of a series or point.
type State uint8

const (
	StateNormal   State = iota // default appearance
	StateHover                 // under the pointer
	StateInactive              // dimmed while another series is hovered
	StateSelect                // selected by click
)

func (s State) String() string {
	switch s {
	case StateHover:
		return "hover"
	case StateInactive:
		return "inactive"
	case StateSelect:
		return "select"
	default:
		return "normal"
	}
}

// EventType identifies a kind of chart interaction event.
type EventType uint8

const (
	EventPointMouseOver  EventType = iota // a point became the hover point
	EventPointMouseOut                    // the hover point was left
	EventSeriesMouseOver                  // a series became the hover series
	EventSeriesMouseOut                   // the hover series was left
	EventPointClick                       // click on a tracked point
	EventSeriesClick                      // click on a tracked series element
	EventChartClick                       // click inside the plot area
	EventSelection                        // drag or pinch selection released
	EventTooltipRefresh                   // tooltip content and position updated
)

func (t EventType) String() string {
	switch t {
	case EventPointMouseOver:
		return "point.mouseOver"
	case EventPointMouseOut:
		return "point.mouseOut"
	case EventSeriesMouseOver:
		return "series.mouseOver"
	case EventSeriesMouseOut:
		return "series.mouseOut"
	case EventPointClick:
		return "point.click"
	case EventSeriesClick:
		return "series.click"
	case EventChartClick:
		return "chart.click"
	case EventSelection:
		return "selection"
	case EventTooltipRefresh:
		return "tooltip.refresh"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// ZoomType selects which axes a drag or pinch zooms.
type ZoomType uint8

const (
	ZoomNone ZoomType = iota
	ZoomX
	ZoomY
	ZoomXY
)

// HasX reports whether the zoom type includes the x axis.
func (z ZoomType) HasX() bool { return z == ZoomX || z == ZoomXY }

// HasY reports whether the zoom type includes the y axis.
func (z ZoomType) HasY() bool { return z == ZoomY || z == ZoomXY }

// ParseZoomType converts "x", "y" or "xy" into a ZoomType.
// Anything else yields ZoomNone.
func ParseZoomType(s string) ZoomType {
	switch s {
	case "x":
		return ZoomX
	case "y":
		return ZoomY
	case "xy", "yx":
		return ZoomXY
	default:
		return ZoomNone
	}
}

// NearestBy selects the dimensions used by the nearest-point search.
type NearestBy uint8

const (
	NearestX  NearestBy = iota // only horizontal distance matters
	NearestXY                  // euclidean distance in both dimensions
)

// clamp keeps v within [lo, hi]. When lo > hi, values above lo clamp to hi.
func clamp(v, lo, hi float64) float64 {
	if v > lo {
		if v < hi {
			return v
		}
		return hi
	}
	return lo
}

func isNaN(v float64) bool { return math.IsNaN(v) }
