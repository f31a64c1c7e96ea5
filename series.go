package perch

import "math"

// PointID identifies a point within its chart. Zero means none.
type PointID uint32

// SeriesID identifies a series within its chart. Zero means none.
type SeriesID uint32

// SideHint overrides which side of its anchor a tooltip prefers.
type SideHint uint8

const (
	SideAuto SideHint = iota // derive from value sign and chart inversion
	SideFar                  // below (or right of) the point
	SideNear                 // above (or left of) the point
)

// Point is one data point. Pixel fields are produced by the series
// geometry collaborator; the interaction layer only reads them.
type Point struct {
	ID    PointID
	Index int
	Name  string
	X, Y  float64

	// PlotX and PlotY are pixel offsets from the series' x and y axes.
	// NaN means the point is not plotted.
	PlotX, PlotY float64
	// PlotLow and PlotHigh describe range points when HasRange is set.
	PlotLow, PlotHigh float64
	HasRange          bool
	// ShapeHeight is the height of the drawn shape, used to offset tooltips
	// of stacked shapes on inverted charts.
	ShapeHeight float64

	Null     bool
	Negative bool
	// Outside marks points clipped away from the visible plot area.
	Outside bool

	TooltipSide SideHint
	// TooltipAnchor is an explicit anchor in plot coordinates, e.g. the
	// center of a pie slice.
	TooltipAnchor *Vec2

	State State
	// Selected is toggled by clicks on series with AllowPointSelect.
	Selected bool

	series    SeriesID
	destroyed bool
}

// SeriesID returns the owning series' id.
func (p *Point) SeriesID() SeriesID {
	return p.series
}

// Destroyed reports whether the point was removed from its chart.
func (p *Point) Destroyed() bool {
	return p == nil || p.destroyed
}

func (p *Point) plotted() bool {
	return !math.IsNaN(p.PlotX) && !p.Outside
}

// SeriesTooltip holds per-series tooltip overrides.
type SeriesTooltip struct {
	FollowPointer bool
	// Distance overrides the chart tooltip distance when positive.
	Distance float64
}

// Series is a set of points drawn against one x and one y axis. Create
// series with Chart.AddSeries and adjust the exported fields before the
// first pointer event.
type Series struct {
	ID    SeriesID
	Index int
	Name  string

	// XAxis and YAxis index the chart's axis lists.
	XAxis, YAxis int
	// ZIndex is the z-index of the series' visual group.
	ZIndex int

	Visible             bool
	EnableMouseTracking bool
	StickyTracking      bool
	NoSharedTooltip     bool
	// DirectTouch series identify points by their own shapes (columns, pie
	// slices) instead of proximity.
	DirectTouch bool
	NearestBy   NearestBy
	Cartesian   bool
	// AllowPointSelect toggles point selection on click.
	AllowPointSelect bool

	// LinkedTo makes this series a linked child of another series.
	LinkedTo SeriesID
	// Navigator is a companion series that stays active with this one.
	Navigator SeriesID
	// InactiveDisabled opts the series out of being dimmed.
	InactiveDisabled bool
	// InactiveOtherPoints dims the non-hovered points of an active series.
	InactiveOtherPoints bool

	Tooltip SeriesTooltip
	State   State

	chart     *Chart
	points    []*Point
	kd        *kdNode
	kdDirty   bool
	destroyed bool
}

// Points returns the series' points. The returned slice MUST NOT be mutated.
func (s *Series) Points() []*Point {
	return s.points
}

// Destroyed reports whether the series was removed from its chart.
func (s *Series) Destroyed() bool {
	return s == nil || s.destroyed
}

// AddPoint appends a point with data values (x, y) drawn at pixel offsets
// (plotX, plotY) from the series' axes.
func (s *Series) AddPoint(x, y, plotX, plotY float64) *Point {
	p := &Point{
		Index:  len(s.points),
		X:      x,
		Y:      y,
		PlotX:  plotX,
		PlotY:  plotY,
		series: s.ID,
	}
	if s.chart != nil {
		s.chart.registerPoint(p)
	}
	s.points = append(s.points, p)
	s.kdDirty = true
	return p
}

// RemovePoint destroys p. Any hover reference to it becomes dead.
func (s *Series) RemovePoint(p *Point) {
	for i, q := range s.points {
		if q != p {
			continue
		}
		copy(s.points[i:], s.points[i+1:])
		s.points[len(s.points)-1] = nil
		s.points = s.points[:len(s.points)-1]
		for j := i; j < len(s.points); j++ {
			s.points[j].Index = j
		}
		p.destroyed = true
		if s.chart != nil {
			s.chart.unregisterPoint(p)
		}
		s.kdDirty = true
		return
	}
}

// Invalidate marks the spatial index stale after pixel positions changed.
func (s *Series) Invalidate() {
	s.kdDirty = true
}

// XAxisOf returns the series' x axis or nil.
func (s *Series) XAxisOf() Axis {
	if s.chart == nil {
		return nil
	}
	return s.chart.XAxis(s.XAxis)
}

// YAxisOf returns the series' y axis or nil.
func (s *Series) YAxisOf() Axis {
	if s.chart == nil {
		return nil
	}
	return s.chart.YAxis(s.YAxis)
}

// LinkedSeries returns the series linked to this one.
func (s *Series) LinkedSeries() []*Series {
	if s.chart == nil {
		return nil
	}
	var out []*Series
	for _, o := range s.chart.series {
		if o.LinkedTo == s.ID {
			out = append(out, o)
		}
	}
	return out
}

// SetState changes the series' visual state. With inherit, points that are
// not hovered follow the series into or out of the inactive state.
func (s *Series) SetState(state State, inherit bool) {
	if s.destroyed {
		return
	}
	if state == StateInactive && s.InactiveDisabled {
		state = StateNormal
	}
	if inherit {
		ps := StateNormal
		if state == StateInactive {
			ps = StateInactive
		}
		for _, p := range s.points {
			if p.State != StateHover && p.State != StateSelect {
				s.setPointState(p, ps)
			}
		}
	}
	if s.State == state {
		return
	}
	s.State = state
	if s.chart != nil {
		s.chart.renderer.SeriesState(s, state)
	}
}

// SetAllPointsToState applies state to every point of the series.
func (s *Series) SetAllPointsToState(state State) {
	for _, p := range s.points {
		s.setPointState(p, state)
	}
}

// SetPointState changes one point's visual state.
func (s *Series) SetPointState(p *Point, state State) {
	if p.Destroyed() || p.series != s.ID {
		return
	}
	s.setPointState(p, state)
}

func (s *Series) setPointState(p *Point, state State) {
	if state == StateNormal && p.Selected {
		state = StateSelect
	}
	if p.State == state {
		return
	}
	p.State = state
	if s.chart != nil {
		s.chart.renderer.PointState(p, state)
	}
}

// tooltipDistance returns the tooltip gap for this series.
func (s *Series) tooltipDistance(fallback float64) float64 {
	if s.Tooltip.Distance > 0 {
		return s.Tooltip.Distance
	}
	return fallback
}

// validPoints returns the points eligible for spatial search: non-null,
// plotted, and inside the plot unless the series tracks by direct touch.
func (s *Series) validPoints() []*Point {
	out := make([]*Point, 0, len(s.points))
	for _, p := range s.points {
		if p.Null || math.IsNaN(p.PlotX) || math.IsNaN(p.PlotY) {
			continue
		}
		if p.Outside && !s.DirectTouch {
			continue
		}
		out = append(out, p)
	}
	return out
}
