package perch

// ElementID identifies a visual element in the host scene. Zero means none.
type ElementID uint32

// Class names the interaction layer looks for on scene elements.
const (
	// ClassContainer marks the chart's root element; ancestor walks stop here.
	ClassContainer = "perch-container"
	// ClassTracker marks elements that track points (markers, columns, paths).
	ClassTracker = "perch-tracker"
	// ClassNoTooltip marks elements that suppress the tooltip.
	ClassNoTooltip = "perch-no-tooltip"
	// ClassTooltip marks the tooltip's own elements.
	ClassTooltip = "perch-tooltip"
)

// SceneFacade is the read-only view of the host scene graph the pointer
// subsystem depends on.
type SceneFacade interface {
	// ElementAt returns the topmost element at chart coordinates (x, y).
	ElementAt(x, y float64) ElementID
	// BoundingBoxOf returns the element's box in chart coordinates.
	BoundingBoxOf(id ElementID) Rect
	// ClassListContains reports whether the element or one of its ancestors
	// carries class, stopping at the chart container.
	ClassListContains(id ElementID, class string) bool
	// Owner returns the point an element belongs to.
	Owner(id ElementID) (PointID, bool)
}

// Renderer receives the visual side effects of interaction. Rendering
// itself lives outside this package.
type Renderer interface {
	// SeriesState is called when a series changes visual state.
	SeriesState(s *Series, state State)
	// PointState is called when a point changes visual state.
	PointState(p *Point, state State)
	// SelectionMarker shows, resizes or hides (visible=false) the drag
	// selection rectangle.
	SelectionMarker(r Rect, visible bool)
	// ScaleGroups applies a live pinch transform to the series groups.
	// A nil transform restores the identity.
	ScaleGroups(t *GroupTransform)
	// Measure returns the size of a label's text without padding.
	Measure(text string) Size
}

// GroupTransform is the scale and translation applied to series groups
// while a pinch is in progress, plus the plot clip it is shown through.
type GroupTransform struct {
	ScaleX, ScaleY         float64
	TranslateX, TranslateY float64
	Clip                   Rect
}

// NopRenderer discards every visual update and measures text as a fixed
// grid of 7x15 pixel cells.
type NopRenderer struct{}

func (NopRenderer) SeriesState(*Series, State)  {}
func (NopRenderer) PointState(*Point, State)    {}
func (NopRenderer) SelectionMarker(Rect, bool)  {}
func (NopRenderer) ScaleGroups(*GroupTransform) {}
func (NopRenderer) Measure(text string) Size    { return MonospaceSize(text, 7, 15) }

// MonospaceSize measures text laid out in fixed cells of cw by ch pixels.
func MonospaceSize(text string, cw, ch float64) Size {
	if text == "" {
		return Size{}
	}
	lines, width, longest := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			width = 0
			continue
		}
		width++
		if width > longest {
			longest = width
		}
	}
	return Size{Width: float64(longest) * cw, Height: float64(lines) * ch}
}
