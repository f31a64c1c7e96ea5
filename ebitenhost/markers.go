package ebitenhost

import (
	"github.com/phanxgames/perch"
)

// DefaultMarkerRadius is the hit radius of a point marker in pixels.
const DefaultMarkerRadius = 6

// Markers is the scene of a host chart: one tracker element per plotted
// point with a circular hit area. Pointer events over a marker carry it as
// their target, which enables point clicks and direct touch.
type Markers struct {
	*perch.ElementTree
	Radius float64

	elems map[perch.PointID]perch.ElementID
}

// NewMarkers creates an empty marker scene.
func NewMarkers(radius float64) *Markers {
	return &Markers{
		ElementTree: perch.NewElementTree(perch.Rect{}),
		Radius:      radius,
		elems:       make(map[perch.PointID]perch.ElementID),
	}
}

// Sync moves every marker to its point's current plot position, adds
// markers for new points and drops those of removed, null or outside
// points.
func (m *Markers) Sync(c *perch.Chart) {
	plot := c.PlotBox()
	seen := make(map[perch.PointID]bool, len(m.elems))
	for _, s := range c.SeriesList() {
		if !s.Visible || !s.EnableMouseTracking {
			continue
		}
		for _, p := range s.Points() {
			if p.Null || p.Outside {
				continue
			}
			seen[p.ID] = true
			cx, cy := plot.X+p.PlotX, plot.Y+p.PlotY
			id, ok := m.elems[p.ID]
			if !ok {
				id = m.Add(0, perch.ClassTracker, perch.Rect{}, p.ID)
				m.elems[p.ID] = id
			}
			e := m.Get(id)
			e.Box = perch.Rect{X: cx - m.Radius, Y: cy - m.Radius, Width: 2 * m.Radius, Height: 2 * m.Radius}
			e.HitShape = perch.HitCircle{CenterX: cx, CenterY: cy, Radius: m.Radius}
		}
	}
	for pid, id := range m.elems {
		if !seen[pid] {
			m.Remove(id)
			delete(m.elems, pid)
		}
	}
}

// Count returns the number of markers.
func (m *Markers) Count() int { return len(m.elems) }
