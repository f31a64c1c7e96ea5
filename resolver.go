package perch

// Candidate is one series' best match during a nearest-point search.
type Candidate struct {
	Point  *Point
	Series *Series
	// DistX is the horizontal distance to the pointer in pixels.
	DistX float64
	// Dist is the euclidean distance to the pointer in pixels.
	Dist         float64
	SeriesZIndex int
	SeriesIndex  int
}

// compareCandidates orders two candidates. A positive result means b ranks
// above a: closer on x (shared only), then closer overall, then drawn higher,
// then added later.
func compareCandidates(a, b *Candidate, shared bool) float64 {
	if shared && a.DistX != b.DistX {
		return a.DistX - b.DistX
	}
	if a.Dist != b.Dist {
		return a.Dist - b.Dist
	}
	if a.SeriesZIndex != b.SeriesZIndex {
		return float64(b.SeriesZIndex - a.SeriesZIndex)
	}
	if a.SeriesIndex > b.SeriesIndex {
		return -1
	}
	return 1
}

// FindNearest searches each eligible series and returns the best-ranked
// candidate, or nil when no series yields one.
func FindNearest(series []*Series, shared bool, e PointerEvent) *Candidate {
	var best *Candidate
	single := len(series) == 1
	for _, s := range series {
		if s.Destroyed() || !s.Visible || !s.EnableMouseTracking {
			continue
		}
		if shared && !single && s.NoSharedTooltip {
			continue
		}
		compareX := !(s.NoSharedTooltip && shared) && s.NearestBy == NearestX
		c := s.SearchPoint(e, compareX)
		if c == nil {
			continue
		}
		if best == nil || compareCandidates(best, c, shared) > 0 {
			best = c
		}
	}
	return best
}

// HoverSnapshot is the outcome of one hover resolution.
type HoverSnapshot struct {
	HoverPoint  *Point
	HoverSeries *Series
	// HoverPoints holds every point shown by the tooltip: the hover point
	// alone, or one point per series at the hover point's x in shared mode.
	HoverPoints []*Point
}

// HoverData resolves the hover target for e. In direct-touch mode an
// existing hover point is reused as is.
func (c *Chart) HoverData(existingPoint *Point, existingSeries *Series, directTouch, shared bool, e PointerEvent) HoverSnapshot {
	eligible := func(s *Series) bool {
		return !s.Destroyed() && s.Visible && s.EnableMouseTracking && !(!shared && s.DirectTouch)
	}

	// A non-sticky hover series is the only one searched.
	var search []*Series
	if existingSeries != nil && !existingSeries.StickyTracking {
		search = []*Series{existingSeries}
	} else {
		for _, s := range c.series {
			if s.StickyTracking && eligible(s) {
				search = append(search, s)
			}
		}
	}

	var snap HoverSnapshot
	if directTouch && !existingPoint.Destroyed() {
		snap.HoverPoint = existingPoint
	} else if best := FindNearest(search, shared, e); best != nil {
		snap.HoverPoint = best.Point
	}
	if snap.HoverPoint == nil {
		return snap
	}
	snap.HoverSeries = c.seriesByID[snap.HoverPoint.series]
	if snap.HoverSeries == nil {
		snap.HoverPoint = nil
		return snap
	}

	if shared && !snap.HoverSeries.NoSharedTooltip {
		x := snap.HoverPoint.X
		for _, s := range c.series {
			if !eligible(s) || s.NoSharedTooltip {
				continue
			}
			for _, p := range s.points {
				if p.X == x && !p.Null {
					snap.HoverPoints = append(snap.HoverPoints, p)
					break
				}
			}
		}
	} else {
		snap.HoverPoints = []*Point{snap.HoverPoint}
	}
	return snap
}
