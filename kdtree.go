package perch

import (
	"math"
	"slices"
)

// kdNode is one node of a series' k-d tree over (PlotX, PlotY).
type kdNode struct {
	point       *Point
	left, right *kdNode
}

// kdDimensions returns 2 when vertical distance takes part in the search.
func (s *Series) kdDimensions() int {
	if s.NearestBy == NearestXY {
		return 2
	}
	return 1
}

func kdValue(p *Point, axis int) float64 {
	if axis == 0 {
		return p.PlotX
	}
	return p.PlotY
}

// buildKDTree splits points at the median of alternating axes. The input
// slice is reordered.
func buildKDTree(points []*Point, depth, dims int) *kdNode {
	if len(points) == 0 {
		return nil
	}
	axis := depth % dims
	slices.SortStableFunc(points, func(a, b *Point) int {
		va, vb := kdValue(a, axis), kdValue(b, axis)
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		}
		return 0
	})
	median := len(points) / 2
	return &kdNode{
		point: points[median],
		left:  buildKDTree(points[:median], depth+1, dims),
		right: buildKDTree(points[median+1:], depth+1, dims),
	}
}

// kdTree returns the series' tree, rebuilding it when stale.
func (s *Series) kdTree() *kdNode {
	if s.kd == nil || s.kdDirty {
		s.kd = buildKDTree(s.validPoints(), 0, s.kdDimensions())
		s.kdDirty = false
	}
	return s.kd
}

// kdSearch carries one nearest-neighbour query.
type kdSearch struct {
	series   *Series
	x, y     float64
	dims     int
	compareX bool
}

func (q *kdSearch) candidate(p *Point) Candidate {
	dx := p.PlotX - q.x
	dy := p.PlotY - q.y
	return Candidate{
		Point:        p,
		Series:       q.series,
		DistX:        math.Abs(dx),
		Dist:         math.Sqrt(dx*dx + dy*dy),
		SeriesZIndex: q.series.ZIndex,
		SeriesIndex:  q.series.Index,
	}
}

func (q *kdSearch) metric(c Candidate) float64 {
	if q.compareX {
		return c.DistX
	}
	return c.Dist
}

func (q *kdSearch) search(n *kdNode, depth int) Candidate {
	ret := q.candidate(n.point)
	axis := depth % q.dims
	var at float64
	if axis == 0 {
		at = q.x
	} else {
		at = q.y
	}
	diff := at - kdValue(n.point, axis)
	near, far := n.right, n.left
	if diff < 0 {
		near, far = n.left, n.right
	}
	if near != nil {
		if c := q.search(near, depth+1); q.metric(c) < q.metric(ret) {
			ret = c
		}
	}
	// Only cross the split plane when it is closer than the best so far.
	if far != nil && math.Abs(diff) < q.metric(ret) {
		if c := q.search(far, depth+1); q.metric(c) < q.metric(ret) {
			ret = c
		}
	}
	return ret
}

// SearchPoint finds the series' point nearest to the event. With compareX
// only horizontal distance ranks points. Returns nil when the series has no
// searchable points.
func (s *Series) SearchPoint(e PointerEvent, compareX bool) *Candidate {
	if s.destroyed {
		return nil
	}
	tree := s.kdTree()
	if tree == nil {
		return nil
	}
	x, y := s.searchOrigin(e)
	q := kdSearch{series: s, x: x, y: y, dims: s.kdDimensions(), compareX: compareX}
	c := q.search(tree, 0)
	return &c
}

// searchOrigin converts chart coordinates into the series' plot offsets.
func (s *Series) searchOrigin(e PointerEvent) (float64, float64) {
	var xPos, xLen, yPos, yLen float64
	inverted := false
	if s.chart != nil {
		inverted = s.chart.opts.Inverted
		plot := s.chart.plot
		xPos, xLen, yPos, yLen = plot.X, plot.Width, plot.Y, plot.Height
		if inverted {
			xPos, xLen, yPos, yLen = plot.Y, plot.Height, plot.X, plot.Width
		}
		if xa := s.XAxisOf(); xa != nil {
			xPos, xLen = xa.Pos(), xa.Len()
		}
		if ya := s.YAxisOf(); ya != nil {
			yPos, yLen = ya.Pos(), ya.Len()
		}
	}
	if inverted {
		return xLen - e.ChartY + xPos, yLen - e.ChartX + yPos
	}
	return e.ChartX - xPos, e.ChartY - yPos
}
