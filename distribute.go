package perch

import (
	"math"
	"slices"
)

// Box is one label taking part in a vertical distribution pass.
type Box struct {
	// ID identifies the box for the caller.
	ID int
	// Target is the preferred position. Boxes center on it unless AlignTop
	// is set.
	Target float64
	Size   float64
	// Rank decides which boxes are dropped first when space runs out;
	// higher ranks survive. Headers use rank 1.
	Rank int
	// AlignTop places a box at its target instead of centering on it.
	AlignTop bool
	// X is carried through for the caller.
	X float64

	// Pos is the distributed position, valid when Placed is set.
	Pos    float64
	Placed bool
}

type compositeBox struct {
	size    float64
	targets []float64
	align   float64
	pos     float64
}

// Distribute positions boxes along a line of the given length so that none
// overlap. Boxes that do not fit keep Placed unset. With a positive
// maxDistance, boxes may not move further than that from their target; the
// usable length then shrinks in 10% steps, dropping low-ranked boxes, until
// they do. The result is sorted by target.
func Distribute(boxes []*Box, length, maxDistance float64) []*Box {
	for _, b := range boxes {
		b.Placed, b.Pos = false, 0
	}
	return distribute(boxes, length, length, maxDistance)
}

func distribute(boxes []*Box, length, reducedLen, maxDistance float64) []*Box {
	byTarget := func(a, b *Box) int {
		switch {
		case a.Target < b.Target:
			return -1
		case a.Target > b.Target:
			return 1
		}
		return 0
	}

	var total float64
	for _, b := range boxes {
		total += b.Size
	}
	kept := boxes
	var rest []*Box
	if total > reducedLen {
		kept = slices.Clone(boxes)
		slices.SortStableFunc(kept, func(a, b *Box) int { return b.Rank - a.Rank })
		i := 0
		total = 0
		for i < len(kept) && total <= reducedLen {
			total += kept[i].Size
			i++
		}
		rest = slices.Clone(kept[i-1:])
		kept = kept[:i-1]
	} else {
		kept = slices.Clone(boxes)
	}
	slices.SortStableFunc(kept, byTarget)

	comps := make([]*compositeBox, len(kept))
	for i, b := range kept {
		align := 0.5
		if b.AlignTop {
			align = 0
		}
		comps[i] = &compositeBox{size: b.Size, targets: []float64{b.Target}, align: align}
	}

	for overlapping := true; overlapping; {
		for _, cb := range comps {
			target := (slices.Min(cb.targets) + slices.Max(cb.targets)) / 2
			cb.pos = clamp(target-cb.size*cb.align, 0, length-cb.size)
		}
		overlapping = false
		for i := len(comps) - 1; i > 0; i-- {
			prev, cur := comps[i-1], comps[i]
			if prev.pos+prev.size <= cur.pos {
				continue
			}
			prev.size += cur.size
			prev.targets = append(prev.targets, cur.targets...)
			prev.align = 0.5
			if prev.pos+prev.size > length {
				prev.pos = length - prev.size
			}
			comps = slices.Delete(comps, i, i+1)
			overlapping = true
		}
	}

	all := append(kept, rest...)
	i := 0
place:
	for _, cb := range comps {
		offset := 0.0
		for range cb.targets {
			b := all[i]
			b.Pos, b.Placed = cb.pos+offset, true
			if maxDistance > 0 && math.Abs(b.Pos-b.Target) > maxDistance {
				for _, r := range all[:i+1] {
					r.Placed, r.Pos = false, 0
				}
				reducedLen -= length * 0.1
				if reducedLen > length*0.1 {
					all = distribute(all, length, reducedLen, maxDistance)
				}
				break place
			}
			offset += b.Size
			i++
		}
	}

	slices.SortStableFunc(all, byTarget)
	return all
}
