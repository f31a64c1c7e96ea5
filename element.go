package perch

import (
	"slices"
	"strings"
)

// --- Built-in HitShape types ---

// HitShape is a custom hit region in chart coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is the hit area of a round point marker.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Element tree ---

// Element is one visual element of an ElementTree.
type Element struct {
	ID      ElementID
	Parent  ElementID
	Classes []string
	// Box is the element's bounding box in chart coordinates.
	Box Rect
	// HitShape overrides Box for hit testing when set.
	HitShape HitShape
	ZIndex   int
	Visible  bool
	// Point is the domain point this element draws, 0 for none.
	Point PointID

	children       []ElementID
	childrenSorted bool
}

// HasClass reports whether the element itself carries class.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes, class)
}

// ElementTree is an in-memory SceneFacade: a tree of boxes with class lists
// and point back-references. Hosts without a scene graph of their own use
// it directly.
type ElementTree struct {
	elems  map[ElementID]*Element
	root   ElementID
	nextID ElementID
	hitBuf []*Element
}

// NewElementTree creates a tree whose root is the chart container covering
// bounds.
func NewElementTree(bounds Rect) *ElementTree {
	t := &ElementTree{elems: make(map[ElementID]*Element)}
	t.root = t.insert(&Element{Classes: []string{ClassContainer}, Box: bounds, Visible: true})
	return t
}

// Root returns the container element's id.
func (t *ElementTree) Root() ElementID {
	return t.root
}

func (t *ElementTree) insert(e *Element) ElementID {
	t.nextID++
	e.ID = t.nextID
	e.childrenSorted = true
	t.elems[e.ID] = e
	if p := t.elems[e.Parent]; p != nil {
		p.children = append(p.children, e.ID)
		p.childrenSorted = false
	}
	return e.ID
}

// Add inserts a visible element under parent (the root when parent is 0)
// and returns its id.
func (t *ElementTree) Add(parent ElementID, classes string, box Rect, point PointID) ElementID {
	if parent == 0 {
		parent = t.root
	}
	return t.insert(&Element{
		Parent:  parent,
		Classes: strings.Fields(classes),
		Box:     box,
		Visible: true,
		Point:   point,
	})
}

// Get returns the element or nil.
func (t *ElementTree) Get(id ElementID) *Element {
	return t.elems[id]
}

// SetZIndex changes an element's paint order among its siblings.
func (t *ElementTree) SetZIndex(id ElementID, z int) {
	e := t.elems[id]
	if e == nil {
		return
	}
	e.ZIndex = z
	if p := t.elems[e.Parent]; p != nil {
		p.childrenSorted = false
	}
}

// Remove deletes an element and its subtree. The root cannot be removed.
func (t *ElementTree) Remove(id ElementID) {
	e := t.elems[id]
	if e == nil || id == t.root {
		return
	}
	for _, c := range e.children {
		t.Remove(c)
	}
	if p := t.elems[e.Parent]; p != nil {
		if i := slices.Index(p.children, id); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}
	delete(t.elems, id)
}

// Len returns the number of elements including the root.
func (t *ElementTree) Len() int {
	return len(t.elems)
}

// --- SceneFacade ---

// ElementAt returns the topmost visible element containing (x, y). The root
// container is never returned.
func (t *ElementTree) ElementAt(x, y float64) ElementID {
	t.hitBuf = t.collect(t.elems[t.root], t.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual element first.
	for i := len(t.hitBuf) - 1; i >= 0; i-- {
		e := t.hitBuf[i]
		if e.ID == t.root {
			continue
		}
		if e.HitShape != nil {
			if e.HitShape.Contains(x, y) {
				return e.ID
			}
			continue
		}
		if (e.Box.Width > 0 || e.Box.Height > 0) && e.Box.Contains(x, y) {
			return e.ID
		}
	}
	return 0
}

// collect walks the tree in painter order (DFS, ZIndex-sorted), skipping
// invisible subtrees.
func (t *ElementTree) collect(e *Element, buf []*Element) []*Element {
	if e == nil || !e.Visible {
		return buf
	}
	buf = append(buf, e)
	if !e.childrenSorted {
		slices.SortStableFunc(e.children, func(a, b ElementID) int {
			return t.elems[a].ZIndex - t.elems[b].ZIndex
		})
		e.childrenSorted = true
	}
	for _, c := range e.children {
		buf = t.collect(t.elems[c], buf)
	}
	return buf
}

// BoundingBoxOf returns the element's box, or the zero Rect if unknown.
func (t *ElementTree) BoundingBoxOf(id ElementID) Rect {
	if e := t.elems[id]; e != nil {
		return e.Box
	}
	return Rect{}
}

// ClassListContains walks from the element towards the root and reports
// whether class is found before the chart container.
func (t *ElementTree) ClassListContains(id ElementID, class string) bool {
	for e := t.elems[id]; e != nil; e = t.elems[e.Parent] {
		if e.HasClass(class) {
			return true
		}
		if e.HasClass(ClassContainer) {
			return false
		}
	}
	return false
}

// Owner returns the point drawn by the element or its nearest ancestor.
func (t *ElementTree) Owner(id ElementID) (PointID, bool) {
	for e := t.elems[id]; e != nil; e = t.elems[e.Parent] {
		if e.Point != 0 {
			return e.Point, true
		}
	}
	return 0, false
}
