package perch

import "testing"

func TestHitShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape HitShape
		x, y  float64
		want  bool
	}{
		{"rect inside", HitRect{X: 0, Y: 0, Width: 10, Height: 10}, 5, 5, true},
		{"rect edge", HitRect{X: 0, Y: 0, Width: 10, Height: 10}, 10, 10, true},
		{"rect outside", HitRect{X: 0, Y: 0, Width: 10, Height: 10}, 11, 5, false},
		{"circle inside", HitCircle{CenterX: 5, CenterY: 5, Radius: 3}, 7, 5, true},
		{"circle outside", HitCircle{CenterX: 5, CenterY: 5, Radius: 3}, 8, 8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestElementTreeElementAt(t *testing.T) {
	tree := NewElementTree(Rect{Width: 400, Height: 300})
	group := tree.Add(0, "series-group", Rect{Width: 400, Height: 300}, 0)
	low := tree.Add(group, ClassTracker, Rect{X: 10, Y: 10, Width: 50, Height: 50}, 1)
	high := tree.Add(group, ClassTracker, Rect{X: 30, Y: 30, Width: 50, Height: 50}, 2)

	if got := tree.ElementAt(40, 40); got != high {
		t.Errorf("ElementAt = %d, want the later sibling %d", got, high)
	}
	tree.SetZIndex(low, 1)
	if got := tree.ElementAt(40, 40); got != low {
		t.Errorf("ElementAt = %d, want the raised sibling %d", got, low)
	}
	tree.Get(low).HitShape = HitCircle{CenterX: 15, CenterY: 15, Radius: 5}
	if got := tree.ElementAt(40, 40); got != high {
		t.Errorf("ElementAt = %d, want %d outside the custom shape", got, high)
	}
	tree.Get(group).Visible = false
	if got := tree.ElementAt(40, 40); got != 0 {
		t.Errorf("ElementAt = %d inside a hidden group, want 0", got)
	}
}

func TestElementTreeClassesAndOwner(t *testing.T) {
	tree := NewElementTree(Rect{Width: 400, Height: 300})
	tracker := tree.Add(0, ClassTracker+" column", Rect{Width: 20, Height: 100}, 7)
	label := tree.Add(tracker, "data-label", Rect{Width: 20, Height: 10}, 0)
	other := tree.Add(0, ClassNoTooltip, Rect{}, 0)

	if !tree.ClassListContains(label, ClassTracker) {
		t.Error("label does not inherit the tracker class")
	}
	if tree.ClassListContains(label, ClassNoTooltip) {
		t.Error("label carries a sibling's class")
	}
	if !tree.ClassListContains(tree.Root(), ClassContainer) {
		t.Error("root is not the container")
	}
	if id, ok := tree.Owner(label); !ok || id != 7 {
		t.Errorf("Owner = %d, %v, want 7", id, ok)
	}
	if _, ok := tree.Owner(other); ok {
		t.Error("Owner found for an element without a point")
	}

	n := tree.Len()
	tree.Remove(tracker)
	if tree.Len() != n-2 || tree.Get(label) != nil {
		t.Errorf("Len = %d after removing a subtree of two, want %d", tree.Len(), n-2)
	}
	tree.Remove(tree.Root())
	if tree.Get(tree.Root()) == nil {
		t.Error("root removed")
	}
	if box := tree.BoundingBoxOf(label); box != (Rect{}) {
		t.Errorf("BoundingBoxOf removed = %+v, want zero", box)
	}
}
