package perch

import "testing"

func placed(boxes []*Box) map[int]float64 {
	out := make(map[int]float64)
	for _, b := range boxes {
		if b.Placed {
			out[b.ID] = b.Pos
		}
	}
	return out
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name        string
		boxes       []Box
		length      float64
		maxDistance float64
		want        map[int]float64
	}{
		{
			name:   "apart boxes center on targets",
			boxes:  []Box{{ID: 0, Target: 20, Size: 10}, {ID: 1, Target: 60, Size: 10}},
			length: 100,
			want:   map[int]float64{0: 15, 1: 55},
		},
		{
			name:   "overlapping boxes merge and clamp",
			boxes:  []Box{{ID: 0, Target: 10, Size: 10}, {ID: 1, Target: 12, Size: 10}, {ID: 2, Target: 14, Size: 10}},
			length: 100,
			want:   map[int]float64{0: 0, 1: 10, 2: 20},
		},
		{
			name:   "clamped at the end",
			boxes:  []Box{{ID: 0, Target: 98, Size: 10}},
			length: 100,
			want:   map[int]float64{0: 90},
		},
		{
			name:   "low rank dropped when space runs out",
			boxes:  []Box{{ID: 0, Target: 10, Size: 40}, {ID: 1, Target: 50, Size: 40, Rank: 1}, {ID: 2, Target: 90, Size: 40, Rank: 2}},
			length: 100,
			want:   map[int]float64{1: 20, 2: 60},
		},
		{
			name:   "align top places at the target",
			boxes:  []Box{{ID: 0, Target: 30, Size: 10, AlignTop: true}},
			length: 100,
			want:   map[int]float64{0: 30},
		},
		{
			name: "max distance shrinks the line",
			boxes: []Box{
				{ID: 0, Target: 0, Size: 30, AlignTop: true},
				{ID: 1, Target: 5, Size: 30, AlignTop: true},
				{ID: 2, Target: 10, Size: 30, AlignTop: true},
			},
			length:      100,
			maxDistance: 20,
			want:        map[int]float64{0: 0},
		},
		{
			name:        "unreachable target is never placed",
			boxes:       []Box{{ID: 0, Target: 200, Size: 10, AlignTop: true}},
			length:      100,
			maxDistance: 20,
			want:        map[int]float64{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boxes := make([]*Box, len(tt.boxes))
			for i := range tt.boxes {
				b := tt.boxes[i]
				boxes[i] = &b
			}
			Distribute(boxes, tt.length, tt.maxDistance)
			got := placed(boxes)
			if len(got) != len(tt.want) {
				t.Fatalf("placed = %v, want %v", got, tt.want)
			}
			for id, pos := range tt.want {
				if p, ok := got[id]; !ok || p != pos {
					t.Errorf("box %d at %v (placed %v), want %v", id, p, ok, pos)
				}
			}
		})
	}
}

func TestDistributeResetsPreviousPass(t *testing.T) {
	b := &Box{Target: 50, Size: 10}
	Distribute([]*Box{b}, 100, 0)
	if !b.Placed {
		t.Fatal("box not placed")
	}
	Distribute([]*Box{b}, 5, 0)
	if b.Placed {
		t.Errorf("box placed at %v on a line shorter than itself", b.Pos)
	}
}

func TestDistributeSortsByTarget(t *testing.T) {
	boxes := []*Box{{ID: 0, Target: 80, Size: 10}, {ID: 1, Target: 20, Size: 10}}
	out := Distribute(boxes, 100, 0)
	if out[0].ID != 1 || out[1].ID != 0 {
		t.Errorf("order = [%d %d], want [1 0]", out[0].ID, out[1].ID)
	}
}
