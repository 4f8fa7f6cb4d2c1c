package physics

import (
	"math"
	"sort"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVectorArithmetic(t *testing.T) {
	a := Vector{3, 4}
	b := Vector{1, -2}

	if got := a.Add(b); got != (Vector{4, 2}) {
		t.Errorf("Add = %v, want {4 2}", got)
	}
	if got := a.Sub(b); got != (Vector{2, 6}) {
		t.Errorf("Sub = %v, want {2 6}", got)
	}
	if got := a.Scale(2); got != (Vector{6, 8}) {
		t.Errorf("Scale = %v, want {6 8}", got)
	}
	if got := a.Length(); !near(got, 5) {
		t.Errorf("Length = %f, want 5", got)
	}
}

func TestVectorRotate(t *testing.T) {
	tests := []struct {
		name string
		v    Vector
		deg  float64
		want Vector
	}{
		{"quarter turn", Vector{1, 0}, 90, Vector{0, 1}},
		{"negative quarter", Vector{1, 0}, -90, Vector{0, -1}},
		{"half turn", Vector{0, 1}, 180, Vector{0, -1}},
		{"full turn", Vector{2, 3}, 360, Vector{2, 3}},
		{"forward reference", Vector{0, 1}, 90, Vector{-1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Rotate(tt.deg)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Rotate(%v, %v) = %v, want %v", tt.v, tt.deg, got, tt.want)
			}
		})
	}
}

func TestRotatePreservesLength(t *testing.T) {
	v := Vector{37, -12}
	for deg := -360.0; deg <= 360; deg += 17 {
		if got := v.Rotate(deg).Length(); !near(got, v.Length()) {
			t.Fatalf("Rotate(%v) length = %f, want %f", deg, got, v.Length())
		}
	}
}

func TestCircleOverlapsStrict(t *testing.T) {
	tests := []struct {
		name string
		a, b Circle
		want bool
	}{
		// 3-4-5 triangle: centers exactly 5 apart.
		{"tangent", Circle{Vector{0, 0}, 2}, Circle{Vector{3, 4}, 3}, false},
		{"slight overlap", Circle{Vector{0, 0}, 2.001}, Circle{Vector{3, 4}, 3}, true},
		{"distant", Circle{Vector{0, 0}, 1}, Circle{Vector{10, 0}, 1}, false},
		{"concentric", Circle{Vector{5, 5}, 1}, Circle{Vector{5, 5}, 1}, true},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCircleOverlapsSymmetric(t *testing.T) {
	circles := []Circle{
		{Vector{0, 0}, 20},
		{Vector{30, 0}, 10},
		{Vector{-40, 25}, 60},
		{Vector{100, 100}, 5},
		{Vector{3, 4}, 3},
		{Vector{0, 0}, 2},
	}
	for i, a := range circles {
		for j, b := range circles {
			if a.Overlaps(b) != b.Overlaps(a) {
				t.Errorf("overlap not symmetric for %d/%d", i, j)
			}
		}
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(Vector{-100, -100}, Vector{500, 500}, 50)
	g.Insert(Vector{10, 10}, 0)
	g.Insert(Vector{60, 10}, 1)
	g.Insert(Vector{400, 400}, 2)
	g.Insert(Vector{-5000, 10}, 3) // clamped into the left border column

	var got []int
	g.QueryAround(Vector{20, 20}, func(i int) bool {
		got = append(got, i)
		return false
	})
	sort.Ints(got)
	want := []int{0, 1}
	if len(got) != len(want) {
		t.Fatalf("QueryAround = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("QueryAround = %v, want %v", got, want)
		}
	}

	found := false
	g.QueryAround(Vector{-90, 10}, func(i int) bool {
		if i == 3 {
			found = true
			return true
		}
		return false
	})
	if !found {
		t.Error("clamped item should be found near the border")
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid(Zero, Vector{100, 100}, 10)
	g.Insert(Vector{5, 5}, 7)
	g.Clear()

	g.QueryAround(Vector{5, 5}, func(i int) bool {
		t.Errorf("unexpected item %d after Clear", i)
		return false
	})
}
