package planar

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestClockwiseKey(t *testing.T) {
	center := &Node{ID: 0, X: 0, Y: 0, Relations: []int{1, 2, 3, 4, 5}}
	tests := []struct {
		name       string
		spoke      *Node
		wantAngle  float64
		wantLength float64
	}{
		{"Reference", &Node{ID: 1, X: 0, Y: 5}, 0, 5},
		{"QuarterTurn", &Node{ID: 2, X: 5, Y: 0}, math.Pi / 2, 5},
		{"HalfTurn", &Node{ID: 3, X: 0, Y: -5}, math.Pi, 5},
		{"ThreeQuarterTurn", &Node{ID: 4, X: -5, Y: 0}, 3 * math.Pi / 2, 5},
		{"Coincident", &Node{ID: 5, X: 0, Y: 0}, -math.Pi, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ClockwiseKey(center, tt.spoke)
			if err != nil {
				t.Fatalf("ClockwiseKey() error = %v", err)
			}
			if math.Abs(key.Angle-tt.wantAngle) > 1e-9 {
				t.Errorf("Angle = %v, want %v", key.Angle, tt.wantAngle)
			}
			if math.Abs(key.Length-tt.wantLength) > 1e-9 {
				t.Errorf("Length = %v, want %v", key.Length, tt.wantLength)
			}
		})
	}
}

func TestClockwiseKey_Unrelated(t *testing.T) {
	center := &Node{ID: 0, Relations: []int{1}}
	_, err := ClockwiseKey(center, &Node{ID: 2, X: 1, Y: 1})
	if !errors.Is(err, ErrInvalidAdjacency) {
		t.Errorf("ClockwiseKey() error = %v, want ErrInvalidAdjacency", err)
	}
}

func TestClockwiseKey_AngleRange(t *testing.T) {
	center := &Node{ID: 0, Relations: []int{1}}
	for x := -3; x <= 3; x++ {
		for y := -3; y <= 3; y++ {
			if x == 0 && y == 0 {
				continue
			}
			key, err := ClockwiseKey(center, &Node{ID: 1, X: x, Y: y})
			if err != nil {
				t.Fatalf("ClockwiseKey(%d,%d) error = %v", x, y, err)
			}
			if key.Angle < 0 || key.Angle >= 2*math.Pi {
				t.Errorf("ClockwiseKey(%d,%d).Angle = %v, want [0, 2π)", x, y, key.Angle)
			}
		}
	}
}

func TestSortRelations(t *testing.T) {
	g, err := New([]Vertex{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: -5, Y: 0},
		{ID: 2, X: 0, Y: 5},
		{ID: 3, X: 5, Y: 0},
		{ID: 4, X: 0, Y: -5},
		{ID: 5, X: 0, Y: 10},
		{ID: 6, X: 0, Y: 0},
	}, []Edge{{0, 1}, {0, 5}, {0, 4}, {0, 3}, {0, 2}, {0, 6}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	n, _ := g.Node(0)
	want := []int{6, 2, 5, 3, 4, 1} // degenerate first, shorter spoke first on ties
	if !slices.Equal(n.Relations, want) {
		t.Errorf("Relations = %v, want %v", n.Relations, want)
	}

	before := slices.Clone(n.Relations)
	if err := g.SortRelations(0); err != nil {
		t.Fatalf("SortRelations() error = %v", err)
	}
	if !slices.Equal(n.Relations, before) {
		t.Errorf("re-sorting changed order: %v -> %v", before, n.Relations)
	}
}

func TestSortRelations_UnknownNode(t *testing.T) {
	g, _ := New(nil, nil)
	if err := g.SortRelations(7); !errors.Is(err, ErrInvalidAdjacency) {
		t.Errorf("SortRelations() error = %v, want ErrInvalidAdjacency", err)
	}
}

func TestAngleKeyCompare(t *testing.T) {
	a := AngleKey{Angle: 1, Length: 2}
	tests := []struct {
		name string
		b    AngleKey
		want int
	}{
		{"Equal", AngleKey{1, 2}, 0},
		{"SmallerAngle", AngleKey{0.5, 9}, 1},
		{"LargerAngle", AngleKey{1.5, 0}, -1},
		{"TieShorter", AngleKey{1, 1}, 1},
		{"TieLonger", AngleKey{1, 3}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}
