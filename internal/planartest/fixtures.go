// Package planartest builds small triangulations for tests.
package planartest

import (
	"testing"

	"github.com/matzehuels/stratum/pkg/planar"
	"github.com/matzehuels/stratum/pkg/planar/transform"
)

// Grid returns a w×h triangulated grid: vertex (i,j) has id j*w+i and
// coordinates (10i, 10j), edges run right, down, and along the (1,1)
// diagonal of each cell. Vertices on the outer ring are boundary vertices.
func Grid(w, h int) ([]planar.Vertex, []planar.Edge) {
	id := func(i, j int) int { return j*w + i }

	var vertices []planar.Vertex
	var edges []planar.Edge
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			vertices = append(vertices, planar.Vertex{
				ID:       id(i, j),
				X:        10 * i,
				Y:        10 * j,
				Boundary: i == 0 || j == 0 || i == w-1 || j == h-1,
			})
			if i+1 < w {
				edges = append(edges, planar.Edge{A: id(i, j), B: id(i+1, j)})
			}
			if j+1 < h {
				edges = append(edges, planar.Edge{A: id(i, j), B: id(i, j+1)})
			}
			if i+1 < w && j+1 < h {
				edges = append(edges, planar.Edge{A: id(i, j), B: id(i+1, j+1)})
			}
		}
	}
	return vertices, edges
}

// Fan returns a boundary triangle 0,1,2 with one interior node 3 joined to
// all three corners.
func Fan() ([]planar.Vertex, []planar.Edge) {
	vertices := []planar.Vertex{
		{ID: 0, X: 0, Y: 0, Boundary: true},
		{ID: 1, X: 10, Y: 0, Boundary: true},
		{ID: 2, X: 5, Y: 10, Boundary: true},
		{ID: 3, X: 5, Y: 4},
	}
	edges := []planar.Edge{
		{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 0},
		{A: 3, B: 0}, {A: 3, B: 1}, {A: 3, B: 2},
	}
	return vertices, edges
}

// Square returns four boundary nodes 1..4 on the corners of a square,
// joined in a ring.
func Square() ([]planar.Vertex, []planar.Edge) {
	vertices := []planar.Vertex{
		{ID: 1, X: 0, Y: 0, Boundary: true},
		{ID: 2, X: 10, Y: 0, Boundary: true},
		{ID: 3, X: 10, Y: 10, Boundary: true},
		{ID: 4, X: 0, Y: 10, Boundary: true},
	}
	edges := []planar.Edge{{A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 4}, {A: 4, B: 1}}
	return vertices, edges
}

// Pendant returns a boundary triangle 1,2,3 with a two-node tail 4-5
// hanging off node 1. All nodes are boundary nodes.
func Pendant() ([]planar.Vertex, []planar.Edge) {
	vertices := []planar.Vertex{
		{ID: 1, X: 0, Y: 0, Boundary: true},
		{ID: 2, X: 10, Y: 0, Boundary: true},
		{ID: 3, X: 5, Y: 10, Boundary: true},
		{ID: 4, X: -10, Y: 0, Boundary: true},
		{ID: 5, X: -20, Y: 0, Boundary: true},
	}
	edges := []planar.Edge{
		{A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 1},
		{A: 1, B: 4}, {A: 4, B: 5},
	}
	return vertices, edges
}

// Build constructs a graph and fails the test on error.
func Build(t testing.TB, vertices []planar.Vertex, edges []planar.Edge) *planar.Graph {
	t.Helper()
	g, err := planar.New(vertices, edges)
	if err != nil {
		t.Fatalf("planar.New() error = %v", err)
	}
	return g
}

// Decompose builds a graph and runs every initialization phase, failing the
// test on error.
func Decompose(t testing.TB, vertices []planar.Vertex, edges []planar.Edge) *planar.Graph {
	t.Helper()
	g := Build(t, vertices, edges)
	if err := transform.AssignLevels(g); err != nil {
		t.Fatalf("AssignLevels() error = %v", err)
	}
	if err := transform.TraceLevelElements(g); err != nil {
		t.Fatalf("TraceLevelElements() error = %v", err)
	}
	if err := transform.AnnotateBetweeners(g); err != nil {
		t.Fatalf("AnnotateBetweeners() error = %v", err)
	}
	return g
}
