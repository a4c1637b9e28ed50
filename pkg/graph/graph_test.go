package graph_test

import (
	"bytes"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/stratum/internal/planartest"
	"github.com/matzehuels/stratum/pkg/graph"
	"github.com/matzehuels/stratum/pkg/planar"
)

func TestFromPlanar(t *testing.T) {
	vertices, edges := planartest.Fan()
	g := graph.FromPlanar(planartest.Decompose(t, vertices, edges))

	if g.Stage != "annotated" {
		t.Errorf("Stage = %q, want annotated", g.Stage)
	}
	if len(g.Nodes) != 4 {
		t.Fatalf("len(Nodes) = %d, want 4", len(g.Nodes))
	}

	wantEdges := []graph.Edge{
		{A: 0, B: 1}, {A: 0, B: 2}, {A: 0, B: 3},
		{A: 1, B: 2}, {A: 1, B: 3}, {A: 2, B: 3},
	}
	if !slices.Equal(g.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", g.Edges, wantEdges)
	}

	center := g.Nodes[3]
	want := graph.Node{
		ID: 3, X: 5, Y: 4, Distance: 1,
		Relations:      []int{2, 1, 0},
		LevelCycles:    []int{},
		LevelPaths:     []int{},
		BetweenerPaths: []int{},
	}
	if !reflect.DeepEqual(center, want) {
		t.Errorf("Nodes[3] = %+v, want %+v", center, want)
	}

	corner := g.Nodes[0]
	if !corner.IsRootElement || !slices.Equal(corner.LevelCycles, []int{0}) || !slices.Equal(corner.BetweenerPaths, []int{0}) {
		t.Errorf("Nodes[0] = %+v, want root element of cycle 0 with seam 0", corner)
	}

	if len(g.Levels) != 2 {
		t.Fatalf("len(Levels) = %d, want 2", len(g.Levels))
	}
	if got := g.Levels[1]; got.Cycles == nil || got.Paths == nil || len(got.Cycles)+len(got.Paths) != 0 {
		t.Errorf("Levels[1] = %+v, want empty non-nil elements", got)
	}
}

func TestMarshalGraph_EmptyArrays(t *testing.T) {
	vertices, edges := planartest.Fan()
	data, err := graph.MarshalGraph(planartest.Decompose(t, vertices, edges))
	if err != nil {
		t.Fatalf("MarshalGraph() error = %v", err)
	}
	if bytes.Contains(data, []byte("null")) {
		t.Errorf("MarshalGraph() output contains null:\n%s", data)
	}
}

func TestRoundTrip(t *testing.T) {
	vertices, edges := planartest.Grid(5, 4)
	original := planartest.Decompose(t, vertices, edges)

	var buf bytes.Buffer
	if err := graph.WriteGraph(original, &buf); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}
	parsed, err := graph.ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}
	if want := graph.FromPlanar(original); !reflect.DeepEqual(parsed, want) {
		t.Fatalf("ReadGraph() differs from FromPlanar()")
	}

	v, e := parsed.Input()
	rebuilt := planartest.Decompose(t, v, e)
	if !reflect.DeepEqual(graph.FromPlanar(rebuilt), parsed) {
		t.Error("re-running the pipeline on Input() changed the result")
	}
}

func TestWriteGraphFile(t *testing.T) {
	vertices, edges := planartest.Square()
	g := planartest.Decompose(t, vertices, edges)
	path := filepath.Join(t.TempDir(), "square.json")

	if err := graph.WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error = %v", err)
	}
	parsed, err := graph.ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error = %v", err)
	}
	if len(parsed.Nodes) != 4 || len(parsed.Levels) != 1 {
		t.Errorf("ReadGraphFile() = %d nodes, %d levels, want 4, 1", len(parsed.Nodes), len(parsed.Levels))
	}

	if _, err := graph.ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadGraphFile(missing) succeeded")
	}
}

func TestUnmarshalGraph_Invalid(t *testing.T) {
	if _, err := graph.UnmarshalGraph([]byte(`{"nodes": 3}`)); err == nil {
		t.Error("UnmarshalGraph() accepted malformed input")
	}
}

func TestFromSlice(t *testing.T) {
	s := graph.FromSlice(planar.Slice{3: {2, 1, 0}, 0: nil}, 3, false, false)

	var buf bytes.Buffer
	if err := graph.WriteSlice(s, &buf); err != nil {
		t.Fatalf("WriteSlice() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"origin": 3`, `"0": []`, `"reverse": false`} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteSlice() output missing %s:\n%s", want, out)
		}
	}
}
