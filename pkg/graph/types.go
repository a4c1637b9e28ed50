package graph

import (
	"cmp"
	"encoding/json"
	"slices"

	"github.com/matzehuels/stratum/pkg/planar"
)

// =============================================================================
// Graph - Decomposition Serialization
// =============================================================================

// Graph is the serialization format for a decomposed planar graph.
type Graph struct {
	Stage  string  `json:"stage"`
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Levels []Level `json:"levels"`
}

// Node mirrors planar.Node. Distance is -1 for a node that was never leveled.
type Node struct {
	ID             int   `json:"id"`
	X              int   `json:"x"`
	Y              int   `json:"y"`
	Boundary       bool  `json:"boundary"`
	Distance       int   `json:"distance"`
	Relations      []int `json:"relations"`
	LevelCycles    []int `json:"level_cycles"`
	LevelPaths     []int `json:"level_paths"`
	IsRootElement  bool  `json:"is_root_element"`
	BetweenerPaths []int `json:"betweener_paths"`
}

// Edge is an undirected edge with A < B.
type Edge struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Level mirrors planar.Level.
type Level struct {
	Distance int     `json:"distance"`
	NodeIDs  []int   `json:"node_ids"`
	Cycles   [][]int `json:"cycles"`
	Paths    [][]int `json:"paths"`
}

// Slice is the serialization format for a slice query.
type Slice struct {
	Origin   int           `json:"origin"`
	Element  bool          `json:"element"`
	Reverse  bool          `json:"reverse"`
	Children map[int][]int `json:"children"`
}

// =============================================================================
// planar ↔ Graph Conversion
// =============================================================================

// FromPlanar converts the model to its serialization format. Nodes are
// sorted by id and edges by (A, B) for deterministic output.
func FromPlanar(g *planar.Graph) Graph {
	out := Graph{
		Stage:  g.Stage().String(),
		Nodes:  make([]Node, 0, g.NodeCount()),
		Edges:  make([]Edge, 0, g.EdgeCount()),
		Levels: make([]Level, len(g.Levels())),
	}

	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, nodeFromPlanar(n))
		for _, r := range n.Relations {
			if n.ID < r {
				out.Edges = append(out.Edges, Edge{A: n.ID, B: r})
			}
		}
	}
	slices.SortFunc(out.Edges, func(x, y Edge) int {
		return cmp.Or(cmp.Compare(x.A, y.A), cmp.Compare(x.B, y.B))
	})

	for i, l := range g.Levels() {
		out.Levels[i] = Level{
			Distance: l.Distance,
			NodeIDs:  ints(l.NodeIDs),
			Cycles:   sequences(l.Cycles),
			Paths:    sequences(l.Paths),
		}
	}
	return out
}

// FromSlice converts a slice query result to its serialization format.
func FromSlice(s planar.Slice, origin int, element, reverse bool) Slice {
	out := Slice{
		Origin:   origin,
		Element:  element,
		Reverse:  reverse,
		Children: make(map[int][]int, len(s)),
	}
	for id, children := range s {
		out.Children[id] = ints(children)
	}
	return out
}

// Input returns the triangulation input the graph was built from, suitable
// for planar.New.
func (g Graph) Input() ([]planar.Vertex, []planar.Edge) {
	vertices := make([]planar.Vertex, len(g.Nodes))
	for i, n := range g.Nodes {
		vertices[i] = planar.Vertex{ID: n.ID, X: n.X, Y: n.Y, Boundary: n.Boundary}
	}
	edges := make([]planar.Edge, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = planar.Edge{A: e.A, B: e.B}
	}
	return vertices, edges
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func nodeFromPlanar(n *planar.Node) Node {
	return Node{
		ID:             n.ID,
		X:              n.X,
		Y:              n.Y,
		Boundary:       n.Boundary,
		Distance:       n.Distance,
		Relations:      ints(n.Relations),
		LevelCycles:    ints(n.LevelCycles),
		LevelPaths:     ints(n.LevelPaths),
		IsRootElement:  n.IsRootElement,
		BetweenerPaths: ints(n.BetweenerPaths),
	}
}

// ints copies s, turning nil into an empty slice so it encodes as [].
func ints(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func sequences(s [][]int) [][]int {
	out := make([][]int, len(s))
	for i, seq := range s {
		out[i] = ints(seq)
	}
	return out
}
