package planar

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrDuplicateNode is returned by [New] when two vertices share an id.
	// Vertex ids are assigned by the triangulation engine and must be unique.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrInvalidAdjacency is returned when a relation is not reciprocal, when an
	// edge references a missing vertex or loops on itself, or when an angle is
	// requested for two nodes that are not related. It indicates corrupt input.
	ErrInvalidAdjacency = errors.New("invalid adjacency")

	// ErrUnreachableNode is matched by [UnreachableError] when a node cannot be
	// reached from any boundary node and therefore never receives a distance.
	ErrUnreachableNode = errors.New("unreachable node")

	// ErrInconsistentFaceTrace is returned by the level element tracer when the
	// rotational lookup cannot locate the previous node in a relation list.
	// This signals a broken clockwise ordering, never a recoverable condition.
	ErrInconsistentFaceTrace = errors.New("inconsistent face trace")

	// ErrDegenerateSliceOrigin is returned by [Graph.Slice] when the origin id
	// is not present in the model.
	ErrDegenerateSliceOrigin = errors.New("degenerate slice origin")

	// ErrPhaseOrder is returned when an initialization phase runs before the
	// phase it depends on, or when a query needs a phase that has not run.
	ErrPhaseOrder = errors.New("initialization phase out of order")
)

// UnreachableError reports the node that stayed unlabeled after leveling.
type UnreachableError struct {
	NodeID int
	Count  int // total number of unreachable nodes
}

func (e *UnreachableError) Error() string {
	if e.Count > 1 {
		return fmt.Sprintf("unreachable node: %d (and %d more) not connected to the boundary", e.NodeID, e.Count-1)
	}
	return fmt.Sprintf("unreachable node: %d not connected to the boundary", e.NodeID)
}

// Is reports whether target is [ErrUnreachableNode].
func (e *UnreachableError) Is(target error) bool { return target == ErrUnreachableNode }

// Unassigned is the distance of a node that has not been leveled yet.
const Unassigned = -1

// Stage records how far the one-time initialization has progressed.
// Phases must run strictly in order; see [Graph.Advance].
type Stage int

const (
	// StageBuilt: nodes exist and relations are in clockwise order.
	StageBuilt Stage = iota
	// StageLeveled: every node has a distance and levels are grouped.
	StageLeveled
	// StageTraced: level cycles and paths are recorded.
	StageTraced
	// StageAnnotated: betweener paths are recorded. The model is final.
	StageAnnotated
)

func (s Stage) String() string {
	switch s {
	case StageBuilt:
		return "built"
	case StageLeveled:
		return "leveled"
	case StageTraced:
		return "traced"
	case StageAnnotated:
		return "annotated"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Vertex is one point produced by the triangulation engine.
type Vertex struct {
	ID       int
	X, Y     int
	Boundary bool // lies on the outer hull
}

// Edge is an undirected edge between two vertex ids.
type Edge struct {
	A, B int
}

// Node is a vertex of the model with every annotation the pipeline computes.
// All fields are always present; Distance is [Unassigned] until leveling.
// Set-valued fields are kept sorted and free of duplicates.
type Node struct {
	ID       int
	X, Y     int
	Boundary bool

	// Distance is the level index: edge count to the nearest boundary node.
	Distance int

	// Relations lists neighbor ids in clockwise order (see [ClockwiseKey]).
	Relations []int

	// LevelCycles and LevelPaths hold ids of the level elements the node
	// belongs to, indexing into its level's Cycles and Paths.
	LevelCycles []int
	LevelPaths  []int

	// IsRootElement is set for members of a 3-cycle or of any level path.
	IsRootElement bool

	// BetweenerPaths holds the distance values of the level seams the node borders.
	BetweenerPaths []int
}

// HasDistance reports whether the node has been leveled.
func (n *Node) HasDistance() bool { return n.Distance != Unassigned }

// IsRelated reports whether id is one of the node's neighbors.
func (n *Node) IsRelated(id int) bool { return slices.Contains(n.Relations, id) }

// InElement reports whether the node belongs to any level cycle or path.
func (n *Node) InElement() bool { return len(n.LevelCycles) > 0 || len(n.LevelPaths) > 0 }

// AddLevelCycle records membership in the level cycle with the given id.
func (n *Node) AddLevelCycle(id int) { n.LevelCycles = addToSet(n.LevelCycles, id) }

// AddLevelPath records membership in the level path with the given id.
func (n *Node) AddLevelPath(id int) { n.LevelPaths = addToSet(n.LevelPaths, id) }

// AddBetweenerPath tags the node with a level seam.
func (n *Node) AddBetweenerPath(distance int) {
	n.BetweenerPaths = addToSet(n.BetweenerPaths, distance)
}

func addToSet(set []int, v int) []int {
	i, found := slices.BinarySearch(set, v)
	if found {
		return set
	}
	return slices.Insert(set, i, v)
}

// Level groups the nodes sharing one distance together with the cycles and
// paths traced through them. Levels are ordered by distance, level 0 being
// the boundary.
type Level struct {
	Distance int
	NodeIDs  []int   // in the order distances were assigned
	Cycles   [][]int // cyclic node sequences
	Paths    [][]int // linear node sequences
}

// Graph is the node store built once from triangulation output and then
// annotated in place by the initialization phases. After [StageAnnotated] it
// is read-only and safe for concurrent readers.
//
// The zero value is not usable - use [New].
type Graph struct {
	nodes    map[int]*Node
	ids      []int // ascending
	boundary []int // ascending
	edges    int
	levels   []Level
	stage    Stage
}

// New builds the model from triangulation vertices and undirected edges.
// Relations are made reciprocal and sorted clockwise around each node.
//
// Returns [ErrDuplicateNode] for repeated vertex ids and [ErrInvalidAdjacency]
// for edges with unknown endpoints or self-loops. Repeated edges collapse.
func New(vertices []Vertex, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make(map[int]*Node, len(vertices)),
		stage: StageBuilt,
	}
	for _, v := range vertices {
		if _, exists := g.nodes[v.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNode, v.ID)
		}
		g.nodes[v.ID] = &Node{
			ID:       v.ID,
			X:        v.X,
			Y:        v.Y,
			Boundary: v.Boundary,
			Distance: Unassigned,
		}
		if v.Boundary {
			g.boundary = append(g.boundary, v.ID)
		}
	}
	g.ids = slices.Sorted(maps.Keys(g.nodes))
	slices.Sort(g.boundary)

	for _, e := range edges {
		a, okA := g.nodes[e.A]
		b, okB := g.nodes[e.B]
		if !okA || !okB {
			return nil, fmt.Errorf("%w: edge %d-%d references a missing vertex", ErrInvalidAdjacency, e.A, e.B)
		}
		if e.A == e.B {
			return nil, fmt.Errorf("%w: self-loop on %d", ErrInvalidAdjacency, e.A)
		}
		if a.IsRelated(b.ID) {
			continue
		}
		a.Relations = append(a.Relations, b.ID)
		b.Relations = append(b.Relations, a.ID)
		g.edges++
	}

	for _, id := range g.ids {
		if err := g.SortRelations(id); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Node returns the node with the given id and true, or nil and false.
// The pointer refers to the stored node.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in ascending id order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.ids))
	for i, id := range g.ids {
		out[i] = g.nodes[id]
	}
	return out
}

// NodeIDs returns all node ids in ascending order.
func (g *Graph) NodeIDs() []int { return slices.Clone(g.ids) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Boundary returns the ids of boundary nodes in ascending order.
func (g *Graph) Boundary() []int { return slices.Clone(g.boundary) }

// Levels returns the levels in increasing distance order. The slice is the
// model's own storage and must be treated as read-only.
func (g *Graph) Levels() []Level { return g.levels }

// Level returns the level at the given distance.
func (g *Graph) Level(distance int) (*Level, bool) {
	if distance < 0 || distance >= len(g.levels) {
		return nil, false
	}
	return &g.levels[distance], true
}

// SetLevels replaces the level index. It is used by the leveling phase.
func (g *Graph) SetLevels(levels []Level) { g.levels = levels }

// Stage returns the last completed initialization phase.
func (g *Graph) Stage() Stage { return g.stage }

// Require returns [ErrPhaseOrder] unless the graph has reached stage s.
func (g *Graph) Require(s Stage) error {
	if g.stage < s {
		return fmt.Errorf("%w: need %s, graph is %s", ErrPhaseOrder, s, g.stage)
	}
	return nil
}

// Advance records completion of stage s. Stage s must directly follow the
// current stage.
func (g *Graph) Advance(s Stage) error {
	if s != g.stage+1 {
		return fmt.Errorf("%w: cannot enter %s from %s", ErrPhaseOrder, s, g.stage)
	}
	g.stage = s
	return nil
}

// Validate checks that every relation is reciprocal and that relation lists
// are in clockwise order. It returns [ErrInvalidAdjacency] on the first
// violation, scanning nodes in ascending id order.
func (g *Graph) Validate() error {
	for _, id := range g.ids {
		n := g.nodes[id]
		for _, r := range n.Relations {
			other, ok := g.nodes[r]
			if !ok {
				return fmt.Errorf("%w: %d lists missing node %d", ErrInvalidAdjacency, id, r)
			}
			if !other.IsRelated(id) {
				return fmt.Errorf("%w: %d lists %d but %d does not list %d", ErrInvalidAdjacency, id, r, r, id)
			}
		}
		sorted, err := g.relationsSorted(n)
		if err != nil {
			return err
		}
		if !sorted {
			return fmt.Errorf("%w: relations of %d are not in clockwise order", ErrInvalidAdjacency, id)
		}
	}
	return nil
}
