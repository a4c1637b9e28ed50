package transform

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/stratum/pkg/planar"
)

// TraceLevelElements splits every level into cycles and paths with
// [TraceLevel] and records the result on the levels and their nodes:
//   - each member of a cycle or path gets the element's id (its index in the
//     level's Cycles or Paths)
//   - members of a 3-cycle and of any path are flagged IsRootElement
//
// All levels are traced before any node is annotated, so an error leaves
// the graph untouched. Returns [planar.ErrPhaseOrder] unless the graph was
// just leveled, or [planar.ErrInconsistentFaceTrace] from the tracer.
func TraceLevelElements(g *planar.Graph) error {
	if err := expectStage(g, planar.StageLeveled); err != nil {
		return err
	}

	levels := slices.Clone(g.Levels())
	for i := range levels {
		cycles, paths, err := TraceLevel(g, levels[i].NodeIDs)
		if err != nil {
			return fmt.Errorf("level %d: %w", levels[i].Distance, err)
		}
		levels[i].Cycles = cycles
		levels[i].Paths = paths
	}

	for _, level := range levels {
		for id, cycle := range level.Cycles {
			for _, nid := range cycle {
				n, _ := g.Node(nid)
				n.AddLevelCycle(id)
				if len(cycle) == 3 {
					n.IsRootElement = true
				}
			}
		}
		for id, path := range level.Paths {
			for _, nid := range path {
				n, _ := g.Node(nid)
				n.AddLevelPath(id)
				n.IsRootElement = true
			}
		}
	}

	g.SetLevels(levels)
	return g.Advance(planar.StageTraced)
}

// TraceLevel partitions the edges between the given nodes into cycles and
// paths, using the clockwise relation order to walk faces of the embedding.
// It does not modify the graph.
//
// # Cycles
//
// Every edge inside the level yields two half-edges. Starting from each
// untraversed half-edge (u,v) the walk repeatedly turns to the neighbor that
// follows the previous node in clockwise order around the current node
// (wrapping), marking each half-edge it uses. Revisiting a path node other
// than the previous one closes a cycle: the path suffix from that node.
// Walking back into the previous node means a dead end and ends the walk.
//
// Bounded faces are walked counterclockwise (y up), so their closed walks
// have a positive signed area. The outer face of each connected part of the
// level comes out clockwise and is not recorded.
//
// The same face is found once per starting half-edge and direction, so a
// cycle is recorded only if no cycle with the same node set was recorded
// before. Two walks over equal node sets therefore collapse into one.
//
// # Paths
//
// Nodes not absorbed by any cycle are joined into maximal simple paths by
// walking, in both directions from each unvisited node, to the first
// unvisited non-cycle neighbor in clockwise order. Walks stop at cycle nodes
// and visited nodes. Single nodes are not paths. Paths are deduplicated by
// node set as well.
//
// Returns [planar.ErrInconsistentFaceTrace] if a walk cannot find the
// previous node among the current node's level relations.
func TraceLevel(g *planar.Graph, nodeIDs []int) (cycles, paths [][]int, err error) {
	t := newTracer(g, nodeIDs)
	if err := t.traceCycles(); err != nil {
		return nil, nil, err
	}
	t.tracePaths()
	return t.cycles.items, t.paths.items, nil
}

type halfEdge struct{ from, to int }

type tracer struct {
	g          *planar.Graph
	order      []int
	rotation   map[int][]int // clockwise relations restricted to the level
	traversed  map[halfEdge]bool
	notInCycle map[int]bool
	cycles     elementSet
	paths      elementSet
}

func newTracer(g *planar.Graph, nodeIDs []int) *tracer {
	inLevel := make(map[int]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		inLevel[id] = true
	}

	t := &tracer{
		g:          g,
		order:      nodeIDs,
		rotation:   make(map[int][]int, len(nodeIDs)),
		traversed:  make(map[halfEdge]bool),
		notInCycle: make(map[int]bool, len(nodeIDs)),
		cycles:     newElementSet(),
		paths:      newElementSet(),
	}
	for _, id := range nodeIDs {
		t.notInCycle[id] = true
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		var rot []int
		for _, r := range n.Relations {
			if inLevel[r] {
				rot = append(rot, r)
			}
		}
		t.rotation[id] = rot
	}
	return t
}

func (t *tracer) traceCycles() error {
	for _, from := range t.order {
		for _, to := range t.rotation[from] {
			start := halfEdge{from, to}
			if t.traversed[start] {
				continue
			}
			if err := t.traceFace(start); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *tracer) traceFace(start halfEdge) error {
	t.traversed[start] = true
	path := []int{start.from, start.to}
	index := map[int]int{start.from: 0, start.to: 1}

	for {
		prev, last := path[len(path)-2], path[len(path)-1]
		next, err := t.turn(prev, last)
		if err != nil {
			return err
		}
		t.traversed[halfEdge{last, next}] = true

		if next == prev {
			return nil
		}
		if i, seen := index[next]; seen {
			cycle := path[i:]
			if t.signedArea(cycle) > 0 && t.cycles.add(cycle) {
				for _, id := range cycle {
					delete(t.notInCycle, id)
				}
			}
			return nil
		}
		index[next] = len(path)
		path = append(path, next)
	}
}

// signedArea returns twice the shoelace area of the closed walk.
func (t *tracer) signedArea(cycle []int) int {
	area := 0
	for i, id := range cycle {
		a, _ := t.g.Node(id)
		b, _ := t.g.Node(cycle[(i+1)%len(cycle)])
		area += a.X*b.Y - b.X*a.Y
	}
	return area
}

// turn returns the neighbor following prev in clockwise order around last.
func (t *tracer) turn(prev, last int) (int, error) {
	rot := t.rotation[last]
	i := slices.Index(rot, prev)
	if i < 0 {
		return 0, fmt.Errorf("%w: %d not found around %d", planar.ErrInconsistentFaceTrace, prev, last)
	}
	return rot[(i+1)%len(rot)], nil
}

func (t *tracer) tracePaths() {
	visited := make(map[int]bool, len(t.notInCycle))
	for _, id := range t.order {
		if !t.notInCycle[id] || visited[id] {
			continue
		}
		visited[id] = true
		forward := t.extend(id, visited)
		backward := t.extend(id, visited)

		path := make([]int, 0, len(backward)+1+len(forward))
		for i := len(backward) - 1; i >= 0; i-- {
			path = append(path, backward[i])
		}
		path = append(path, id)
		path = append(path, forward...)
		if len(path) >= 2 {
			t.paths.add(path)
		}
	}
}

// extend walks from id through unvisited non-cycle nodes, marking them.
func (t *tracer) extend(id int, visited map[int]bool) []int {
	var out []int
	for cur := id; ; {
		next, found := 0, false
		for _, r := range t.rotation[cur] {
			if t.notInCycle[r] && !visited[r] {
				next, found = r, true
				break
			}
		}
		if !found {
			return out
		}
		visited[next] = true
		out = append(out, next)
		cur = next
	}
}

// elementSet keeps elements in insertion order, unique by node set.
type elementSet struct {
	items [][]int
	keys  map[string]bool
}

func newElementSet() elementSet {
	return elementSet{keys: make(map[string]bool)}
}

// add records a copy of ids unless an element with the same node set
// exists. It reports whether ids was added.
func (s *elementSet) add(ids []int) bool {
	key := setKey(ids)
	if s.keys[key] {
		return false
	}
	s.keys[key] = true
	s.items = append(s.items, slices.Clone(ids))
	return true
}

func setKey(ids []int) string {
	sorted := slices.Sorted(slices.Values(ids))
	sorted = slices.Compact(sorted)
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
