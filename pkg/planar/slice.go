package planar

import (
	"fmt"
	"maps"
	"slices"
)

// Slice maps each node reached by a slice traversal to the children it was
// expanded into, in clockwise order. Every visited node has an entry; nodes
// without children map to an empty slice.
//
// A Slice is built fresh per query and owned by the caller.
type Slice map[int][]int

// Nodes returns the ids of all nodes in the slice in ascending order.
func (s Slice) Nodes() []int { return slices.Sorted(maps.Keys(s)) }

// Contains reports whether id was reached.
func (s Slice) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// EdgeCount returns the number of parent-child links in the slice.
func (s Slice) EdgeCount() int {
	total := 0
	for _, children := range s {
		total += len(children)
	}
	return total
}

// Slice extracts the connected slice rooted at origin.
//
// The forward slice (isReverse false) follows every relation with a strictly
// smaller distance, moving toward the boundary. When isOrigin is set and the
// origin belongs to a level element, all nodes of that element are roots:
// the lowest-id cycle wins over paths, and the lowest-id path is used
// otherwise.
//
// The reverse slice (isReverse true) starts at origin alone and follows every
// relation with a strictly greater distance, stopping at local maxima.
//
// Each node is expanded at most once, so the traversal terminates on any
// finite graph. Returns [ErrDegenerateSliceOrigin] for an unknown origin and
// [ErrPhaseOrder] if the graph has not been leveled.
func (g *Graph) Slice(origin int, isOrigin, isReverse bool) (Slice, error) {
	n, ok := g.nodes[origin]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrDegenerateSliceOrigin, origin)
	}
	if err := g.Require(StageLeveled); err != nil {
		return nil, err
	}

	if isReverse {
		return g.walk([]int{origin}, func(parent, child *Node) bool {
			return child.Distance > parent.Distance
		}), nil
	}

	roots := []int{origin}
	if isOrigin {
		if element := g.elementOf(n); len(element) > 0 {
			roots = element
		}
	}
	return g.walk(roots, func(parent, child *Node) bool {
		return child.Distance < parent.Distance
	}), nil
}

// elementOf returns the node ids of the level element n belongs to, or nil.
func (g *Graph) elementOf(n *Node) []int {
	if !n.HasDistance() || n.Distance >= len(g.levels) {
		return nil
	}
	level := &g.levels[n.Distance]
	if len(n.LevelCycles) > 0 {
		return slices.Clone(level.Cycles[n.LevelCycles[0]])
	}
	if len(n.LevelPaths) > 0 {
		return slices.Clone(level.Paths[n.LevelPaths[0]])
	}
	return nil
}

// walk runs a depth-first expansion from roots with an explicit stack.
// follow decides which relations become children.
func (g *Graph) walk(roots []int, follow func(parent, child *Node) bool) Slice {
	out := make(Slice)
	stack := make([]int, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := out[id]; seen {
			continue
		}

		n := g.nodes[id]
		children := []int{}
		for _, r := range n.Relations {
			if follow(n, g.nodes[r]) {
				children = append(children, r)
			}
		}
		out[id] = children

		for i := len(children) - 1; i >= 0; i-- {
			if _, seen := out[children[i]]; !seen {
				stack = append(stack, children[i])
			}
		}
	}
	return out
}
