package transform

import (
	"fmt"

	"github.com/matzehuels/stratum/pkg/planar"
)

// AssignLevels labels every node with its edge-count distance from the
// boundary and groups nodes of equal distance into levels.
//
// AssignLevels runs a multi-source breadth-first traversal:
//  1. The frontier starts as the boundary nodes, all at distance 0
//  2. Every unlabeled neighbor of a frontier node gets distance+1 and joins
//     the next frontier
//  3. Each frontier becomes one level, in assignment order
//  4. The traversal stops when a frontier is empty
//
// Relations are visited in clockwise order, so the node order inside each
// level is deterministic.
//
// If any node is left unlabeled, AssignLevels returns a
// [*planar.UnreachableError] naming the lowest such id, and the graph keeps
// no distances or levels. Returns [planar.ErrPhaseOrder] if the graph has
// already been leveled.
//
// Time complexity is O(V + E).
func AssignLevels(g *planar.Graph) error {
	if err := expectStage(g, planar.StageBuilt); err != nil {
		return err
	}

	distance := make(map[int]int, g.NodeCount())
	var levels []planar.Level

	frontier := g.Boundary()
	for _, id := range frontier {
		distance[id] = 0
	}
	for d := 0; len(frontier) > 0; d++ {
		levels = append(levels, planar.Level{Distance: d, NodeIDs: frontier})

		var next []int
		for _, id := range frontier {
			n, _ := g.Node(id)
			for _, r := range n.Relations {
				if _, labeled := distance[r]; !labeled {
					distance[r] = d + 1
					next = append(next, r)
				}
			}
		}
		frontier = next
	}

	if len(distance) != g.NodeCount() {
		return unreachable(g, distance)
	}

	for _, n := range g.Nodes() {
		n.Distance = distance[n.ID]
	}
	g.SetLevels(levels)
	return g.Advance(planar.StageLeveled)
}

func unreachable(g *planar.Graph, distance map[int]int) error {
	err := &planar.UnreachableError{NodeID: -1}
	for _, id := range g.NodeIDs() {
		if _, ok := distance[id]; ok {
			continue
		}
		if err.Count == 0 {
			err.NodeID = id
		}
		err.Count++
	}
	return err
}

// expectStage fails unless the previous phase was exactly want.
func expectStage(g *planar.Graph, want planar.Stage) error {
	if g.Stage() != want {
		return fmt.Errorf("%w: expected %s graph, got %s", planar.ErrPhaseOrder, want, g.Stage())
	}
	return nil
}
