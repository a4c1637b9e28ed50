package transform

import "github.com/matzehuels/stratum/pkg/planar"

// AnnotateBetweeners tags the nodes that sit on the seam between two level
// elements.
//
// For every node the clockwise relations are scanned as a circular sequence.
// A neighbor at the node's own distance followed by a neighbor at a greater
// distance opens a run; the next greater-to-equal step closes it. The two
// equal-distance neighbors bounding the run are its start and end. When they
// differ, start, end, and the center node all gain the center's distance in
// their BetweenerPaths. A run that ends in a lower-distance neighbor is
// dropped.
//
// Returns [planar.ErrPhaseOrder] unless the graph was just traced.
func AnnotateBetweeners(g *planar.Graph) error {
	if err := expectStage(g, planar.StageTraced); err != nil {
		return err
	}

	for _, n := range g.Nodes() {
		for _, s := range seams(g, n) {
			for _, id := range [3]int{s.start, s.end, n.ID} {
				m, _ := g.Node(id)
				m.AddBetweenerPath(n.Distance)
			}
		}
	}
	return g.Advance(planar.StageAnnotated)
}

type seam struct{ start, end int }

// seams returns the distinct runs of higher-level neighbors around n that
// are bounded by two different same-level neighbors.
func seams(g *planar.Graph, n *planar.Node) []seam {
	rel := n.Relations
	k := len(rel)
	if k < 2 {
		return nil
	}

	side := func(id int) int {
		m, _ := g.Node(id)
		switch {
		case m.Distance > n.Distance:
			return 1
		case m.Distance < n.Distance:
			return -1
		}
		return 0
	}

	var out []seam
	seen := make(map[seam]bool)
	start, open := 0, false

	// Two laps so that runs wrapping past index 0 are closed.
	for i := 0; i < 2*k; i++ {
		prev, cur := rel[(i+k-1)%k], rel[i%k]
		ps, cs := side(prev), side(cur)
		switch {
		case ps == 0 && cs == 1:
			start, open = prev, true
		case ps == 1 && cs != 1:
			if open && cs == 0 && start != cur {
				s := seam{start, cur}
				if !seen[s] {
					seen[s] = true
					out = append(out, s)
				}
			}
			open = false
		}
	}
	return out
}
