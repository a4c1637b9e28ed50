// Package planar provides the node store for a planar triangulation and the
// queries answered against it once it has been decomposed into levels.
//
// # Overview
//
// A triangulation engine produces vertices with integer coordinates, a
// boundary flag for hull vertices, and undirected edges. [New] turns that
// output into a [Graph] whose nodes list their neighbors in clockwise order
// around themselves ([ClockwiseKey]).
//
// The graph is then annotated by the initialization phases in the
// [transform] subpackage, strictly in this order:
//
//  1. Leveling: multi-source BFS distance from the boundary, grouping nodes
//     into [Level] records (level 0 is the boundary)
//  2. Tracing: each level's internal edges are split into cycles and paths
//     ("level elements") by walking faces of the planar embedding
//  3. Annotation: nodes at the seam between two level elements are tagged
//     with betweener paths
//
// [Graph.Stage] tracks progress and each phase refuses to run out of order.
// The [pipeline] package runs all phases and never hands out a partially
// annotated graph.
//
// # Slices
//
// [Graph.Slice] extracts the sub-forest reached from an origin by always
// moving toward the boundary (forward) or away from it (reverse):
//
//	s, err := g.Slice(origin, true, false)
//	for _, id := range s.Nodes() {
//	    fmt.Println(id, "->", s[id])
//	}
//
// # Concurrency
//
// Building and annotating a graph is single-threaded. Once the graph reaches
// [StageAnnotated] it is never mutated again, and concurrent readers
// (including concurrent Slice calls) are safe.
//
// [transform]: github.com/matzehuels/stratum/pkg/planar/transform
// [pipeline]: github.com/matzehuels/stratum/pkg/pipeline
package planar
