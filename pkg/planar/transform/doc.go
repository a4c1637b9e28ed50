// Package transform provides the initialization phases that annotate a
// [planar.Graph] after it has been built.
//
// The phases must run in this order, each exactly once:
//
//  1. [AssignLevels]: multi-source BFS distance from the boundary
//  2. [TraceLevelElements]: cycles and paths inside each level
//  3. [AnnotateBetweeners]: seam nodes between level elements
//
// Each phase checks [planar.Graph.Stage] and returns [planar.ErrPhaseOrder]
// when called out of order. A phase that fails leaves the graph as it found
// it. Use the pipeline package to run all phases at once.
//
// All traversals use explicit queues and stacks, so large graphs with
// hundreds of levels or very long level cycles do not grow the call stack.
//
// [planar.Graph]: github.com/matzehuels/stratum/pkg/planar.Graph
package transform
