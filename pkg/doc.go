// Package pkg provides the core libraries for Stratum planar level
// decomposition.
//
// # Overview
//
// Stratum takes a planar triangulation and peels it like an onion: every node
// is labeled with its edge-count distance from the outer boundary, each
// distance forms a level, and each level is split into chordless cycles and
// paths traced from the planar embedding. The pkg directory is organized into
// these areas:
//
//  1. [planar] - The node store, clockwise ordering, and slice queries
//  2. [planar/transform] - The one-time initialization phases
//  3. [triangle] - Reading and generating files of the Triangle engine
//  4. [pipeline] - Orchestration (read → build → level → trace → annotate)
//  5. [graph] - JSON serialization of the decomposed model
//
// # Architecture
//
// The data flow through Stratum:
//
//	Triangle .node/.edge files
//	         ↓
//	    [triangle] package (parse vertices and edges)
//	         ↓
//	    [planar] package (build, clockwise relations)
//	         ↓
//	    [planar/transform] package (levels, cycles and paths, betweeners)
//	         ↓
//	    slice queries, JSON output
//
// # Quick Start
//
// Decompose a triangulation and extract a slice:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/stratum/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    NodeFile: "mesh.1.node",
//	    EdgeFile: "mesh.1.edge",
//	})
//	if err != nil {
//	    return err
//	}
//	for _, l := range result.Graph.Levels() {
//	    fmt.Printf("level %d: %d cycles, %d paths\n", l.Distance, len(l.Cycles), len(l.Paths))
//	}
//	s, err := runner.Slice(result.Graph, 42, true, false)
//
// # Main Packages
//
// [planar] - The model. Nodes carry coordinates, a distance, clockwise
// relations, and their level-element memberships. [planar.Graph.Slice]
// answers forward and reverse slice queries on a finished model.
//
// [planar/transform] - AssignLevels, TraceLevelElements, and
// AnnotateBetweeners. They must run once each, in that order.
//
// [triangle] - Parsers for the .node and .edge files and a seeded point
// generator producing input for the engine.
//
// [errors] - Coded errors shared by every entry point.
//
// [observability] - Optional hooks around each pipeline stage.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/planar/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [planar]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/planar
// [planar/transform]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/planar/transform
// [triangle]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/triangle
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/pipeline
// [graph]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/graph
// [errors]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/buildinfo
package pkg
