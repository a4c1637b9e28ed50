// Package graph provides serialization types for decomposed planar graphs.
//
// This package defines the JSON wire format for stratum's results, used by
// the CLI's --json output and by any tool that consumes a decomposition.
//
// # Architecture
//
// The package sits at the serialization boundary between the in-memory model
// and external formats:
//
//   - [Graph], [Slice]: Serialization types (this package)
//   - pkg/planar.Graph: Internal model, annotated in place
//   - pkg/planar.Slice: Internal slice query result
//
// Use [FromPlanar] and [FromSlice] to convert into the wire format, and
// [Graph.Input] to recover the triangulation input from a serialized graph.
//
// # Graph Serialization
//
// Every node field is always present, with empty arrays rather than nulls:
//
//	{
//	  "stage": "annotated",
//	  "nodes": [{"id": 1, "x": 0, "y": 0, "boundary": true, "distance": 0,
//	             "relations": [2], "level_cycles": [], "level_paths": [0],
//	             "is_root_element": true, "betweener_paths": []}],
//	  "edges": [{"a": 1, "b": 2}],
//	  "levels": [{"distance": 0, "node_ids": [1, 2], "cycles": [], "paths": [[1, 2]]}]
//	}
//
// Common operations:
//
//	data, _ := graph.MarshalGraph(g)          // planar.Graph → []byte
//	graph.WriteGraphFile(g, "mesh.json")      // planar.Graph → File
//	parsed, _ := graph.ReadGraphFile("mesh.json")
//	vertices, edges := parsed.Input()         // re-run the pipeline
//
// # Concurrency
//
// All functions are safe for concurrent use on a finished model.
package graph
