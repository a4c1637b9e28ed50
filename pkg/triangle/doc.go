// Package triangle reads and writes the plain-text files used by Jonathan
// Shewchuk's Triangle mesh generator.
//
// # Overview
//
// The decomposition works on Delaunay triangulations, but triangulating is
// left to Triangle itself. This package sits on both sides of that step:
//
//	points ──[WriteNodeFile]──▶ input.node ──(triangle -e)──▶ input.1.node
//	                                                         input.1.edge
//	                                                              │
//	            []planar.Vertex, []planar.Edge ◀──[ReadFiles]─────┘
//
// # Node Files
//
// A .node file starts with a header line:
//
//	<vertices> <dimension (2)> <attributes> <boundary markers (0 or 1)>
//
// followed by one line per vertex:
//
//	<id> <x> <y> [attributes...] [boundary marker]
//
// Coordinates may be written as floating point numbers; they are rounded to
// the nearest integer. A nonzero boundary marker flags the vertex as lying on
// the outer hull. Files without a marker column are rejected because the
// decomposition needs at least one boundary vertex.
//
// # Edge Files
//
// A .edge file starts with "<edges> <boundary markers>" followed by
//
//	<id> <endpoint> <endpoint> [boundary marker]
//
// Edge markers are ignored; boundary membership is read from the node file.
//
// In both formats everything after a '#' is a comment and blank lines are
// skipped.
//
// # Point Generation
//
// [GeneratePoints] produces a reproducible point set from a seed string:
// three fixed hull points and random points sampled from a trapezoid between
// them, with unique x coordinates. [WriteNodeFile] writes the set in Triangle's
// input format.
package triangle
