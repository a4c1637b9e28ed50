package pipeline

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"

	"github.com/matzehuels/stratum/pkg/planar"
)

// InputHash computes a SHA-256 hash of a triangulation. Vertex and edge
// order do not matter, nor does the direction of an edge.
// Returns the full 64-character hex string.
func InputHash(vertices []planar.Vertex, edges []planar.Edge) string {
	v := slices.Clone(vertices)
	slices.SortFunc(v, func(a, b planar.Vertex) int { return cmp.Compare(a.ID, b.ID) })

	e := make([]planar.Edge, len(edges))
	for i, edge := range edges {
		if edge.A > edge.B {
			edge.A, edge.B = edge.B, edge.A
		}
		e[i] = edge
	}
	slices.SortFunc(e, func(a, b planar.Edge) int {
		return cmp.Or(cmp.Compare(a.A, b.A), cmp.Compare(a.B, b.B))
	})
	e = slices.Compact(e)

	data, _ := json.Marshal(struct {
		V []planar.Vertex
		E []planar.Edge
	}{v, e})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash abbreviates a hash from [InputHash] for logs and terminal output.
func ShortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
