package planar

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// AngleKey is the sort key of one spoke around a center node.
// Angle is measured clockwise from the reference vector (0,1) and lies in
// [0, 2π); Length is the Euclidean spoke length and breaks ties.
type AngleKey struct {
	Angle  float64
	Length float64
}

// degenerateKey sorts before every real spoke.
var degenerateKey = AngleKey{Angle: -math.Pi, Length: 0}

// Compare orders keys by angle, then by length.
func (k AngleKey) Compare(o AngleKey) int {
	if c := cmp.Compare(k.Angle, o.Angle); c != 0 {
		return c
	}
	return cmp.Compare(k.Length, o.Length)
}

// ClockwiseKey returns the sort key of spoke around center.
//
// Coincident coordinates yield the minimal key (angle -π, length 0) so that
// degenerate edges sort first. Returns [ErrInvalidAdjacency] if spoke is not
// listed in center's relations.
func ClockwiseKey(center, spoke *Node) (AngleKey, error) {
	if !center.IsRelated(spoke.ID) {
		return AngleKey{}, fmt.Errorf("%w: %d is not related to %d", ErrInvalidAdjacency, spoke.ID, center.ID)
	}
	return spokeKey(center, spoke), nil
}

func spokeKey(center, spoke *Node) AngleKey {
	vx := float64(spoke.X - center.X)
	vy := float64(spoke.Y - center.Y)
	length := math.Hypot(vx, vy)
	if length == 0 {
		return degenerateKey
	}

	// atan2(cross, dot) against (0,1) on the unit vector
	angle := math.Atan2(vx/length, vy/length)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return AngleKey{Angle: angle, Length: length}
}

// SortRelations orders the relations of node id clockwise.
// The sort is stable, so re-sorting an ordered list leaves it unchanged.
func (g *Graph) SortRelations(id int) error {
	center, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: unknown node %d", ErrInvalidAdjacency, id)
	}
	keys, err := g.relationKeys(center)
	if err != nil {
		return err
	}
	slices.SortStableFunc(center.Relations, func(a, b int) int {
		return keys[a].Compare(keys[b])
	})
	return nil
}

func (g *Graph) relationKeys(center *Node) (map[int]AngleKey, error) {
	keys := make(map[int]AngleKey, len(center.Relations))
	for _, r := range center.Relations {
		spoke, ok := g.nodes[r]
		if !ok {
			return nil, fmt.Errorf("%w: %d lists missing node %d", ErrInvalidAdjacency, center.ID, r)
		}
		keys[r] = spokeKey(center, spoke)
	}
	return keys, nil
}

func (g *Graph) relationsSorted(center *Node) (bool, error) {
	keys, err := g.relationKeys(center)
	if err != nil {
		return false, err
	}
	return slices.IsSortedFunc(center.Relations, func(a, b int) int {
		return keys[a].Compare(keys[b])
	}), nil
}
