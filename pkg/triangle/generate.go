package triangle

import (
	"bufio"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/stratum/pkg/errors"
)

const (
	// DefaultPointCount is the number of points produced when none is given.
	DefaultPointCount = 200

	// MaxPointCount bounds GeneratePoints. The sampling region has fewer
	// distinct x coordinates than this by a wide margin.
	MaxPointCount = 600
)

// Point is an input point for Triangle.
type Point struct {
	X, Y int
}

// fixedPoints span the hull every generated set shares.
var fixedPoints = []Point{{0, 750}, {750, 0}, {1500, 751}}

// GeneratePoints returns n points derived deterministically from seed.
//
// The first three points are fixed and bound the hull. Each further point
// draws y from [201, 700] and x from a band that widens as y grows, so the
// samples fill a trapezoid inside the fixed triangle. A candidate is kept
// only if no earlier point shares its x coordinate and x != 750.
//
// Returns an INVALID_INPUT error unless 3 <= n <= [MaxPointCount].
func GeneratePoints(seed string, n int) ([]Point, error) {
	if n < len(fixedPoints) || n > MaxPointCount {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"point count %d out of range [%d, %d]", n, len(fixedPoints), MaxPointCount)
	}

	h := fnv.New64a()
	h.Write([]byte(seed))
	sum := h.Sum64()
	r := rand.New(rand.NewPCG(sum, sum^0x9e3779b97f4a7c15))

	points := make([]Point, 0, n)
	usedX := make(map[int]bool, n)
	for _, p := range fixedPoints {
		points = append(points, p)
		usedX[p.X] = true
	}
	for len(points) < n {
		y := r.IntN(500)
		if y == 0 {
			y = 1
		}
		y += 200
		span := int(math.RoundToEven(float64(y) * 4 / 3))
		x := r.IntN(span) + int(math.RoundToEven(float64(500-y)*3/4)) + 400
		if usedX[x] || x == 750 {
			continue
		}
		usedX[x] = true
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

// WriteNodeFile writes points as a Triangle .node file without attributes
// or boundary markers. Vertex ids start at 1.
func WriteNodeFile(w io.Writer, points []Point) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d  2  0  0\n", len(points))
	for i, p := range points {
		fmt.Fprintf(bw, "   %d    %d  %d\n", i+1, p.X, p.Y)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write node file: %w", err)
	}
	return nil
}
