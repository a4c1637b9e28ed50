package triangle

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/planar"
)

// ReadFiles reads a .node and a .edge file produced by Triangle.
func ReadFiles(nodePath, edgePath string) ([]planar.Vertex, []planar.Edge, error) {
	vertices, err := readFile(nodePath, ParseNodes)
	if err != nil {
		return nil, nil, err
	}
	edges, err := readFile(edgePath, ParseEdges)
	if err != nil {
		return nil, nil, err
	}
	return vertices, edges, nil
}

func readFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	out, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// ParseNodes decodes a .node file.
//
// The header decides how many attribute columns sit between the coordinates
// and the boundary marker. ParseNodes returns an INVALID_FORMAT error if the
// header is malformed, the dimension is not 2, the file carries no boundary
// markers, a line is short or non-numeric, or the vertex count does not
// match the header.
func ParseNodes(r io.Reader) ([]planar.Vertex, error) {
	lines := newLineReader(r)

	header, ok, err := lines.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty node file")
	}
	h, err := lines.ints(header, 4)
	if err != nil {
		return nil, err
	}
	count, dim, attrs, markers := h[0], h[1], h[2], h[3]
	switch {
	case count < 0 || attrs < 0:
		return nil, lines.fail("negative count in header")
	case dim != 2:
		return nil, lines.fail("dimension %d, want 2", dim)
	case markers == 0:
		return nil, lines.fail("no boundary markers")
	}

	markerCol := 3 + attrs
	vertices := make([]planar.Vertex, 0, count)
	for {
		fields, ok, err := lines.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if len(fields) <= markerCol {
			return nil, lines.fail("expected %d fields, got %d", markerCol+1, len(fields))
		}
		id, err := lines.atoi(fields[0])
		if err != nil {
			return nil, err
		}
		x, err := lines.coord(fields[1])
		if err != nil {
			return nil, err
		}
		y, err := lines.coord(fields[2])
		if err != nil {
			return nil, err
		}
		marker, err := lines.atoi(fields[markerCol])
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, planar.Vertex{ID: id, X: x, Y: y, Boundary: marker != 0})
	}

	if len(vertices) != count {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "header declares %d vertices, found %d", count, len(vertices))
	}
	return vertices, nil
}

// ParseEdges decodes a .edge file. It returns an INVALID_FORMAT error if the
// header is malformed, a line is short or non-numeric, or the edge count
// does not match the header.
func ParseEdges(r io.Reader) ([]planar.Edge, error) {
	lines := newLineReader(r)

	header, ok, err := lines.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty edge file")
	}
	h, err := lines.ints(header, 1)
	if err != nil {
		return nil, err
	}
	count := h[0]
	if count < 0 {
		return nil, lines.fail("negative count in header")
	}

	edges := make([]planar.Edge, 0, count)
	for {
		fields, ok, err := lines.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		e, err := lines.ints(fields, 3)
		if err != nil {
			return nil, err
		}
		edges = append(edges, planar.Edge{A: e[1], B: e[2]})
	}

	if len(edges) != count {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "header declares %d edges, found %d", count, len(edges))
	}
	return edges, nil
}

// lineReader yields the whitespace-separated fields of each non-empty line
// with comments removed, tracking line numbers for error messages.
type lineReader struct {
	s    *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{s: bufio.NewScanner(r)}
}

func (l *lineReader) next() ([]string, bool, error) {
	for l.s.Scan() {
		l.line++
		text := l.s.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		if fields := strings.Fields(text); len(fields) > 0 {
			return fields, true, nil
		}
	}
	if err := l.s.Err(); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "scan line %d", l.line+1)
	}
	return nil, false, nil
}

func (l *lineReader) fail(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidFormat, "line %d: "+format, append([]any{l.line}, args...)...)
}

// ints parses the first n fields as integers.
func (l *lineReader) ints(fields []string, n int) ([]int, error) {
	if len(fields) < n {
		return nil, l.fail("expected %d fields, got %d", n, len(fields))
	}
	out := make([]int, n)
	for i := range n {
		v, err := l.atoi(fields[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (l *lineReader) atoi(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, l.fail("%q is not an integer", s)
	}
	return v, nil
}

func (l *lineReader) coord(s string) (int, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, l.fail("%q is not a coordinate", s)
	}
	return int(math.Round(v)), nil
}
