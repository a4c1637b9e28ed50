package triangle

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/planar"
)

const fanNode = `# fan.1.node
4  2  1  1
   1    0  0    0.5  1
   2   10  0    0.5  1
   3    5  10   0.5  1   # apex
   4  4.6  3.5  0.5  0
`

const fanEdge = `6  1
   1    1  2  1
   2    2  3  1
   3    3  1  1

   4    4  1  0
   5    4  2  0
   6    4  3  0
`

func TestParseNodes(t *testing.T) {
	got, err := ParseNodes(strings.NewReader(fanNode))
	if err != nil {
		t.Fatalf("ParseNodes() error = %v", err)
	}
	want := []planar.Vertex{
		{ID: 1, X: 0, Y: 0, Boundary: true},
		{ID: 2, X: 10, Y: 0, Boundary: true},
		{ID: 3, X: 5, Y: 10, Boundary: true},
		{ID: 4, X: 5, Y: 4},
	}
	if !slices.Equal(got, want) {
		t.Errorf("ParseNodes() = %v, want %v", got, want)
	}
}

func TestParseNodes_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "# nothing here\n"},
		{"short header", "3 2\n"},
		{"three dimensions", "1 3 0 1\n1 0 0 0 1\n"},
		{"no markers", "1 2 0 0\n1 0 0\n"},
		{"missing marker", "1 2 0 1\n1 0 0\n"},
		{"bad id", "1 2 0 1\nx 0 0 1\n"},
		{"bad coordinate", "1 2 0 1\n1 zero 0 1\n"},
		{"count mismatch", "2 2 0 1\n1 0 0 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNodes(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ParseNodes() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestParseEdges(t *testing.T) {
	got, err := ParseEdges(strings.NewReader(fanEdge))
	if err != nil {
		t.Fatalf("ParseEdges() error = %v", err)
	}
	want := []planar.Edge{
		{A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 1},
		{A: 4, B: 1}, {A: 4, B: 2}, {A: 4, B: 3},
	}
	if !slices.Equal(got, want) {
		t.Errorf("ParseEdges() = %v, want %v", got, want)
	}
}

func TestParseEdges_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad header", "many 0\n"},
		{"short line", "1 0\n1 2\n"},
		{"count mismatch", "2 0\n1 1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEdges(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ParseEdges() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	nodePath := filepath.Join(dir, "fan.1.node")
	edgePath := filepath.Join(dir, "fan.1.edge")
	if err := os.WriteFile(nodePath, []byte(fanNode), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(edgePath, []byte(fanEdge), 0o644); err != nil {
		t.Fatal(err)
	}

	vertices, edges, err := ReadFiles(nodePath, edgePath)
	if err != nil {
		t.Fatalf("ReadFiles() error = %v", err)
	}
	if len(vertices) != 4 || len(edges) != 6 {
		t.Errorf("ReadFiles() = %d vertices, %d edges, want 4, 6", len(vertices), len(edges))
	}

	_, _, err = ReadFiles(nodePath, filepath.Join(dir, "missing.edge"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFiles(missing) error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.node")
	if err := os.WriteFile(bad, []byte("1 2 0 0\n1 0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err = ReadFiles(bad, edgePath)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadFiles(bad) error = %v, want INVALID_FORMAT", err)
	}
	if err != nil && !strings.Contains(err.Error(), bad) {
		t.Errorf("ReadFiles(bad) error %q does not name the file", err)
	}
}
