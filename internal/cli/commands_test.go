package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/graph"
)

// A boundary triangle 1,2,3 with node 4 inside, joined to all corners.
const (
	fanNode = `4  2  0  1
1   0   0  1
2  10   0  1
3   5  10  1
4   5   4  0
`
	fanEdge = `6  0
1  1  2
2  2  3
3  3  1
4  4  1
5  4  2
6  4  3
`
)

func writeFan(t *testing.T) (node, edge string) {
	t.Helper()
	dir := t.TempDir()
	node = filepath.Join(dir, "fan.1.node")
	edge = filepath.Join(dir, "fan.1.edge")
	if err := os.WriteFile(node, []byte(fanNode), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(edge, []byte(fanEdge), 0o644); err != nil {
		t.Fatal(err)
	}
	return node, edge
}

// execute runs the root command in an empty working directory so no
// stratum.toml is picked up by accident.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeIn(t, t.TempDir(), args...)
}

func executeIn(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	node, edge := writeFan(t)

	out, err := execute(t, "analyze", node, edge, "--json")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	g, err := graph.ReadGraph(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}

	if g.Stage != "annotated" {
		t.Errorf("Stage = %q, want annotated", g.Stage)
	}
	if len(g.Nodes) != 4 || len(g.Edges) != 6 {
		t.Errorf("got %d nodes, %d edges, want 4, 6", len(g.Nodes), len(g.Edges))
	}
	if len(g.Levels) != 2 {
		t.Fatalf("got %d levels, want 2", len(g.Levels))
	}
	if len(g.Levels[0].Cycles) != 1 || len(g.Levels[0].Cycles[0]) != 3 {
		t.Errorf("level 0 cycles = %v, want one triangle", g.Levels[0].Cycles)
	}
	if !slices.Equal(g.Levels[1].NodeIDs, []int{4}) {
		t.Errorf("level 1 nodes = %v, want [4]", g.Levels[1].NodeIDs)
	}
}

func TestAnalyzeTable(t *testing.T) {
	node, edge := writeFan(t)

	out, err := execute(t, "analyze", node, edge, "--validate")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	for _, want := range []string{"Level", "Cycles", "Paths"} {
		if !strings.Contains(out, want) {
			t.Errorf("level table missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.node")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"NoInput", []string{"analyze"}, errors.ErrCodeInvalidInput},
		{"MissingFile", []string{"analyze", missing, missing}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := execute(t, "analyze", missing); err == nil {
		t.Error("analyze with a single file should fail")
	}
}

func TestAnalyzeOutputFile(t *testing.T) {
	node, edge := writeFan(t)
	path := filepath.Join(t.TempDir(), "model.json")

	out, err := execute(t, "analyze", node, edge, "--json", "-o", path)
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing when -o is set", out)
	}
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error = %v", err)
	}
	if len(g.Nodes) != 4 {
		t.Errorf("got %d nodes, want 4", len(g.Nodes))
	}
}

func decodeSlice(t *testing.T, out string) graph.Slice {
	t.Helper()
	var s graph.Slice
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decode slice: %v\n%s", err, out)
	}
	return s
}

func TestSlice(t *testing.T) {
	node, edge := writeFan(t)

	tests := []struct {
		name string
		args []string
		want map[int][]int
	}{
		{
			name: "Forward",
			args: []string{"4"},
			want: map[int][]int{4: {1, 2, 3}, 1: {}, 2: {}, 3: {}},
		},
		{
			name: "Reverse",
			args: []string{"1", "--reverse"},
			want: map[int][]int{1: {4}, 4: {}},
		},
		{
			name: "ElementOfBoundary",
			args: []string{"2"},
			want: map[int][]int{1: {}, 2: {}, 3: {}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"slice", node, edge, "--json"}, tt.args...)
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("slice error = %v", err)
			}
			s := decodeSlice(t, out)
			if len(s.Children) != len(tt.want) {
				t.Fatalf("Children = %v, want %v", s.Children, tt.want)
			}
			for id, want := range tt.want {
				got, ok := s.Children[id]
				if !ok {
					t.Errorf("node %d missing from slice", id)
					continue
				}
				// Child order is covered by the planar tests; compare sets here.
				if !slices.Equal(slices.Sorted(slices.Values(got)), want) {
					t.Errorf("Children[%d] = %v, want %v", id, got, want)
				}
			}
		})
	}
}

func TestSliceErrors(t *testing.T) {
	node, edge := writeFan(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"UnknownOrigin", []string{"99"}, errors.ErrCodeDegenerateSliceOrigin},
		{"NotANumber", []string{"abc"}, errors.ErrCodeInvalidInput},
		{"MissingOrigin", nil, errors.ErrCodeInvalidInput},
		{"OriginAndPick", []string{"4", "--pick"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"slice", node, edge}, tt.args...)
			_, err := execute(t, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSliceFromModel(t *testing.T) {
	node, edge := writeFan(t)
	model := filepath.Join(t.TempDir(), "model.json")

	if _, err := execute(t, "analyze", node, edge, "--json", "-o", model); err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	out, err := execute(t, "slice", "--model", model, "1", "--reverse", "--json")
	if err != nil {
		t.Fatalf("slice error = %v", err)
	}
	s := decodeSlice(t, out)
	if s.Origin != 1 || !s.Reverse {
		t.Errorf("Origin = %d, Reverse = %v, want 1, true", s.Origin, s.Reverse)
	}
	if !slices.Equal(s.Children[1], []int{4}) {
		t.Errorf("Children[1] = %v, want [4]", s.Children[1])
	}
}

func TestSliceUsesConfig(t *testing.T) {
	node, edge := writeFan(t)
	dir := t.TempDir()
	config := "[input]\nnode = " + quote(node) + "\nedge = " + quote(edge) + "\n\n[slice]\nreverse = true\norigin_element = false\n"
	if err := os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeIn(t, dir, "slice", "1", "--json")
	if err != nil {
		t.Fatalf("slice error = %v", err)
	}
	s := decodeSlice(t, out)
	if !s.Reverse || s.Element {
		t.Errorf("Reverse = %v, Element = %v, want true, false from config", s.Reverse, s.Element)
	}

	// Flags win over the file.
	out, err = executeIn(t, dir, "slice", "1", "--json", "--reverse=false")
	if err != nil {
		t.Fatalf("slice error = %v", err)
	}
	if s := decodeSlice(t, out); s.Reverse {
		t.Error("--reverse=false did not override the config file")
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestPoints(t *testing.T) {
	first, err := execute(t, "points", "--seed", "demo", "-n", "10")
	if err != nil {
		t.Fatalf("points error = %v", err)
	}
	if !strings.HasPrefix(first, "10  2  0  0\n") {
		t.Errorf("header = %q, want %q", strings.SplitN(first, "\n", 2)[0], "10  2  0  0")
	}
	if lines := strings.Count(first, "\n"); lines != 11 {
		t.Errorf("got %d lines, want 11", lines)
	}

	second, err := execute(t, "points", "--seed", "demo", "-n", "10")
	if err != nil {
		t.Fatalf("points error = %v", err)
	}
	if first != second {
		t.Error("same seed produced different output")
	}
}

func TestPointsOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.node")

	if _, err := execute(t, "points", "--seed", "demo", "-o", path); err != nil {
		t.Fatalf("points error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "200  2  0  0\n") {
		t.Errorf("unexpected header in %s", path)
	}
}

func TestPointsInvalidCount(t *testing.T) {
	_, err := execute(t, "points", "-n", "2")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error = %v", shell, err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("completion %s output does not mention %s", shell, appName)
			}
		})
	}
}
