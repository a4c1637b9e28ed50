package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stratum/pkg/planar"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts the model to JSON bytes.
func MarshalGraph(g *planar.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(FromPlanar(g), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes the model as JSON to an io.Writer.
func WriteGraph(g *planar.Graph, w io.Writer) error {
	return encode(FromPlanar(g), w)
}

// WriteGraphFile writes the model to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *planar.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return encode(FromPlanar(g), f)
}

// WriteSlice writes a serialized slice as JSON to an io.Writer.
func WriteSlice(s Slice, w io.Writer) error {
	return encode(s, w)
}

// ReadGraph decodes a serialized graph from an io.Reader.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// ReadGraphFile reads a serialized graph from a JSON file.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
