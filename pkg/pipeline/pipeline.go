// Package pipeline runs the one-time initialization of a planar model.
//
// This package chains the construction and annotation phases so the CLI
// and library callers get identical behavior, logging, and error codes.
//
// # Architecture
//
// The pipeline consists of five stages, each run exactly once:
//
//  1. Read: load the triangulation from Triangle's .node/.edge files
//  2. Build: create the node store with clockwise-ordered relations
//  3. Level: multi-source BFS distances from the boundary
//  4. Trace: level cycles and paths
//  5. Annotate: betweener seams
//
// Read is skipped when the caller passes vertices and edges directly. Any
// failure aborts the run and no model is returned; errors carry a code from
// pkg/errors.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    NodeFile: "mesh.1.node",
//	    EdgeFile: "mesh.1.edge",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s, err := runner.Slice(result.Graph, 42, true, false)
//
// # Concurrency
//
// A Runner holds no per-run state and may be shared. The returned model is
// read-only after Execute and safe for concurrent slice queries.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/planar"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input files. Ignored when Vertices is set.
	NodeFile string `json:"node_file,omitempty"`
	EdgeFile string `json:"edge_file,omitempty"`

	// Validate re-checks relation reciprocity and order after building.
	Validate bool `json:"validate,omitempty"`

	// RunID correlates log lines of one run. Generated when empty.
	RunID string `json:"run_id,omitempty"`

	// In-memory input (not serialized)
	Vertices []planar.Vertex `json:"-"`
	Edges    []planar.Edge   `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// InputHash is the content hash of the triangulation input.
	InputHash string

	// Graph is the fully annotated model.
	Graph *planar.Graph

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	EdgeCount      int
	LevelCount     int
	CycleCount     int
	PathCount      int
	RootCount      int // nodes flagged IsRootElement
	BetweenerCount int // nodes with at least one seam

	ReadTime     time.Duration
	BuildTime    time.Duration
	LevelTime    time.Duration
	TraceTime    time.Duration
	AnnotateTime time.Duration
}

// Total returns the summed duration of all stages.
func (s Stats) Total() time.Duration {
	return s.ReadTime + s.BuildTime + s.LevelTime + s.TraceTime + s.AnnotateTime
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if !o.HasInput() {
		if o.NodeFile == "" || o.EdgeFile == "" {
			return errors.New(errors.ErrCodeInvalidInput, "node and edge files are required")
		}
		if err := errors.ValidatePath(o.NodeFile); err != nil {
			return err
		}
		if err := errors.ValidatePath(o.EdgeFile); err != nil {
			return err
		}
	}

	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// HasInput reports whether the triangulation is passed in memory.
func (o *Options) HasInput() bool {
	return o.Vertices != nil
}
