package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/observability"
	"github.com/matzehuels/stratum/pkg/planar"
	"github.com/matzehuels/stratum/pkg/planar/transform"
	"github.com/matzehuels/stratum/pkg/triangle"
)

// Runner encapsulates pipeline execution with logging.
// Both the CLI and library callers use it to avoid duplicating phase order
// and error classification.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete read → build → level → trace → annotate
// pipeline. On any error the result is nil.
//
// The context is checked between stages; a cancelled run returns ctx.Err()
// unchanged.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger.With("run", opts.RunID)

	result := &Result{RunID: opts.RunID}

	// Stage 1: Read
	vertices, edges := opts.Vertices, opts.Edges
	if !opts.HasInput() {
		took, err := runPhase(ctx, "read", 0, func() error {
			var err error
			vertices, edges, err = triangle.ReadFiles(opts.NodeFile, opts.EdgeFile)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		result.Stats.ReadTime = took
		logger.Info("read triangulation",
			"vertices", len(vertices),
			"edges", len(edges),
			"duration", result.Stats.ReadTime)
	}
	result.InputHash = InputHash(vertices, edges)

	// Stage 2: Build
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var g *planar.Graph
	took, err := runPhase(ctx, "build", len(vertices), func() error {
		var err error
		if g, err = planar.New(vertices, edges); err == nil && opts.Validate {
			err = g.Validate()
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("build: %w", errors.Classify(err))
	}
	result.Stats.BuildTime = took
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	logger.Info("built model",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"boundary", len(g.Boundary()),
		"input", ShortHash(result.InputHash),
		"duration", result.Stats.BuildTime)

	// Stages 3-5: Level, Trace, Annotate
	phases := []struct {
		name string
		run  func(*planar.Graph) error
		took *time.Duration
	}{
		{"level", transform.AssignLevels, &result.Stats.LevelTime},
		{"trace", transform.TraceLevelElements, &result.Stats.TraceTime},
		{"annotate", transform.AnnotateBetweeners, &result.Stats.AnnotateTime},
	}
	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		took, err := runPhase(ctx, p.name, g.NodeCount(), func() error { return p.run(g) })
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.name, errors.Classify(err))
		}
		*p.took = took
		logger.Debug("phase complete", "phase", p.name, "duration", *p.took)
	}

	r.collectStats(g, &result.Stats)
	logger.Info("decomposed levels",
		"levels", result.Stats.LevelCount,
		"cycles", result.Stats.CycleCount,
		"paths", result.Stats.PathCount,
		"betweeners", result.Stats.BetweenerCount,
		"duration", result.Stats.LevelTime+result.Stats.TraceTime+result.Stats.AnnotateTime)

	result.Graph = g
	return result, nil
}

// Analyze runs the pipeline on an in-memory triangulation.
func (r *Runner) Analyze(ctx context.Context, vertices []planar.Vertex, edges []planar.Edge) (*Result, error) {
	if vertices == nil {
		vertices = []planar.Vertex{}
	}
	return r.Execute(ctx, Options{Vertices: vertices, Edges: edges})
}

// Slice extracts a slice from a finished model. See [planar.Graph.Slice].
// A degenerate origin is not fatal: the model stays usable for further
// queries.
func (r *Runner) Slice(g *planar.Graph, origin int, element, reverse bool) (planar.Slice, error) {
	start := time.Now()
	s, err := g.Slice(origin, element, reverse)
	if err != nil {
		return nil, errors.Classify(err)
	}
	r.Logger.Debug("extracted slice",
		"origin", origin,
		"element", element,
		"reverse", reverse,
		"nodes", len(s),
		"links", s.EdgeCount(),
		"duration", time.Since(start))
	return s, nil
}

func (r *Runner) collectStats(g *planar.Graph, s *Stats) {
	s.LevelCount = len(g.Levels())
	for _, l := range g.Levels() {
		s.CycleCount += len(l.Cycles)
		s.PathCount += len(l.Paths)
	}
	for _, n := range g.Nodes() {
		if n.IsRootElement {
			s.RootCount++
		}
		if len(n.BetweenerPaths) > 0 {
			s.BetweenerCount++
		}
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// runPhase runs fn as the named stage and reports it to the registered
// observability hooks.
func runPhase(ctx context.Context, name string, nodeCount int, fn func() error) (time.Duration, error) {
	hooks := observability.Pipeline()
	hooks.OnPhaseStart(ctx, name, nodeCount)
	start := time.Now()
	err := fn()
	took := time.Since(start)
	hooks.OnPhaseComplete(ctx, name, took, err)
	return took, err
}
