// Package observability provides hooks for metrics and tracing of model
// initialization.
//
// The pipeline reports the start and end of every stage through the
// registered [PipelineHooks]. The default hooks do nothing, so the library
// carries no dependency on a metrics or tracing backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&phaseTimer{})
//	    // ... run application
//	}
//
// The pipeline calls them around each stage:
//
//	observability.Pipeline().OnPhaseStart(ctx, "trace", nodeCount)
//	// ... trace level elements ...
//	observability.Pipeline().OnPhaseComplete(ctx, "trace", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the initialization pipeline. Phase
// names are "read", "build", "level", "trace", and "annotate".
//
// Implementations must be safe for concurrent use: runners may execute in
// parallel.
type PipelineHooks interface {
	// OnPhaseStart is called before a phase runs. nodeCount is 0 before
	// the model has been built.
	OnPhaseStart(ctx context.Context, phase string, nodeCount int)

	// OnPhaseComplete is called after a phase returns, with its error.
	OnPhaseComplete(ctx context.Context, phase string, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnPhaseStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnPhaseComplete(context.Context, string, time.Duration, error) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op hooks. This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
