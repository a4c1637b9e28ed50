// Package cli implements the stratum command-line interface.
//
// This package provides commands for decomposing a triangulation into
// levels, extracting slices from the decomposed model, and generating input
// point sets for the external triangulation engine. The CLI is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - analyze: Build the model and print its levels, or dump it as JSON
//   - slice: Extract a forward or reverse slice from an origin node
//   - points: Write a seeded .node file for the triangulation engine
//
// # Configuration
//
// Input files, the log level, and slice defaults can be set in a TOML file
// (./stratum.toml or --config). Flags always win over the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports the duration of every pipeline phase.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Wrote model.json (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
