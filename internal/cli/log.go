// Package cli implements the textvary command-line interface.
//
// # Commands
//
//   - generate: produce variations from dialogue files or flags
//   - serve: run the HTTP API
//   - runs: list, show and delete saved runs
//   - cache: clear or locate the result cache
//   - config: print, show or create the config file
//
// Settings come from the config file and TEXTVARY_* environment variables
// (see package config); flags override them per invocation.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes the observability hooks to the logger. Loggers are passed through
// context.Context. Log output goes to stderr so stdout stays clean for
// generated text.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Generated 5 variations (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
