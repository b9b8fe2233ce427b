// Package cli implements the cxblueprint command-line interface.
//
// The commands operate on wire flow documents at the system boundary:
// validate parses and round-trips a document, fmt rewrites one in canonical
// form with freshly computed layout, and inspect summarizes nodes and
// transitions. All file I/O lives here; the core packages only transform
// in-memory values.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a context carrying the logger.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger placed by withLogger, falling back
// to the package default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
