package pixpipe

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a render pass is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for pixpipe and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by pixpipe:
//   - [slog.LevelDebug]: per-pass plan, boundaries, pool reuse
//   - [slog.LevelInfo]: auto-resize of a canvas buffer
//   - [slog.LevelWarn]: dropped out-of-range writes, transform and upload failures
//
// Example:
//
//	pixpipe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages (transform, surface)
// call this so they share one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
