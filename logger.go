package stepmark

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can race with batch workers that log.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for stepmark and its sub-packages.
// By default stepmark produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by stepmark:
//   - [slog.LevelDebug]: mutations, undo pushes, gesture transitions
//   - [slog.LevelInfo]: batch and session lifecycle
//   - [slog.LevelWarn]: discarded undo snapshots and unreadable persisted objects
//   - [slog.LevelError]: flattens that panicked and were recovered
//
// Example:
//
//	stepmark.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by stepmark.
// The session package and the CLI call this to share one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
