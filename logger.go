package fractal

import (
	"log/slog"
	"sync/atomic"
)

// silent discards every record. Its handler reports every level disabled,
// so callers skip formatting attributes.
var silent = slog.New(slog.DiscardHandler)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes log output from fractal and its sub-packages to l.
// Nothing is logged until SetLogger is called; nil restores that state.
//
// Levels:
//   - [slog.LevelDebug]: pipeline creation, surface reconfiguration
//   - [slog.LevelInfo]: adapter, pipeline variant, shutdown
//   - [slog.LevelWarn]: recoverable surface loss
//   - [slog.LevelError]: skipped frames and fatal presentation failures
//
// Example:
//
//	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return current.Load()
}
