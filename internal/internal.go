package internal

import (
	"context"
	"log/slog"
)

// LevelTrace logs individual bus transactions, below [slog.LevelDebug].
const LevelTrace slog.Level = slog.LevelDebug - 2

// LogAttrs logs to l if non-nil. Safe to call with a nil logger.
func LogAttrs(l *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if l != nil {
		l.LogAttrs(context.Background(), level, msg, attrs...)
	}
}

// LogEnabled returns true if l would emit records at level lvl.
func LogEnabled(l *slog.Logger, lvl slog.Level) bool {
	return l != nil && l.Handler().Enabled(context.Background(), lvl)
}
