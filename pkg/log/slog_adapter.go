package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes change events to an slog.Logger.
// Useful for development when you want to see changes in the console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates a SlogAdapter that logs at Debug level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter logging at level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event as one "change" record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("event", event.EventType.String()),
		slog.String("notifier", event.Notifier.String()),
	}

	if event.SessionID != "" {
		attrs = append(attrs, slog.String("session", event.SessionID))
	}
	if event.NodeID != "" {
		attrs = append(attrs,
			slog.String("node_id", event.NodeID),
			slog.String("node_type", event.NodeType),
		)
	}
	if event.Feature != "" {
		attrs = append(attrs, slog.String("feature", event.Feature))
	}
	if event.Position != "" {
		attrs = append(attrs, slog.String("position", event.Position))
	}
	if event.NewValue != nil {
		attrs = append(attrs, slog.String("new", event.NewValue.String()))
	}
	if event.OldValue != nil {
		attrs = append(attrs, slog.String("old", event.OldValue.String()))
	}

	level := a.level
	if event.Error != nil {
		level = max(level, slog.LevelWarn)
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "change", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
