package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewSlogLogger creates the operational logger used by the command-line
// tools. It writes text records to stderr, keeping stdout for command
// output, and renames the "error" key to "err".
func NewSlogLogger(level slog.Level) *slog.Logger {
	return newSlogLogger(os.Stderr, level)
}

func newSlogLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNopSlogLogger returns a logger that discards everything.
func NewNopSlogLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
