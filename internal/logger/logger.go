package logger

import (
	"io"
	"log/slog"
)

// New builds a slog.Logger writing to w. Unknown levels fall back to warn so
// a typo in CRITIC_LOG_LEVEL never makes the hook noisy.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := slog.LevelWarn
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(level)); err == nil {
			lvl = parsed
		}
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(handler)
}
