package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/karmafeed-backend/internal/config"
)

// redactedKeys never reach the log sink with their real value.
var redactedKeys = map[string]bool{
	"authorization": true,
	"access_token":  true,
	"token":         true,
	"jwt_secret":    true,
	"password":      true,
}

// NewLogger builds the process logger on stderr and installs it as the
// slog default. "json" is meant for production; "text" adds source
// locations. Unknown levels fall back to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := slog.New(newHandler(os.Stderr, cfg)).With(
		slog.String("app", "karmafeed"),
		slog.String("version", Version),
	)
	slog.SetDefault(logger)
	return logger
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	text := strings.EqualFold(cfg.Format, "text")
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   text,
		ReplaceAttr: redact,
	}
	if text {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if redactedKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
