package logger

import (
	"log/slog"
	"os"
	"strings"
)

var base *slog.Logger

// Init configures the process-wide logger. Production gets JSON output,
// everything else a human-readable text handler with debug level.
func Init(env string) {
	var handler slog.Handler

	switch strings.ToLower(env) {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	base = slog.New(handler)
	slog.SetDefault(base)
}

// L returns the base logger, initializing a default one if Init was skipped
// (tests mostly).
func L() *slog.Logger {
	if base == nil {
		Init("development")
	}
	return base
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }
