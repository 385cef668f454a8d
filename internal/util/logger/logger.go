package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once         sync.Once
	loggerObject *slog.Logger
)

// GetLogger returns the process-wide structured logger. The level is read
// from LOG_LEVEL directly because config itself logs while loading.
func GetLogger() *slog.Logger {
	once.Do(func() {
		handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("LOG_LEVEL")),
		})

		loggerObject = slog.New(handler)
	})

	return loggerObject
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
