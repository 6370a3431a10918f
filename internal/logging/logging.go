package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

func LogLevelToSlogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelError, fmt.Errorf("unknown log level: %s", level)
}
