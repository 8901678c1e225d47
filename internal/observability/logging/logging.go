package logging

import (
	"log/slog"
	"os"
)

// Environment selects the log output format: dev gets readable text,
// everything else gets JSON for the collector.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// NewLogger builds the process-wide logger with service identity
// attached to every record.
func NewLogger(env Environment, serviceName, version string) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: levelFromOS()}

	if env == EnvDev {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(
		slog.String("service", serviceName),
		slog.String("version", version),
	)
}

func levelFromOS() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
