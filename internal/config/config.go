package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Port      string
	LogLevel  slog.Level
	Database  *DatabaseConfig
	Redis     *RedisConfig
	Email     *EmailConfig
	RateLimit *RateLimitConfig
	Calendar  *CalendarConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:      port,
		LogLevel:  parseLogLevel(os.Getenv("LOG_LEVEL")),
		Database:  LoadDatabaseConfig(),
		Redis:     redisConfig,
		Email:     LoadEmailConfig(),
		RateLimit: LoadRateLimitConfig(),
		Calendar:  LoadCalendarConfig(),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
