package config

import (
	"os"
	"strconv"
)

const (
	rateLimitWindowMinutesEnv = "RATE_LIMIT_WINDOW_MINUTES"
	rateLimitAdminMaxEnv      = "RATE_LIMIT_ADMIN_MAX"
	rateLimitClientMaxEnv     = "RATE_LIMIT_CLIENT_MAX"

	defaultRateLimitWindowMinutes = 60
	defaultRateLimitAdminMax      = 10
	defaultRateLimitClientMax     = 5
)

// RateLimitConfig covers the two reminder endpoint groups. A max of
// zero disables limiting for that group.
type RateLimitConfig struct {
	WindowMinutes int
	AdminMax      int
	ClientMax     int
}

func LoadRateLimitConfig() *RateLimitConfig {
	windowMinutes := defaultRateLimitWindowMinutes
	if v := os.Getenv(rateLimitWindowMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			windowMinutes = parsed
		}
	}

	adminMax := defaultRateLimitAdminMax
	if v := os.Getenv(rateLimitAdminMaxEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			adminMax = parsed
		}
	}

	clientMax := defaultRateLimitClientMax
	if v := os.Getenv(rateLimitClientMaxEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			clientMax = parsed
		}
	}

	return &RateLimitConfig{
		WindowMinutes: windowMinutes,
		AdminMax:      adminMax,
		ClientMax:     clientMax,
	}
}
