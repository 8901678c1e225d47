package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Window is the fixed-window counter state for one caller key.
type Window struct {
	Count   int       `json:"count"`
	ResetAt time.Time `json:"reset_at"`
}

// Store holds window state per caller key. The in-process map store is
// enough for single-instance deployments; a redis-backed store makes the
// limit approximately shared across instances.
type Store interface {
	Get(ctx context.Context, key string) (*Window, error)
	Put(ctx context.Context, key string, window Window, ttl time.Duration) error
	Reset(ctx context.Context, key string) error
}

// Limiter is a fixed-window rate limiter. It is deliberately approximate:
// a guard against accidental retry storms, not a security control. Store
// errors fail open so a degraded store never blocks legitimate traffic.
type Limiter struct {
	store        Store
	maxPerWindow int
	window       time.Duration
}

func NewLimiter(store Store, maxPerWindow int, window time.Duration) *Limiter {
	return &Limiter{
		store:        store,
		maxPerWindow: maxPerWindow,
		window:       window,
	}
}

// Allow records one call for the caller key and reports whether it is
// within the window budget.
func (l *Limiter) Allow(ctx context.Context, key string, now time.Time) bool {
	if l.maxPerWindow <= 0 {
		return true
	}

	current, err := l.store.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "rate limit store read failed, allowing request",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return true
	}

	if current == nil || now.After(current.ResetAt) {
		fresh := Window{Count: 1, ResetAt: now.Add(l.window)}
		if err := l.store.Put(ctx, key, fresh, l.window); err != nil {
			slog.WarnContext(ctx, "rate limit store write failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return true
	}

	if current.Count >= l.maxPerWindow {
		return false
	}

	current.Count++
	if err := l.store.Put(ctx, key, *current, time.Until(current.ResetAt)); err != nil {
		slog.WarnContext(ctx, "rate limit store write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return true
}
