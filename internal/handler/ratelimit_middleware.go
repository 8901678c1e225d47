package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/complyline/deadline-service/internal/observability/metrics"
	"github.com/complyline/deadline-service/internal/service/ratelimit"
)

// RateLimit rejects requests over the caller's fixed-window budget with
// 429. Keys are per client IP; group names the endpoint family in logs
// and metrics.
func RateLimit(limiter *ratelimit.Limiter, group string, rateLimitMetrics *metrics.RateLimitMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := group + ":" + c.ClientIP()

		allowed := limiter.Allow(ctx, key, time.Now())
		if rateLimitMetrics != nil {
			rateLimitMetrics.RecordDecision(ctx, group, allowed)
		}
		if !allowed {
			slog.WarnContext(ctx, "rate limit exceeded",
				slog.String("event", "rate_limit_exceeded"),
				slog.String("group", group),
				slog.String("client_ip", c.ClientIP()),
			)
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
