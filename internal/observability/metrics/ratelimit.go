package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const rateLimitMeterName = "ratelimit"

type RateLimitMetrics struct {
	decisionsTotal metric.Int64Counter
}

func NewRateLimitMetrics() (*RateLimitMetrics, error) {
	meter := otel.Meter(rateLimitMeterName)

	decisionsTotal, err := meter.Int64Counter(
		"ratelimit_decisions_total",
		metric.WithDescription("Rate limit decisions per endpoint group"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	return &RateLimitMetrics{decisionsTotal: decisionsTotal}, nil
}

func (m *RateLimitMetrics) RecordDecision(ctx context.Context, group string, allowed bool) {
	outcome := "allowed"
	if !allowed {
		outcome = "denied"
	}
	m.decisionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("group", group),
		attribute.String("outcome", outcome),
	))
}
