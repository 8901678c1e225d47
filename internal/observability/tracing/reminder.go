package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/complyline/deadline-service/internal/service/reminder"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartReminderRunSpan(ctx context.Context, organizationID string, automated bool) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.run",
		trace.WithAttributes(
			attribute.String("organization_id", organizationID),
			attribute.Bool("automated", automated),
		),
	)
}

func StartEmailSendSpan(ctx context.Context, taskCount int) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.email_send",
		trace.WithAttributes(
			attribute.Int("task_count", taskCount),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordReminderRunResult(span trace.Span, sent, failed, skippedTasks int, err error) {
	span.SetAttributes(
		attribute.Int("reminder.sent", sent),
		attribute.Int("reminder.failed", failed),
		attribute.Int("reminder.skipped_tasks", skippedTasks),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
