package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const reminderMeterName = "reminder.service"

type ReminderMetrics struct {
	runsTotal       metric.Int64Counter
	recipientsTotal metric.Int64Counter
	tasksSkipped    metric.Int64Counter
	runDuration     metric.Float64Histogram
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	runsTotal, err := meter.Int64Counter(
		"reminder_runs_total",
		metric.WithDescription("Total number of reminder runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	recipientsTotal, err := meter.Int64Counter(
		"reminder_recipients_total",
		metric.WithDescription("Recipients per outcome across reminder runs"),
		metric.WithUnit("{recipient}"),
	)
	if err != nil {
		return nil, err
	}

	tasksSkipped, err := meter.Int64Counter(
		"reminder_tasks_skipped_total",
		metric.WithDescription("Tasks dropped by the same-day dedup check"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"reminder_run_duration_seconds",
		metric.WithDescription("Reminder run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		runsTotal:       runsTotal,
		recipientsTotal: recipientsTotal,
		tasksSkipped:    tasksSkipped,
		runDuration:     runDuration,
	}, nil
}

func (m *ReminderMetrics) RecordRun(ctx context.Context, automated bool, sent, failed, skippedTasks int, duration time.Duration) {
	m.runsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("automated", automated),
	))
	m.recipientsTotal.Add(ctx, int64(sent), metric.WithAttributes(
		attribute.String("outcome", "sent"),
	))
	m.recipientsTotal.Add(ctx, int64(failed), metric.WithAttributes(
		attribute.String("outcome", "failed"),
	))
	m.tasksSkipped.Add(ctx, int64(skippedTasks))
	m.runDuration.Record(ctx, duration.Seconds())
}
