package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/complyline/deadline-service/internal/observability/logging"
)

// Config drives one-time observability setup at process start.
type Config struct {
	ServiceName  string
	Version      string
	Environment  logging.Environment
	OTLPEndpoint string
	SamplingRate float64
}

// Resources holds everything Init started and must be shut down with
// the process.
type Resources struct {
	logger         *slog.Logger
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// Init configures the default logger and, when an OTLP endpoint is
// given, metric and trace export. Without an endpoint the service runs
// with logging only.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	res := &Resources{
		logger: logging.NewLogger(cfg.Environment, cfg.ServiceName, cfg.Version),
	}

	if cfg.OTLPEndpoint == "" {
		return res, nil
	}

	otelResource := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
		attribute.String("deployment.environment", string(cfg.Environment)),
	)

	metricExporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	res.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(otelResource),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(30*time.Second),
		)),
	)
	otel.SetMeterProvider(res.meterProvider)

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	sampling := cfg.SamplingRate
	if sampling <= 0 {
		sampling = 1.0
	}
	res.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(otelResource),
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampling))),
	)
	otel.SetTracerProvider(res.tracerProvider)

	return res, nil
}

func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

func (r *Resources) Shutdown(ctx context.Context) error {
	var errs []error
	if r.meterProvider != nil {
		if err := r.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if r.tracerProvider != nil {
		if err := r.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EnvironmentFromOS reads ENV, defaulting to dev.
func EnvironmentFromOS() logging.Environment {
	if e := os.Getenv("ENV"); e != "" {
		return logging.Environment(e)
	}
	return logging.EnvDev
}
