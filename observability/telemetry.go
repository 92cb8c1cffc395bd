// Package observability provides OpenTelemetry tracing and metrics for
// eventcast sessions and jobs.
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// TelemetryConfig configures the provider. The zero value disables
// export entirely; sessions then run with no-op instrumentation.
type TelemetryConfig struct {
	Enabled        bool              `json:"enabled"`
	ServiceName    string            `json:"service_name"`
	ServiceVersion string            `json:"service_version"`
	Environment    string            `json:"environment"`
	OTLPEndpoint   string            `json:"otlp_endpoint"`
	OTLPHeaders    map[string]string `json:"otlp_headers,omitempty"`
	SampleRate     float64           `json:"sample_rate"`
}

// TelemetryProvider provides observability features. A nil provider is
// valid and does nothing, so callers never need to guard their calls.
type TelemetryProvider struct {
	config        *TelemetryConfig
	tracer        trace.Tracer
	meter         metric.Meter
	traceProvider *sdktrace.TracerProvider

	sessionsStarted metric.Int64Counter
	jobsCompleted   metric.Int64Counter
	jobDuration     metric.Float64Histogram
}

// NewTelemetryProvider creates a new telemetry provider.
func NewTelemetryProvider(cfg *TelemetryConfig) (*TelemetryProvider, error) {
	if cfg == nil {
		cfg = &TelemetryConfig{
			ServiceName:    "eventcast",
			ServiceVersion: "1.0.0",
			Environment:    "development",
			OTLPEndpoint:   "http://localhost:4318",
			SampleRate:     1.0,
			Enabled:        false,
		}
	}

	tp := &TelemetryProvider{config: cfg}

	if !cfg.Enabled {
		tp.tracer = otel.Tracer("eventcast")
		tp.meter = otel.Meter("eventcast")
		return tp, nil
	}

	if err := tp.initTracing(); err != nil {
		return nil, fmt.Errorf("init tracing: %v", err)
	}
	if err := tp.initMetrics(); err != nil {
		return nil, fmt.Errorf("init metrics: %v", err)
	}
	return tp, nil
}

func (tp *TelemetryProvider) initTracing() error {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(tp.config.ServiceName),
			semconv.ServiceVersion(tp.config.ServiceVersion),
			semconv.DeploymentEnvironment(tp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("create resource: %v", err)
	}

	exporter, err := otlptrace.New(context.Background(),
		otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(tp.config.OTLPEndpoint),
			otlptracehttp.WithHeaders(tp.config.OTLPHeaders),
		),
	)
	if err != nil {
		return fmt.Errorf("create exporter: %v", err)
	}

	tp.traceProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(tp.config.SampleRate)),
	)

	otel.SetTracerProvider(tp.traceProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	tp.tracer = otel.Tracer("eventcast")
	return nil
}

func (tp *TelemetryProvider) initMetrics() error {
	tp.meter = otel.Meter("eventcast")

	var err error
	tp.sessionsStarted, err = tp.meter.Int64Counter("eventcast.sessions.started",
		metric.WithDescription("Number of publish sessions started"))
	if err != nil {
		return err
	}

	tp.jobsCompleted, err = tp.meter.Int64Counter("eventcast.jobs.completed",
		metric.WithDescription("Number of publish jobs reaching a terminal status"))
	if err != nil {
		return err
	}

	tp.jobDuration, err = tp.meter.Float64Histogram("eventcast.job.duration",
		metric.WithDescription("Publish job duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return err
	}

	return nil
}

// StartSession opens the root span for one publish session. The
// returned func ends the span.
func (tp *TelemetryProvider) StartSession(ctx context.Context, sessionID, strategy string, platforms int) (context.Context, func()) {
	if tp == nil || tp.tracer == nil {
		return ctx, func() {}
	}

	ctx, span := tp.tracer.Start(ctx, "session.run",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("session.strategy", strategy),
			attribute.Int("session.platforms", platforms),
		))

	if tp.sessionsStarted != nil {
		tp.sessionsStarted.Add(ctx, 1,
			metric.WithAttributes(attribute.String("strategy", strategy)))
	}

	return ctx, func() { span.End() }
}

// StartJob opens a span for one platform job. The returned func records
// the terminal status and ends the span.
func (tp *TelemetryProvider) StartJob(ctx context.Context, platform string) (context.Context, func(status string)) {
	if tp == nil || tp.tracer == nil {
		return ctx, func(string) {}
	}

	ctx, span := tp.tracer.Start(ctx, "job.run",
		trace.WithAttributes(attribute.String("job.platform", platform)))

	return ctx, func(status string) {
		span.SetAttributes(attribute.String("job.status", status))
		span.End()
	}
}

// RecordJob records the terminal status and duration of one job.
func (tp *TelemetryProvider) RecordJob(ctx context.Context, platform, status string, duration time.Duration) {
	if tp == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("platform", platform),
		attribute.String("status", status),
	)
	if tp.jobsCompleted != nil {
		tp.jobsCompleted.Add(ctx, 1, attrs)
	}
	if tp.jobDuration != nil {
		tp.jobDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

// Shutdown flushes and stops the trace provider.
func (tp *TelemetryProvider) Shutdown(ctx context.Context) error {
	if tp == nil || tp.traceProvider == nil {
		return nil
	}
	return tp.traceProvider.Shutdown(ctx)
}
