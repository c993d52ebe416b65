package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/kbukum/mapkit/logger"
)

// MeterName is the instrumentation scope for map metrics.
const MeterName = "github.com/kbukum/mapkit"

// Status attribute values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Resource identifies the process in exported metrics.
type Resource struct {
	Service     string
	Version     string
	Environment string
}

// NewMeterProvider builds a meter provider from cfg. An OTLP periodic reader
// is attached when cfg.Endpoint is set; readers are attached as given.
func NewMeterProvider(ctx context.Context, cfg *Config, res Resource, readers ...sdkmetric.Reader) (*sdkmetric.MeterProvider, error) {
	r, err := newResource(res)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}
	opts := []sdkmetric.Option{sdkmetric.WithResource(r)}

	if cfg.Endpoint != "" {
		exporterOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("creating metric exporter: %w", err)
		}
		var readerOpts []sdkmetric.PeriodicReaderOption
		if interval := cfg.Interval(); interval > 0 {
			readerOpts = append(readerOpts, sdkmetric.WithInterval(interval))
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)))
	}
	for _, reader := range readers {
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", res.Service,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval().String(),
	))
	return mp, nil
}

// newResource stays schemaless so merging never conflicts with the schema
// URL resource.Default carries.
func newResource(res Resource) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(res.Service),
			semconv.ServiceVersion(res.Version),
			attribute.String("environment", res.Environment),
		),
	)
}

// Metrics holds the instruments for map and request metrics.
type Metrics struct {
	switchTotal       metric.Int64Counter
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	requestTotal      metric.Int64Counter
	requestDuration   metric.Float64Histogram
	requestActive     metric.Int64UpDownCounter
	errorTotal        metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	switchTotal, err := meter.Int64Counter("map.switch.total",
		metric.WithDescription("Provider switches by source, target and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating map.switch.total counter: %w", err)
	}

	operationTotal, err := meter.Int64Counter("map.operation.total",
		metric.WithDescription("Map operations by provider and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating map.operation.total counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("map.operation.duration",
		metric.WithDescription("Duration of map operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating map.operation.duration histogram: %w", err)
	}

	requestTotal, err := meter.Int64Counter("request.total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request.total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("request.duration",
		metric.WithDescription("Duration of requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request.duration histogram: %w", err)
	}

	requestActive, err := meter.Int64UpDownCounter("request.active",
		metric.WithDescription("Number of requests in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request.active counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Errors by code and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		switchTotal:       switchTotal,
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestActive:     requestActive,
		errorTotal:        errorTotal,
	}, nil
}

// RecordSwitch counts a provider switch.
func (m *Metrics) RecordSwitch(ctx context.Context, from, to, status string) {
	if m == nil {
		return
	}
	m.switchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
		attribute.String("status", status),
	))
}

// RecordOperation records one map operation against provider.
func (m *Metrics) RecordOperation(ctx context.Context, operation, provider, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("provider", provider),
	))
}

// RecordRequestStart increments the in-flight request count.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.requestActive.Add(ctx, 1)
}

// RecordRequestEnd decrements in-flight requests and records the request.
func (m *Metrics) RecordRequestEnd(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestActive.Add(ctx, -1)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}

// RecordError counts an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
