package telemetry

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	exportTimeout         = 3 * time.Second
	defaultMetricInterval = 5 * time.Second
)

// OtlpConnConfig is where one signal is exported to. The grpc endpoint wins
// when both are set.
type OtlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

func (c OtlpConnConfig) enabled() bool {
	return c.GrpcEndpoint != "" || c.HttpEndpoint != ""
}

func (c OtlpConnConfig) transport() (string, string) {
	if c.GrpcEndpoint != "" {
		return "grpc", c.GrpcEndpoint
	}
	return "http", c.HttpEndpoint
}

type OtlpConfig struct {
	Traces  OtlpConnConfig `json:"traces"`
	Metrics OtlpConnConfig `json:"metrics"`
	// MetricInterval is how often metrics are pushed, like "30s".
	MetricInterval string `json:"metric_interval"`
}

// Config is the shape of telemetry.json5.
type Config struct {
	Otlp OtlpConfig `json:"otlp"`
	// ResourceAttributes are added to every exported span and metric, next
	// to the attributes the caller derives from its own config.
	ResourceAttributes map[string]string `json:"resource_attributes"`
}

func (c Config) metricInterval() time.Duration {
	if c.Otlp.MetricInterval == "" {
		return defaultMetricInterval
	}
	interval, err := time.ParseDuration(c.Otlp.MetricInterval)
	if err != nil || interval <= 0 {
		slog.Warn("ignoring bad metric interval", "metric_interval", c.Otlp.MetricInterval)
		return defaultMetricInterval
	}
	return interval
}

// resourceAttributes are the service identity, then the configured
// attributes in key order, then extra. Later attributes win on a key clash.
func resourceAttributes(serviceName string, cfg Config, extra []attribute.KeyValue) []attribute.KeyValue {
	out := []attribute.KeyValue{semconv.ServiceName(serviceName)}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		out = append(out, semconv.ServiceVersion(info.Main.Version))
	}

	keys := make([]string, 0, len(cfg.ResourceAttributes))
	for key := range cfg.ResourceAttributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		out = append(out, attribute.String(key, cfg.ResourceAttributes[key]))
	}
	return append(out, extra...)
}

func newResource(serviceName string, cfg Config, extra []attribute.KeyValue) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, resourceAttributes(serviceName, cfg, extra)...),
	)
}

func logExporter(signal string, c OtlpConnConfig) {
	kind, endpoint := c.transport()
	slog.Info(
		signal+" exporter initialized",
		"type", kind,
		"endpoint", endpoint,
		"headers", len(c.Headers) > 0,
	)
}

func newTraceProvider(ctx context.Context, r *resource.Resource, cfg Config) (*trace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	c := cfg.Otlp.Traces
	logExporter("trace", c)

	var exporter trace.SpanExporter
	var err error
	if kind, endpoint := c.transport(); kind == "grpc" {
		exporter, err = otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(endpoint), otlptracegrpc.WithHeaders(c.Headers))
	} else {
		exporter, err = otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint), otlptracehttp.WithHeaders(c.Headers))
	}
	if err != nil {
		return nil, err
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(r),
	), nil
}

func newMetricProvider(ctx context.Context, r *resource.Resource, cfg Config) (*metric.MeterProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	c := cfg.Otlp.Metrics
	logExporter("metric", c)

	var exporter metric.Exporter
	var err error
	if kind, endpoint := c.transport(); kind == "grpc" {
		exporter, err = otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpointURL(endpoint), otlpmetricgrpc.WithHeaders(c.Headers))
	} else {
		exporter, err = otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpointURL(endpoint), otlpmetrichttp.WithHeaders(c.Headers))
	}
	if err != nil {
		return nil, err
	}

	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(cfg.metricInterval()))),
		metric.WithResource(r),
	), nil
}
