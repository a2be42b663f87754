package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestResourceCarriesStorefront(t *testing.T) {
	cfg := Config{ResourceAttributes: map[string]string{
		"deployment.environment": "laptop",
		"team":                   "orders",
	}}
	storefront := []attribute.KeyValue{
		attribute.String("storefront.origin", "https://www.amazon.co.uk"),
		attribute.String("team", "storefront"),
	}

	attrs := resourceAttributes("orders-cli", cfg, storefront)
	require.Equal(t, semconv.ServiceName("orders-cli"), attrs[0])
	require.Equal(t, storefront, attrs[len(attrs)-2:])

	r, err := newResource("orders-cli", cfg, storefront)
	require.NoError(t, err)
	set := r.Set()
	for key, want := range map[attribute.Key]string{
		semconv.ServiceNameKey:   "orders-cli",
		"deployment.environment": "laptop",
		"storefront.origin":      "https://www.amazon.co.uk",
		"team":                   "storefront",
	} {
		value, ok := set.Value(key)
		require.True(t, ok, key)
		require.Equal(t, want, value.AsString(), key)
	}
}

func TestMetricInterval(t *testing.T) {
	require.Equal(t, defaultMetricInterval, Config{}.metricInterval())
	require.Equal(t, 30*time.Second, Config{Otlp: OtlpConfig{MetricInterval: "30s"}}.metricInterval())
	require.Equal(t, defaultMetricInterval, Config{Otlp: OtlpConfig{MetricInterval: "soon"}}.metricInterval())
	require.Equal(t, defaultMetricInterval, Config{Otlp: OtlpConfig{MetricInterval: "-1s"}}.metricInterval())
}

func TestTransport(t *testing.T) {
	kind, endpoint := OtlpConnConfig{GrpcEndpoint: "http://localhost:4317", HttpEndpoint: "http://localhost:4318"}.transport()
	require.Equal(t, "grpc", kind)
	require.Equal(t, "http://localhost:4317", endpoint)

	kind, endpoint = OtlpConnConfig{HttpEndpoint: "http://localhost:4318"}.transport()
	require.Equal(t, "http", kind)
	require.Equal(t, "http://localhost:4318", endpoint)
	require.False(t, OtlpConnConfig{}.enabled())
}
