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

	"github.com/kbukum/provkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// RegistryMetrics holds the instruments recorded by a provider registry.
type RegistryMetrics struct {
	categories      metric.Int64Counter
	providers       metric.Int64Counter
	selections      metric.Int64Counter
	instances       metric.Int64Counter
	resolveDuration metric.Float64Histogram
	resolveErrors   metric.Int64Counter
}

// NewRegistryMetrics creates registry instruments on the given meter.
func NewRegistryMetrics(meter metric.Meter) (*RegistryMetrics, error) {
	categories, err := meter.Int64Counter("registry.categories",
		metric.WithDescription("Provider categories registered"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registry.categories counter: %w", err)
	}

	providers, err := meter.Int64Counter("registry.providers",
		metric.WithDescription("Providers registered"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registry.providers counter: %w", err)
	}

	selections, err := meter.Int64Counter("registry.selections",
		metric.WithDescription("Explicit provider selections"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registry.selections counter: %w", err)
	}

	instances, err := meter.Int64Counter("registry.instances",
		metric.WithDescription("Provider instances constructed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registry.instances counter: %w", err)
	}

	resolveDuration, err := meter.Float64Histogram("registry.resolve.duration",
		metric.WithDescription("Duration of resolve calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registry.resolve.duration histogram: %w", err)
	}

	resolveErrors, err := meter.Int64Counter("registry.resolve.errors",
		metric.WithDescription("Failed resolve calls by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registry.resolve.errors counter: %w", err)
	}

	return &RegistryMetrics{
		categories:      categories,
		providers:       providers,
		selections:      selections,
		instances:       instances,
		resolveDuration: resolveDuration,
		resolveErrors:   resolveErrors,
	}, nil
}

// RecordCategory counts a registered category.
func (m *RegistryMetrics) RecordCategory(ctx context.Context, category string) {
	m.categories.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
	))
}

// RecordProvider counts a registered provider under its first matching category.
func (m *RegistryMetrics) RecordProvider(ctx context.Context, provider, category string) {
	m.providers.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("category", category),
	))
}

// RecordSelection counts an explicit selection.
func (m *RegistryMetrics) RecordSelection(ctx context.Context, category, provider string) {
	m.selections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("provider", provider),
	))
}

// RecordInstance counts a constructed instance.
func (m *RegistryMetrics) RecordInstance(ctx context.Context, provider, category string) {
	m.instances.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("category", category),
	))
}

// RecordResolve records the duration of a resolve call.
func (m *RegistryMetrics) RecordResolve(ctx context.Context, category, status string, duration time.Duration) {
	m.resolveDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("status", status),
	))
}

// RecordResolveError counts a failed resolve call by error code.
func (m *RegistryMetrics) RecordResolveError(ctx context.Context, category, code string) {
	m.resolveErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("code", code),
	))
}
