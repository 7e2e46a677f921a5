package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/provkit/logger"
	"github.com/kbukum/provkit/observability"
	"github.com/kbukum/provkit/provider"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
	tracer          *observability.TracerConfig
	meter           *observability.MeterConfig
	registryOpts    []provider.Option
	summaryOut      io.Writer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithTracing exports registry spans over OTLP HTTP.
func WithTracing(cfg observability.TracerConfig) Option {
	return func(o *appOptions) {
		o.tracer = &cfg
	}
}

// WithMetrics exports registry metrics over OTLP HTTP.
func WithMetrics(cfg observability.MeterConfig) Option {
	return func(o *appOptions) {
		o.meter = &cfg
	}
}

// WithRegistryOptions passes options to the registry, e.g. a Selector.
func WithRegistryOptions(opts ...provider.Option) Option {
	return func(o *appOptions) {
		o.registryOpts = append(o.registryOpts, opts...)
	}
}

// WithSummaryOutput sets where the startup summary is written. A nil writer
// disables it. The default is stdout.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) {
		if w == nil {
			w = io.Discard
		}
		o.summaryOut = w
	}
}
