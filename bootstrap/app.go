package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/provkit/config"
	"github.com/kbukum/provkit/logger"
	"github.com/kbukum/provkit/observability"
	"github.com/kbukum/provkit/provider"
	"github.com/kbukum/provkit/version"
)

// App hosts a provider registry with uniform startup and shutdown.
//
// Example:
//
//	app, err := bootstrap.New(cfg)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App) error {
//	    if _, err := blog.Register(a.Registry); err != nil {
//	        return err
//	    }
//	    _, err := blog.RegisterMemory(a.Registry)
//	    return err
//	})
//	app.Run(context.Background())
type App struct {
	Name     string
	Version  string
	Cfg      *config.ServiceConfig
	Registry *provider.Registry
	Logger   *logger.Logger
	Summary  *Summary

	gracefulTimeout time.Duration
	summaryOut      io.Writer
	shutdowns       []func(context.Context) error

	onConfigure []func(ctx context.Context, app *App) error
	onStart     []Hook
	onReady     []Hook
	onStop      []Hook
}

// New creates an application from cfg. It applies defaults, validates the
// config, initializes logging and telemetry, and creates the registry.
func New(cfg *config.ServiceConfig, opts ...Option) (*App, error) {
	if cfg.Version == "" {
		cfg.Version = version.Short()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	app := &App{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
		summaryOut:      os.Stdout,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.summaryOut != nil {
		app.summaryOut = o.summaryOut
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(cfg.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	registryOpts := []provider.Option{provider.WithLogger(app.Logger.WithComponent("provider"))}
	telemetryOpts, err := app.initTelemetry(o)
	if err != nil {
		return nil, err
	}
	registryOpts = append(registryOpts, telemetryOpts...)
	registryOpts = append(registryOpts, o.registryOpts...)
	app.Registry = provider.New(registryOpts...)

	return app, nil
}

// initTelemetry starts the configured exporters and returns the registry
// options that record to them.
func (a *App) initTelemetry(o *appOptions) ([]provider.Option, error) {
	ctx := context.Background()
	var opts []provider.Option

	if o.tracer != nil {
		tp, err := observability.InitTracer(ctx, o.tracer)
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		a.shutdowns = append(a.shutdowns, tp.Shutdown)
	}
	if o.meter != nil {
		mp, err := observability.InitMeter(ctx, o.meter)
		if err != nil {
			return nil, fmt.Errorf("init meter: %w", err)
		}
		a.shutdowns = append(a.shutdowns, mp.Shutdown)
		m, err := observability.NewRegistryMetrics(mp.Meter("github.com/kbukum/provkit/provider"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, provider.WithMetrics(m))
	}
	return opts, nil
}

// Run starts the application, blocks until a signal or ctx is done, then
// shuts down.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.Shutdown(context.Background())
}

// RunTask starts the application, runs task, and shuts down when the task
// returns. SIGINT and SIGTERM cancel the task's context.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)
	if stopErr := a.Shutdown(context.Background()); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// Start runs the startup sequence: configure callbacks, configured
// selections, OnStart hooks, ready check, OnReady hooks and the summary.
func (a *App) Start(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configuration failed: %w", err)
		}
	}
	if err := a.Cfg.ApplyRegistry(a.Registry); err != nil {
		return fmt.Errorf("apply provider selections: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.ErrorFields("ready_check", err))
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary = Collect(ctx, a.Name, a.Version, a.Registry)
	a.Summary.StartupDuration = time.Since(start)
	a.Summary.Write(a.summaryOut)
	return nil
}

// ReadyCheck fails unless every category has a usable provider.
func (a *App) ReadyCheck(ctx context.Context) error {
	h := a.Registry.CheckHealth(ctx)
	if h.Status == observability.HealthStatusUp {
		return nil
	}
	var missing []string
	for _, cat := range a.Registry.Categories() {
		if h.Details[cat.Name()] == "none" {
			missing = append(missing, cat.Name())
		}
	}
	return fmt.Errorf("registry %s: no usable provider for %v", h.Status, missing)
}

// WaitForSignal blocks until an interrupt or term signal, or ctx is done.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown runs OnStop hooks, closes built provider instances and flushes
// telemetry, all within the graceful timeout. Every step runs even if an
// earlier one fails.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("Shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(ctx, a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.ErrorFields("on_stop", err))
		errs = append(errs, err)
	}
	if err := a.Registry.Close(ctx); err != nil {
		a.Logger.Error("Closing providers failed", logger.ErrorFields("close", err))
		errs = append(errs, err)
	}
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		if err := a.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}

	a.Logger.Info("Application shutdown complete")
	return stderrors.Join(errs...)
}
