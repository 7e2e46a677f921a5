// Package observability provides OpenTelemetry tracing and metrics for the
// provider registry.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &observability.TracerConfig{ServiceName: "svc"})
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanResolve)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewRegistryMetrics(observability.Meter("provkit"))
//	metrics.RecordResolve(ctx, "Cache", "ok", duration)
//
// Health:
//
//	health := observability.NewServiceHealth("svc", "1.0.0")
//	health.AddComponent(registry.CheckHealth(ctx))
package observability
