// Package observability wires OpenTelemetry tracing and metrics for chatkit.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("chat-bot"))
//	defer tp.Shutdown(ctx)
//
// Every UserAgent.Run starts a client span named after the request method
// on the global tracer provider.
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("chat-bot"))
//	defer mp.Shutdown(ctx)
//
//	m, err := observability.NewRequestMetrics(observability.Meter("chatkit"))
//	ua, err := useragent.New(cfg, useragent.WithMetrics(m))
package observability
