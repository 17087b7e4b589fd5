// Package observability exports OpenTelemetry metrics and traces for
// pipeline runs.
//
//	tel, err := observability.Setup(ctx, cfg.Telemetry, observability.Service{Name: "genrun"})
//	defer tel.Shutdown(ctx)
//
// A RunContext ties a run span and the run metrics together:
//
//	rc := observability.NewRunContext("evens", runID, tel.Metrics)
//	ctx, span := rc.Start(ctx)
//	defer rc.End(ctx, span, completed, err)
package observability
