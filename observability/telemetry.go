package observability

import (
	"context"
	"errors"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	apperrors "github.com/kbukum/xgen/errors"
)

// Telemetry bundles the providers and pipeline instruments of a process.
type Telemetry struct {
	MeterProvider  *sdkmetric.MeterProvider
	TracerProvider *sdktrace.TracerProvider
	Metrics        *PipelineMetrics
}

// Setup starts metric and trace export for svc. Whatever was started is
// shut down again when a later step fails.
func Setup(ctx context.Context, cfg Config, svc Service) (*Telemetry, error) {
	t := &Telemetry{}

	mp, err := InitMeter(ctx, cfg, svc)
	if err != nil {
		return nil, err
	}
	t.MeterProvider = mp

	tp, err := InitTracer(ctx, cfg, svc)
	if err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}
	t.TracerProvider = tp

	metrics, err := NewPipelineMetrics(mp.Meter(instrumentationName))
	if err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}
	t.Metrics = metrics
	return t, nil
}

// Shutdown flushes spans before metrics so run metrics recorded while
// spans end are still exported.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

func errorCode(err error) string {
	return string(apperrors.CodeOf(err))
}
