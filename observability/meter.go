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

	"github.com/kbukum/xgen/logger"
)

// InitMeter exports pipeline metrics over OTLP/HTTP on cfg.Interval and
// installs the provider globally. The caller shuts it down.
func InitMeter(ctx context.Context, cfg Config, svc Service) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := svc.Resource()
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Get("telemetry").Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Metric names.
const (
	MetricElements    = "xgen.elements"
	MetricRuns        = "xgen.runs"
	MetricRunDuration = "xgen.run.duration"
	MetricStops       = "xgen.stops"
)

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusStopped   = "stopped"
	StatusFailed    = "failed"
)

// PipelineMetrics holds the instruments recorded while sequences run.
type PipelineMetrics struct {
	elements    metric.Int64Counter
	runs        metric.Int64Counter
	runDuration metric.Float64Histogram
	stops       metric.Int64Counter
}

// NewPipelineMetrics creates metric instruments on the given meter.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	elements, err := meter.Int64Counter(MetricElements,
		metric.WithDescription("Elements that passed through a stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElements, err)
	}

	runs, err := meter.Int64Counter(MetricRuns,
		metric.WithDescription("Pipeline runs by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRuns, err)
	}

	runDuration, err := meter.Float64Histogram(MetricRunDuration,
		metric.WithDescription("Duration of pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRunDuration, err)
	}

	stops, err := meter.Int64Counter(MetricStops,
		metric.WithDescription("Stage passes ended early by anything downstream, including take and limit bounds"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricStops, err)
	}

	return &PipelineMetrics{
		elements:    elements,
		runs:        runs,
		runDuration: runDuration,
		stops:       stops,
	}, nil
}

// RecordElements adds n elements observed at a stage.
func (m *PipelineMetrics) RecordElements(ctx context.Context, pipeline, stage string, n int64) {
	if n == 0 {
		return
	}
	m.elements.Add(ctx, n, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrStage, stage),
	))
}

// RecordStop counts a stage pass that something downstream ended early: a
// stopping handler, a short-circuit terminal, or a take/limit bound. A
// bounded run therefore reports a stop at every stage before the bound.
func (m *PipelineMetrics) RecordStop(ctx context.Context, pipeline, stage string) {
	m.stops.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrStage, stage),
	))
}

// RecordRun records a finished run with its status.
func (m *PipelineMetrics) RecordRun(ctx context.Context, pipeline, status string, duration time.Duration) {
	m.runs.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrStatus, status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
	))
}
