package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RunContext holds observability state for one pipeline execution.
type RunContext struct {
	Pipeline  string
	RunID     string
	StartTime time.Time
	Metrics   *PipelineMetrics
}

// NewRunContext creates a run context. If metrics is nil, metric recording
// is skipped.
func NewRunContext(pipeline, runID string, metrics *PipelineMetrics) *RunContext {
	return &RunContext{
		Pipeline:  pipeline,
		RunID:     runID,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type runContextKey struct{}

// WithRunContext stores a RunContext in the context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// RunContextFromContext retrieves the RunContext from context, or nil.
func RunContextFromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return nil
}

// Start opens the run span and stores rc in the returned context.
func (rc *RunContext) Start(ctx context.Context) (context.Context, trace.Span) {
	rc.StartTime = time.Now()
	ctx, span := StartSpan(ctx, SpanPipelineRun, trace.WithAttributes(
		attribute.String(AttrPipeline, rc.Pipeline),
		attribute.String(AttrRunID, rc.RunID),
	))
	return WithRunContext(ctx, rc), span
}

// End closes the span and records the run. completed is the traversal
// result: false means a handler stopped it.
func (rc *RunContext) End(ctx context.Context, span trace.Span, completed bool, err error) {
	duration := time.Since(rc.StartTime)
	status := Status(completed, err)

	FailSpan(span, err)
	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Bool(AttrCompleted, completed),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if rc.Metrics != nil {
		rc.Metrics.RecordRun(ctx, rc.Pipeline, status, duration)
	}
}

// Duration returns the elapsed time since the run started.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}

// Status names the outcome of a traversal.
func Status(completed bool, err error) string {
	switch {
	case err != nil:
		return StatusFailed
	case completed:
		return StatusCompleted
	default:
		return StatusStopped
	}
}
