package instrument

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/xgen/gen"
	"github.com/kbukum/xgen/observability"
)

// Traced runs terminal inside a span named after it. The span records the
// source's Infinite flag and any error the terminal returns, including the
// infinite-sequence rejection.
func Traced[T, R any](ctx context.Context, name string, terminal gen.Terminal[T, R]) gen.Terminal[T, R] {
	return gen.OperatorFunc[gen.Sequence[T], gen.Result[R]](func(src gen.Sequence[T]) gen.Result[R] {
		_, span := observability.StartSpan(ctx, observability.SpanTerminal, trace.WithAttributes(
			attribute.String(observability.AttrStage, name),
			attribute.Bool(observability.AttrInfinite, src.Infinite()),
		))
		defer span.End()

		res := terminal.Compose(src)
		observability.FailSpan(span, res.Err)
		return res
	})
}

// RunTerminal applies terminal to src as one observed run: a run span, a
// run metric and the terminal's result.
func RunTerminal[T, R any](ctx context.Context, rc *observability.RunContext, src gen.Sequence[T], terminal gen.Terminal[T, R]) (R, error) {
	ctx, span := rc.Start(ctx)
	v, err := gen.Pipe(src, Traced(ctx, "terminal", terminal)).Unwrap()
	rc.End(ctx, span, err == nil, err)
	return v, err
}

// RunHandler drives src with a handler resolved at run time (see gen.Drive)
// as one observed run. A handler that stops the traversal is recorded as a
// stopped run; a traversal that stops after ctx is done fails with the
// context error.
func RunHandler[T any](ctx context.Context, rc *observability.RunContext, src gen.Sequence[T], handler any) (bool, error) {
	ctx, span := rc.Start(ctx)
	completed, err := gen.Drive(src, handler)
	if !completed && err == nil {
		err = ctx.Err()
	}
	rc.End(ctx, span, completed, err)
	return completed, err
}
