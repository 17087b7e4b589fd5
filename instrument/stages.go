package instrument

import (
	"context"
	"time"

	"github.com/kbukum/xgen/gen"
	"github.com/kbukum/xgen/logger"
	"github.com/kbukum/xgen/observability"
)

// passThrough builds a transparent stage. after runs once per pass with
// the number of elements yielded and whether the pass completed.
func passThrough[T any](before func(), after func(n int64, completed bool, d time.Duration)) gen.Stage[T, T] {
	return gen.OperatorFunc[gen.Sequence[T], gen.Sequence[T]](func(src gen.Sequence[T]) gen.Sequence[T] {
		return gen.FromFunc(func(yield func(T) bool) bool {
			if before != nil {
				before()
			}
			start := time.Now()
			var n int64
			completed := src.Apply(func(v T) bool {
				n++
				return yield(v)
			})
			after(n, completed, time.Since(start))
			return completed
		}, src.Infinite())
	})
}

// Logged logs the start and end of every pass at debug level, with the
// element count and whether the pass completed.
func Logged[T any](log *logger.Logger, stage string) gen.Stage[T, T] {
	l := log.WithFields(logger.Fields(logger.FieldStage, stage))
	return passThrough[T](
		func() { l.Debug("stage started") },
		func(n int64, completed bool, d time.Duration) {
			l.Debug("stage finished", logger.MergeWithDuration(logger.Fields(
				logger.FieldElements, n,
				logger.FieldCompleted, completed,
			), d))
		},
	)
}

// Counted records the elements passing the stage and any early stop. A stop
// is recorded whenever the pass ends before the source is exhausted, so a
// take or limit further down counts as a stop here.
func Counted[T any](ctx context.Context, metrics *observability.PipelineMetrics, pipeline, stage string) gen.Stage[T, T] {
	return passThrough[T](nil, func(n int64, completed bool, _ time.Duration) {
		metrics.RecordElements(ctx, pipeline, stage, n)
		if !completed {
			metrics.RecordStop(ctx, pipeline, stage)
		}
	})
}
