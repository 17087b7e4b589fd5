package gen

import (
	"context"
	"iter"
)

// Iterator gives pull-based access to a Sequence. Callers must Close it
// when they stop early.
type Iterator[T any] struct {
	next   func() (T, bool)
	stop   func()
	closed bool
}

// Pull starts a pull-based pass over s. The pass runs as a coroutine
// resumed by each Next call.
func Pull[T any](s Sequence[T]) *Iterator[T] {
	next, stop := iter.Pull(Iter(s))
	return &Iterator[T]{next: next, stop: stop}
}

// Next returns the next value. Returns (zero, false, nil) when exhausted or
// closed, and the context error once ctx is done.
func (it *Iterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.closed {
		return zero, false, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	v, ok := it.next()
	if !ok {
		it.Close()
	}
	return v, ok, nil
}

// Close ends the pass. It is safe to call more than once.
func (it *Iterator[T]) Close() error {
	if !it.closed {
		it.closed = true
		it.stop()
	}
	return nil
}

// Drain pushes every element of s to sink until the sequence ends, sink
// returns an error or ctx is done. It accepts infinite sequences since
// cancellation stops it.
func Drain[T any](ctx context.Context, s Sequence[T], sink func(context.Context, T) error) error {
	var err error
	s.Apply(func(v T) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		if err = sink(ctx, v); err != nil {
			return false
		}
		return true
	})
	return err
}

// Guarded is a sequence whose passes stop once a context is done.
type Guarded[T any] struct {
	ctx context.Context
	src Sequence[T]
	err error
}

// WithContext returns s guarded by ctx. The context is checked before every
// element of s, so a pass ends even when downstream stages drop everything.
func WithContext[T any](ctx context.Context, s Sequence[T]) *Guarded[T] {
	return &Guarded[T]{ctx: ctx, src: s}
}

func (g *Guarded[T]) Apply(handler func(T) bool) bool {
	g.err = nil
	return g.src.Apply(func(v T) bool {
		if err := g.ctx.Err(); err != nil {
			g.err = err
			return false
		}
		return handler(v)
	})
}

func (g *Guarded[T]) Infinite() bool { return g.src.Infinite() }

// Err returns the context error that ended the last pass, or nil.
func (g *Guarded[T]) Err() error { return g.err }
