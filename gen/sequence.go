package gen

import "github.com/kbukum/xgen/errors"

// Sequence is a restartable producer of values of type T.
//
// Apply pushes elements to handler in order. As soon as handler returns
// false, Apply stops and returns false. When every element has been offered
// Apply returns true; an empty sequence returns true without calling
// handler. Each call to Apply is an independent pass over the same elements.
type Sequence[T any] interface {
	Apply(handler func(T) bool) bool
	// Infinite reports whether the sequence never ends on its own.
	Infinite() bool
}

// Run drives s with a stop-aware handler and returns what Apply returns.
// It is the only way to consume an infinite sequence directly.
func Run[T any](s Sequence[T], handler func(T) bool) bool {
	return s.Apply(handler)
}

// ForEach calls body for every element of s. Infinite sequences are
// rejected before any element is produced.
func ForEach[T any](s Sequence[T], body func(T)) error {
	if s.Infinite() {
		return errors.InfiniteSequence("foreach")
	}
	s.Apply(func(v T) bool {
		body(v)
		return true
	})
	return nil
}

// funcSeq is the Sequence behind every source and lazy stage.
type funcSeq[T any] struct {
	apply    func(yield func(T) bool) bool
	infinite bool
}

func (s *funcSeq[T]) Apply(handler func(T) bool) bool { return s.apply(handler) }

func (s *funcSeq[T]) Infinite() bool { return s.infinite }
