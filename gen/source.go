package gen

import "iter"

// Integer is the set of integer element types accepted by Range.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Number is the set of element types accepted by Sum and CountFrom.
type Number interface {
	Integer | ~float32 | ~float64
}

type sliceSeq[T any] struct {
	items []T
}

func (s *sliceSeq[T]) Apply(handler func(T) bool) bool {
	for _, v := range s.items {
		if !handler(v) {
			return false
		}
	}
	return true
}

func (s *sliceSeq[T]) Infinite() bool { return false }

// Of returns a finite sequence of the given values.
func Of[T any](values ...T) Sequence[T] {
	return &sliceSeq[T]{items: values}
}

// FromSlice returns a finite sequence over items. The slice is not copied:
// later writes to it are visible to later passes.
func FromSlice[T any](items []T) Sequence[T] {
	return &sliceSeq[T]{items: items}
}

// Empty returns a sequence with no elements.
func Empty[T any]() Sequence[T] {
	return &sliceSeq[T]{}
}

// Range returns start, start+step, ... up to but excluding end.
// A zero step, or a step pointing away from end, yields nothing. Distances
// are measured in uint64 so the last step never overflows T.
func Range[T Integer](start, end, step T) Sequence[T] {
	return &funcSeq[T]{
		apply: func(yield func(T) bool) bool {
			var zero T
			switch {
			case step > zero && start < end:
				stride := uint64(step)
				for i := start; ; i += step {
					if !yield(i) {
						return false
					}
					if uint64(end)-uint64(i) <= stride {
						break
					}
				}
			case step < zero && start > end:
				stride := -uint64(step)
				for i := start; ; i += step {
					if !yield(i) {
						return false
					}
					if uint64(i)-uint64(end) <= stride {
						break
					}
				}
			}
			return true
		},
	}
}

// CountFrom returns the infinite sequence start, start+step, start+2*step, ...
func CountFrom[T Number](start, step T) Sequence[T] {
	return &funcSeq[T]{
		infinite: true,
		apply: func(yield func(T) bool) bool {
			for v := start; ; v += step {
				if !yield(v) {
					return false
				}
			}
		},
	}
}

// Repeat returns value count times.
func Repeat[T any](value T, count int) Sequence[T] {
	return &funcSeq[T]{
		apply: func(yield func(T) bool) bool {
			for range count {
				if !yield(value) {
					return false
				}
			}
			return true
		},
	}
}

// Forever returns value endlessly.
func Forever[T any](value T) Sequence[T] {
	return &funcSeq[T]{
		infinite: true,
		apply: func(yield func(T) bool) bool {
			for {
				if !yield(value) {
					return false
				}
			}
		},
	}
}

// Generate returns the infinite sequence fn(0), fn(1), fn(2), ...
func Generate[T any](fn func(index int) T) Sequence[T] {
	return &funcSeq[T]{
		infinite: true,
		apply: func(yield func(T) bool) bool {
			for i := 0; ; i++ {
				if !yield(fn(i)) {
					return false
				}
			}
		},
	}
}

// Iterate returns the infinite sequence seed, fn(seed), fn(fn(seed)), ...
func Iterate[T any](seed T, fn func(T) T) Sequence[T] {
	return &funcSeq[T]{
		infinite: true,
		apply: func(yield func(T) bool) bool {
			for v := seed; ; v = fn(v) {
				if !yield(v) {
					return false
				}
			}
		},
	}
}

// FromFunc wraps a custom producer. apply must follow the Sequence
// contract; infinite declares whether it ever returns on its own.
func FromFunc[T any](apply func(yield func(T) bool) bool, infinite bool) Sequence[T] {
	return &funcSeq[T]{apply: apply, infinite: infinite}
}

// FromSeq adapts a range-over-func iterator. The result is restartable only
// if seq is.
func FromSeq[T any](seq iter.Seq[T], infinite bool) Sequence[T] {
	return &funcSeq[T]{
		infinite: infinite,
		apply: func(yield func(T) bool) bool {
			for v := range seq {
				if !yield(v) {
					return false
				}
			}
			return true
		},
	}
}

// Iter exposes s as an iter.Seq for use with range loops and the
// standard library.
func Iter[T any](s Sequence[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		s.Apply(yield)
	}
}
