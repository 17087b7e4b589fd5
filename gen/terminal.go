package gen

import (
	"cmp"
	"slices"

	"github.com/kbukum/xgen/errors"
)

// Result is the outcome of a terminal operator.
type Result[R any] struct {
	Value R
	Err   error
}

// Unwrap returns the value and the error.
func (r Result[R]) Unwrap() (R, error) { return r.Value, r.Err }

// exhaustive builds a terminal that needs every element. Infinite sources
// are rejected before run is called.
func exhaustive[T, R any](name string, run func(src Sequence[T]) (R, error)) Terminal[T, R] {
	return OperatorFunc[Sequence[T], Result[R]](func(src Sequence[T]) Result[R] {
		if src.Infinite() {
			return Result[R]{Err: errors.InfiniteSequence(name)}
		}
		v, err := run(src)
		return Result[R]{Value: v, Err: err}
	})
}

// shortCircuit builds a terminal that stops on its own once satisfied. It
// accepts infinite sources and does not return if the condition never
// holds on one.
func shortCircuit[T, R any](run func(src Sequence[T]) (R, error)) Terminal[T, R] {
	return OperatorFunc[Sequence[T], Result[R]](func(src Sequence[T]) Result[R] {
		v, err := run(src)
		return Result[R]{Value: v, Err: err}
	})
}

// Collect gathers every element into a slice.
func Collect[T any]() Terminal[T, []T] {
	return exhaustive("collect", func(src Sequence[T]) ([]T, error) {
		var out []T
		src.Apply(func(v T) bool {
			out = append(out, v)
			return true
		})
		return out, nil
	})
}

// Sum adds every element. An empty sequence sums to zero.
func Sum[T Number]() Terminal[T, T] {
	return exhaustive("sum", func(src Sequence[T]) (T, error) {
		var total T
		src.Apply(func(v T) bool {
			total += v
			return true
		})
		return total, nil
	})
}

// Count returns the number of elements.
func Count[T any]() Terminal[T, int] {
	return exhaustive("count", func(src Sequence[T]) (int, error) {
		n := 0
		src.Apply(func(T) bool {
			n++
			return true
		})
		return n, nil
	})
}

// Reduce folds every element into an accumulator starting at initial.
func Reduce[T, R any](initial R, fn func(R, T) R) Terminal[T, R] {
	return exhaustive("reduce", func(src Sequence[T]) (R, error) {
		acc := initial
		src.Apply(func(v T) bool {
			acc = fn(acc, v)
			return true
		})
		return acc, nil
	})
}

// Last returns the final element.
func Last[T any]() Terminal[T, T] {
	return exhaustive("last", func(src Sequence[T]) (T, error) {
		var last T
		found := false
		src.Apply(func(v T) bool {
			last, found = v, true
			return true
		})
		if !found {
			return last, errors.EmptySequence("last")
		}
		return last, nil
	})
}

// Less reports a < b. Pass it to MinBy, MaxBy or Sorted.
func Less[T cmp.Ordered](a, b T) bool { return a < b }

// Greater reports a > b. Pass it to Sorted for descending order.
func Greater[T cmp.Ordered](a, b T) bool { return a > b }

// MinBy returns the first element no other element is less than.
func MinBy[T any](less func(a, b T) bool) Terminal[T, T] {
	return best("min", less)
}

// MaxBy returns the first element no other element is greater than.
func MaxBy[T any](less func(a, b T) bool) Terminal[T, T] {
	return best("max", func(a, b T) bool { return less(b, a) })
}

// Min returns the smallest element.
func Min[T cmp.Ordered]() Terminal[T, T] { return MinBy(Less[T]) }

// Max returns the largest element.
func Max[T cmp.Ordered]() Terminal[T, T] { return MaxBy(Less[T]) }

func best[T any](name string, better func(a, b T) bool) Terminal[T, T] {
	return exhaustive(name, func(src Sequence[T]) (T, error) {
		var cur T
		found := false
		src.Apply(func(v T) bool {
			if !found || better(v, cur) {
				cur, found = v, true
			}
			return true
		})
		if !found {
			return cur, errors.EmptySequence(name)
		}
		return cur, nil
	})
}

// Sorted collects every element and sorts them stably by less.
func Sorted[T any](less func(a, b T) bool) Terminal[T, []T] {
	return exhaustive("sorted", func(src Sequence[T]) ([]T, error) {
		var out []T
		src.Apply(func(v T) bool {
			out = append(out, v)
			return true
		})
		slices.SortStableFunc(out, func(a, b T) int {
			switch {
			case less(a, b):
				return -1
			case less(b, a):
				return 1
			default:
				return 0
			}
		})
		return out, nil
	})
}

// First returns the first element and stops the source.
func First[T any]() Terminal[T, T] {
	return shortCircuit(func(src Sequence[T]) (T, error) {
		var first T
		found := false
		src.Apply(func(v T) bool {
			first, found = v, true
			return false
		})
		if !found {
			return first, errors.EmptySequence("first")
		}
		return first, nil
	})
}

// Find returns the first element satisfying predicate.
func Find[T any](predicate func(T) bool) Terminal[T, T] {
	return shortCircuit(func(src Sequence[T]) (T, error) {
		var hit T
		found := false
		src.Apply(func(v T) bool {
			if predicate(v) {
				hit, found = v, true
				return false
			}
			return true
		})
		if !found {
			return hit, errors.EmptySequence("find")
		}
		return hit, nil
	})
}

// Any reports whether some element satisfies predicate.
func Any[T any](predicate func(T) bool) Terminal[T, bool] {
	return shortCircuit(func(src Sequence[T]) (bool, error) {
		hit := false
		src.Apply(func(v T) bool {
			hit = predicate(v)
			return !hit
		})
		return hit, nil
	})
}

// All reports whether every element satisfies predicate. It is true for an
// empty sequence.
func All[T any](predicate func(T) bool) Terminal[T, bool] {
	return shortCircuit(func(src Sequence[T]) (bool, error) {
		return src.Apply(predicate), nil
	})
}
