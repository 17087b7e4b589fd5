package gen

import "iter"

// stage builds a lazy stage: compose captures the source without
// traversing it, apply runs per pass.
func stage[T, R any](infinite func(src Sequence[T]) bool, apply func(src Sequence[T], yield func(R) bool) bool) Stage[T, R] {
	return OperatorFunc[Sequence[T], Sequence[R]](func(src Sequence[T]) Sequence[R] {
		return &funcSeq[R]{
			infinite: infinite(src),
			apply: func(yield func(R) bool) bool {
				return apply(src, yield)
			},
		}
	})
}

func sameAsSource[T any](src Sequence[T]) bool { return src.Infinite() }

func bounded[T any](Sequence[T]) bool { return false }

// Filter keeps only the elements that satisfy predicate.
func Filter[T any](predicate func(T) bool) Stage[T, T] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func(T) bool) bool {
		return src.Apply(func(v T) bool {
			if !predicate(v) {
				return true
			}
			return yield(v)
		})
	})
}

// Map transforms each element with fn.
func Map[T, R any](fn func(T) R) Stage[T, R] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func(R) bool) bool {
		return src.Apply(func(v T) bool {
			return yield(fn(v))
		})
	})
}

// FlatMap replaces each element with the elements of fn(element). The
// result is infinite only if the source is; an infinite inner sequence is
// not detected.
func FlatMap[T, R any](fn func(T) Sequence[R]) Stage[T, R] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func(R) bool) bool {
		return src.Apply(func(v T) bool {
			return fn(v).Apply(yield)
		})
	})
}

// Peek calls action on each element before passing it on.
func Peek[T any](action func(T)) Stage[T, T] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func(T) bool) bool {
		return src.Apply(func(v T) bool {
			action(v)
			return yield(v)
		})
	})
}

// Take yields at most n elements. The result is finite even for an
// infinite source. Reaching n is not a stop: Apply still reports true.
func Take[T any](n int) Stage[T, T] {
	return stage(bounded[T], func(src Sequence[T], yield func(T) bool) bool {
		if n <= 0 {
			return true
		}
		count := 0
		stopped := false
		src.Apply(func(v T) bool {
			if !yield(v) {
				stopped = true
				return false
			}
			count++
			return count < n
		})
		return !stopped
	})
}

// Skip drops the first n elements.
func Skip[T any](n int) Stage[T, T] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func(T) bool) bool {
		skipped := 0
		return src.Apply(func(v T) bool {
			if skipped < n {
				skipped++
				return true
			}
			return yield(v)
		})
	})
}

// TakeWhile yields elements while predicate holds and ends at the first
// one that fails it. The result keeps the source's Infinite flag because
// the predicate may never fail.
func TakeWhile[T any](predicate func(T) bool) Stage[T, T] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func(T) bool) bool {
		stopped := false
		src.Apply(func(v T) bool {
			if !predicate(v) {
				return false
			}
			if !yield(v) {
				stopped = true
				return false
			}
			return true
		})
		return !stopped
	})
}

// DropWhile skips elements while predicate holds, then yields the rest.
func DropWhile[T any](predicate func(T) bool) Stage[T, T] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func(T) bool) bool {
		dropping := true
		return src.Apply(func(v T) bool {
			if dropping {
				if predicate(v) {
					return true
				}
				dropping = false
			}
			return yield(v)
		})
	})
}

// Distinct yields each value the first time it appears. Memory grows with
// the number of unique values seen in one pass.
func Distinct[T comparable]() Stage[T, T] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func(T) bool) bool {
		seen := make(map[T]struct{})
		return src.Apply(func(v T) bool {
			if _, ok := seen[v]; ok {
				return true
			}
			seen[v] = struct{}{}
			return yield(v)
		})
	})
}

// Scan yields the running accumulation of fn, starting from initial.
func Scan[T, R any](initial R, fn func(R, T) R) Stage[T, R] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func(R) bool) bool {
		acc := initial
		return src.Apply(func(v T) bool {
			acc = fn(acc, v)
			return yield(acc)
		})
	})
}

// Chunk groups elements into slices of size. The last chunk may be
// shorter. A size below one yields nothing.
func Chunk[T any](size int) Stage[T, []T] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func([]T) bool) bool {
		if size <= 0 {
			return true
		}
		batch := make([]T, 0, size)
		if !src.Apply(func(v T) bool {
			batch = append(batch, v)
			if len(batch) < size {
				return true
			}
			full := batch
			batch = make([]T, 0, size)
			return yield(full)
		}) {
			return false
		}
		if len(batch) > 0 {
			return yield(batch)
		}
		return true
	})
}

// Window yields sliding windows of size elements, advancing step elements
// each time. step < size overlaps, step == size equals Chunk without the
// short tail, step > size leaves gaps. Non-positive arguments yield
// nothing.
func Window[T any](size, step int) Stage[T, []T] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func([]T) bool) bool {
		if size <= 0 || step <= 0 {
			return true
		}
		buffer := make([]T, 0, size)
		skip := 0
		return src.Apply(func(v T) bool {
			if skip > 0 {
				skip--
				return true
			}
			buffer = append(buffer, v)
			if len(buffer) < size {
				return true
			}
			out := make([]T, size)
			copy(out, buffer)
			if step < size {
				copy(buffer, buffer[step:])
				buffer = buffer[:size-step]
			} else {
				buffer = buffer[:0]
				skip = step - size
			}
			return yield(out)
		})
	})
}

// Pair holds two values produced together.
type Pair[A, B any] struct {
	First  A
	Second B
}

// FirstOf returns p.First. It is meant as a Map transform.
func FirstOf[A, B any](p Pair[A, B]) A { return p.First }

// SecondOf returns p.Second. It is meant as a Map transform.
func SecondOf[A, B any](p Pair[A, B]) B { return p.Second }

// Enumerate pairs each element with its zero-based index in the pass.
func Enumerate[T any]() Stage[T, Pair[int, T]] {
	return stage(sameAsSource[T], func(src Sequence[T], yield func(Pair[int, T]) bool) bool {
		i := 0
		return src.Apply(func(v T) bool {
			p := Pair[int, T]{First: i, Second: v}
			i++
			return yield(p)
		})
	})
}

// Zip pairs elements of the source with elements of other and ends with
// the shorter of the two. other is pulled through iter.Pull, which runs it
// as a coroutine on the caller's behalf, not in parallel.
func Zip[T, U any](other Sequence[U]) Stage[T, Pair[T, U]] {
	infinite := func(src Sequence[T]) bool { return src.Infinite() && other.Infinite() }
	return stage(infinite, func(src Sequence[T], yield func(Pair[T, U]) bool) bool {
		next, stop := iter.Pull(Iter(other))
		defer stop()
		exhausted := false
		completed := src.Apply(func(v T) bool {
			u, ok := next()
			if !ok {
				exhausted = true
				return false
			}
			return yield(Pair[T, U]{First: v, Second: u})
		})
		return completed || exhausted
	})
}
