package gen

// chain visits all of first, then all of second.
type chain[T any] struct {
	first  Sequence[T]
	second Sequence[T]
}

func (c *chain[T]) Apply(handler func(T) bool) bool {
	if !c.first.Apply(handler) {
		return false
	}
	return c.second.Apply(handler)
}

func (c *chain[T]) Infinite() bool {
	return c.first.Infinite() || c.second.Infinite()
}

// Concat returns a sequence that yields every element of first and then
// every element of second. A stop raised while first is running means
// second is never traversed.
func Concat[T any](first, second Sequence[T]) Sequence[T] {
	return &chain[T]{first: first, second: second}
}

// ConcatAll concatenates seqs in order. With no arguments it returns Empty.
func ConcatAll[T any](seqs ...Sequence[T]) Sequence[T] {
	if len(seqs) == 0 {
		return Empty[T]()
	}
	acc := seqs[len(seqs)-1]
	for i := len(seqs) - 2; i >= 0; i-- {
		acc = Concat(seqs[i], acc)
	}
	return acc
}
