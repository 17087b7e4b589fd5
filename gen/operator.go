package gen

// Operator turns a source into a result when composed. Lazy stages return a
// new Sequence and never traverse their source while composing; terminals
// drive the source and return a Result.
type Operator[In, Out any] interface {
	Compose(source In) Out
}

// Stage is an operator from one sequence to another.
type Stage[T, R any] = Operator[Sequence[T], Sequence[R]]

// Terminal is an operator from a sequence to an eager result.
type Terminal[T, R any] = Operator[Sequence[T], Result[R]]

// OperatorFunc adapts a function to the Operator interface.
type OperatorFunc[In, Out any] func(source In) Out

// Compose calls f(source).
func (f OperatorFunc[In, Out]) Compose(source In) Out { return f(source) }

// composed applies first, then second to first's result.
type composed[A, B, C any] struct {
	first  Operator[A, B]
	second Operator[B, C]
}

func (c *composed[A, B, C]) Compose(source A) C {
	return c.second.Compose(c.first.Compose(source))
}

// Then binds two operators into one. Composing the result with a source
// equals composing first with it and second with first's result, so
// Then(Then(f, g), h) and Then(f, Then(g, h)) behave identically.
func Then[A, B, C any](first Operator[A, B], second Operator[B, C]) Operator[A, C] {
	return &composed[A, B, C]{first: first, second: second}
}

// Identity returns a stage that passes its source through untouched.
func Identity[T any]() Stage[T, T] {
	return OperatorFunc[Sequence[T], Sequence[T]](func(source Sequence[T]) Sequence[T] {
		return source
	})
}

// Chain folds same-shape stages left to right. With no stages it returns
// Identity.
func Chain[T any](stages ...Stage[T, T]) Stage[T, T] {
	if len(stages) == 0 {
		return Identity[T]()
	}
	op := stages[0]
	for _, next := range stages[1:] {
		op = Then(op, next)
	}
	return op
}
