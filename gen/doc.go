// Package gen provides composable, push-based lazy sequences.
//
// A [Sequence] pushes its elements into a handler until the handler
// returns false. An [Operator] turns one value into another at composition
// time: lazy stages wrap a sequence into a new sequence, terminals drive it
// to a result. Nothing is traversed until a terminal or a handler asks for
// elements, and no intermediate collections are built.
//
// # Composition
//
//   - operator + operator: [Then] builds a composed operator
//   - sequence + sequence: [Concat] chains two sequences of the same element type
//   - sequence + operator: [Pipe] applies the operator
//   - sequence + handler: [Run] (stop-aware), [ForEach] (always continue) or
//     [Drive] for handlers known only as values of type any
//
// # Infinite sequences
//
// Sources such as [CountFrom] or [Forever] never end on their own and report
// Infinite() == true. Terminals that need every element ([ForEach], [Collect],
// [Sum], ...) refuse them with an INFINITE_SEQUENCE error before any element
// is produced. Only a stop-aware handler, a short-circuiting terminal or a
// bounding stage such as [Take] can consume them.
//
// # Usage
//
//	evensSquared := gen.Then(
//	    gen.Filter(func(n int) bool { return n%2 == 0 }),
//	    gen.Map(func(n int) int { return n * n }),
//	)
//	out, err := gen.Pipe(gen.Pipe(gen.Of(1, 2, 3, 4, 5), evensSquared), gen.Collect[int]()).Unwrap()
//	// out == []int{4, 16}
//
// Evaluation is single-threaded and synchronous: Apply returns only when
// the producer is exhausted or the handler stops it.
package gen
