package gen

import "github.com/kbukum/xgen/errors"

// Pipe composes op with s. Lazy stages come back untraversed; terminals
// run here.
func Pipe[T, R any](s Sequence[T], op Operator[Sequence[T], R]) R {
	return op.Compose(s)
}

// Drive consumes s with a handler whose type is known only at run time.
//
// A func(T) handler always continues: Drive rejects infinite sequences for
// it, discards Apply's result and reports true. A func(T) bool handler is
// passed to Apply directly and its result returned; it may consume an
// infinite sequence because it decides when to stop. Any other handler
// yields an INCOMPATIBLE_HANDLER error. The contract is resolved once,
// before the first element.
func Drive[T any](s Sequence[T], handler any) (bool, error) {
	fn, contract, err := Bind[T](handler)
	if err != nil {
		return false, err
	}
	if contract == ContractVoid {
		if s.Infinite() {
			return false, errors.InfiniteSequence("drive")
		}
		s.Apply(fn)
		return true, nil
	}
	return s.Apply(fn), nil
}
