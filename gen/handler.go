package gen

import (
	"reflect"

	"github.com/kbukum/xgen/errors"
)

// Contract is the traversal contract a handler implements.
type Contract int

const (
	// ContractNone means the handler matches no accepted shape.
	ContractNone Contract = iota
	// ContractVoid is func(T): the handler always continues.
	ContractVoid
	// ContractStop is func(T) bool: false asks the producer to stop.
	ContractStop
)

// String returns the contract name.
func (c Contract) String() string {
	switch c {
	case ContractVoid:
		return "void"
	case ContractStop:
		return "stop"
	default:
		return "none"
	}
}

// ContractOf classifies handler against the two shapes accepted for
// element type T.
func ContractOf[T any](handler any) Contract {
	switch {
	case Matches[func(T) bool](handler):
		return ContractStop
	case Matches[func(T)](handler):
		return ContractVoid
	default:
		return ContractNone
	}
}

// Bind resolves handler into a stop-aware function once, so the choice is
// not repeated per element. Handlers of the exact types func(T) and
// func(T) bool are called directly; other compatible shapes (func(any),
// variadic funcs, named func types) go through reflection.
func Bind[T any](handler any) (func(T) bool, Contract, error) {
	switch h := handler.(type) {
	case func(T) bool:
		if h != nil {
			return h, ContractStop, nil
		}
	case func(T):
		if h != nil {
			return func(v T) bool {
				h(v)
				return true
			}, ContractVoid, nil
		}
	}

	contract := ContractOf[T](handler)
	if contract == ContractNone {
		return nil, ContractNone, errors.IncompatibleHandler(
			typeName(handler),
			reflect.TypeFor[func(T)]().String(),
			reflect.TypeFor[func(T) bool]().String(),
		)
	}

	fn := reflect.ValueOf(handler)
	call := func(v T) []reflect.Value {
		return fn.Call([]reflect.Value{reflect.ValueOf(&v).Elem()})
	}
	if contract == ContractStop {
		return func(v T) bool { return call(v)[0].Bool() }, contract, nil
	}
	return func(v T) bool {
		call(v)
		return true
	}, contract, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
