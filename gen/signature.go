package gen

import "reflect"

// Compatible reports whether candidate can be called with arguments of
// shape's parameter types and returns exactly shape's result types.
//
// Parameters are matched by assignability, so a func(any) accepts an int
// argument and a variadic candidate absorbs trailing arguments. Results
// must be identical in count and type: a func(int) bool never matches a
// func(int) shape. Anything that is not a non-nil func, or a shape that is
// not a func type, yields false.
func Compatible(candidate any, shape reflect.Type) bool {
	if candidate == nil || shape == nil || shape.Kind() != reflect.Func {
		return false
	}
	ct := reflect.TypeOf(candidate)
	if ct.Kind() != reflect.Func || reflect.ValueOf(candidate).IsNil() {
		return false
	}
	if !acceptsArgs(ct, shape) {
		return false
	}
	if ct.NumOut() != shape.NumOut() {
		return false
	}
	for i := range shape.NumOut() {
		if ct.Out(i) != shape.Out(i) {
			return false
		}
	}
	return true
}

// Matches is Compatible with the shape given as a type argument:
//
//	gen.Matches[func(int) bool](h)
func Matches[F any](candidate any) bool {
	return Compatible(candidate, reflect.TypeFor[F]())
}

func acceptsArgs(ct, shape reflect.Type) bool {
	n := shape.NumIn()
	if shape.IsVariadic() {
		if !ct.IsVariadic() || ct.NumIn() != n {
			return false
		}
		for i := range n {
			if !shape.In(i).AssignableTo(ct.In(i)) {
				return false
			}
		}
		return true
	}
	if !ct.IsVariadic() {
		if ct.NumIn() != n {
			return false
		}
		for i := range n {
			if !shape.In(i).AssignableTo(ct.In(i)) {
				return false
			}
		}
		return true
	}
	fixed := ct.NumIn() - 1
	if n < fixed {
		return false
	}
	for i := range fixed {
		if !shape.In(i).AssignableTo(ct.In(i)) {
			return false
		}
	}
	elem := ct.In(fixed).Elem()
	for i := fixed; i < n; i++ {
		if !shape.In(i).AssignableTo(elem) {
			return false
		}
	}
	return true
}
