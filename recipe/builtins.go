package recipe

import (
	"github.com/kbukum/xgen/errors"
	"github.com/kbukum/xgen/gen"
)

// Builtins returns a registry holding the standard stages:
//
//	even, odd, positive        filters
//	square, double, negate, inc transforms
//	take, skip                 factories taking Arg as a count
//	distinct                   drops repeated values
func Builtins() *Registry {
	r := NewRegistry()
	must(r.Register("even", func(v int) bool { return v%2 == 0 }))
	must(r.Register("odd", func(v int) bool { return v%2 != 0 }))
	must(r.Register("positive", func(v int) bool { return v > 0 }))
	must(r.Register("square", func(v int) int { return v * v }))
	must(r.Register("double", func(v int) int { return 2 * v }))
	must(r.Register("negate", func(v int) int { return -v }))
	must(r.Register("inc", func(v int) int { return v + 1 }))
	must(r.RegisterFactory("take", countStage("take", gen.Take[int])))
	must(r.RegisterFactory("skip", countStage("skip", gen.Skip[int])))
	must(r.RegisterFactory("distinct", func(int) (gen.Stage[int, int], error) {
		return gen.Distinct[int](), nil
	}))
	return r
}

func countStage(name string, build func(int) gen.Stage[int, int]) Factory {
	return func(arg int) (gen.Stage[int, int], error) {
		if arg < 0 {
			return nil, errors.InvalidInput(name+".arg", "must not be negative")
		}
		return build(arg), nil
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
