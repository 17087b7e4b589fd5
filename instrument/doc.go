// Package instrument wraps gen operators with logging, metrics and
// tracing. The gen package itself never logs; callers opt in by composing
// these stages into their pipelines:
//
//	op := gen.Chain(
//	    gen.Filter(even),
//	    instrument.Logged[int](log, "after-filter"),
//	    instrument.Counted[int](ctx, metrics, "evens", "after-filter"),
//	)
//
// Every wrapper is transparent: it yields the same elements in the same
// order, keeps the source's Infinite flag and passes a handler's stop
// request through unchanged.
package instrument
