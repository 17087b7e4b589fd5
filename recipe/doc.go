// Package recipe compiles declarative pipeline documents into gen
// operators.
//
// A Recipe names a source, a list of stages and a terminal:
//
//	name: squares-of-evens
//	source: {kind: range, start: 1, end: 6, step: 1}
//	stages:
//	  - name: even
//	  - name: square
//	terminal: sum
//
// Stage names resolve through a Registry of callables stored as values of
// type any. Each callable is classified once, when registered, by its
// signature: func(int) bool filters, func(int) int maps and func(int)
// observes. Build wires the whole pipeline without traversing it and
// rejects a completing terminal on an unbounded source before any element
// is produced.
package recipe
