package gen

import "github.com/kbukum/xgen/errors"

// Sentinels for errors.Is; returned errors carry details on top of these codes.
var (
	// ErrInfiniteSequence is returned when a completing terminal meets an infinite sequence.
	ErrInfiniteSequence = errors.New(errors.ErrCodeInfiniteSequence, "sequence is infinite")
	// ErrIncompatibleHandler is returned when a handler is neither func(T) nor func(T) bool.
	ErrIncompatibleHandler = errors.New(errors.ErrCodeIncompatibleHandler, "handler signature not supported")
	// ErrEmptySequence is returned by terminals that need at least one element.
	ErrEmptySequence = errors.New(errors.ErrCodeEmptySequence, "sequence is empty")
)
