package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Composition errors
const (
	// ErrCodeInfiniteSequence indicates a completing terminal was applied to an infinite sequence.
	ErrCodeInfiniteSequence ErrorCode = "INFINITE_SEQUENCE"
	// ErrCodeIncompatibleHandler indicates a handler matches no traversal contract.
	ErrCodeIncompatibleHandler ErrorCode = "INCOMPATIBLE_HANDLER"
	// ErrCodeEmptySequence indicates a terminal needed at least one element.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// compositionCodes are raised while a pipeline is being assembled, before
// any element has been produced.
var compositionCodes = map[ErrorCode]bool{
	ErrCodeInfiniteSequence:    true,
	ErrCodeIncompatibleHandler: true,
}

// IsCompositionCode reports whether code is raised at pipeline construction time.
func IsCompositionCode(code ErrorCode) bool {
	return compositionCodes[code]
}
