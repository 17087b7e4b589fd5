package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
)

// AppError is a coded error. Errors compare equal under errors.Is when
// their codes match, so New(code, "") works as a sentinel for a whole class.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *AppError) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *AppError) Unwrap() error { return e.Cause }

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t != nil && t.Code == e.Code
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details into the error.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

// WithDetail sets one detail.
func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

// New creates an AppError without details.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// InfiniteSequence rejects a terminal that could only finish on a finite
// source.
func InfiniteSequence(operation string) *AppError {
	return Newf(ErrCodeInfiniteSequence, "%s requires a finite sequence", operation).
		WithDetail("operation", operation)
}

// IncompatibleHandler rejects a handler whose type is none of accepted.
func IncompatibleHandler(got string, accepted ...string) *AppError {
	return Newf(ErrCodeIncompatibleHandler, "handler of type %s matches none of %v", got, accepted).
		WithDetails(map[string]any{"type": got, "accepted": accepted})
}

// EmptySequence reports a terminal that needed at least one element.
func EmptySequence(operation string) *AppError {
	return Newf(ErrCodeEmptySequence, "%s found no elements", operation).
		WithDetail("operation", operation)
}

// NotFound reports a missing named resource. id may be empty.
func NotFound(resource, id string) *AppError {
	err := Newf(ErrCodeNotFound, "%s not found", resource).WithDetail("resource", resource)
	if id != "" {
		err.Message = fmt.Sprintf("%s %q not found", resource, id)
		err.Details["id"] = id
	}
	return err
}

// AlreadyExists reports a duplicate resource.
func AlreadyExists(resource string) *AppError {
	return Newf(ErrCodeAlreadyExists, "%s already exists", resource).WithDetail("resource", resource)
}

// InvalidInput reports a field whose value was rejected.
func InvalidInput(field, reason string) *AppError {
	err := New(ErrCodeInvalidInput, reason)
	if field != "" {
		err.Message = field + ": " + reason
		err.WithDetail("field", field)
	}
	return err
}

// Validation reports one or more failed checks summarized in message.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// MissingField reports a required field left empty.
func MissingField(field string) *AppError {
	return Newf(ErrCodeMissingField, "%s is required", field).WithDetail("field", field)
}

// InvalidFormat reports a field that does not parse as expected.
func InvalidFormat(field, expected string) *AppError {
	return Newf(ErrCodeInvalidFormat, "%s must be %s", field, expected).
		WithDetails(map[string]any{"field": field, "expected_format": expected})
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "internal error").WithCause(cause)
}

// IsAppError reports whether err's chain holds an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	return stderrors.Is(err, New(code, ""))
}
