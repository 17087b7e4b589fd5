package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/xgen/errors"
)

// FieldError is one failed check. Field is a dotted path such as
// "source.step" or "stages.2.name".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors for checks that struct tags cannot
// express, typically rules that depend on another field.
type Validator struct {
	prefix string
	sink   *[]FieldError
}

// New returns an empty validator.
func New() *Validator {
	return &Validator{sink: new([]FieldError)}
}

// Nested returns a validator that prefixes field names with path and
// records its errors on v.
func (v *Validator) Nested(path string) *Validator {
	return &Validator{prefix: v.path(path), sink: v.sink}
}

// Merge copies the errors collected by other, keeping their paths.
func (v *Validator) Merge(other *Validator) *Validator {
	*v.sink = append(*v.sink, other.Errors()...)
	return v
}

func (v *Validator) path(name string) string {
	if v.prefix == "" {
		return name
	}
	return v.prefix + "." + name
}

// AddError records message against field.
func (v *Validator) AddError(field, message string) {
	*v.sink = append(*v.sink, FieldError{Field: v.path(field), Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(*v.sink) > 0 }

// Errors returns the failed checks in the order they were recorded.
func (v *Validator) Errors() []FieldError { return *v.sink }

// Validate summarizes the failed checks as an INVALID_INPUT error whose
// "fields" detail holds the FieldErrors. It returns nil when all passed.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return fieldsError(*v.sink)
}

// Error is Validate as a plain error, so a clean validator yields an
// untyped nil.
func (v *Validator) Error() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func fieldsError(fields []FieldError) *errors.AppError {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", fields)
}

func (v *Validator) check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Required fails on empty or blank strings.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) != "", field, "is required")
}

// Positive fails unless value > 0.
func (v *Validator) Positive(field string, value int) *Validator {
	return v.check(value > 0, field, "must be greater than 0")
}

// NonZero fails on 0.
func (v *Validator) NonZero(field string, value int) *Validator {
	return v.check(value != 0, field, "must not be 0")
}

// Min fails unless value >= minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	return v.check(value >= minVal, field, fmt.Sprintf("must be at least %d", minVal))
}

// OneOf fails when a non-empty value is not in allowed. Emptiness is left
// to Required.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	return v.check(value == "" || slices.Contains(allowed, value), field,
		"must be one of: "+strings.Join(allowed, ", "))
}

// Custom fails with message when condition is false.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	return v.check(condition, field, message)
}

// Required checks a single field outside a builder.
func Required(field, value string) error {
	return New().Required(field, value).Error()
}
