// Package validation checks configuration documents and recipe input.
//
// Struct tag validation uses go-playground/validator with field names taken
// from mapstructure, yaml or json tags, so messages name the keys a user
// wrote in their config file:
//
//	type Source struct {
//	    Kind string `mapstructure:"kind" validate:"required,oneof=range values"`
//	    Step int    `mapstructure:"step" validate:"ne=0"`
//	}
//	err := validation.Validate(src)
//
// The Validator builder collects programmatic checks:
//
//	v := validation.New()
//	v.Positive("size", size).OneOf("kind", kind, kinds)
//	err := v.Error()
//
// Both return *errors.AppError with code INVALID_INPUT and the offending
// fields under Details["fields"].
package validation
