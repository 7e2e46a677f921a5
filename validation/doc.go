// Package validation provides input validation for registry descriptors and
// configuration.
//
// It supports struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as
// *errors.AppError with code INVALID_ARGUMENT.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    Selections map[string]string `validate:"dive,keys,required,endkeys,required"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().Required("name", name).Validate()
package validation
