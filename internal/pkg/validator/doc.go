// Package validator checks usecase inputs against `validate` struct tags.
//
// V10Validator wraps go-playground/validator with English messages keyed by
// snake_case field names.
// Callers depend on the Validator interface.
package validator
