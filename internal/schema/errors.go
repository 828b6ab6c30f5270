package schema

import "errors"

var (
	// ErrInvalidSchema is returned when the schema document cannot be compiled.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrViolation is returned when a configuration document does not satisfy the schema.
	ErrViolation = errors.New("schema violation")
)
