package schema

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/eugenenazirov/json-properties/internal/resource"
)

// Validator checks raw JSON configuration against a compiled JSON Schema.
type Validator struct {
	location string
	schema   *jsonschema.Schema
}

// Compile compiles a schema document registered under location.
func Compile(location string, schemaDoc []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(location, bytes.NewReader(schemaDoc)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	compiled, err := compiler.Compile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	return &Validator{location: location, schema: compiled}, nil
}

// Load reads and compiles the schema held by res.
func Load(res resource.Resource) (*Validator, error) {
	data, err := resource.ReadAll(res)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return Compile(res.Description(), data)
}

// Location returns where the schema was loaded from.
func (v *Validator) Location() string {
	return v.location
}

// Validate checks data against the schema. Numbers are compared at their full
// precision. Input that is not valid JSON is left to the document parser and
// passes validation untouched.
func (v *Validator) Validate(data []byte) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("%w: %s", ErrViolation, strings.Join(violations(validationErr), "; "))
	}
	return fmt.Errorf("%w: %v", ErrViolation, err)
}

// violations collects the leaf messages of a validation error tree.
func violations(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return []string{fmt.Sprintf("%s: %s", location, err.Message)}
	}

	var out []string
	for _, cause := range err.Causes {
		out = append(out, violations(cause)...)
	}
	return out
}
