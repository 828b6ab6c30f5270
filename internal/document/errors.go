package document

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is the class of all document parse failures. Every error returned
	// by ParseJSON and ParseYAML matches it with errors.Is.
	ErrParse = errors.New("parse error")
	// ErrMalformed is returned when the input is not syntactically valid.
	ErrMalformed = fmt.Errorf("%w: malformed document", ErrParse)
	// ErrNotObject is returned when the root of the input is not a key/value object.
	ErrNotObject = fmt.Errorf("%w: root is not an object", ErrParse)
	// ErrMaxDepth is returned when nesting exceeds the configured limit.
	ErrMaxDepth = fmt.Errorf("%w: maximum nesting depth exceeded", ErrParse)
	// ErrTooLarge is returned when alias expansion makes a document grow past
	// the node budget.
	ErrTooLarge = fmt.Errorf("%w: document too large", ErrParse)
)
