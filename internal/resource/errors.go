package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is the class of all resource read failures.
	ErrIO = errors.New("io error")
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = fmt.Errorf("%w: resource not found", ErrIO)
	// ErrRead is returned when a resource exists but cannot be read.
	ErrRead = fmt.Errorf("%w: resource read failed", ErrIO)
)
