package environment

import "errors"

var (
	// ErrPropertyNotFound is returned when no source contains the requested key.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrUnresolvablePlaceholder is returned when a placeholder names a missing
	// property and carries no default.
	ErrUnresolvablePlaceholder = errors.New("unresolvable placeholder")
	// ErrCircularPlaceholder is returned when placeholders reference each other in a cycle.
	ErrCircularPlaceholder = errors.New("circular placeholder reference")
)
