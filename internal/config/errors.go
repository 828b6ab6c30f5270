package config

import "errors"

// ErrInvalidConfig is returned when the resolved settings fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")
