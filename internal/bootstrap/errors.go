package bootstrap

import "errors"

var (
	// ErrNoLoaders is returned when no property source loader is registered.
	ErrNoLoaders = errors.New("no property source loaders registered")
	// ErrUnsupportedExtension is returned when no registered loader handles a file location.
	ErrUnsupportedExtension = errors.New("unsupported config file extension")
)
