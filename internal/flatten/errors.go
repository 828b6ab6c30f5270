package flatten

import (
	"errors"

	"github.com/eugenenazirov/json-properties/internal/document"
)

var (
	// ErrMaxDepthExceeded is returned when the document nests deeper than the
	// configured limit. It is a parse error: it matches document.ErrParse.
	ErrMaxDepthExceeded = document.ErrMaxDepth
	// ErrUnknownKind is returned for a value variant the flattener does not handle.
	ErrUnknownKind = errors.New("unknown value kind")
)
