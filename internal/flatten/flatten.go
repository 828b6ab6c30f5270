package flatten

import (
	"fmt"

	"github.com/eugenenazirov/json-properties/internal/document"
)

// frame is one level of the traversal: the entries still to visit under base.
type frame struct {
	base    string
	entries []document.Entry
	next    int
}

// Flatten converts doc into a FlatMap keyed by dot-joined paths. A non-empty
// prefix is prepended to every key with a single "." separator. Entries are
// visited depth first in document order, so on key collisions the entry
// visited last wins. A nil document is treated as empty.
func Flatten(prefix string, doc *document.Document, opts ...Option) (FlatMap, error) {
	cfg := options{maxDepth: document.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	base := prefix
	if base != "" {
		base += "."
	}

	result := make(FlatMap, doc.Len())
	stack := []frame{{base: base, entries: doc.Entries()}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		key := top.base + entry.Key
		switch v := entry.Value; v.Kind() {
		case document.KindDocument:
			if len(stack) >= cfg.maxDepth {
				return nil, fmt.Errorf("%w: %q exceeds %d levels", ErrMaxDepthExceeded, key, cfg.maxDepth)
			}
			stack = append(stack, frame{base: key + ".", entries: v.Document().Entries()})
		case document.KindNull, document.KindString, document.KindNumber, document.KindBool, document.KindList:
			result[key] = v.Text()
		default:
			return nil, fmt.Errorf("%w: %v at %q", ErrUnknownKind, v.Kind(), key)
		}
	}

	return result, nil
}
