package flatten

import "sort"

// FlatMap maps dotted key paths to the string form of leaf values.
type FlatMap map[string]string

// Keys returns the keys in lexical order.
func (m FlatMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Option configures Flatten.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth limits how many document levels may be nested, the root
// counting as one. Non-positive values keep the default.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}
