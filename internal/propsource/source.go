package propsource

import (
	"maps"

	"github.com/eugenenazirov/json-properties/internal/flatten"
)

// PropertySource is a named, immutable set of flattened properties together
// with the origin they were read from.
type PropertySource struct {
	name   string
	origin string
	props  flatten.FlatMap
	keys   []string
}

// New creates a PropertySource holding a private copy of props.
func New(name, origin string, props flatten.FlatMap) *PropertySource {
	own := maps.Clone(props)
	if own == nil {
		own = flatten.FlatMap{}
	}
	return &PropertySource{
		name:   name,
		origin: origin,
		props:  own,
		keys:   own.Keys(),
	}
}

// Name returns the name the source was registered under.
func (s *PropertySource) Name() string {
	return s.name
}

// Origin describes the resource every value of this source came from.
func (s *PropertySource) Origin() string {
	return s.origin
}

// Get returns the value stored under key.
func (s *PropertySource) Get(key string) (string, bool) {
	v, ok := s.props[key]
	return v, ok
}

// Keys returns the property keys in lexical order. The slice must not be modified.
func (s *PropertySource) Keys() []string {
	return s.keys
}

// Len returns the number of properties.
func (s *PropertySource) Len() int {
	return len(s.props)
}
