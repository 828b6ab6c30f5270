package environment

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/eugenenazirov/json-properties/internal/propsource"
)

const maxPlaceholderDepth = 32

// Property is a resolved property value with the source it came from.
type Property struct {
	Key    string
	Value  string
	Source string
	Origin string
}

// Environment is an ordered list of property sources. Lookups return the
// value from the first source that contains the key.
type Environment struct {
	mu      sync.RWMutex
	sources []*propsource.PropertySource
}

// New creates an empty Environment.
func New() *Environment {
	return &Environment{}
}

// AddLast appends sources after all registered ones, giving them the lowest precedence.
func (e *Environment) AddLast(sources ...*propsource.PropertySource) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, src := range sources {
		if src != nil {
			e.sources = append(e.sources, src)
		}
	}
}

// Sources returns a copy of the registered sources in precedence order.
func (e *Environment) Sources() []*propsource.PropertySource {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*propsource.PropertySource, len(e.sources))
	copy(out, e.sources)
	return out
}

// Property returns the highest-precedence value for key.
func (e *Environment) Property(key string) (Property, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.lookup(key)
}

func (e *Environment) lookup(key string) (Property, error) {
	for _, src := range e.sources {
		if v, ok := src.Get(key); ok {
			return Property{Key: key, Value: v, Source: src.Name(), Origin: src.Origin()}, nil
		}
	}
	return Property{}, fmt.Errorf("%w: %q", ErrPropertyNotFound, key)
}

// Keys returns the union of keys across all sources in lexical order.
func (e *Environment) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.keys()
}

func (e *Environment) keys() []string {
	seen := make(map[string]struct{})
	for _, src := range e.sources {
		for _, k := range src.Keys() {
			seen[k] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Properties returns the effective value of every key in lexical key order.
func (e *Environment) Properties() []Property {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := e.keys()
	out := make([]Property, 0, len(keys))
	for _, k := range keys {
		p, err := e.lookup(k)
		if err == nil {
			out = append(out, p)
		}
	}
	return out
}

// Resolve replaces ${key} and ${key:default} placeholders in text with
// property values. Placeholders inside resolved values and defaults are
// resolved too, so ${a:${b}} falls back to the value of b.
func (e *Environment) Resolve(text string) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.resolve(text, nil)
}

func (e *Environment) resolve(text string, visiting []string) (string, error) {
	if len(visiting) > maxPlaceholderDepth {
		return "", fmt.Errorf("%w: nesting deeper than %d", ErrCircularPlaceholder, maxPlaceholderDepth)
	}

	var sb strings.Builder
	rest := text
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			sb.WriteString(rest)
			return sb.String(), nil
		}
		end := closingBrace(rest, start+2)
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated placeholder in %q", ErrUnresolvablePlaceholder, text)
		}

		sb.WriteString(rest[:start])
		expr := rest[start+2 : end]
		rest = rest[end+1:]

		key, fallback, hasDefault := strings.Cut(expr, ":")
		if slices.Contains(visiting, key) {
			return "", fmt.Errorf("%w: %s -> %s", ErrCircularPlaceholder, strings.Join(visiting, " -> "), key)
		}

		p, err := e.lookup(key)
		if err != nil {
			if !hasDefault {
				return "", fmt.Errorf("%w: ${%s}", ErrUnresolvablePlaceholder, key)
			}
			value, err := e.resolve(fallback, visiting)
			if err != nil {
				return "", err
			}
			sb.WriteString(value)
			continue
		}

		value, err := e.resolve(p.Value, append(visiting, key))
		if err != nil {
			return "", err
		}
		sb.WriteString(value)
	}
}

// closingBrace returns the index of the "}" closing the placeholder whose body
// starts at from, skipping over nested placeholders, or -1.
func closingBrace(s string, from int) int {
	depth := 0
	for i := from; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], "${"):
			depth++
			i++
		case s[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
