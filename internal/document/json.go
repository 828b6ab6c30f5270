package document

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// DefaultMaxDepth bounds document nesting when callers pass a non-positive limit.
const DefaultMaxDepth = 64

// ParseJSON parses a JSON object into a Document, keeping keys in the order
// they appear in the input. A literal null root yields an empty Document.
// Arrays are kept as opaque List scalars holding their compact JSON text.
func ParseJSON(data []byte, maxDepth int) (*Document, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformed
	}

	root := gjson.ParseBytes(data)
	switch {
	case root.Type == gjson.Null:
		return New(), nil
	case !root.IsObject():
		return nil, fmt.Errorf("%w: found %s", ErrNotObject, jsonKind(root))
	}

	return jsonObject(root, "", 1, maxDepth)
}

func jsonObject(obj gjson.Result, path string, depth, maxDepth int) (*Document, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: %q exceeds %d levels", ErrMaxDepth, path, maxDepth)
	}

	doc := New()
	var err error
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		var v Value
		v, err = jsonValue(value, joinPath(path, name), depth, maxDepth)
		if err != nil {
			return false
		}
		doc.Append(name, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func jsonValue(value gjson.Result, path string, depth, maxDepth int) (Value, error) {
	switch {
	case value.IsObject():
		nested, err := jsonObject(value, path, depth+1, maxDepth)
		if err != nil {
			return Value{}, err
		}
		return Nested(nested), nil
	case value.IsArray():
		return List(string(pretty.Ugly([]byte(value.Raw)))), nil
	}

	switch value.Type {
	case gjson.Null:
		return Null(), nil
	case gjson.True:
		return Bool(true), nil
	case gjson.False:
		return Bool(false), nil
	case gjson.Number:
		return Number(value.Raw), nil
	case gjson.String:
		return String(value.String()), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported value at %q", ErrMalformed, path)
	}
}

func jsonKind(r gjson.Result) string {
	if r.IsArray() {
		return "array"
	}
	return r.Type.String()
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
