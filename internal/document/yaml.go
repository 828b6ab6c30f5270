package document

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML mapping into a Document, keeping keys in source
// order. Empty input and a null root yield an empty Document. Sequences are
// kept as List scalars holding their compact JSON text so both formats render
// arrays identically.
func ParseYAML(data []byte, maxDepth int) (*Document, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return New(), nil
		}
		node = node.Content[0]
	}
	node = dealias(node)

	switch {
	case node.Kind == 0:
		return New(), nil
	case node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null":
		return New(), nil
	case node.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w: found %s", ErrNotObject, yamlKind(node))
	}

	p := &yamlParser{maxDepth: maxDepth, budget: maxYAMLNodes}
	return p.mapping(node, "", 1)
}

// maxYAMLNodes bounds how many nodes a document may expand to once aliases
// are followed.
const maxYAMLNodes = 100_000

type yamlParser struct {
	maxDepth int
	budget   int
}

func (p *yamlParser) visit(path string) error {
	p.budget--
	if p.budget < 0 {
		return fmt.Errorf("%w: %q expands past %d nodes", ErrTooLarge, path, maxYAMLNodes)
	}
	return nil
}

// mapping converts a mapping node. Entries pulled in through "<<" merge keys
// come first and never override keys the mapping sets itself.
func (p *yamlParser) mapping(node *yaml.Node, path string, depth int) (*Document, error) {
	if depth > p.maxDepth {
		return nil, fmt.Errorf("%w: %q exceeds %d levels", ErrMaxDepth, path, p.maxDepth)
	}

	explicit := make(map[string]struct{})
	var merges []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := dealias(node.Content[i])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: non-scalar key in %q", ErrMalformed, path)
		}
		if key.ShortTag() == "!!merge" {
			merges = append(merges, dealias(node.Content[i+1]))
			continue
		}
		explicit[key.Value] = struct{}{}
	}

	doc := New()
	if len(merges) > 0 {
		merged, err := p.merge(merges, path, depth)
		if err != nil {
			return nil, err
		}
		for _, e := range merged.Entries() {
			if _, ok := explicit[e.Key]; !ok {
				doc.Append(e.Key, e.Value)
			}
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], dealias(node.Content[i+1])
		if dealias(key).ShortTag() == "!!merge" {
			continue
		}

		name := dealias(key).Value
		v, err := p.value(value, joinPath(path, name), depth)
		if err != nil {
			return nil, err
		}
		doc.Append(name, v)
	}
	return doc, nil
}

// merge collects the entries of the "<<" sources. When several mappings are
// merged the first one holding a key wins.
func (p *yamlParser) merge(sources []*yaml.Node, path string, depth int) (*Document, error) {
	var mappings []*yaml.Node
	for _, src := range sources {
		switch src.Kind {
		case yaml.MappingNode:
			mappings = append(mappings, src)
		case yaml.SequenceNode:
			for _, item := range src.Content {
				item = dealias(item)
				if item.Kind != yaml.MappingNode {
					return nil, fmt.Errorf("%w: merge at %q expects mappings", ErrMalformed, path)
				}
				mappings = append(mappings, item)
			}
		default:
			return nil, fmt.Errorf("%w: merge at %q expects a mapping", ErrMalformed, path)
		}
	}

	out := New()
	seen := make(map[string]struct{})
	for _, m := range mappings {
		part, err := p.mapping(m, path, depth)
		if err != nil {
			return nil, err
		}
		for _, e := range part.Entries() {
			if _, dup := seen[e.Key]; dup {
				continue
			}
			seen[e.Key] = struct{}{}
			out.Append(e.Key, e.Value)
		}
	}
	return out, nil
}

func (p *yamlParser) value(node *yaml.Node, path string, depth int) (Value, error) {
	if err := p.visit(path); err != nil {
		return Value{}, err
	}

	switch node.Kind {
	case yaml.MappingNode:
		nested, err := p.mapping(node, path, depth+1)
		if err != nil {
			return Value{}, err
		}
		return Nested(nested), nil
	case yaml.SequenceNode:
		var items []any
		if err := node.Decode(&items); err != nil {
			return Value{}, fmt.Errorf("%w: sequence at %q: %v", ErrMalformed, path, err)
		}
		text, err := json.Marshal(items)
		if err != nil {
			return Value{}, fmt.Errorf("%w: sequence at %q: %v", ErrMalformed, path, err)
		}
		return List(string(text)), nil
	case yaml.ScalarNode:
		return yamlScalar(node, path)
	default:
		return Value{}, fmt.Errorf("%w: unsupported node at %q", ErrMalformed, path)
	}
}

func yamlScalar(node *yaml.Node, path string) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("%w: bool at %q: %v", ErrMalformed, path, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		return Number(node.Value), nil
	default:
		return String(node.Value), nil
	}
}

func dealias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func yamlKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "unknown"
	}
}
