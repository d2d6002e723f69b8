// Package ordered decodes YAML and JSON documents into insertion-ordered
// mappings so that callers can rely on the key order written in the source.
package ordered

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Map is an ordered mapping whose nested mappings are also *Map values.
type Map = orderedmap.OrderedMap[string, any]

var (
	// ErrNotMapping is returned when a document (or a required node) is not a mapping.
	ErrNotMapping = errors.New("not a mapping")
	// ErrDuplicateKey is returned when a mapping declares the same key twice.
	ErrDuplicateKey = errors.New("duplicate key")
)

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return orderedmap.New[string, any]()
}

// FromYAML parses a YAML document whose root is a mapping.
func FromYAML(data []byte) (*Map, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return FromNode(&node)
}

// FromNode converts a decoded yaml.Node into an ordered map.
func FromNode(node *yaml.Node) (*Map, error) {
	node = resolve(node)
	if node == nil {
		return nil, fmt.Errorf("empty document: %w", ErrNotMapping)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %w", node.Line, ErrNotMapping)
	}
	return mappingFromNode(node)
}

func mappingFromNode(node *yaml.Node) (*Map, error) {
	explicit := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if isMergeKey(keyNode) {
			continue
		}
		if explicit[keyNode.Value] {
			return nil, fmt.Errorf("line %d: %w %q", keyNode.Line, ErrDuplicateKey, keyNode.Value)
		}
		explicit[keyNode.Value] = true
	}

	m := NewMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if isMergeKey(keyNode) {
			if err := mergeInto(m, node.Content[i+1], explicit); err != nil {
				return nil, err
			}
			continue
		}
		value, err := valueFromNode(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		m.Set(keyNode.Value, value)
	}
	return m, nil
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!merge"
}

// mergeInto splices the pairs of a "<<" value into m at the current position.
// The value is a mapping or a sequence of mappings, usually aliases. Keys set
// explicitly in the target mapping win, and earlier sources win over later ones.
func mergeInto(m *Map, value *yaml.Node, explicit map[string]bool) error {
	value = resolve(value)
	if value == nil {
		return fmt.Errorf("merge key: %w", ErrNotMapping)
	}

	var sources []*yaml.Node
	switch value.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{value}
	case yaml.SequenceNode:
		for _, child := range value.Content {
			src := resolve(child)
			if src == nil || src.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: merge key: %w", child.Line, ErrNotMapping)
			}
			sources = append(sources, src)
		}
	default:
		return fmt.Errorf("line %d: merge key: %w", value.Line, ErrNotMapping)
	}

	merged := make(map[string]bool)
	for _, src := range sources {
		sm, err := mappingFromNode(src)
		if err != nil {
			return err
		}
		for pair := sm.Oldest(); pair != nil; pair = pair.Next() {
			if explicit[pair.Key] || merged[pair.Key] {
				continue
			}
			merged[pair.Key] = true
			m.Set(pair.Key, pair.Value)
		}
	}
	return nil
}

func valueFromNode(node *yaml.Node) (any, error) {
	node = resolve(node)
	switch node.Kind {
	case yaml.MappingNode:
		return mappingFromNode(node)
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := valueFromNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	}
}

// resolve unwraps document and alias nodes.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

// FromJSON parses a JSON document whose root is an object.
// Whole numbers decode to int (int64 when int is narrower), others to float64.
func FromJSON(data []byte) (*Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("json root: %w", ErrNotMapping)
	}
	m, err := objectFromJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse json: trailing data after root object")
	}
	return m, nil
}

// objectFromJSON reads members until the closing brace. The opening brace
// has already been consumed.
func objectFromJSON(dec *json.Decoder) (*Map, error) {
	m := NewMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parse json: unexpected object key %v", tok)
		}
		if _, exists := m.Get(key); exists {
			return nil, fmt.Errorf("%w %q", ErrDuplicateKey, key)
		}
		value, err := valueFromJSON(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return m, nil
}

func valueFromJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return objectFromJSON(dec)
		case '[':
			items := []any{}
			for dec.More() {
				item, err := valueFromJSON(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("parse json: %w", err)
			}
			return items, nil
		default:
			return nil, fmt.Errorf("parse json: unexpected delimiter %q", v)
		}
	case json.Number:
		return number(v)
	default:
		// string, bool or nil
		return v, nil
	}
}

func number(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		if i >= math.MinInt && i <= math.MaxInt {
			return int(i), nil
		}
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("parse json: number %s: %w", n, err)
	}
	return f, nil
}
