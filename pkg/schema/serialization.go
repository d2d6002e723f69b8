package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/dictshape/internal/ordered"
	"gopkg.in/yaml.v3"
)

// ParseTemplateYAML parses a template document such as:
//
//	user_id: int
//	name:
//	  first: str
//	  last: str
func ParseTemplateYAML(data []byte) (*Template, error) {
	m, err := ordered.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTemplate, err)
	}
	return templateFromMap(m, "")
}

// ParseTemplateJSON parses the JSON form of a template, keeping key order.
func ParseTemplateJSON(data []byte) (*Template, error) {
	m, err := ordered.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTemplate, err)
	}
	return templateFromMap(m, "")
}

func templateFromMap(m *ordered.Map, path string) (*Template, error) {
	t := NewTemplate()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		here := joinPath(path, pair.Key)
		switch v := pair.Value.(type) {
		case *ordered.Map:
			sub, err := templateFromMap(v, here)
			if err != nil {
				return nil, err
			}
			t.Node(pair.Key, sub)
		case string:
			k, err := ParseKind(v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", here, err)
			}
			t.Leaf(pair.Key, k)
		default:
			return nil, fmt.Errorf("%w: field %s: expected type name or mapping, got %T", ErrMalformedTemplate, here, pair.Value)
		}
	}
	return t, nil
}

// UnmarshalYAML decodes a template, keeping document key order.
func (t *Template) UnmarshalYAML(node *yaml.Node) error {
	m, err := ordered.FromNode(node)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedTemplate, err)
	}
	parsed, err := templateFromMap(m, "")
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// UnmarshalJSON decodes a template, keeping document key order.
func (t *Template) UnmarshalJSON(data []byte) error {
	if t == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	if string(bytes.TrimSpace(data)) == "null" {
		*t = Template{}
		return nil
	}
	parsed, err := ParseTemplateJSON(data)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// MarshalJSON writes the template as an object of type names, in order.
func (t *Template) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	t.each(func(key string, f Field) {
		if err != nil {
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		err = writeJSONMember(&buf, key, fieldValue(f))
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the template as a mapping of type names, in order.
func (t *Template) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	var err error
	t.each(func(key string, f Field) {
		if err != nil {
			return
		}
		err = appendYAMLMember(node, key, fieldValue(f))
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

func fieldValue(f Field) any {
	if f.IsNode() {
		return f.sub
	}
	return f.kind.String()
}

// ParseRecordYAML parses a data record, keeping document key order.
func ParseRecordYAML(data []byte) (*Record, error) {
	m, err := ordered.FromYAML(data)
	if err != nil {
		return nil, err
	}
	return recordFromMap(m), nil
}

// ParseRecordJSON parses a data record, keeping document key order.
func ParseRecordJSON(data []byte) (*Record, error) {
	m, err := ordered.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return recordFromMap(m), nil
}

func recordFromMap(m *ordered.Map) *Record {
	r := NewRecord()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		r.Set(pair.Key, recordValue(pair.Value))
	}
	return r
}

func recordValue(v any) any {
	switch x := v.(type) {
	case *ordered.Map:
		return recordFromMap(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = recordValue(item)
		}
		return out
	}
	return v
}

// UnmarshalYAML decodes a record, keeping document key order.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	m, err := ordered.FromNode(node)
	if err != nil {
		return err
	}
	*r = *recordFromMap(m)
	return nil
}

// UnmarshalJSON decodes a record, keeping document key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	if r == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	if string(bytes.TrimSpace(data)) == "null" {
		*r = Record{}
		return nil
	}
	parsed, err := ParseRecordJSON(data)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// MarshalJSON writes the record as an object, in order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	r.each(func(key string, value any) {
		if err != nil {
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		err = writeJSONMember(&buf, key, value)
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the record as a mapping, in order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	var err error
	r.each(func(key string, value any) {
		if err != nil {
			return
		}
		err = appendYAMLMember(node, key, value)
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

func writeJSONMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func appendYAMLMember(node *yaml.Node, key string, value any) error {
	valueNode := &yaml.Node{}
	if err := valueNode.Encode(value); err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		valueNode,
	)
	return nil
}
