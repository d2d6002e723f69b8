package merge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/aretw0/dictshape/internal/ordered"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotNumeric is returned when a counts document holds a non-numeric value.
	ErrNotNumeric = errors.New("value is not numeric")
	// ErrOutOfRange is returned when a number cannot be held exactly by the
	// counts' integer type, such as 1.5 or a negative value for uint.
	ErrOutOfRange = errors.New("value out of range")
)

// ParseYAML reads a flat mapping of key to number, keeping document order.
func ParseYAML[V Number](data []byte) (*Counts[V], error) {
	m, err := ordered.FromYAML(data)
	if err != nil {
		return nil, err
	}
	return fromOrdered[V](m)
}

// ParseJSON reads a flat object of key to number, keeping document order.
func ParseJSON[V Number](data []byte) (*Counts[V], error) {
	m, err := ordered.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return fromOrdered[V](m)
}

func fromOrdered[V Number](m *ordered.Map) (*Counts[V], error) {
	c := NewCounts[V]()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		v, err := toNumber[V](pair.Value)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", pair.Key, err)
		}
		c.Set(pair.Key, v)
	}
	return c, nil
}

func toNumber[V Number](v any) (V, error) {
	var zero V
	switch x := v.(type) {
	case int:
		return fromInt[V](int64(x))
	case int64:
		return fromInt[V](x)
	case uint64:
		out := V(x)
		if isInteger[V]() && (out < 0 || uint64(out) != x) {
			return zero, fmt.Errorf("%w: %d does not fit %T", ErrOutOfRange, x, zero)
		}
		return out, nil
	case float64:
		out := V(x)
		if isInteger[V]() && (math.Trunc(x) != x || float64(out) != x) {
			return zero, fmt.Errorf("%w: %v is not a whole %T", ErrOutOfRange, x, zero)
		}
		return out, nil
	}
	return zero, fmt.Errorf("%w: got %T", ErrNotNumeric, v)
}

func fromInt[V Number](x int64) (V, error) {
	out := V(x)
	if isInteger[V]() && ((x < 0) != (out < 0) || int64(out) != x) {
		var zero V
		return zero, fmt.Errorf("%w: %d does not fit %T", ErrOutOfRange, x, zero)
	}
	return out, nil
}

// isInteger reports whether V drops fractions.
func isInteger[V Number]() bool {
	half := 0.5
	return V(half) == 0
}

// UnmarshalYAML decodes a flat mapping, keeping document order.
func (c *Counts[V]) UnmarshalYAML(node *yaml.Node) error {
	m, err := ordered.FromNode(node)
	if err != nil {
		return err
	}
	parsed, err := fromOrdered[V](m)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// UnmarshalJSON decodes a flat object, keeping document order.
func (c *Counts[V]) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*c = Counts[V]{}
		return nil
	}
	parsed, err := ParseJSON[V](data)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// MarshalJSON writes the counts as an object in iteration order.
func (c *Counts[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Total)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", e.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the counts as a mapping in iteration order.
func (c *Counts[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range c.Entries() {
		value := &yaml.Node{}
		if err := value.Encode(e.Total); err != nil {
			return nil, fmt.Errorf("key %s: %w", e.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			value,
		)
	}
	return node, nil
}
