package schema

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is the data side of validation: an ordered mapping from key to a
// primitive value, a list, or a nested *Record.
//
// The zero value is an empty record ready to use.
type Record struct {
	values *orderedmap.OrderedMap[string, any]
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: orderedmap.New[string, any]()}
}

// FromMap builds a record from a plain map. Plain maps carry no key order, so
// keys are inserted in lexical order. Nested map[string]any values become
// nested records.
func FromMap(m map[string]any) *Record {
	r := NewRecord()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

func fromPlain(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return FromMap(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = fromPlain(item)
		}
		return out
	}
	return v
}

// Set stores value under key. Overwriting keeps the key's position.
// A map[string]any value is stored as a nested record built by FromMap,
// and maps inside a []any value are converted the same way.
func (r *Record) Set(key string, value any) *Record {
	if r.values == nil {
		r.values = orderedmap.New[string, any]()
	}
	r.values.Set(key, fromPlain(value))
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil || r.values == nil {
		return nil, false
	}
	return r.values.Get(key)
}

// Has reports whether key is present, even with a nil value.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil || r.values == nil {
		return 0
	}
	return r.values.Len()
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	r.each(func(key string, _ any) {
		keys = append(keys, key)
	})
	return keys
}

// ToMap returns a deep copy as plain Go maps and slices.
func (r *Record) ToMap() map[string]any {
	out := make(map[string]any, r.Len())
	r.each(func(key string, value any) {
		out[key] = toPlain(value)
	})
	return out
}

func toPlain(v any) any {
	switch x := v.(type) {
	case *Record:
		if x == nil {
			return nil
		}
		return x.ToMap()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = toPlain(item)
		}
		return out
	}
	return v
}

// Decode binds the record onto out (a pointer to a struct or map) using
// "mapstructure" tags. Keys without a matching field are reported as errors.
func (r *Record) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := dec.Decode(r.ToMap()); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

func (r *Record) each(fn func(key string, value any)) {
	if r == nil || r.values == nil {
		return
	}
	for pair := r.values.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}
