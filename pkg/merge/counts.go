package merge

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/constraints"
)

// Number is any value type that can be summed.
type Number interface {
	constraints.Integer | constraints.Float
}

// Entry is one key and its total.
type Entry[V Number] struct {
	Key   string `json:"key" yaml:"key"`
	Total V      `json:"total" yaml:"total"`
}

// Counts is an ordered mapping from key to a numeric total. Merge inputs and
// merge results are both Counts; in a result, iteration order is the
// descending-total order.
//
// The zero value is empty and ready to use.
type Counts[V Number] struct {
	totals *orderedmap.OrderedMap[string, V]
}

// NewCounts returns an empty Counts.
func NewCounts[V Number]() *Counts[V] {
	return &Counts[V]{totals: orderedmap.New[string, V]()}
}

// FromMap builds Counts from a plain map, inserting keys in lexical order.
func FromMap[V Number](m map[string]V) *Counts[V] {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := NewCounts[V]()
	for _, k := range keys {
		c.Set(k, m[k])
	}
	return c
}

// FromEntries builds Counts in the given order. A repeated key keeps its
// first position and takes the last value.
func FromEntries[V Number](entries ...Entry[V]) *Counts[V] {
	c := NewCounts[V]()
	for _, e := range entries {
		c.Set(e.Key, e.Total)
	}
	return c
}

func (c *Counts[V]) init() {
	if c.totals == nil {
		c.totals = orderedmap.New[string, V]()
	}
}

// Set stores total under key. Overwriting keeps the key's position.
func (c *Counts[V]) Set(key string, total V) *Counts[V] {
	c.init()
	c.totals.Set(key, total)
	return c
}

// Get returns the total for key.
func (c *Counts[V]) Get(key string) (V, bool) {
	if c == nil || c.totals == nil {
		var zero V
		return zero, false
	}
	return c.totals.Get(key)
}

// Len returns the number of keys.
func (c *Counts[V]) Len() int {
	if c == nil || c.totals == nil {
		return 0
	}
	return c.totals.Len()
}

// Keys returns the keys in iteration order.
func (c *Counts[V]) Keys() []string {
	keys := make([]string, 0, c.Len())
	c.each(func(key string, _ V) {
		keys = append(keys, key)
	})
	return keys
}

// Entries returns the key/total pairs in iteration order.
func (c *Counts[V]) Entries() []Entry[V] {
	entries := make([]Entry[V], 0, c.Len())
	c.each(func(key string, total V) {
		entries = append(entries, Entry[V]{Key: key, Total: total})
	})
	return entries
}

// ToMap returns the totals as a plain map.
func (c *Counts[V]) ToMap() map[string]V {
	out := make(map[string]V, c.Len())
	c.each(func(key string, total V) {
		out[key] = total
	})
	return out
}

func (c *Counts[V]) each(fn func(key string, total V)) {
	if c == nil || c.totals == nil {
		return
	}
	for pair := c.totals.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}
