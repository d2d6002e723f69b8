package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field is a template entry: either a leaf type or a nested template.
type Field struct {
	kind Kind
	sub  *Template
}

// Leaf declares a value of kind k.
func Leaf(k Kind) Field { return Field{kind: k} }

// Node declares a nested record described by sub. A nil sub is an empty template.
func Node(sub *Template) Field {
	if sub == nil {
		sub = NewTemplate()
	}
	return Field{kind: KindRecord, sub: sub}
}

// IsNode reports whether the field is a nested template.
func (f Field) IsNode() bool { return f.sub != nil }

// Kind returns the declared kind (KindRecord for nested templates).
func (f Field) Kind() Kind { return f.kind }

// Template returns the nested template, or nil for leaves.
func (f Field) Template() *Template { return f.sub }

// Template is an ordered mapping from key to Field. Declaration order drives
// traversal and therefore which divergence gets reported first.
//
// The zero value is an empty template ready to use.
type Template struct {
	fields *orderedmap.OrderedMap[string, Field]
}

// NewTemplate returns an empty template.
func NewTemplate() *Template {
	return &Template{fields: orderedmap.New[string, Field]()}
}

func (t *Template) init() {
	if t.fields == nil {
		t.fields = orderedmap.New[string, Field]()
	}
}

// Set declares key. Redeclaring a key replaces its field but keeps its position.
func (t *Template) Set(key string, f Field) *Template {
	t.init()
	t.fields.Set(key, f)
	return t
}

// Leaf declares key as a leaf of kind k.
func (t *Template) Leaf(key string, k Kind) *Template {
	return t.Set(key, Leaf(k))
}

// Node declares key as a nested template.
func (t *Template) Node(key string, sub *Template) *Template {
	return t.Set(key, Node(sub))
}

// Get returns the field declared for key.
func (t *Template) Get(key string) (Field, bool) {
	if t == nil || t.fields == nil {
		return Field{}, false
	}
	return t.fields.Get(key)
}

// Has reports whether key is declared.
func (t *Template) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Len returns the number of declared keys.
func (t *Template) Len() int {
	if t == nil || t.fields == nil {
		return 0
	}
	return t.fields.Len()
}

// Keys returns the declared keys in declaration order.
func (t *Template) Keys() []string {
	keys := make([]string, 0, t.Len())
	t.each(func(key string, _ Field) {
		keys = append(keys, key)
	})
	return keys
}

// Depth returns the nesting depth; a flat template has depth 1.
func (t *Template) Depth() int {
	deepest := 0
	t.each(func(_ string, f Field) {
		if f.IsNode() {
			if d := f.sub.Depth(); d > deepest {
				deepest = d
			}
		}
	})
	return deepest + 1
}

func (t *Template) each(fn func(key string, f Field)) {
	if t == nil || t.fields == nil {
		return
	}
	for pair := t.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}
