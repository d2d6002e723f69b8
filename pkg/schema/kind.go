package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the closed set of value shapes the validator understands.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindRecord
	KindNull
	KindList
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindBool:    "bool",
	KindRecord:  "record",
	KindNull:    "null",
	KindList:    "list",
}

// kindAliases maps every accepted type name to its kind.
var kindAliases = map[string]Kind{
	"int":     KindInt,
	"integer": KindInt,
	"float":   KindFloat,
	"number":  KindFloat,
	"str":     KindString,
	"string":  KindString,
	"bool":    KindBool,
	"boolean": KindBool,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsLeaf reports whether k may be declared as a template leaf.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindInt, KindFloat, KindString, KindBool:
		return true
	}
	return false
}

// Accepts reports whether value's runtime kind is exactly k.
// Only leaf kinds accept anything; nil is never accepted.
func (k Kind) Accepts(value any) bool {
	return k.IsLeaf() && KindOf(value) == k
}

// KindOf classifies a runtime value.
func KindOf(value any) Kind {
	switch v := value.(type) {
	case nil:
		return KindNull
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case bool:
		return KindBool
	case *Record:
		if v == nil {
			return KindNull
		}
		return KindRecord
	case []any, []string, []int, []int64, []float64, []bool, []*Record:
		return KindList
	}
	return KindInvalid
}

// ParseKind converts a type name ("int", "str", "float", "bool" and their
// long forms) to a leaf Kind.
func ParseKind(name string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// KindNames returns every accepted type name, sorted.
func KindNames() []string {
	names := make([]string, 0, len(kindAliases))
	for name := range kindAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
