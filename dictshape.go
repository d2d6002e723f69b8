package dictshape

import (
	"github.com/aretw0/dictshape/pkg/merge"
	"github.com/aretw0/dictshape/pkg/schema"
)

// Version is the release version. Release builds override it with
// -ldflags "-X github.com/aretw0/dictshape.Version=...".
var Version = "0.1.0"

type (
	// Template describes the keys and value types a record must have.
	Template = schema.Template
	// Record is an ordered nested key-value structure.
	Record = schema.Record
	// ValidationError is the first divergence between a record and a template.
	ValidationError = schema.ValidationError
	// Counts is an ordered key-to-number mapping.
	Counts = merge.Counts[float64]
)

// Validate checks data against tmpl. It returns (true, "") on success, or
// false with "mismatched keys: <path>" or "bad type: <path>".
func Validate(data *Record, tmpl *Template) (bool, string) {
	return schema.Validate(data, tmpl)
}

// Check returns nil or the *ValidationError that Validate would describe.
func Check(data *Record, tmpl *Template) error {
	return schema.Check(data, tmpl)
}

// MergeOrdered sums inputs per key, ordered by descending total. Equal totals
// keep the order in which keys first appeared.
func MergeOrdered(inputs ...*Counts) *Counts {
	return merge.MergeOrdered(inputs...)
}

// MergeCounting sums inputs per key, ordered by descending total. Equal totals
// are ordered by when each key last changed, earliest first.
func MergeCounting(inputs ...*Counts) *Counts {
	return merge.MergeCounting(inputs...)
}
