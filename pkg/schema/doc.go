// Package schema checks nested records against templates that declare the
// expected keys and value types.
//
// A Template is an ordered mapping whose entries are either a leaf Kind
// (int, float, string, bool) or a nested Template. A Record is the data side:
// an ordered mapping of primitive values and nested records.
//
// Basic usage:
//
//	tmpl := schema.NewTemplate().
//	    Leaf("id", schema.KindInt).
//	    Node("name", schema.NewTemplate().
//	        Leaf("first", schema.KindString).
//	        Leaf("last", schema.KindString))
//
//	rec := schema.NewRecord().
//	    Set("id", 1).
//	    Set("name", schema.NewRecord().Set("first", "A"))
//
//	ok, msg := schema.Validate(rec, tmpl)
//	// ok == false, msg == "mismatched keys: name.last"
//
// Validation reports exactly one divergence, the first met while walking the
// template in declaration order. At every level, key sets are compared
// before values: a key the template declares but the record lacks wins over a
// key the record carries but the template lacks, and both win over type
// errors. A value whose shape is wrong (a primitive where a nested record is
// declared, or nil anywhere) is a "bad type".
//
// Templates and records can be read from YAML or JSON with key order kept:
//
//	tmpl, err := schema.ParseTemplateYAML([]byte("id: int\nname:\n  first: str\n"))
//
// Check returns the same outcome as an error (*ValidationError), which
// matches ErrMismatchedKeys or ErrBadType under errors.Is.
package schema
