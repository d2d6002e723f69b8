/*
Package dictshape checks nested key-value records against templates and merges
numeric maps.

# Validation

A template lists the keys a record must have and, for each key, either a leaf
type (int, float, str, bool) or a nested template. Validation walks the record
and the template together and stops at the first divergence:

  - "mismatched keys: <path>" when a level's key sets differ. Missing keys are
    reported before extra keys.
  - "bad type: <path>" when a value has the wrong type, or a nested record is
    expected and something else is found.

Paths are dot-joined keys from the root, such as "name.first". Template
declaration order decides which divergence is reported first.

	tmpl := schema.NewTemplate().
		Leaf("user_id", schema.KindInt).
		Node("name", schema.NewTemplate().
			Leaf("first", schema.KindString).
			Leaf("last", schema.KindString))

	rec := schema.NewRecord().
		Set("user_id", 1).
		Set("name", schema.NewRecord().Set("first", "Ada").Set("last", 7))

	ok, msg := dictshape.Validate(rec, tmpl) // false, "bad type: name.last"

# Merging

MergeOrdered and MergeCounting sum any number of key-to-number maps and return
the totals ordered from highest to lowest. They differ only in how equal totals
are ordered.

Templates, records and counts can be read from YAML or JSON with the parsers in
pkg/schema and pkg/merge. The dictshape command wraps both operations for files.
*/
package dictshape
