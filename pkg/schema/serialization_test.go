package schema

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const userTemplateYAML = `
user_id: int
name:
  first: str
  last: str
bio:
  dob:
    year: int
    month: int
    day: int
  birthplace:
    country: str
    city: str
`

func TestParseTemplateYAML(t *testing.T) {
	tmpl, err := ParseTemplateYAML([]byte(userTemplateYAML))
	if err != nil {
		t.Fatalf("ParseTemplateYAML() error = %v", err)
	}

	got, _ := tmpl.MarshalJSON()
	want, _ := userTemplate().MarshalJSON()
	if string(got) != string(want) {
		t.Errorf("parsed template = %s, want %s", got, want)
	}
}

func TestParseTemplateJSON_KeepsOrder(t *testing.T) {
	tmpl, err := ParseTemplateJSON([]byte(`{"z": "int", "a": {"m": "bool", "b": "float"}}`))
	if err != nil {
		t.Fatalf("ParseTemplateJSON() error = %v", err)
	}
	if got := tmpl.Keys(); !reflect.DeepEqual(got, []string{"z", "a"}) {
		t.Errorf("Keys() = %v", got)
	}
	f, _ := tmpl.Get("a")
	if got := f.Template().Keys(); !reflect.DeepEqual(got, []string{"m", "b"}) {
		t.Errorf("nested Keys() = %v", got)
	}
}

func TestParseTemplate_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown kind", "a: decimal\n", ErrUnknownKind},
		{"sequence leaf", "a: [int]\n", ErrMalformedTemplate},
		{"null leaf", "a:\n", ErrMalformedTemplate},
		{"numeric leaf", "a: 3\n", ErrMalformedTemplate},
		{"root sequence", "- a\n", ErrMalformedTemplate},
		{"duplicate key", "a: int\na: str\n", ErrMalformedTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplateYAML([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseTemplateYAML() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseTemplateYAML_MergeKeys(t *testing.T) {
	tmpl, err := ParseTemplateYAML([]byte(`
person: &person
  first: str
  last: str
user:
  <<: *person
  last: int
`))
	if err != nil {
		t.Fatalf("ParseTemplateYAML() error = %v", err)
	}
	f, _ := tmpl.Get("user")
	user := f.Template()
	if got := user.Keys(); !reflect.DeepEqual(got, []string{"first", "last"}) {
		t.Errorf("user Keys() = %v", got)
	}
	last, _ := user.Get("last")
	if last.Kind() != KindInt {
		t.Errorf("user.last kind = %v, want %v", last.Kind(), KindInt)
	}
}

func TestParseTemplate_ErrorNamesPath(t *testing.T) {
	_, err := ParseTemplateYAML([]byte("name:\n  first: text\n"))
	if err == nil || !strings.Contains(err.Error(), "name.first") {
		t.Errorf("error = %v, want path name.first", err)
	}
}

func TestTemplate_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(userTemplate())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.HasPrefix(string(data), `{"user_id":"int","name":{"first":"string"`) {
		t.Errorf("Marshal() = %s", data)
	}

	var back Template
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	again, _ := json.Marshal(&back)
	if string(again) != string(data) {
		t.Errorf("round trip = %s, want %s", again, data)
	}
}

func TestTemplate_YAMLRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(userTemplate())
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if !strings.HasPrefix(string(out), "user_id: int\nname:\n") {
		t.Errorf("yaml.Marshal() = %s", out)
	}

	var back Template
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if back.Depth() != 3 || !reflect.DeepEqual(back.Keys(), []string{"user_id", "name", "bio"}) {
		t.Errorf("decoded template keys = %v depth %d", back.Keys(), back.Depth())
	}
}

func TestTemplate_UnmarshalJSONNull(t *testing.T) {
	tmpl := NewTemplate().Leaf("a", KindInt)
	if err := tmpl.UnmarshalJSON([]byte("null")); err != nil {
		t.Fatalf("UnmarshalJSON(null) error = %v", err)
	}
	if tmpl.Len() != 0 {
		t.Errorf("Len() = %d after null", tmpl.Len())
	}
}

func TestParseRecordYAML_Validates(t *testing.T) {
	tmpl, err := ParseTemplateYAML([]byte(userTemplateYAML))
	if err != nil {
		t.Fatal(err)
	}

	rec, err := ParseRecordYAML([]byte(`
user_id: 105
name: {first: Neil, last: Innes}
bio:
  dob: {year: 1944, month: 12, day: 9}
  birthplace:
    country: United Kingdom
    city: Danbury
    postcode: CM3
`))
	if err != nil {
		t.Fatalf("ParseRecordYAML() error = %v", err)
	}

	ok, msg := Validate(rec, tmpl)
	if ok || msg != "mismatched keys: bio.birthplace.postcode" {
		t.Errorf("Validate() = (%v, %q)", ok, msg)
	}
}

func TestParseRecordJSON_Types(t *testing.T) {
	rec, err := ParseRecordJSON([]byte(`{"i": 1, "f": 1.5, "s": "x", "b": false, "n": null, "l": [{"k": 1}], "r": {"k": 2}}`))
	if err != nil {
		t.Fatalf("ParseRecordJSON() error = %v", err)
	}

	wantKinds := map[string]Kind{
		"i": KindInt, "f": KindFloat, "s": KindString, "b": KindBool,
		"n": KindNull, "l": KindList, "r": KindRecord,
	}
	for key, want := range wantKinds {
		v, _ := rec.Get(key)
		if got := KindOf(v); got != want {
			t.Errorf("KindOf(%s) = %s, want %s", key, got, want)
		}
	}

	l, _ := rec.Get("l")
	if _, ok := l.([]any)[0].(*Record); !ok {
		t.Errorf("object inside list = %T, want *Record", l.([]any)[0])
	}
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	src := `{"z":1,"a":{"y":"s","b":[1,2]},"n":null}`

	var rec Record
	if err := json.Unmarshal([]byte(src), &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	out, err := json.Marshal(&rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != src {
		t.Errorf("round trip = %s, want %s", out, src)
	}
}

func TestRecord_YAMLRoundTrip(t *testing.T) {
	rec := NewRecord().Set("b", 1).Set("a", NewRecord().Set("y", "s").Set("x", true))

	out, err := yaml.Marshal(rec)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	want := "b: 1\na:\n    y: s\n    x: true\n"
	if string(out) != want {
		t.Errorf("yaml.Marshal() = %q, want %q", out, want)
	}

	var back Record
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(back.ToMap(), rec.ToMap()) || !reflect.DeepEqual(back.Keys(), rec.Keys()) {
		t.Errorf("round trip = %v", back.ToMap())
	}
}
