package schema

import (
	"errors"
	"testing"
)

// userTemplate mirrors a user profile with two levels of nesting under bio.
func userTemplate() *Template {
	return NewTemplate().
		Leaf("user_id", KindInt).
		Node("name", NewTemplate().
			Leaf("first", KindString).
			Leaf("last", KindString)).
		Node("bio", NewTemplate().
			Node("dob", NewTemplate().
				Leaf("year", KindInt).
				Leaf("month", KindInt).
				Leaf("day", KindInt)).
			Node("birthplace", NewTemplate().
				Leaf("country", KindString).
				Leaf("city", KindString)))
}

type userFields struct {
	id      any
	first   any
	last    any
	year    any
	month   any
	day     any
	country any
	city    any
}

func (u userFields) record() *Record {
	return NewRecord().
		Set("user_id", u.id).
		Set("name", NewRecord().
			Set("first", u.first).
			Set("last", u.last)).
		Set("bio", NewRecord().
			Set("dob", NewRecord().
				Set("year", u.year).
				Set("month", u.month).
				Set("day", u.day)).
			Set("birthplace", NewRecord().
				Set("country", u.country).
				Set("city", u.city)))
}

func validUser() userFields {
	return userFields{
		id: 100, first: "John", last: "Cleese",
		year: 1939, month: 11, day: 27,
		country: "United Kingdom", city: "Weston-super-Mare",
	}
}

func child(t *testing.T, r *Record, keys ...string) *Record {
	t.Helper()
	for _, k := range keys {
		v, ok := r.Get(k)
		if !ok {
			t.Fatalf("record has no key %q", k)
		}
		r = v.(*Record)
	}
	return r
}

func TestValidate_UserProfiles(t *testing.T) {
	tests := []struct {
		name    string
		build   func(t *testing.T) *Record
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "valid record",
			build:  func(t *testing.T) *Record { return validUser().record() },
			wantOK: true,
		},
		{
			name: "missing nested key",
			build: func(t *testing.T) *Record {
				r := validUser().record()
				bp := child(t, r, "bio", "birthplace")
				*bp = *NewRecord().Set("country", "United Kingdom")
				return r
			},
			wantMsg: "mismatched keys: bio.birthplace.city",
		},
		{
			name: "bad type deep",
			build: func(t *testing.T) *Record {
				u := validUser()
				u.month = "May"
				return u.record()
			},
			wantMsg: "bad type: bio.dob.month",
		},
		{
			name: "extra key in name",
			build: func(t *testing.T) *Record {
				r := validUser().record()
				child(t, r, "name").Set("middle", "Arthur")
				return r
			},
			wantMsg: "mismatched keys: name.middle",
		},
		{
			name: "wrong type at top level",
			build: func(t *testing.T) *Record {
				u := validUser()
				u.id = "104"
				return u.record()
			},
			wantMsg: "bad type: user_id",
		},
		{
			name: "missing top level key",
			build: func(t *testing.T) *Record {
				full := validUser().record()
				r := NewRecord()
				for _, k := range []string{"name", "bio"} {
					v, _ := full.Get(k)
					r.Set(k, v)
				}
				return r
			},
			wantMsg: "mismatched keys: user_id",
		},
		{
			name: "additional deeply nested key",
			build: func(t *testing.T) *Record {
				r := validUser().record()
				child(t, r, "bio", "birthplace").Set("postcode", "CM3")
				return r
			},
			wantMsg: "mismatched keys: bio.birthplace.postcode",
		},
		{
			name:    "empty record",
			build:   func(t *testing.T) *Record { return NewRecord() },
			wantMsg: "mismatched keys: user_id",
		},
		{
			name: "nil value",
			build: func(t *testing.T) *Record {
				u := validUser()
				u.last = nil
				return u.record()
			},
			wantMsg: "bad type: name.last",
		},
		{
			name: "correct types but extra key",
			build: func(t *testing.T) *Record {
				r := validUser().record()
				child(t, r, "bio").Set("spouse", "John Cleese")
				return r
			},
			wantMsg: "mismatched keys: bio.spouse",
		},
		{
			name: "list where string expected",
			build: func(t *testing.T) *Record {
				u := validUser()
				u.city = []any{"Cheltenham"}
				return u.record()
			},
			wantMsg: "bad type: bio.birthplace.city",
		},
		{
			name: "primitive where record expected",
			build: func(t *testing.T) *Record {
				r := validUser().record()
				child(t, r, "bio").Set("dob", "not-a-dict")
				return r
			},
			wantMsg: "bad type: bio.dob",
		},
		{
			name: "nil where record expected",
			build: func(t *testing.T) *Record {
				r := validUser().record()
				child(t, r, "bio").Set("dob", (*Record)(nil))
				return r
			},
			wantMsg: "bad type: bio.dob",
		},
		{
			name: "record where primitive expected",
			build: func(t *testing.T) *Record {
				u := validUser()
				u.id = NewRecord().Set("n", 1)
				return u.record()
			},
			wantMsg: "bad type: user_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := Validate(tt.build(t), userTemplate())
			if ok != tt.wantOK || msg != tt.wantMsg {
				t.Errorf("Validate() = (%v, %q), want (%v, %q)", ok, msg, tt.wantOK, tt.wantMsg)
			}
		})
	}
}

func TestValidate_Scenarios(t *testing.T) {
	nameTmpl := NewTemplate().
		Leaf("id", KindInt).
		Node("name", NewTemplate().Leaf("first", KindString).Leaf("last", KindString))

	tests := []struct {
		name    string
		data    *Record
		tmpl    *Template
		wantOK  bool
		wantMsg string
	}{
		{
			name:    "empty against id",
			data:    NewRecord(),
			tmpl:    NewTemplate().Leaf("id", KindInt),
			wantMsg: "mismatched keys: id",
		},
		{
			name:    "nested missing last",
			data:    NewRecord().Set("id", 1).Set("name", NewRecord().Set("first", "A")),
			tmpl:    nameTmpl,
			wantMsg: "mismatched keys: name.last",
		},
		{
			name:    "nested bad last",
			data:    NewRecord().Set("id", 1).Set("name", NewRecord().Set("first", "A").Set("last", 5)),
			tmpl:    nameTmpl,
			wantMsg: "bad type: name.last",
		},
		{
			name:   "nested valid",
			data:   NewRecord().Set("id", 1).Set("name", NewRecord().Set("first", "A").Set("last", "B")),
			tmpl:   nameTmpl,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := Validate(tt.data, tt.tmpl)
			if ok != tt.wantOK || msg != tt.wantMsg {
				t.Errorf("Validate() = (%v, %q), want (%v, %q)", ok, msg, tt.wantOK, tt.wantMsg)
			}
		})
	}
}

func TestValidate_MissingBeatsExtra(t *testing.T) {
	tmpl := NewTemplate().Leaf("a", KindInt).Leaf("b", KindInt).Leaf("c", KindInt)

	// The extra key is inserted before the present keys and the values have
	// wrong types; neither may influence the report.
	data := NewRecord().Set("zzz", 1).Set("a", "wrong").Set("c", "wrong")

	ok, msg := Validate(data, tmpl)
	if ok || msg != "mismatched keys: b" {
		t.Errorf("Validate() = (%v, %q), want (false, %q)", ok, msg, "mismatched keys: b")
	}
}

func TestValidate_FirstMissingFollowsTemplateOrder(t *testing.T) {
	tmpl := NewTemplate().Leaf("x", KindInt).Leaf("m", KindInt).Leaf("a", KindInt)
	data := NewRecord().Set("m", 1)

	_, msg := Validate(data, tmpl)
	if msg != "mismatched keys: x" {
		t.Errorf("msg = %q, want %q", msg, "mismatched keys: x")
	}

	// Reordering the template changes which key is named.
	tmpl = NewTemplate().Leaf("a", KindInt).Leaf("m", KindInt).Leaf("x", KindInt)
	_, msg = Validate(data, tmpl)
	if msg != "mismatched keys: a" {
		t.Errorf("msg = %q, want %q", msg, "mismatched keys: a")
	}
}

func TestValidate_FirstExtraFollowsRecordOrder(t *testing.T) {
	tmpl := NewTemplate().Leaf("a", KindInt)
	data := NewRecord().Set("q", 1).Set("a", 1).Set("b", 2)

	_, msg := Validate(data, tmpl)
	if msg != "mismatched keys: q" {
		t.Errorf("msg = %q, want %q", msg, "mismatched keys: q")
	}
}

func TestValidate_KeyShapeBeforeValueShape(t *testing.T) {
	// "a" has a bad type, but the extra key at the same level is reported.
	tmpl := NewTemplate().Leaf("a", KindInt)
	data := NewRecord().Set("a", "bad").Set("extra", 1)

	_, msg := Validate(data, tmpl)
	if msg != "mismatched keys: extra" {
		t.Errorf("msg = %q, want %q", msg, "mismatched keys: extra")
	}
}

func TestValidate_ValuesCheckedInTemplateOrder(t *testing.T) {
	tmpl := NewTemplate().Leaf("second", KindInt).Leaf("first", KindInt)
	data := NewRecord().Set("first", "bad").Set("second", "bad")

	_, msg := Validate(data, tmpl)
	if msg != "bad type: second" {
		t.Errorf("msg = %q, want %q", msg, "bad type: second")
	}
}

func TestValidate_PathHasTwoDotsAtThirdLevel(t *testing.T) {
	tmpl := NewTemplate().Node("outer", NewTemplate().Node("middle", NewTemplate().Leaf("inner", KindBool)))
	data := NewRecord().Set("outer", NewRecord().Set("middle", NewRecord().Set("inner", "yes")))

	_, msg := Validate(data, tmpl)
	if msg != "bad type: outer.middle.inner" {
		t.Errorf("msg = %q, want %q", msg, "bad type: outer.middle.inner")
	}
}

func TestValidate_StrictKinds(t *testing.T) {
	tests := []struct {
		kind  Kind
		value any
		ok    bool
	}{
		{KindInt, 1, true},
		{KindInt, int64(1), true},
		{KindInt, uint8(1), true},
		{KindInt, true, false},
		{KindInt, 1.0, false},
		{KindFloat, 1.5, true},
		{KindFloat, float32(1.5), true},
		{KindFloat, 1, false},
		{KindString, "", true},
		{KindString, []byte("x"), false},
		{KindBool, false, true},
		{KindBool, 0, false},
		{KindString, nil, false},
	}

	for _, tt := range tests {
		tmpl := NewTemplate().Leaf("v", tt.kind)
		data := NewRecord().Set("v", tt.value)
		ok, msg := Validate(data, tmpl)
		if ok != tt.ok {
			t.Errorf("Validate(%s, %#v) = (%v, %q), want ok=%v", tt.kind, tt.value, ok, msg, tt.ok)
		}
	}
}

func TestValidate_EmptyAndNil(t *testing.T) {
	if ok, msg := Validate(NewRecord(), NewTemplate()); !ok || msg != "" {
		t.Errorf("empty vs empty = (%v, %q), want (true, \"\")", ok, msg)
	}
	if ok, _ := Validate(nil, nil); !ok {
		t.Error("nil vs nil should be valid")
	}
	if _, msg := Validate(nil, NewTemplate().Leaf("a", KindInt)); msg != "mismatched keys: a" {
		t.Errorf("nil record msg = %q", msg)
	}
	if _, msg := Validate(NewRecord().Set("a", 1), nil); msg != "mismatched keys: a" {
		t.Errorf("nil template msg = %q", msg)
	}

	var zeroTmpl Template
	var zeroRec Record
	if ok, _ := Validate(&zeroRec, &zeroTmpl); !ok {
		t.Error("zero values should be valid against each other")
	}
}

func TestValidate_DoesNotMutateInputs(t *testing.T) {
	tmpl := userTemplate()
	rec := validUser().record()
	child(t, rec, "name").Set("middle", "x")

	before, _ := rec.MarshalJSON()
	tmplBefore, _ := tmpl.MarshalJSON()

	Validate(rec, tmpl)

	after, _ := rec.MarshalJSON()
	tmplAfter, _ := tmpl.MarshalJSON()
	if string(before) != string(after) {
		t.Errorf("record mutated:\n before %s\n after  %s", before, after)
	}
	if string(tmplBefore) != string(tmplAfter) {
		t.Errorf("template mutated:\n before %s\n after  %s", tmplBefore, tmplAfter)
	}
}

func TestCheck_Errors(t *testing.T) {
	tmpl := NewTemplate().Leaf("a", KindInt)

	if err := Check(NewRecord().Set("a", 1), tmpl); err != nil {
		t.Fatalf("Check() = %v, want nil", err)
	}

	err := Check(NewRecord(), tmpl)
	if !errors.Is(err, ErrMismatchedKeys) || errors.Is(err, ErrBadType) {
		t.Errorf("Check() = %v, want ErrMismatchedKeys only", err)
	}

	err = Check(NewRecord().Set("a", "x"), tmpl)
	if !errors.Is(err, ErrBadType) || errors.Is(err, ErrMismatchedKeys) {
		t.Errorf("Check() = %v, want ErrBadType only", err)
	}

	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("AsValidationError(%v) = false", err)
	}
	if verr.Kind != FailureBadType || verr.Path != "a" {
		t.Errorf("ValidationError = %+v", verr)
	}

	if _, ok := AsValidationError(errors.New("other")); ok {
		t.Error("AsValidationError on plain error should be false")
	}
}
