package value

import (
	"fmt"

	"github.com/declbuild/forge/internal/diag"
)

// Dictionary is a string-keyed mapping to Values (spec §3). Duplicate
// inserts overwrite; no particular iteration order is guaranteed or relied
// upon (spec §9 "Dictionary evaluation order").
type Dictionary struct {
	fields map[string]Value
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{fields: make(map[string]Value)}
}

// Insert sets key to val, overwriting any previous value.
func (d *Dictionary) Insert(key string, val Value) {
	d.fields[key] = val
}

// Get returns the value at key and whether it was present.
func (d *Dictionary) Get(key string) (Value, bool) {
	v, ok := d.fields[key]
	return v, ok
}

// Contains reports whether key is present.
func (d *Dictionary) Contains(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// Keys returns the dictionary's keys, in unspecified order.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.fields))
	for k := range d.fields {
		keys = append(keys, k)
	}
	return keys
}

// FieldAssertion names a required field and its expected type, for
// AssertContains.
type FieldAssertion struct {
	Field    string
	Expected Type
}

// AssertContains fails with a ValueError if any required field is absent,
// or a TypeError (nested under the named field) if a present field has the
// wrong shape.
func (d *Dictionary) AssertContains(fields []FieldAssertion) error {
	for _, fa := range fields {
		v, ok := d.fields[fa.Field]
		if !ok {
			return diag.New(diag.Value, fmt.Sprintf("missing required field '%s'", fa.Field))
		}
		if err := v.AssertType(fa.Expected); err != nil {
			return diag.New(diag.Type, fmt.Sprintf("field '%s': %s", fa.Field, err.Error()))
		}
	}
	return nil
}
