// Package value implements the tagged runtime value model of spec §3/§4.B:
// Integer, String, List, ScopedEnum, Dictionary, and None, with typed
// assertions and a restricted `+=` operator.
//
// Grounded on original_source/src/value.hpp and value.cpp (the C++
// std::variant-based Value/ValueList) and on the teacher's preference for
// small, explicit sum types over `interface{}` soup (marcelocantos-mk's
// ast.go Node variants).
package value

import (
	"fmt"

	"github.com/declbuild/forge/internal/diag"
)

// Type is the closed set of value variants.
type Type int

const (
	TypeNone Type = iota
	TypeInteger
	TypeString
	TypeList
	TypeScopedEnum
	TypeDictionary
)

func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "Integer"
	case TypeString:
		return "String"
	case TypeList:
		return "List"
	case TypeScopedEnum:
		return "ScopedEnum"
	case TypeDictionary:
		return "Dictionary"
	default:
		return "None"
	}
}

// ScopedEnum is a `Scope::Name` literal (spec §3, e.g. Step::COMPILE).
type ScopedEnum struct {
	Scope string
	Name  string
}

// Value is the tagged sum type over Integer, String, List, ScopedEnum,
// Dictionary, and None.
type Value struct {
	typ  Type
	i    int
	s    string
	list *List
	enum ScopedEnum
	dict *Dictionary
}

// None is the zero value.
var None = Value{typ: TypeNone}

func Integer(i int) Value                { return Value{typ: TypeInteger, i: i} }
func String(s string) Value              { return Value{typ: TypeString, s: s} }
func ListVal(l *List) Value                { return Value{typ: TypeList, list: l} }
func Enum(scope, name string) Value      { return Value{typ: TypeScopedEnum, enum: ScopedEnum{scope, name}} }
func Dict(d *Dictionary) Value           { return Value{typ: TypeDictionary, dict: d} }
func ScopedEnumValue(e ScopedEnum) Value { return Value{typ: TypeScopedEnum, enum: e} }

// GetType returns the value's variant tag.
func (v Value) GetType() Type { return v.typ }

// AsInt returns the underlying int, failing with a TypeError if v is not an Integer.
func (v Value) AsInt() (int, error) {
	if v.typ != TypeInteger {
		return 0, typeErr(TypeInteger, v.typ)
	}
	return v.i, nil
}

// AsString returns the underlying string, failing with a TypeError if v is not a String.
func (v Value) AsString() (string, error) {
	if v.typ != TypeString {
		return "", typeErr(TypeString, v.typ)
	}
	return v.s, nil
}

// AsList returns the underlying list, failing with a TypeError if v is not a List.
func (v Value) AsList() (*List, error) {
	if v.typ != TypeList {
		return nil, typeErr(TypeList, v.typ)
	}
	return v.list, nil
}

// AsScopedEnum returns the underlying scoped enum, failing with a TypeError if v is not one.
func (v Value) AsScopedEnum() (ScopedEnum, error) {
	if v.typ != TypeScopedEnum {
		return ScopedEnum{}, typeErr(TypeScopedEnum, v.typ)
	}
	return v.enum, nil
}

// AsDictionary returns the underlying dictionary, failing with a TypeError if v is not one.
func (v Value) AsDictionary() (*Dictionary, error) {
	if v.typ != TypeDictionary {
		return nil, typeErr(TypeDictionary, v.typ)
	}
	return v.dict, nil
}

func typeErr(expected, got Type) *diag.Error {
	return diag.New(diag.Type, fmt.Sprintf("expected type '%s' but got '%s'", expected, got))
}

// AssertType fails with a TypeError unless v has the expected type.
func (v Value) AssertType(expected Type) error {
	if v.typ != expected {
		return typeErr(expected, v.typ)
	}
	return nil
}

// TypedPair pairs a value with its expected type, for AssertTypes.
type TypedPair struct {
	Value    Value
	Expected Type
}

// AssertTypes fails with a TypeError naming both type names on the first mismatch.
func AssertTypes(pairs []TypedPair) error {
	for _, p := range pairs {
		if err := p.Value.AssertType(p.Expected); err != nil {
			return err
		}
	}
	return nil
}

// Add implements spec §3's restricted `+=`: defined only for
// (String,String), (List,List), (Integer,Integer); any other pair fails
// with a TypeError. It returns a new Value; v itself is not mutated.
func (v Value) Add(other Value) (Value, error) {
	if v.typ != other.typ {
		return None, diag.New(diag.Type, fmt.Sprintf(
			"cannot add two values of opposing types ('%s' + '%s')", v.typ, other.typ))
	}
	switch v.typ {
	case TypeInteger:
		return Integer(v.i + other.i), nil
	case TypeString:
		return String(v.s + other.s), nil
	case TypeList:
		merged := NewList()
		merged.elements = append(merged.elements, v.list.elements...)
		merged.elements = append(merged.elements, other.list.elements...)
		return ListVal(merged), nil
	default:
		return None, diag.New(diag.Type, fmt.Sprintf("type '%s' does not support addition", v.typ))
	}
}

// Vectorise asserts each element of l matches elementType and returns the
// ordered sequence of underlying scalar strings. Only String elements are
// currently needed by the spec's callers.
func Vectorise(l *List, elementType Type) ([]string, error) {
	if elementType != TypeString {
		return nil, diag.New(diag.Type, "vectorise only supports element type 'String'")
	}
	out := make([]string, 0, len(l.elements))
	for _, e := range l.elements {
		s, err := e.AsString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
