package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStrings(t *testing.T) {
	r, err := String("a").Add(String("b"))
	require.NoError(t, err)
	s, err := r.AsString()
	require.NoError(t, err)
	assert.Equal(t, "ab", s)
}

func TestAddIntegers(t *testing.T) {
	r, err := Integer(2).Add(Integer(3))
	require.NoError(t, err)
	i, err := r.AsInt()
	require.NoError(t, err)
	assert.Equal(t, 5, i)
}

func TestAddLists(t *testing.T) {
	a := ListVal(NewListOf(String("x")))
	b := ListVal(NewListOf(String("y")))
	r, err := a.Add(b)
	require.NoError(t, err)
	l, err := r.AsList()
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())
}

func TestAddMismatchedTypesFails(t *testing.T) {
	_, err := String("a").Add(Integer(1))
	require.Error(t, err)
}

func TestAddUnsupportedTypeFails(t *testing.T) {
	_, err := None.Add(None)
	require.Error(t, err)
}

func TestAssertTypeFailure(t *testing.T) {
	err := String("x").AssertType(TypeInteger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "String")
	assert.Contains(t, err.Error(), "Integer")
}

func TestDictionaryAssertContains(t *testing.T) {
	d := NewDictionary()
	d.Insert("compiler", String("gcc"))
	err := d.AssertContains([]FieldAssertion{{"compiler", TypeString}, {"default_rule", TypeString}})
	require.Error(t, err)

	d.Insert("default_rule", String("app"))
	err = d.AssertContains([]FieldAssertion{{"compiler", TypeString}, {"default_rule", TypeString}})
	require.NoError(t, err)
}

func TestDictionaryAssertContainsWrongType(t *testing.T) {
	d := NewDictionary()
	d.Insert("compiler", Integer(1))
	err := d.AssertContains([]FieldAssertion{{"compiler", TypeString}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiler")
}

func TestVectorise(t *testing.T) {
	l := NewListOf(String("a"), String("b"))
	out, err := Vectorise(l, TypeString)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestVectoriseTypeMismatch(t *testing.T) {
	l := NewListOf(String("a"), Integer(1))
	_, err := Vectorise(l, TypeString)
	require.Error(t, err)
}

func TestDuplicateInsertOverwrites(t *testing.T) {
	d := NewDictionary()
	d.Insert("k", String("a"))
	d.Insert("k", String("b"))
	v, ok := d.Get("k")
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "b", s)
}
