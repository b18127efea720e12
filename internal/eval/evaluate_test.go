package eval

import (
	"testing"

	"github.com/declbuild/forge/internal/ast"
	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateStringLit(t *testing.T) {
	v, err := Evaluate(&ast.StringLit{Val: "app"}, nil, NewFnRegistry())
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "app", s)
}

func TestEvaluateVarRef(t *testing.T) {
	vars := VarMap{"x": value.String("hi")}
	v, err := Evaluate(&ast.VarRef{ID: "x"}, vars, NewFnRegistry())
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "hi", s)
}

func TestEvaluateUndefinedVarRefFails(t *testing.T) {
	_, err := Evaluate(&ast.VarRef{ID: "missing", Loc: diag.Location{Line: 1, Col: 1}}, VarMap{}, NewFnRegistry())
	require.Error(t, err)
}

func TestEvaluateBinaryOpStrings(t *testing.T) {
	expr := &ast.BinaryOp{Left: &ast.StringLit{Val: "a"}, Right: &ast.StringLit{Val: "b"}}
	v, err := Evaluate(expr, VarMap{}, NewFnRegistry())
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "ab", s)
}

func TestEvaluateEnumLit(t *testing.T) {
	v, err := Evaluate(&ast.EnumLit{Scope: "Step", Name: "LINK"}, VarMap{}, NewFnRegistry())
	require.NoError(t, err)
	e, _ := v.AsScopedEnum()
	assert.Equal(t, "Step", e.Scope)
	assert.Equal(t, "LINK", e.Name)
}

func TestEvaluateListLit(t *testing.T) {
	expr := &ast.ListLit{Elements: []ast.Expr{&ast.StringLit{Val: "a"}, &ast.StringLit{Val: "b"}}}
	v, err := Evaluate(expr, VarMap{}, NewFnRegistry())
	require.NoError(t, err)
	l, _ := v.AsList()
	assert.Equal(t, 2, l.Len())
}

func TestEvaluateDictLit(t *testing.T) {
	expr := &ast.DictLit{Fields: []ast.DictField{
		{Key: "compiler", Expr: &ast.StringLit{Val: "g++"}},
	}}
	v, err := Evaluate(expr, VarMap{}, NewFnRegistry())
	require.NoError(t, err)
	d, _ := v.AsDictionary()
	got, ok := d.Get("compiler")
	require.True(t, ok)
	s, _ := got.AsString()
	assert.Equal(t, "g++", s)
}

func TestEvaluateFnCallFileNames(t *testing.T) {
	expr := &ast.FnCall{
		Name: "file_names",
		Args: []ast.Expr{&ast.ListLit{Elements: []ast.Expr{
			&ast.StringLit{Val: "a.cpp"}, &ast.StringLit{Val: "b.tar.gz"},
		}}},
	}
	v, err := Evaluate(expr, VarMap{}, NewFnRegistry())
	require.NoError(t, err)
	l, _ := v.AsList()
	first, _ := l.Get(0).AsString()
	second, _ := l.Get(1).AsString()
	assert.Equal(t, "a", first)
	assert.Equal(t, "b", second)
}

func TestEvaluateUnknownFnCallFails(t *testing.T) {
	expr := &ast.FnCall{Name: "nope", Args: nil}
	_, err := Evaluate(expr, VarMap{}, NewFnRegistry())
	require.Error(t, err)
}

func TestEvaluateAddMismatchedTypesFails(t *testing.T) {
	expr := &ast.BinaryOp{Left: &ast.StringLit{Val: "a"}, Right: &ast.EnumLit{Scope: "Step", Name: "LINK"}}
	_, err := Evaluate(expr, VarMap{}, NewFnRegistry())
	require.Error(t, err)
}
