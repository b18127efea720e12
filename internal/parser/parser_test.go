package parser

import (
	"testing"

	"github.com/declbuild/forge/internal/ast"
	"github.com/declbuild/forge/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLex(t *testing.T, src string) []lexer.Lexeme {
	t.Helper()
	lexemes, err := lexer.New([]byte(src)).Lex()
	require.NoError(t, err)
	return lexemes
}

func TestParseRegularStringVariable(t *testing.T) {
	vars, err := Parse(mustLex(t, `name = "app"`))
	require.NoError(t, err)
	require.Len(t, vars, 1)
	assert.Equal(t, "name", vars[0].Identifier)
	assert.Equal(t, ast.Regular, vars[0].Category)
	lit, ok := vars[0].Expr.(*ast.StringLit)
	require.True(t, ok)
	assert.Equal(t, "app", lit.Val)
}

func TestParseAddExpression(t *testing.T) {
	vars, err := Parse(mustLex(t, `greeting = "hello " + "world"`))
	require.NoError(t, err)
	require.Len(t, vars, 1)
	bin, ok := vars[0].Expr.(*ast.BinaryOp)
	require.True(t, ok)
	left, ok := bin.Left.(*ast.StringLit)
	require.True(t, ok)
	assert.Equal(t, "hello ", left.Val)
}

func TestParseVarRef(t *testing.T) {
	vars, err := Parse(mustLex(t, "a = b"))
	require.NoError(t, err)
	require.Len(t, vars, 1)
	ref, ok := vars[0].Expr.(*ast.VarRef)
	require.True(t, ok)
	assert.Equal(t, "b", ref.ID)
}

func TestParseListLiteral(t *testing.T) {
	vars, err := Parse(mustLex(t, `sources = ["a.cpp", "b.cpp"]`))
	require.NoError(t, err)
	lst, ok := vars[0].Expr.(*ast.ListLit)
	require.True(t, ok)
	require.Len(t, lst.Elements, 2)
}

func TestParseFunctionCall(t *testing.T) {
	vars, err := Parse(mustLex(t, `objs = file_names(sources)`))
	require.NoError(t, err)
	fn, ok := vars[0].Expr.(*ast.FnCall)
	require.True(t, ok)
	assert.Equal(t, "file_names", fn.Name)
	require.Len(t, fn.Args, 1)
}

func TestParseEnumLiteral(t *testing.T) {
	src := "<Rule> app {\nstep = Step::LINK\n}\n"
	vars, err := Parse(mustLex(t, src))
	require.NoError(t, err)
	require.Len(t, vars, 1)
	assert.Equal(t, ast.SingleRule, vars[0].Category)
	dict, ok := vars[0].Expr.(*ast.DictLit)
	require.True(t, ok)
	require.Len(t, dict.Fields, 1)
	enum, ok := dict.Fields[0].Expr.(*ast.EnumLit)
	require.True(t, ok)
	assert.Equal(t, "Step", enum.Scope)
	assert.Equal(t, "LINK", enum.Name)
}

func TestParseConfigDict(t *testing.T) {
	src := "<Config> cfg {\ncompiler = \"g++\"\ndefault_rule = \"app\"\n}\n"
	vars, err := Parse(mustLex(t, src))
	require.NoError(t, err)
	require.Len(t, vars, 1)
	assert.Equal(t, "cfg", vars[0].Identifier)
	assert.Equal(t, ast.Config, vars[0].Category)
	dict, ok := vars[0].Expr.(*ast.DictLit)
	require.True(t, ok)
	require.Len(t, dict.Fields, 2)
}

func TestParseMultiRuleDict(t *testing.T) {
	src := "<MultiRule> compile {\ndeps = [\"a.cpp\",\"b.cpp\"]\noutput = [\"a.o\",\"b.o\"]\nstep = Step::COMPILE\n}\n"
	vars, err := Parse(mustLex(t, src))
	require.NoError(t, err)
	require.Len(t, vars, 1)
	assert.Equal(t, ast.MultiRule, vars[0].Category)
}

func TestParseCleanDict(t *testing.T) {
	src := "<Clean> clean {\ntargets = [\"prog\",\"a.o\"]\n}\n"
	vars, err := Parse(mustLex(t, src))
	require.NoError(t, err)
	assert.Equal(t, ast.Clean, vars[0].Category)
}

func TestParseMultipleTopLevelBindings(t *testing.T) {
	src := "a = b\nb = a\n<Config> cfg {\ncompiler = \"g++\"\ndefault_rule = \"x\"\n}\n"
	vars, err := Parse(mustLex(t, src))
	require.NoError(t, err)
	require.Len(t, vars, 3)
	assert.Equal(t, "a", vars[0].Identifier)
	assert.Equal(t, "b", vars[1].Identifier)
	assert.Equal(t, "cfg", vars[2].Identifier)
}

func TestParseUnknownQualifierFails(t *testing.T) {
	_, err := Parse(mustLex(t, "<Bogus> x { }\n"))
	require.Error(t, err)
}

func TestParseUnclosedDictFails(t *testing.T) {
	_, err := Parse(mustLex(t, "<Config> cfg {\ncompiler = \"g++\"\n"))
	require.Error(t, err)
}

func TestParseUnclosedListFails(t *testing.T) {
	_, err := Parse(mustLex(t, `sources = ["a.cpp"`))
	require.Error(t, err)
}

func TestParseUnterminatedFunctionCallFails(t *testing.T) {
	_, err := Parse(mustLex(t, `objs = file_names(sources`))
	require.Error(t, err)
}
