package vareval

import (
	"testing"

	"github.com/declbuild/forge/internal/eval"
	"github.com/declbuild/forge/internal/gateway"
	"github.com/declbuild/forge/internal/lexer"
	"github.com/declbuild/forge/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvaluate(t *testing.T, src string) Result {
	t.Helper()
	lexemes, err := lexer.New([]byte(src)).Lex()
	require.NoError(t, err)
	vars, err := parser.Parse(lexemes)
	require.NoError(t, err)
	res, err := Evaluate(vars, eval.NewFnRegistry())
	require.NoError(t, err)
	return res
}

func TestScenario1SimpleLink(t *testing.T) {
	src := "<Config> cfg {\ncompiler = \"g++\"\ndefault_rule = \"app\"\n}\n" +
		"<Rule> app {\ndeps = [\"a.cpp\"]\nstep = Step::LINK\n}\n"
	res := mustEvaluate(t, src)
	assert.Equal(t, "g++", res.Config.Compiler)
	assert.Equal(t, "app", res.Config.DefaultRule)
	require.Len(t, res.Rules, 1)
	assert.Equal(t, "app", res.Rules[0].Name())
	assert.Equal(t, []string{"a.cpp"}, res.Rules[0].Deps())
}

func TestScenario3MultiRule(t *testing.T) {
	src := "<Config> cfg {\ncompiler=\"clang++\"\ndefault_rule=\"app\"\n}\n" +
		"<MultiRule> compile {\ndeps = [\"a.cpp\",\"b.cpp\"]\noutput = [\"a.o\",\"b.o\"]\nstep = Step::COMPILE\n}\n"
	res := mustEvaluate(t, src)
	require.Len(t, res.Rules, 1)
	cmds, err := res.Rules[0].GetCommands(res.Config)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
}

func TestScenario5CleanAlwaysRuns(t *testing.T) {
	src := "<Config> cfg {\ncompiler=\"g++\"\ndefault_rule=\"prog\"\n}\n" +
		"<Clean> clean {\ntargets = [\"prog\",\"a.o\",\"b.o\"]\n}\n"
	res := mustEvaluate(t, src)
	require.Len(t, res.Rules, 1)
	assert.Equal(t, []string{"prog", "a.o", "b.o"}, res.Rules[0].Deps())

	run, err := res.Rules[0].ShouldRun(gateway.NewMemFileSystem())
	require.NoError(t, err)
	assert.True(t, run)
}

func TestScenario6CyclicalVariableDependencyFails(t *testing.T) {
	src := "a = b\nb = a\n<Config> cfg {\ncompiler=\"g++\"\ndefault_rule=\"x\"\n}\n"
	lexemes, err := lexer.New([]byte(src)).Lex()
	require.NoError(t, err)
	vars, err := parser.Parse(lexemes)
	require.NoError(t, err)
	_, err = Evaluate(vars, eval.NewFnRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ycl")
}

func TestMissingConfigFails(t *testing.T) {
	src := "<Rule> app {\ndeps = [\"a.cpp\"]\nstep = Step::LINK\n}\n"
	lexemes, err := lexer.New([]byte(src)).Lex()
	require.NoError(t, err)
	vars, err := parser.Parse(lexemes)
	require.NoError(t, err)
	_, err = Evaluate(vars, eval.NewFnRegistry())
	require.Error(t, err)
}

func TestDuplicateConfigFails(t *testing.T) {
	src := "<Config> cfg1 {\ncompiler=\"g++\"\ndefault_rule=\"x\"\n}\n" +
		"<Config> cfg2 {\ncompiler=\"clang++\"\ndefault_rule=\"y\"\n}\n"
	lexemes, err := lexer.New([]byte(src)).Lex()
	require.NoError(t, err)
	vars, err := parser.Parse(lexemes)
	require.NoError(t, err)
	_, err = Evaluate(vars, eval.NewFnRegistry())
	require.Error(t, err)
}

func TestVariableChainEvaluatesInDependencyOrder(t *testing.T) {
	src := "greeting = \"hello \" + name\nname = \"world\"\n" +
		"<Config> cfg {\ncompiler=\"g++\"\ndefault_rule=\"x\"\n}\n" +
		"<Rule> x {\ndeps = [greeting]\nstep = Step::LINK\n}\n"
	res := mustEvaluate(t, src)
	require.Len(t, res.Rules, 1)
	assert.Equal(t, []string{"hello world"}, res.Rules[0].Deps())
}

func TestMultiRuleLengthMismatchFails(t *testing.T) {
	src := "<Config> cfg {\ncompiler=\"g++\"\ndefault_rule=\"x\"\n}\n" +
		"<MultiRule> compile {\ndeps = [\"a.cpp\",\"b.cpp\"]\noutput = [\"a.o\"]\nstep = Step::COMPILE\n}\n"
	lexemes, err := lexer.New([]byte(src)).Lex()
	require.NoError(t, err)
	vars, err := parser.Parse(lexemes)
	require.NoError(t, err)
	_, err = Evaluate(vars, eval.NewFnRegistry())
	require.Error(t, err)
}
