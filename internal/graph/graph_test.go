package graph

import (
	"testing"

	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphBasics(t *testing.T) {
	prog := rule.NewSingleRule("prog", []string{"main.o"}, rule.Link, diag.Location{})
	mainO := rule.NewSingleRule("main.o", []string{"main.c"}, rule.Compile, diag.Location{})
	g := New([]rule.Rule{prog, mainO})

	assert.Equal(t, 2, g.NumRules())
	assert.True(t, g.IsRule("prog"))
	assert.False(t, g.IsRule("main.c"), "main.c is a file leaf, not a rule")

	deps, err := g.Dependencies("prog")
	require.NoError(t, err)
	assert.Equal(t, []string{"main.o"}, deps)

	_, err = g.Dependencies("nonexistent")
	require.Error(t, err)

	assert.False(t, g.CyclicalDepExists())
}

func TestGraphDetectsCycle(t *testing.T) {
	a := rule.NewSingleRule("a", []string{"b"}, rule.Link, diag.Location{})
	b := rule.NewSingleRule("b", []string{"a"}, rule.Link, diag.Location{})
	g := New([]rule.Rule{a, b})
	assert.True(t, g.CyclicalDepExists())
}

func TestGraphSelfLoopIsACycle(t *testing.T) {
	a := rule.NewSingleRule("a", []string{"a"}, rule.Link, diag.Location{})
	g := New([]rule.Rule{a})
	assert.True(t, g.CyclicalDepExists())
}

func TestGraphGetRuleMissingFails(t *testing.T) {
	g := New(nil)
	_, err := g.GetRule("missing")
	require.Error(t, err)
}
