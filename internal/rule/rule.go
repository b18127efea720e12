// Package rule implements the Rule sum type and Config (spec §3/§4.G):
// SingleRule, MultiRule, and CleanRule variants sharing a common base
// of name/deps/location, each synthesizing its own shell commands and
// staleness check. Grounded on marcelocantos-mk's graph.go Rule struct
// (a single struct covering both single- and multi-output rules via a
// nil-able Outputs field) generalized into three explicit variants per
// the value model's closed-type-set design note (spec §9 "Polymorphic
// expressions and rules").
package rule

import (
	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/gateway"
)

// Step is the compiler invocation mode for SingleRule/MultiRule.
type Step int

const (
	Compile Step = iota
	Link
)

// Config is the `<Config>` dictionary's evaluated shape (spec §3).
type Config struct {
	Name              string
	Compiler          string
	CompilationFlags  []string
	LinkFlags         []string
	DefaultRule       string
}

// Command is one argv to hand to a ProcessSpawner.
type Command []string

// Rule is the common contract every rule variant satisfies (spec
// §4.G's "Public contract (polymorphic over Rule)").
type Rule interface {
	Name() string
	Deps() []string
	Loc() diag.Location
	GetCommands(cfg Config) ([]Command, error)
	ShouldRun(fs gateway.FSGateway) (bool, error)
}

// base holds the fields common to every rule variant.
type base struct {
	qualifierLabel string
	name           string
	deps           []string
	loc            diag.Location
}

func newBase(qualifierLabel, name string, deps []string, loc diag.Location) base {
	return base{qualifierLabel: qualifierLabel, name: name, deps: deps, loc: loc}
}

func (b *base) Name() string       { return b.name }
func (b *base) Deps() []string     { return b.deps }
func (b *base) Loc() diag.Location { return b.loc }

// hasUpdatedDep implements the shared SingleRule/MultiRule staleness
// rule (spec §4.G): rebuild if the rule's own output is missing, or any
// dependency is missing, or any dependency is strictly newer than the
// output.
func hasUpdatedDep(fs gateway.FSGateway, name string, deps []string) (bool, error) {
	if !fs.Exists(name) {
		return true, nil
	}
	targetTime, err := fs.LastWriteTime(name)
	if err != nil {
		return false, err
	}
	for _, d := range deps {
		if !fs.Exists(d) {
			return true, nil
		}
		depTime, err := fs.LastWriteTime(d)
		if err != nil {
			return false, err
		}
		if depTime.After(targetTime) {
			return true, nil
		}
	}
	return false, nil
}

func flagsFor(cfg Config, step Step) []string {
	if step == Compile {
		return cfg.CompilationFlags
	}
	return cfg.LinkFlags
}

func appendAll(dst []string, srcs ...[]string) []string {
	for _, s := range srcs {
		dst = append(dst, s...)
	}
	return dst
}
