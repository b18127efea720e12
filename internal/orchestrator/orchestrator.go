// Package orchestrator wires the full pipeline — lex, parse, evaluate,
// build the rule graph, construct the runner — behind a single
// constructor, capturing any diagnostic error to stderr in the spec's
// rendered `Error.Format` shape (spec §4.K). Grounded on
// marcelocantos-mk's cmd/mk/main.go, which performs the analogous
// "read file, build graph, construct executor" sequence at the command
// line's entry point; here that sequence is pulled into its own
// package so cmd/forge stays a thin cobra wiring layer.
package orchestrator

import (
	"fmt"
	"io"
	"os"

	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/eval"
	"github.com/declbuild/forge/internal/gateway"
	"github.com/declbuild/forge/internal/graph"
	"github.com/declbuild/forge/internal/lexer"
	"github.com/declbuild/forge/internal/logging"
	"github.com/declbuild/forge/internal/parser"
	"github.com/declbuild/forge/internal/rule"
	"github.com/declbuild/forge/internal/runner"
	"github.com/declbuild/forge/internal/vareval"
)

// Orchestrator owns the fully-built rule graph, config, and runner for
// one source file.
type Orchestrator struct {
	SrcFile string
	Graph   *graph.Graph
	Config  rule.Config
	Runner  *runner.Runner

	stderr io.Writer
}

// New runs Lex -> Parse -> Evaluate -> build RuleGraph -> construct
// RuleRunner over srcFile. Any diagnostic error is rendered to stderr
// via Error.Format(srcFile) and also returned to the caller.
func New(fs gateway.FSGateway, spawner gateway.ProcessSpawner, srcFile string, opts ...runner.Option) (*Orchestrator, error) {
	o := &Orchestrator{SrcFile: srcFile, stderr: os.Stderr}

	lx, err := lexer.NewFromFile(srcFile)
	if err != nil {
		return nil, o.report(err)
	}
	lexemes, err := lx.Lex()
	if err != nil {
		return nil, o.report(err)
	}

	parsedVars, err := parser.Parse(lexemes)
	if err != nil {
		return nil, o.report(err)
	}

	result, err := vareval.Evaluate(parsedVars, eval.NewFnRegistry())
	if err != nil {
		return nil, o.report(err)
	}

	g := graph.New(result.Rules)
	if g.CyclicalDepExists() {
		return nil, o.report(diag.New(diag.Logic, "Cyclical dependency between rules"))
	}

	o.Graph = g
	o.Config = result.Config
	o.Runner = runner.New(g, result.Config, spawner, fs, append(opts, runner.WithLogger(logging.NewRunLogger()))...)
	return o, nil
}

// RunRule delegates to the runner, rendering any diagnostic error to
// stderr with identical error-capture semantics to New.
func (o *Orchestrator) RunRule(name string) error {
	if err := o.Runner.RunRule(name); err != nil {
		return o.report(err)
	}
	return nil
}

// DefaultRule returns cfg.default_rule; selecting it is the caller's
// responsibility (spec §4.K).
func (o *Orchestrator) DefaultRule() string { return o.Config.DefaultRule }

func (o *Orchestrator) report(err error) error {
	if de, ok := err.(*diag.Error); ok {
		fmt.Fprintln(o.stderr, de.Format(o.SrcFile))
		return de
	}
	fmt.Fprintln(o.stderr, err.Error())
	return err
}
