// Package runner implements the rule runner (spec §4.I): post-order
// DFS over the rule graph with a per-call visited set, single-threaded
// and synchronous throughout (spec §5 rules out any parallel
// execution). Grounded on marcelocantos-mk's exec.go for the
// dry-run/force/verbose flag surface and its structured per-command
// logging, with the goroutine/semaphore/singleflight concurrency
// machinery dropped per the spec's explicit single-threaded mandate.
package runner

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/gateway"
	"github.com/declbuild/forge/internal/graph"
	"github.com/declbuild/forge/internal/logging"
	"github.com/declbuild/forge/internal/rule"
)

// Runner walks the rule graph and spawns commands for stale rules.
type Runner struct {
	graph   *graph.Graph
	cfg     rule.Config
	spawner gateway.ProcessSpawner
	fs      gateway.FSGateway
	log     *logrus.Entry

	force   bool // -B: treat every rule as stale
	dryRun  bool // -n: print commands instead of running them
	verbose bool
}

// Option configures optional Runner behavior.
type Option func(*Runner)

func WithForce(force bool) Option     { return func(r *Runner) { r.force = force } }
func WithDryRun(dryRun bool) Option   { return func(r *Runner) { r.dryRun = dryRun } }
func WithVerbose(verbose bool) Option { return func(r *Runner) { r.verbose = verbose } }
func WithLogger(log *logrus.Entry) Option {
	return func(r *Runner) { r.log = log }
}

// New constructs a Runner over shared, immutable handles to the rule
// graph and config, plus the gateway collaborators used to observe
// staleness and spawn commands.
func New(g *graph.Graph, cfg rule.Config, spawner gateway.ProcessSpawner, fs gateway.FSGateway, opts ...Option) *Runner {
	r := &Runner{graph: g, cfg: cfg, spawner: spawner, fs: fs, log: logging.NewRunLogger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunRule builds name and every rule it transitively depends on,
// post-order, at most once each, per spec §4.I.
func (r *Runner) RunRule(name string) error {
	if !r.graph.IsRule(name) {
		return diag.New(diag.Logic, fmt.Sprintf("'%s' is not a rule", name))
	}
	visited := make(map[string]bool)
	return r.runRecurse(name, visited)
}

func (r *Runner) runRecurse(name string, visited map[string]bool) error {
	if !r.graph.IsRule(name) || visited[name] {
		return nil
	}

	deps, err := r.graph.Dependencies(name)
	if err != nil {
		return err
	}
	for _, dep := range deps {
		if err := r.runRecurse(dep, visited); err != nil {
			return r.wrapRuleErr(name, err)
		}
	}

	visited[name] = true

	rl, err := r.graph.GetRule(name)
	if err != nil {
		return err
	}

	run := r.force
	if !run {
		run, err = rl.ShouldRun(r.fs)
		if err != nil {
			return r.wrapRuleErr(name, err)
		}
	}
	if !run {
		r.log.WithField("rule", name).Debug("up to date")
		return nil
	}

	commands, err := rl.GetCommands(r.cfg)
	if err != nil {
		return r.wrapRuleErr(name, err)
	}
	for _, cmd := range commands {
		r.log.WithField("rule", name).WithField("command", strings.Join(cmd, " ")).Info("running command")
		if r.dryRun {
			continue
		}
		if _, err := r.spawner.Run(cmd); err != nil {
			return r.wrapRuleErr(name, err)
		}
	}
	return nil
}

func (r *Runner) wrapRuleErr(name string, err error) error {
	var loc *diag.Location
	if rl, getErr := r.graph.GetRule(name); getErr == nil {
		l := rl.Loc()
		loc = &l
	}
	return diag.Wrap(err, fmt.Sprintf("Running rule '%s'", name), loc)
}
