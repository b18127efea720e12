package rule

import (
	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/gateway"
)

// MultiRule fans a single step out over N parallel one-input-one-output
// pairs (spec §3 `MultiRule{outputs, step}`); `|deps| == |outputs|` is
// an invariant enforced by the factory that constructs it, not here.
type MultiRule struct {
	base
	Outputs []string
	Step    Step
}

// NewMultiRule constructs a MultiRule. Callers (package vareval's
// make_multi_rule) are responsible for the |deps| == |outputs| check.
func NewMultiRule(name string, deps, outputs []string, step Step, loc diag.Location) *MultiRule {
	return &MultiRule{base: newBase("MultiRule", name, deps, loc), Outputs: outputs, Step: step}
}

// GetCommands emits one command per (dep, output) pair, in declaration
// order, regardless of which inputs are individually stale (spec §9
// design note 3 — granular per-output staleness is out of scope).
func (r *MultiRule) GetCommands(cfg Config) ([]Command, error) {
	flags := flagsFor(cfg, r.Step)
	cmds := make([]Command, 0, len(r.deps))
	for i := range r.deps {
		cmd := []string{cfg.Compiler}
		cmd = appendAll(cmd, flags)
		cmd = append(cmd, r.deps[i], "-o", r.Outputs[i])
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// ShouldRun checks staleness against the rule's own name, not each
// individual output (spec §9 design note 2 — the rule name acts as a
// group-level sentinel; partial rebuilds across sub-outputs are not
// supported).
func (r *MultiRule) ShouldRun(fs gateway.FSGateway) (bool, error) {
	return hasUpdatedDep(fs, r.name, r.deps)
}
