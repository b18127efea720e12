package rule

import (
	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/gateway"
)

// SingleRule produces one output from many inputs via one command
// (spec §3 `SingleRule{step}`).
type SingleRule struct {
	base
	Step Step
}

// NewSingleRule constructs a SingleRule with the common base fields.
func NewSingleRule(name string, deps []string, step Step, loc diag.Location) *SingleRule {
	return &SingleRule{base: newBase("Rule", name, deps, loc), Step: step}
}

// GetCommands synthesizes `[compiler] ++ flags(step) ++ deps ++ ["-o", name]`.
func (r *SingleRule) GetCommands(cfg Config) ([]Command, error) {
	cmd := []string{cfg.Compiler}
	cmd = appendAll(cmd, flagsFor(cfg, r.Step))
	cmd = append(cmd, r.deps...)
	cmd = append(cmd, "-o", r.name)
	return []Command{cmd}, nil
}

// ShouldRun rebuilds when the output is missing or any dep is newer.
func (r *SingleRule) ShouldRun(fs gateway.FSGateway) (bool, error) {
	return hasUpdatedDep(fs, r.name, r.deps)
}
