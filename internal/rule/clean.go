package rule

import (
	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/gateway"
)

// CleanRule deletes a fixed list of files; its "deps" field doubles as
// the target list (spec §3 `CleanRule{}`, §4.F "stored as the rule's
// deps").
type CleanRule struct {
	base
}

// NewCleanRule constructs a CleanRule; targets is stored as deps.
func NewCleanRule(name string, targets []string, loc diag.Location) *CleanRule {
	return &CleanRule{base: newBase("Clean", name, targets, loc)}
}

// GetCommands emits a single `["rm"] ++ deps` command.
func (r *CleanRule) GetCommands(cfg Config) ([]Command, error) {
	cmd := append([]string{"rm"}, r.deps...)
	return []Command{cmd}, nil
}

// ShouldRun is always true for clean rules.
func (r *CleanRule) ShouldRun(fs gateway.FSGateway) (bool, error) {
	return true, nil
}
