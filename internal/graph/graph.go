// Package graph builds the rule dependency graph (spec §4.H) and
// detects rule-to-rule cycles with Kahn's algorithm, restricted to
// rule-to-rule edges — file dependencies are always leaves and never
// participate in degree counts (spec §9 "Cyclical rule graph cycle
// detection"). Grounded on marcelocantos-mk's graph.go, which already
// builds a name->Rule index and does its own cycle check before
// building; the teacher's DFS-based cycle detector is swapped for the
// Kahn's-algorithm formulation the spec calls for explicitly.
package graph

import (
	"fmt"

	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/rule"
)

// Graph indexes a rule list by name and records each rule's declared
// dependency order.
type Graph struct {
	rules map[string]rule.Rule
	order []string // rule names in declaration order, for deterministic iteration
}

// New builds a Graph from rules. Dependencies whose name is not itself
// a rule are file leaves and are not indexed.
func New(rules []rule.Rule) *Graph {
	g := &Graph{rules: make(map[string]rule.Rule, len(rules))}
	for _, r := range rules {
		g.rules[r.Name()] = r
		g.order = append(g.order, r.Name())
	}
	return g
}

// NumRules returns the number of indexed rules.
func (g *Graph) NumRules() int { return len(g.rules) }

// IsRule reports whether name is a rule (as opposed to a file leaf).
func (g *Graph) IsRule(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// GetRule returns the rule named name, failing with a LogicError if
// absent.
func (g *Graph) GetRule(name string) (rule.Rule, error) {
	r, ok := g.rules[name]
	if !ok {
		return nil, diag.New(diag.Logic, fmt.Sprintf("no such rule '%s'", name))
	}
	return r, nil
}

// Dependencies returns name's declared dependency names, in order,
// failing with a LogicError if name is not a rule.
func (g *Graph) Dependencies(name string) ([]string, error) {
	r, ok := g.rules[name]
	if !ok {
		return nil, diag.New(diag.Logic, fmt.Sprintf("no such rule '%s'", name))
	}
	return r.Deps(), nil
}

// CyclicalDepExists runs Kahn's algorithm over the subgraph of
// rule-to-rule edges; self-loops count as cycles.
func (g *Graph) CyclicalDepExists() bool {
	inDegree := make(map[string]int, len(g.rules))
	successors := make(map[string][]string, len(g.rules))
	for name := range g.rules {
		inDegree[name] = 0
	}
	for name, r := range g.rules {
		for _, dep := range r.Deps() {
			if _, depIsRule := g.rules[dep]; depIsRule {
				inDegree[name]++
				successors[dep] = append(successors[dep], name)
			}
		}
	}

	var queue []string
	for _, name := range g.order {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	popped := 0
	seen := make(map[string]bool, len(g.rules))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		popped++
		for _, succ := range successors[name] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}
	return popped != len(g.rules)
}
