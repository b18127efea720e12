// Copyright 2026 The forge Authors
// SPDX-License-Identifier: Apache-2.0

// Package vareval implements the variable orchestration pass (spec
// §4.F): dependency extraction over the parsed expression trees,
// Kahn's-algorithm topological evaluation order with cycle detection,
// and per-category dispatch into Rules and Config via the documented
// factories. Grounded on original_source/src/variable_evaluator.cpp,
// which runs the same extract-deps / Kahn / evaluate-in-order pipeline,
// and on marcelocantos-mk's vars.go for the Go idiom of a single
// evaluator type owning the shared variable map.
package vareval

import (
	"fmt"

	"github.com/declbuild/forge/internal/ast"
	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/eval"
	"github.com/declbuild/forge/internal/rule"
	"github.com/declbuild/forge/internal/value"
)

// Result is the Evaluate output: every rule in evaluation (dependency)
// order, plus the single captured Config.
type Result struct {
	Rules  []rule.Rule
	Config rule.Config
}

// Evaluate runs dependency extraction, topological ordering, and
// per-category dispatch over vars, using fns to resolve builtin calls.
func Evaluate(vars []ast.ParsedVariable, fns *eval.FnRegistry) (Result, error) {
	byID := make(map[string]ast.ParsedVariable, len(vars))
	for _, v := range vars {
		byID[v.Identifier] = v
	}

	deps := extractDeps(vars)
	order, err := topoOrder(vars, deps)
	if err != nil {
		return Result{}, err
	}

	varMap := eval.VarMap{}
	var result Result
	haveConfig := false

	for _, id := range order {
		pv, ok := byID[id]
		if !ok {
			// id is a referenced-but-never-defined identifier; leave it
			// out of the evaluation dispatch (it will surface as a
			// ValueError at the point some VarRef actually resolves it).
			continue
		}
		v, err := eval.Evaluate(pv.Expr, varMap, fns)
		if err != nil {
			return Result{}, diag.Wrap(err, fmt.Sprintf("Evaluating variable '%s'", id), &pv.Loc)
		}
		varMap[id] = v

		switch pv.Category {
		case ast.Regular:
			// nothing more
		case ast.SingleRule:
			r, err := makeSingleRule(pv.Identifier, v, pv.Loc)
			if err != nil {
				return Result{}, diag.Wrap(err, fmt.Sprintf("Building rule '%s'", id), &pv.Loc)
			}
			result.Rules = append(result.Rules, r)
		case ast.MultiRule:
			r, err := makeMultiRule(pv.Identifier, v, pv.Loc)
			if err != nil {
				return Result{}, diag.Wrap(err, fmt.Sprintf("Building rule '%s'", id), &pv.Loc)
			}
			result.Rules = append(result.Rules, r)
		case ast.Clean:
			r, err := makeCleanRule(pv.Identifier, v, pv.Loc)
			if err != nil {
				return Result{}, diag.Wrap(err, fmt.Sprintf("Building rule '%s'", id), &pv.Loc)
			}
			result.Rules = append(result.Rules, r)
		case ast.Config:
			if haveConfig {
				return Result{}, diag.NewAt(diag.Syntax, "Duplicate <Config> dictionaries", pv.Loc)
			}
			c, err := makeConfig(pv.Identifier, v)
			if err != nil {
				return Result{}, diag.Wrap(err, "Building config", &pv.Loc)
			}
			result.Config = c
			haveConfig = true
		}
	}

	if !haveConfig {
		return Result{}, diag.New(diag.Logic, "Could not find <Config> qualified dictionary")
	}
	return result, nil
}

// extractDeps walks each variable's expr for VarRef identifiers,
// breadth-first, per spec §4.F step 1.
func extractDeps(vars []ast.ParsedVariable) map[string][]string {
	deps := make(map[string][]string, len(vars))
	for _, v := range vars {
		var refs []string
		queue := []ast.Expr{v.Expr}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			if n == nil {
				continue
			}
			if ref, ok := n.(*ast.VarRef); ok {
				refs = append(refs, ref.ID)
			}
			queue = append(queue, n.Children()...)
		}
		deps[v.Identifier] = refs
	}
	return deps
}

// topoOrder runs Kahn's algorithm over the union of identifiers and
// their referenced ids. In-degree counts each id's own dependencies,
// so a node reaches zero in-degree only once all its dependencies have
// already been popped — Kahn's emission order is already leaves first
// (spec §4.F step 2), no reversal needed.
func topoOrder(vars []ast.ParsedVariable, deps map[string][]string) ([]string, error) {
	nodes := map[string]bool{}
	for _, v := range vars {
		nodes[v.Identifier] = true
		for _, d := range deps[v.Identifier] {
			nodes[d] = true
		}
	}

	inDegree := make(map[string]int, len(nodes))
	successors := make(map[string][]string, len(nodes))
	for id := range nodes {
		inDegree[id] = 0
	}
	for id, refs := range deps {
		for _, ref := range refs {
			inDegree[id]++
			successors[ref] = append(successors[ref], id)
		}
	}

	var queue []string
	for _, v := range vars {
		if inDegree[v.Identifier] == 0 {
			queue = append(queue, v.Identifier)
		}
	}
	for id := range nodes {
		if _, isVar := deps[id]; !isVar && inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	var popped []string
	seen := map[string]bool{}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		popped = append(popped, id)
		for _, succ := range successors[id] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(popped) != len(nodes) {
		return nil, diag.New(diag.Logic, fmt.Sprintf(
			"Cyclical dependency between variables (resolved %d of %d)", len(popped), len(nodes)))
	}

	return popped, nil
}

func strList(v value.Value) ([]string, error) {
	lst, err := v.AsList()
	if err != nil {
		return nil, err
	}
	return value.Vectorise(lst, value.TypeString)
}
