// Package eval implements the expression evaluator (spec §4.E): a type
// switch over ast.Expr that resolves variable references against a
// shared value map and dispatches function calls through an FnRegistry.
// A type switch, not a virtual Evaluate method on ast.Expr, is the
// idiomatic Go shape for dispatching over this closed node set.
package eval

import (
	"fmt"

	"github.com/declbuild/forge/internal/ast"
	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/value"
)

// VarMap is the shared, already-evaluated bindings available to VarRef
// lookups.
type VarMap map[string]value.Value

// Evaluate computes the Value an expression denotes, given the current
// variable bindings and function registry.
func Evaluate(expr ast.Expr, vars VarMap, fns *FnRegistry) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.StringLit:
		return value.String(n.Val), nil

	case *ast.EnumLit:
		return value.Enum(n.Scope, n.Name), nil

	case *ast.VarRef:
		v, ok := vars[n.ID]
		if !ok {
			return value.None, diag.NewAt(diag.Value, fmt.Sprintf("undefined variable '%s'", n.ID), n.Loc)
		}
		return v, nil

	case *ast.FnCall:
		args := make([]value.Value, 0, len(n.Args))
		for _, a := range n.Args {
			v, err := Evaluate(a, vars, fns)
			if err != nil {
				return value.None, err
			}
			args = append(args, v)
		}
		v, err := fns.Call(n.Name, args)
		if err != nil {
			return value.None, diag.Wrap(err, fmt.Sprintf("Calling '%s'", n.Name), &n.Loc)
		}
		return v, nil

	case *ast.ListLit:
		lst := value.NewList()
		for _, e := range n.Elements {
			v, err := Evaluate(e, vars, fns)
			if err != nil {
				return value.None, err
			}
			lst.Append(v)
		}
		return value.ListVal(lst), nil

	case *ast.DictLit:
		dict := value.NewDictionary()
		for _, f := range n.Fields {
			v, err := Evaluate(f.Expr, vars, fns)
			if err != nil {
				return value.None, err
			}
			dict.Insert(f.Key, v)
		}
		return value.Dict(dict), nil

	case *ast.BinaryOp:
		l, err := Evaluate(n.Left, vars, fns)
		if err != nil {
			return value.None, err
		}
		r, err := Evaluate(n.Right, vars, fns)
		if err != nil {
			return value.None, err
		}
		sum, err := l.Add(r)
		if err != nil {
			return value.None, diag.Wrap(err, "Evaluating binary expression", &n.Loc)
		}
		return sum, nil

	default:
		return value.None, diag.New(diag.Logic, fmt.Sprintf("unhandled expression node %T", expr))
	}
}
