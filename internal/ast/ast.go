// Package ast defines the expression tree produced by the parser (spec
// §3 "Expression (AST node)") and the ParsedVariable records that carry
// a category alongside each top-level binding. Rather than the
// virtual-dispatch "evaluate()" method the spec's capability set
// suggests, evaluation itself lives in package eval as a type switch —
// the idiomatic Go shape for a closed sum type, and the same shape
// marcelocantos-mk uses for its own closed Rule variants in graph.go.
package ast

import "github.com/declbuild/forge/internal/diag"

// Expr is the closed set of expression-tree nodes. Children reports a
// node's immediate sub-expressions, in evaluation order, for callers
// that need to walk the tree (dependency extraction in package vareval
// walks VarRef children this way).
type Expr interface {
	Children() []Expr
	Location() diag.Location
}

// BinaryOp is the single supported infix operator, ADD, which dispatches
// to Value.Add at evaluation time.
type BinaryOp struct {
	Left, Right Expr
	Loc         diag.Location
}

func (n *BinaryOp) Children() []Expr          { return []Expr{n.Left, n.Right} }
func (n *BinaryOp) Location() diag.Location   { return n.Loc }

// StringLit is a quoted string literal.
type StringLit struct {
	Val string
	Loc diag.Location
}

func (n *StringLit) Children() []Expr        { return nil }
func (n *StringLit) Location() diag.Location { return n.Loc }

// EnumLit is a `Scope::Name` scoped-enum literal.
type EnumLit struct {
	Scope, Name string
	Loc         diag.Location
}

func (n *EnumLit) Children() []Expr        { return nil }
func (n *EnumLit) Location() diag.Location { return n.Loc }

// VarRef is a bare identifier referring to another top-level binding.
type VarRef struct {
	ID  string
	Loc diag.Location
}

func (n *VarRef) Children() []Expr        { return nil }
func (n *VarRef) Location() diag.Location { return n.Loc }

// FnCall is a builtin function invocation, `name(args...)`.
type FnCall struct {
	Name string
	Args []Expr
	Loc  diag.Location
}

func (n *FnCall) Children() []Expr        { return n.Args }
func (n *FnCall) Location() diag.Location { return n.Loc }

// ListLit is a `[a, b, c]` list literal.
type ListLit struct {
	Elements []Expr
	Loc      diag.Location
}

func (n *ListLit) Children() []Expr        { return n.Elements }
func (n *ListLit) Location() diag.Location { return n.Loc }

// DictField is one `key = expr` binding inside a DictLit.
type DictField struct {
	Key  string
	Expr Expr
}

// DictLit is a `{ k = v ... }` dictionary literal.
type DictLit struct {
	Fields []DictField
	Loc    diag.Location
}

func (n *DictLit) Children() []Expr {
	out := make([]Expr, len(n.Fields))
	for i, f := range n.Fields {
		out[i] = f.Expr
	}
	return out
}
func (n *DictLit) Location() diag.Location { return n.Loc }

// Category is the qualifier-derived kind of a top-level binding (spec §3
// ParsedVariable, §4.D's qualifier→category table).
type Category int

const (
	Regular Category = iota
	SingleRule
	MultiRule
	Clean
	Config
)

func (c Category) String() string {
	switch c {
	case Regular:
		return "Regular"
	case SingleRule:
		return "SingleRule"
	case MultiRule:
		return "MultiRule"
	case Clean:
		return "Clean"
	case Config:
		return "Config"
	default:
		return "Unknown"
	}
}

// ParsedVariable is one top-level binding after both parser passes.
type ParsedVariable struct {
	Identifier string
	Expr       Expr
	Category   Category
	Loc        diag.Location
}
