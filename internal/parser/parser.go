// Copyright 2026 The forge Authors
// SPDX-License-Identifier: Apache-2.0

// Package parser turns a lexeme stream into a sequence of
// ast.ParsedVariable records (spec §4.D). It is a direct two-pass
// transliteration of the teacher corpus's C++ parser: a first pass
// segments top-level bindings into (identifier, lexeme-slice, category)
// records without building any expression tree, then a second pass
// re-drives the same recursive-descent machinery over each slice in
// turn, swapping the lexeme source and resetting the cursor between
// variables exactly as the original does.
package parser

import (
	"fmt"

	"github.com/declbuild/forge/internal/ast"
	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/lexer"
)

var qualifierCategory = map[string]ast.Category{
	"Rule":      ast.SingleRule,
	"MultiRule": ast.MultiRule,
	"Clean":     ast.Clean,
	"Config":    ast.Config,
}

// variableStarts is the set of lexeme kinds legal at the head of a
// regular (non-dictionary) variable body.
var variableStarts = map[lexer.Kind]bool{
	lexer.IDENTIFIER:  true,
	lexer.LIST_START:  true,
	lexer.FN_START:    true,
	lexer.STRING:      true,
	lexer.BLOCK_START: true,
}

// parser holds the mutable scan state shared by both passes. The lexeme
// source is swapped and the cursor reset between each segmented
// variable, matching change_lexeme_source in the original.
type parser struct {
	lexemes []lexer.Lexeme
	pos     int
}

type varLexemes struct {
	identifier string
	lexemes    []lexer.Lexeme
	category   ast.Category
	loc        diag.Location
}

// Parse runs both passes over lexemes and returns the parsed variables
// in source order.
func Parse(lexemes []lexer.Lexeme) ([]ast.ParsedVariable, error) {
	p := &parser{lexemes: lexemes}

	segments, err := p.segment()
	if err != nil {
		return nil, diag.Wrap(err, "Parsing", locPtr(p.loc()))
	}

	out := make([]ast.ParsedVariable, 0, len(segments))
	for _, seg := range segments {
		p.changeLexemeSource(seg.lexemes)
		expr, err := p.parseExpr()
		if err != nil {
			return nil, diag.Wrap(err, "Parsing", locPtr(p.loc()))
		}
		out = append(out, ast.ParsedVariable{
			Identifier: seg.identifier,
			Expr:       expr,
			Category:   seg.category,
			Loc:        seg.loc,
		})
	}
	return out, nil
}

func locPtr(l diag.Location) *diag.Location { return &l }

func (p *parser) loc() diag.Location {
	if p.atEnd() {
		return diag.EOFLocation()
	}
	return p.peek().Loc
}

func (p *parser) peek() lexer.Lexeme { return p.lexemes[p.pos] }

func (p *parser) atEnd() bool { return p.pos >= len(p.lexemes) }

func (p *parser) matchKind(kinds ...lexer.Kind) bool {
	if p.atEnd() {
		return false
	}
	for _, k := range kinds {
		if p.peek().Kind == k {
			return true
		}
	}
	return false
}

func (p *parser) consume() lexer.Lexeme {
	lx := p.lexemes[p.pos]
	p.pos++
	return lx
}

func (p *parser) expect(kind lexer.Kind) (lexer.Lexeme, error) {
	if !p.matchKind(kind) {
		val := ""
		if !p.atEnd() {
			val = p.peek().Value
		}
		return lexer.Lexeme{}, diag.NewAt(diag.Syntax, fmt.Sprintf("Unexpected token '%s'", val), p.loc())
	}
	return p.consume(), nil
}

func (p *parser) changeLexemeSource(src []lexer.Lexeme) {
	p.lexemes = src
	p.pos = 0
}

// segment is the first pass: it produces the raw lexeme slices for each
// top-level binding without evaluating any expression grammar.
func (p *parser) segment() ([]varLexemes, error) {
	var out []varLexemes
	for !p.atEnd() {
		switch p.peek().Kind {
		case lexer.IDENTIFIER:
			idLex := p.consume()
			if _, err := p.expect(lexer.EQUALS); err != nil {
				return nil, err
			}
			body, err := p.consumeVarLexemes()
			if err != nil {
				return nil, err
			}
			out = append(out, varLexemes{
				identifier: idLex.Value, lexemes: body, category: ast.Regular, loc: idLex.Loc,
			})
		case lexer.DICT_QUALIFIER:
			qualLex := p.consume()
			category, ok := qualifierCategory[qualLex.Value]
			if !ok {
				return nil, diag.NewAt(diag.Syntax, fmt.Sprintf("Invalid rule type '%s'", qualLex.Value), qualLex.Loc)
			}
			idLex, err := p.expect(lexer.IDENTIFIER)
			if err != nil {
				return nil, err
			}
			body, err := p.consumeDictLexemes()
			if err != nil {
				return nil, err
			}
			out = append(out, varLexemes{
				identifier: idLex.Value, lexemes: body, category: category, loc: idLex.Loc,
			})
		default:
			p.consume()
		}
	}
	return out, nil
}

func (p *parser) consumeVarLexemes() ([]lexer.Lexeme, error) {
	if p.atEnd() || !variableStarts[p.peek().Kind] {
		val := ""
		if !p.atEnd() {
			val = p.peek().Value
		}
		return nil, diag.Wrap(
			diag.NewAt(diag.Syntax, fmt.Sprintf("Unexpected token '%s'", val), p.loc()),
			"Consuming variable lexemes", locPtr(p.loc()))
	}
	if p.peek().Kind == lexer.BLOCK_START {
		return p.consumeDictLexemes()
	}
	var out []lexer.Lexeme
	for !p.atEnd() && p.peek().Kind != lexer.NEWLINE {
		out = append(out, p.consume())
	}
	return out, nil
}

func (p *parser) consumeDictLexemes() ([]lexer.Lexeme, error) {
	blockStart, err := p.expect(lexer.BLOCK_START)
	if err != nil {
		return nil, diag.Wrap(err, "Consuming dictionary lexemes", locPtr(p.loc()))
	}

	out := []lexer.Lexeme{blockStart}
	openLocs := []diag.Location{blockStart.Loc}

	for len(openLocs) > 0 && !p.atEnd() {
		switch p.peek().Kind {
		case lexer.BLOCK_START:
			openLocs = append(openLocs, p.peek().Loc)
		case lexer.BLOCK_END:
			openLocs = openLocs[:len(openLocs)-1]
		}
		out = append(out, p.consume())
	}

	if p.atEnd() && len(openLocs) > 0 {
		return nil, diag.Wrap(
			diag.NewAt(diag.Syntax, "unclosed dictionary", openLocs[len(openLocs)-1]),
			"Consuming dictionary lexemes", &openLocs[len(openLocs)-1])
	}
	return out, nil
}

// parseExpr implements the `expr := term ( ADD expr )?` production.
func (p *parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, diag.Wrap(err, "Parsing expression", locPtr(p.loc()))
	}
	if p.matchKind(lexer.ADD) {
		loc := p.consume().Loc
		right, err := p.parseExpr()
		if err != nil {
			return nil, diag.Wrap(err, "Parsing expression", locPtr(p.loc()))
		}
		return &ast.BinaryOp{Left: left, Right: right, Loc: loc}, nil
	}
	return left, nil
}

// parseTerm implements the `term` production.
func (p *parser) parseTerm() (ast.Expr, error) {
	expr, err := p.parseTermInner()
	if err != nil {
		return nil, diag.Wrap(err, "Parsing term", locPtr(p.loc()))
	}
	return expr, nil
}

func (p *parser) parseTermInner() (ast.Expr, error) {
	if p.atEnd() {
		return nil, diag.NewAt(diag.Syntax, "Unexpected end of input", diag.EOFLocation())
	}
	switch p.peek().Kind {
	case lexer.STRING:
		lx := p.consume()
		return &ast.StringLit{Val: lx.Value, Loc: lx.Loc}, nil
	case lexer.BLOCK_START:
		return p.parseDict()
	case lexer.LIST_START:
		return p.parseList()
	case lexer.IDENTIFIER:
		idLex := p.consume()
		if p.atEnd() {
			return &ast.VarRef{ID: idLex.Value, Loc: idLex.Loc}, nil
		}
		switch p.peek().Kind {
		case lexer.FN_START:
			return p.parseFn(idLex.Value, idLex.Loc)
		case lexer.SCOPE_RESOLVER:
			p.consume()
			nameLex, err := p.expect(lexer.IDENTIFIER)
			if err != nil {
				return nil, err
			}
			return &ast.EnumLit{Scope: idLex.Value, Name: nameLex.Value, Loc: idLex.Loc}, nil
		default:
			return &ast.VarRef{ID: idLex.Value, Loc: idLex.Loc}, nil
		}
	default:
		return nil, diag.NewAt(diag.Syntax, fmt.Sprintf("Unexpected token '%s'", p.peek().Value), p.loc())
	}
}

func (p *parser) parseFn(name string, loc diag.Location) (ast.Expr, error) {
	fn, err := p.parseFnInner(name, loc)
	if err != nil {
		return nil, diag.Wrap(err, "Parsing function", locPtr(p.loc()))
	}
	return fn, nil
}

func (p *parser) parseFnInner(name string, loc diag.Location) (ast.Expr, error) {
	opening, err := p.expect(lexer.FN_START)
	if err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.atEnd() && p.peek().Kind != lexer.FN_END {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.matchKind(lexer.DELIMETER) {
			p.consume()
		}
	}
	if p.atEnd() {
		return nil, diag.NewAt(diag.Syntax, fmt.Sprintf("Unclosed bracket for function '%s'", name), opening.Loc)
	}
	p.consume() // FN_END
	return &ast.FnCall{Name: name, Args: args, Loc: loc}, nil
}

func (p *parser) parseList() (ast.Expr, error) {
	lst, err := p.parseListInner()
	if err != nil {
		return nil, diag.Wrap(err, "Parsing list", locPtr(p.loc()))
	}
	return lst, nil
}

func (p *parser) parseListInner() (ast.Expr, error) {
	opening := p.consume() // LIST_START
	var elements []ast.Expr
	for !p.atEnd() && p.peek().Kind != lexer.LIST_END {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
		if p.matchKind(lexer.DELIMETER) {
			p.consume()
		}
	}
	if p.atEnd() {
		return nil, diag.NewAt(diag.Syntax, "Unterminated list", opening.Loc)
	}
	p.consume() // LIST_END
	return &ast.ListLit{Elements: elements, Loc: opening.Loc}, nil
}

func (p *parser) parseDict() (ast.Expr, error) {
	d, err := p.parseDictInner()
	if err != nil {
		return nil, diag.Wrap(err, "Parsing dictionary", locPtr(p.loc()))
	}
	return d, nil
}

func (p *parser) parseDictInner() (ast.Expr, error) {
	opening := p.consume() // BLOCK_START
	if _, err := p.expect(lexer.NEWLINE); err != nil {
		return nil, err
	}
	var fields []ast.DictField
	for !p.atEnd() && p.peek().Kind != lexer.BLOCK_END {
		idLex, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.EQUALS); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.NEWLINE); err != nil {
			return nil, err
		}
		fields = append(fields, ast.DictField{Key: idLex.Value, Expr: val})
	}
	if p.atEnd() {
		return nil, diag.NewAt(diag.Syntax, "Failed to parse dictionary", opening.Loc)
	}
	p.consume() // BLOCK_END
	return &ast.DictLit{Fields: fields, Loc: opening.Loc}, nil
}
