package lexer

import (
	"fmt"
	"os"

	"github.com/declbuild/forge/internal/diag"
)

var directMapping = map[byte]Kind{
	'{': BLOCK_START,
	'}': BLOCK_END,
	'[': LIST_START,
	']': LIST_END,
	'(': FN_START,
	')': FN_END,
	',': DELIMETER,
	'=': EQUALS,
	'+': ADD,
}

// Lexer scans a single source file into a lexeme stream.
type Lexer struct {
	src []byte
	pos int // current byte offset
	loc diag.Location
}

// New creates a Lexer over src (the already-slurped file content).
func New(src []byte) *Lexer {
	return &Lexer{src: src, loc: diag.Location{Line: 1, Col: 1, FileIdx: 0}}
}

// NewFromFile slurps path and returns a Lexer over its contents. The file
// handle is closed before lexing starts (spec §5 "Scoped resources").
func NewFromFile(path string) (*Lexer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Wrap(diag.New(diag.IO, err.Error()), "Opening source file", nil)
	}
	return New(data), nil
}

// Lex scans the entire source and returns the lexeme stream, terminated
// with END_OF_FILE.
func (l *Lexer) Lex() ([]Lexeme, error) {
	var out []Lexeme
	for {
		lx, err := l.next()
		if err != nil {
			return nil, diag.Wrap(err, "Lexing", &l.loc)
		}
		out = append(out, lx)
		if lx.Kind == END_OF_FILE {
			return out, nil
		}
	}
}

// atEnd reports whether the cursor is past the end of input.
func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

// peekByte returns the current byte without advancing, or 0 at EOF.
func (l *Lexer) peekByte() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

// consume returns the current byte and advances the cursor and location.
func (l *Lexer) consume() byte {
	c := l.src[l.pos]
	l.pos++
	l.loc.FileIdx++
	if c == '\n' {
		l.loc.Line++
		l.loc.Col = 1
	} else {
		l.loc.Col++
	}
	return c
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// next produces the next lexeme starting at the current position.
func (l *Lexer) next() (Lexeme, error) {
	for {
		if l.atEnd() {
			return Lexeme{Kind: END_OF_FILE, Loc: diag.EOFLocation()}, nil
		}

		c := l.peekByte()

		if kind, ok := directMapping[c]; ok {
			loc := l.loc
			l.consume()
			return Lexeme{Kind: kind, Value: string(c), Loc: loc}, nil
		}

		if c == '\n' {
			loc := l.loc
			l.consume()
			return Lexeme{Kind: NEWLINE, Loc: loc}, nil
		}

		if isSpace(c) {
			l.consume()
			continue
		}

		if c == '#' {
			for !l.atEnd() && l.peekByte() != '\n' {
				l.consume()
			}
			continue
		}

		if c == ':' {
			return l.lexScopeResolver()
		}

		if c == '"' {
			return l.lexString()
		}

		if c == '<' {
			return l.lexQualifier()
		}

		if isIdentStart(c) {
			return l.lexIdentifier(), nil
		}

		loc := l.loc
		l.consume()
		return Lexeme{}, diag.NewAt(diag.Syntax, fmt.Sprintf("Unexpected char '%c'", c), loc)
	}
}

func (l *Lexer) lexScopeResolver() (Lexeme, error) {
	loc := l.loc
	l.consume() // first ':'
	if l.atEnd() || l.peekByte() != ':' {
		return Lexeme{}, diag.Wrap(diag.NewAt(diag.Syntax, "expected '::'", loc), "Lexing scope resolver", &loc)
	}
	l.consume() // second ':'
	return Lexeme{Kind: SCOPE_RESOLVER, Value: "::", Loc: loc}, nil
}

func (l *Lexer) lexString() (Lexeme, error) {
	loc := l.loc
	l.consume() // opening quote
	var sb []byte
	for {
		if l.atEnd() {
			return Lexeme{}, diag.Wrap(
				diag.NewAt(diag.Syntax, "unterminated string", loc), "Lexing string", &loc)
		}
		c := l.consume()
		if c == '"' {
			return Lexeme{Kind: STRING, Value: string(sb), Loc: loc}, nil
		}
		sb = append(sb, c)
	}
}

func (l *Lexer) lexQualifier() (Lexeme, error) {
	loc := l.loc
	l.consume() // '<'
	var sb []byte
	for {
		if l.atEnd() {
			return Lexeme{}, diag.Wrap(
				diag.NewAt(diag.Syntax, "unterminated dictionary qualifier", loc),
				"Lexing rule qualifier", &loc)
		}
		c := l.peekByte()
		if c == '>' {
			l.consume()
			return Lexeme{Kind: DICT_QUALIFIER, Value: string(sb), Loc: loc}, nil
		}
		if !isIdentCont(c) {
			return Lexeme{}, diag.Wrap(
				diag.NewAt(diag.Syntax, fmt.Sprintf("unexpected char '%c' in qualifier", c), l.loc),
				"Lexing rule qualifier", &loc)
		}
		sb = append(sb, l.consume())
	}
}

func (l *Lexer) lexIdentifier() Lexeme {
	loc := l.loc
	var sb []byte
	for !l.atEnd() && isIdentCont(l.peekByte()) {
		sb = append(sb, l.consume())
	}
	return Lexeme{Kind: IDENTIFIER, Value: string(sb), Loc: loc}
}
