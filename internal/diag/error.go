package diag

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Kind is the closed set of diagnostic error categories (spec §3, §7).
type Kind int

const (
	Unknown Kind = iota
	IO
	Syntax
	Type
	Value
	Logic
	System
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "IOError"
	case Syntax:
		return "SyntaxError"
	case Type:
		return "TypeError"
	case Value:
		return "ValueError"
	case Logic:
		return "LogicError"
	case System:
		return "SystemError"
	default:
		return "UnknownError"
	}
}

// excerptLines is the default number of source lines shown in an excerpt.
const excerptLines = 3

// Error is the tagged diagnostic error type shared by every layer of the
// pipeline (spec §3 "Diagnostic Error", §4.A, §7).
type Error struct {
	Kind    Kind
	Message string
	Loc     *Location
	Context []string
}

// New creates a diagnostic error with no location.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewAt creates a diagnostic error with a location.
func NewAt(kind Kind, message string, loc Location) *Error {
	return &Error{Kind: kind, Message: message, Loc: &loc}
}

// Error implements the standard error interface so *Error can be returned
// as a plain error and recovered with errors.As. Wrap itself only
// recognises a *Error passed directly, not one wrapped with %w.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HasLoc reports whether the location field has been set.
func (e *Error) HasLoc() bool { return e.Loc != nil }

// AddCtx pushes a context frame onto the error's context stack.
func (e *Error) AddCtx(ctx string) { e.Context = append(e.Context, ctx) }

// Wrap implements the propagation policy of spec §4.A/§7: if underlying is
// already a *diag.Error, ctx is pushed onto its context stack, and loc is
// attached only if the error doesn't already carry one. Otherwise underlying
// is wrapped into an Unknown-kind error with ctx as its first context frame.
// A nil underlying error yields nil; any other input yields a non-nil *Error.
func Wrap(underlying error, ctx string, loc *Location) *Error {
	if underlying == nil {
		return nil
	}
	var de *Error
	if asDiag(underlying, &de) {
		de.AddCtx(ctx)
		if !de.HasLoc() && loc != nil {
			de.Loc = loc
		}
		return de
	}
	e := New(Unknown, underlying.Error())
	if loc != nil {
		e.Loc = loc
	}
	e.AddCtx(ctx)
	return e
}

func asDiag(err error, out **Error) bool {
	if de, ok := err.(*Error); ok {
		*out = de
		return true
	}
	return false
}

// Format renders the error in the spec §4.A user-visible format:
//
//	Exception thrown: <KindName>
//	Message: <msg>
//	Location: file:line:col
//	<excerpt>
//	Context: Error occurred during:
//	- [ctx_0]
//	- [ctx_1] ...
func (e *Error) Format(srcFile string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Exception thrown: %s", e.Kind)
	fmt.Fprintf(&b, "\nMessage: %s", e.Message)

	if e.Loc != nil {
		fmt.Fprintf(&b, "\nLocation: %s:%d:%d\n", srcFile, e.Loc.Line, e.Loc.Col)
		excerpt, err := formatExcerpt(srcFile, *e.Loc)
		if err != nil {
			b.WriteString("Failed to read code excerpt: " + err.Error())
		} else {
			b.WriteString(excerpt)
		}
	}

	if len(e.Context) > 0 {
		b.WriteString("\nContext: Error occurred during:")
		for _, ctx := range e.Context {
			fmt.Fprintf(&b, "\n- [%s]", ctx)
		}
	}

	return b.String()
}

func formatExcerpt(srcFile string, loc Location) (string, error) {
	chunk, err := readChunk(srcFile, loc.LineStart(), excerptLines)
	if err != nil {
		return "", err
	}

	initialLno := strconv.Itoa(loc.Line)
	whitespacePrefix := strings.Repeat(" ", len(initialLno))

	var b strings.Builder
	for relLno := 1; relLno <= len(chunk); relLno++ {
		if relLno == 1 {
			b.WriteString(initialLno)
		} else {
			b.WriteString(whitespacePrefix)
		}
		b.WriteString(" |")
		b.WriteString(chunk[relLno-1])

		if relLno == len(chunk) {
			break
		}
		b.WriteString("\n")

		b.WriteString(whitespacePrefix)
		b.WriteString(" |")
		if relLno == 1 {
			b.WriteString(strings.Repeat(" ", loc.Col))
			b.WriteString("^ error here")
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// readChunk reads up to maxLines lines from src starting at byte offset
// start, splitting on '\n'. The last chunk may be shorter than maxLines if
// the file ends first.
func readChunk(src string, start, maxLines int) ([]string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, err
	}
	if start < 0 {
		start = 0
	}
	if start > len(data) {
		start = len(data)
	}
	rest := string(data[start:])
	lines := strings.Split(rest, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines, nil
}

// caretStyle and headerStyle provide an ANSI-styled rendering of the
// diagnostic for terminal display, layered on top of the spec-mandated
// plain-text Format(). Grounded on wharflab-tally's use of
// charmbracelet/lipgloss for terminal rendering.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	caretStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

// Render is the colorized counterpart of Format: it styles the header and
// caret lines unconditionally, without checking whether the destination is
// a terminal. No caller in this module uses it; the CLI and the
// orchestrator print Error() and Format respectively. Its byte content is
// not part of the spec's contract; only Format's plain-text layout is
// normative.
func (e *Error) Render(srcFile string) string {
	plain := e.Format(srcFile)
	lines := strings.Split(plain, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "Exception thrown:"):
			lines[i] = headerStyle.Render(line)
		case strings.Contains(line, "^ error here"):
			lines[i] = caretStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
