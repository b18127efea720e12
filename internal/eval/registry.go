package eval

import (
	"fmt"

	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/value"
)

// Fn is a pure builtin: it receives already-evaluated arguments and
// returns a single Value or a diagnostic error.
type Fn func(args []value.Value) (value.Value, error)

// FnRegistry is the `name -> function` mapping consulted by FnCall
// evaluation (spec §4.E). Unknown names fail with ValueError.
type FnRegistry struct {
	fns map[string]Fn
}

// NewFnRegistry returns a registry pre-populated with the default
// builtins (file_names, files) plus glob, a wildcard-matching builtin
// that keeps the corpus's pattern-matching capability available without
// reintroducing make-style pattern rules (out of scope per the rule
// model).
func NewFnRegistry() *FnRegistry {
	r := &FnRegistry{fns: make(map[string]Fn)}
	r.Register("file_names", fileNames)
	r.Register("files", filesBuiltin)
	r.Register("glob", globBuiltin)
	return r
}

// Register adds or replaces the function bound to name.
func (r *FnRegistry) Register(name string, fn Fn) {
	r.fns[name] = fn
}

// Call invokes the named function with args, failing with a ValueError
// if name is not registered.
func (r *FnRegistry) Call(name string, args []value.Value) (value.Value, error) {
	fn, ok := r.fns[name]
	if !ok {
		return value.None, diag.New(diag.Value, fmt.Sprintf("unknown function '%s'", name))
	}
	return fn(args)
}
