package eval

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/value"
)

// fileNames implements `file_names(list<String>) -> list<String>`: for
// each element, strip from the first '.' to the end of the string.
func fileNames(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.None, diag.New(diag.Value, fmt.Sprintf("file_names expects 1 argument, got %d", len(args)))
	}
	lst, err := args[0].AsList()
	if err != nil {
		return value.None, err
	}
	names, err := value.Vectorise(lst, value.TypeString)
	if err != nil {
		return value.None, err
	}

	out := value.NewList()
	for _, name := range names {
		if i := strings.IndexByte(name, '.'); i >= 0 {
			name = name[:i]
		}
		out.Append(value.String(name))
	}
	return value.ListVal(out), nil
}

// filesBuiltin implements `files(path: String, extensions: list<String>)`:
// recursively walk path, keeping regular files whose full extension
// (leading dot included) is a member of extensions.
func filesBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.None, diag.New(diag.Value, fmt.Sprintf("files expects 2 arguments, got %d", len(args)))
	}
	root, err := args[0].AsString()
	if err != nil {
		return value.None, err
	}
	extList, err := args[1].AsList()
	if err != nil {
		return value.None, err
	}
	extensions, err := value.Vectorise(extList, value.TypeString)
	if err != nil {
		return value.None, err
	}
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[ext] = true
	}

	if _, err := filepath.Abs(root); err != nil {
		return value.None, diag.New(diag.IO, err.Error())
	}

	out := value.NewList()
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if wanted[filepath.Ext(path)] {
			out.Append(value.String(path))
		}
		return nil
	})
	if walkErr != nil {
		return value.None, diag.New(diag.IO, fmt.Sprintf("files(%q): %s", root, walkErr.Error()))
	}
	return value.ListVal(out), nil
}

// globBuiltin implements `glob(pattern: String) -> list<String>`, a
// supplementary builtin matching doublestar `**` patterns against the
// working directory tree. It has no invariant counterpart in the value
// model beyond `files`/`file_names`; it exists to give the wildcard
// capability a home without reviving pattern-rule matching.
func globBuiltin(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.None, diag.New(diag.Value, fmt.Sprintf("glob expects 1 argument, got %d", len(args)))
	}
	pattern, err := args[0].AsString()
	if err != nil {
		return value.None, err
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return value.None, diag.New(diag.Value, fmt.Sprintf("glob(%q): %s", pattern, err.Error()))
	}
	out := value.NewList()
	for _, m := range matches {
		out.Append(value.String(m))
	}
	return value.ListVal(out), nil
}
