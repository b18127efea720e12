// Package diag implements the build tool's diagnostic error type: a tagged
// error that accumulates context frames and a source location, and that can
// render a source excerpt the way a compiler front-end would.
//
// Grounded on original_source/src/errors/error.hpp and error.cpp (the
// build-tool's C++ Error/Location types) and on the teacher's error-handling
// idiom (marcelocantos-mk wraps low-level errors with fmt.Errorf("...: %w")
// at every call site; this package generalizes that to a structured,
// multi-frame context stack per spec §4.A/§7).
package diag

import "math"

// Location is a position into a source file.
type Location struct {
	Line    int // 1-based
	Col     int // 1-based
	FileIdx int // byte offset into the full source
}

// eofSentinel is the distinguished EOF location: the maximum value of each
// field, per spec §3.
var eofSentinel = Location{Line: math.MaxInt, Col: math.MaxInt, FileIdx: math.MaxInt}

// EOFLocation returns the distinguished EOF location.
func EOFLocation() Location { return eofSentinel }

// IsEOF reports whether loc is the distinguished EOF location.
func (loc Location) IsEOF() bool { return loc == eofSentinel }

// LineStart returns the file offset of the first column of loc's line.
func (loc Location) LineStart() int { return loc.FileIdx - (loc.Col - 1) }
