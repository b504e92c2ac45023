// Package engine defines the regex capability consumed by the File
// Matcher: compiling a pattern once per run and producing a Pattern that
// each worker's private Matcher drives against its own mmap windows.
package engine

import "errors"

// Options configures a Compiler before Compile is called. It mirrors the
// "prepare(options)" step described for the regex engine: consume
// configuration once, then compile any number of patterns against it.
type Options struct {
	// Literal treats every pattern passed to Compile as a fixed string
	// rather than a regular expression. Not every Compiler supports this.
	Literal bool
}

// Pattern is a compiled, ready-to-run regex. A Pattern is used by exactly
// one goroutine at a time; callers needing concurrent matching compile one
// Pattern per worker from the same source string.
type Pattern interface {
	// MinLen is a lower bound, in bytes, on the length of any match. The
	// File Matcher uses it to stop scanning a window once fewer than
	// MinLen bytes remain, without asking the engine to try and fail.
	MinLen() int

	// Literal reports whether this Pattern matches a fixed string rather
	// than general regex syntax.
	Literal() bool

	// Match finds the leftmost match starting at or after searchStart,
	// within block[searchStart:searchStart+length]. Returned offsets
	// (from, to) are absolute indices into block, not relative to
	// searchStart, so callers can use them directly against the window.
	Match(block []byte, searchStart, length int) (from, to int, found bool, err error)
}

// Compiler turns pattern source text into a Pattern. A Compiler is
// prepared once per run (via Prepare) and then asked to Compile as many
// times as there are workers, since each worker needs its own Pattern
// instance.
type Compiler interface {
	Prepare(opts Options) error
	Compile(pattern string) (Pattern, error)
}

// ErrLiteralUnsupported is returned by a Compiler's Prepare when asked for
// literal mode but the underlying engine has no such fast path.
var ErrLiteralUnsupported = errors.New("engine: literal mode not supported by this engine")
