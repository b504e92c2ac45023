package engine

import "bytes"

// literalPattern matches a fixed string via bytes.Index. This is the
// streaming engine's literal fast path (-H -S with a non-regex pattern):
// Aho-Corasick multi-pattern machinery would be strictly worse here than
// the standard library's tuned single-pattern substring search, so this is
// one of the few places in the module that deliberately stays on stdlib.
type literalPattern struct {
	lit []byte
}

func (p *literalPattern) MinLen() int   { return len(p.lit) }
func (p *literalPattern) Literal() bool { return true }

func (p *literalPattern) Match(block []byte, searchStart, length int) (int, int, bool, error) {
	if len(p.lit) == 0 {
		return 0, 0, false, nil
	}
	end := searchStart + length
	if end > len(block) {
		end = len(block)
	}
	if searchStart < 0 || searchStart >= end {
		return 0, 0, false, nil
	}
	idx := bytes.Index(block[searchStart:end], p.lit)
	if idx < 0 {
		return 0, 0, false, nil
	}
	from := searchStart + idx
	return from, from + len(p.lit), true, nil
}

type streamingCompiler struct {
	literal bool
}

// NewStreaming returns the Compiler for the streaming/DFA-oriented engine
// variant. Its non-literal path shares compileGeneral with the JIT
// compiler; its literal path (set via Options.Literal) bypasses pattern
// compilation entirely.
func NewStreaming() Compiler { return &streamingCompiler{} }

func (c *streamingCompiler) Prepare(opts Options) error {
	c.literal = opts.Literal
	return nil
}

func (c *streamingCompiler) Compile(pattern string) (Pattern, error) {
	if c.literal {
		return &literalPattern{lit: []byte(pattern)}, nil
	}
	return compileGeneral(pattern)
}
