package engine

import (
	"fmt"

	"github.com/coregx/coregex/meta"
)

// compiledPattern wraps github.com/coregx/coregex/meta.Engine, the only
// general-purpose regex backend retrieved alongside this module's example
// pack. meta.Engine is itself a strategy-selecting meta-engine (NFA, DFA,
// or both, chosen per pattern), so it backs both the JIT engine below and
// the non-literal path of the streaming engine in streaming.go — see
// DESIGN.md's Open Question on sharing one real backend across two named
// engine variants.
type compiledPattern struct {
	eng    *meta.Engine
	minLen int
}

func compileGeneral(pattern string) (*compiledPattern, error) {
	eng, err := meta.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return &compiledPattern{eng: eng, minLen: minMatchLen(pattern)}, nil
}

func (p *compiledPattern) MinLen() int    { return p.minLen }
func (p *compiledPattern) Literal() bool  { return false }

func (p *compiledPattern) Match(block []byte, searchStart, length int) (int, int, bool, error) {
	end := searchStart + length
	if end > len(block) {
		end = len(block)
	}
	if searchStart < 0 || searchStart >= end {
		return 0, 0, false, nil
	}
	m := p.eng.Find(block[searchStart:end])
	if m == nil {
		return 0, 0, false, nil
	}
	return searchStart + m.Start(), searchStart + m.End(), true, nil
}

type jitCompiler struct{}

// NewJIT returns the Compiler for the general-purpose engine variant
// (engine.Pattern backed by coregex's strategy-selecting meta.Engine).
func NewJIT() Compiler { return &jitCompiler{} }

func (c *jitCompiler) Prepare(opts Options) error {
	if opts.Literal {
		return ErrLiteralUnsupported
	}
	return nil
}

func (c *jitCompiler) Compile(pattern string) (Pattern, error) {
	return compileGeneral(pattern)
}
