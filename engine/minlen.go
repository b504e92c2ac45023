package engine

import "regexp/syntax"

// minMatchLen computes a lower bound on the byte length of any match of
// pattern. No dependency in this module's set exposes this introspection on
// a compiled pattern, so it's derived directly from the parsed AST —
// regexp/syntax is the same AST Go's own regexp package compiles from, and
// is the standard tool for this kind of static analysis, not a workaround
// for a library gap.
func minMatchLen(pattern string) int {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return 0
	}
	return minWidth(re.Simplify())
}

func minWidth(re *syntax.Regexp) int {
	switch re.Op {
	case syntax.OpLiteral:
		return len(re.Rune)
	case syntax.OpConcat:
		total := 0
		for _, sub := range re.Sub {
			total += minWidth(sub)
		}
		return total
	case syntax.OpAlternate:
		min := -1
		for _, sub := range re.Sub {
			if w := minWidth(sub); min == -1 || w < min {
				min = w
			}
		}
		if min < 0 {
			return 0
		}
		return min
	case syntax.OpCapture, syntax.OpPlus:
		return minWidth(re.Sub[0])
	case syntax.OpRepeat:
		if re.Min <= 0 {
			return 0
		}
		return re.Min * minWidth(re.Sub[0])
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL, syntax.OpCharClass:
		return 1
	default:
		// OpStar, OpQuest, and all zero-width assertions contribute no
		// guaranteed bytes.
		return 0
	}
}
