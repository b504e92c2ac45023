package swiftgrep

import "github.com/coregx/ahocorasick"

// skipSet answers "is this directory basename in the skip list" for every
// directory entry the walker discovers. A plain map would do the same job
// at small N, but the skip list is meant to hold the usual noisy
// vendor/build-output directory names and checking it is on the hot path
// of every directory entry, so it is backed by a single Aho-Corasick
// automaton built once per run instead of N string comparisons per entry.
type skipSet struct {
	automaton *ahocorasick.Automaton
}

func newSkipSet(names []string) *skipSet {
	if len(names) == 0 {
		return nil
	}
	automaton, err := ahocorasick.NewBuilder().AddStrings(names).Build()
	if err != nil {
		return nil
	}
	return &skipSet{automaton: automaton}
}

// skip reports whether name exactly matches one of the configured
// skip-directory names.
func (s *skipSet) skip(name string) bool {
	if s == nil {
		return false
	}
	for _, m := range s.automaton.FindAll([]byte(name), -1) {
		if m.Start == 0 && m.End == len(name) {
			return true
		}
	}
	return false
}
