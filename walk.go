package swiftgrep

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Visitor is the per-entry callback for a tree walk that has no need for
// the regex engine — the metadata filter's predicate test, for instance.
// It only sees a display path and the entry's already-fetched Stat, never
// the walker's internal directory handle.
type Visitor interface {
	Visit(path string, st Stat) error
}

// visitorAdapter lets any Visitor satisfy the internal fileVisitor
// interface the walker actually drives, so WalkTree can reuse runRoot,
// runWorkers, and scanFlat unchanged.
type visitorAdapter struct{ v Visitor }

func (a visitorAdapter) Visit(dir *dirHandle, name string, st Stat) error {
	return a.v.Visit(joinDisplay(dir.path, name), st)
}

// WalkTree drives the same parallel walker Run uses — DirCache, the
// three-atomic termination protocol, CPU-pinned workers, skip-dirs — but
// against an arbitrary Visitor instead of a regex Matcher. This is the
// hook the metadata filter package uses to reuse the walk without compiling
// any pattern. Only WithRecursive, WithCores,
// WithMinFileSize, and WithSkipDirs are meaningful here; pattern-related
// options are silently ignored since no pattern is ever compiled.
func WalkTree(ctx context.Context, roots []string, newVisitor func() Visitor, opts ...Option) error {
	cfg := applyOptions(opts)

	if cfg.Cores > 1 && !cfg.Recursive {
		return &ConfigError{Field: "cores", Msg: "a core count greater than 1 requires recursive mode"}
	}
	if len(roots) == 0 {
		return &ConfigError{Field: "roots", Msg: "at least one root path is required"}
	}

	logger := newLogger()
	skip := newSkipSet(cfg.SkipDirs)

	newWorkerVisitor := func() fileVisitor { return visitorAdapter{newVisitor()} }

	g, gctx := errgroup.WithContext(ctx)
	for _, root := range roots {
		root := root
		g.Go(func() error {
			return runRoot(gctx, root, cfg, skip, logger, newWorkerVisitor)
		})
	}
	return g.Wait()
}
