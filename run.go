// Package swiftgrep implements a recursive, regex-matching file scanner:
// a parallel directory walker feeding mmap'd file windows through a
// per-worker regex engine into a single serialized output stream.
package swiftgrep

import (
	"context"
	"fmt"
	"io"

	"github.com/nullptr-dev/swiftgrep/engine"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Run walks every root, matching pattern against the content of every
// regular file found, and writes match records to out. It returns the
// first fatal error encountered (pattern compilation, configuration, or,
// in non-recursive mode, a root that couldn't be opened at all). In
// recursive mode a root that cannot be opened is logged and ends that
// root's walk without an error being returned. Per-file and per-directory
// errors are logged and otherwise do not stop the run.
func Run(ctx context.Context, out io.Writer, pattern string, roots []string, opts ...Option) error {
	cfg := applyOptions(opts)

	if cfg.Cores > 1 && !cfg.Recursive {
		return &ConfigError{Field: "cores", Msg: "a core count greater than 1 requires recursive mode"}
	}
	if len(roots) == 0 {
		return &ConfigError{Field: "roots", Msg: "at least one root path is required"}
	}

	compiler := engineCompiler(cfg.Streaming)
	if err := compiler.Prepare(engine.Options{Literal: cfg.Literal}); err != nil {
		return &ConfigError{Field: "pattern", Msg: err.Error()}
	}
	// Compile once up front so a bad pattern fails fast, before any
	// directory is opened; each worker below compiles its own private
	// copy, since an engine.Pattern is not safe for concurrent use.
	p, err := compiler.Compile(pattern)
	if err != nil {
		return &PatternError{Pattern: pattern, Err: err}
	}
	// A file shorter than the pattern's minimum match length can never
	// match; fold that bound into the walker's size prefilter so short
	// files are skipped before they're ever opened. An explicit
	// WithMinFileSize only raises the floor, never lowers it.
	if minLen := int64(p.MinLen()); minLen > cfg.MinFileSize {
		cfg.MinFileSize = minLen
	}

	logger := newLogger()
	sink := newOutputSink(out, cfg.Flags.NulSeparated)
	skip := newSkipSet(cfg.SkipDirs)

	flags := cfg.Flags
	flags.PrintPath = flags.PrintPath || cfg.Recursive || len(roots) > 1

	newWorkerVisitor := func() fileVisitor {
		p, err := compiler.Compile(pattern)
		if err != nil {
			// Unreachable: the same pattern already compiled successfully
			// above against the same prepared Compiler.
			panic(fmt.Sprintf("recompiling validated pattern: %v", err))
		}
		return newMatcher(p, cfg.ChunkSize, flags, sink)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, root := range roots {
		root := root
		g.Go(func() error {
			return runRoot(gctx, root, cfg, skip, logger, newWorkerVisitor)
		})
	}
	return g.Wait()
}

func engineCompiler(streaming bool) engine.Compiler {
	if streaming {
		return engine.NewStreaming()
	}
	return engine.NewJIT()
}

func runRoot(ctx context.Context, root string, cfg config, skip *skipSet, logger zerolog.Logger, newWorkerVisitor func() fileVisitor) error {
	if !cfg.Recursive {
		return scanFlat(root, cfg.MinFileSize, logger, newWorkerVisitor())
	}

	// walkStep has no cancellation hook of its own — the termination
	// protocol is driven entirely by the DirCache's own emptiness — so a
	// canceled ctx does not truncate an in-flight walk of this root.
	// errgroup still reports the cancellation to the caller once every
	// root's goroutine returns.
	w := newWalker(root, cfg.MinFileSize, skip, logger)
	if err := runWorkers(w, cfg.Cores, newWorkerVisitor); err != nil {
		return err
	}
	return ctx.Err()
}

// scanFlat scans only the direct entries of root, ignoring subdirectories,
// for the non-recursive CLI mode. It is single-threaded: a flat directory
// is bottlenecked on one readdir no matter how many workers read from it.
func scanFlat(root string, minFileSize int64, logger zerolog.Logger, v fileVisitor) error {
	h, err := openRootDir(root)
	if err != nil {
		return &IOError{Op: "open", Path: root, Err: err}
	}
	defer closeFd(h.fd)

	for {
		ent, ok, err := h.readdirNext()
		if err != nil {
			logger.Warn().Err(err).Str("path", root).Str("op", "readdir").Msg("readdir")
			return nil
		}
		if !ok {
			return nil
		}
		if ent.kind != dirEntReg {
			continue
		}
		st, err := statAt(h, ent.name)
		if err != nil {
			logger.Warn().Err(err).Str("path", joinDisplay(root, ent.name)).Str("op", "stat").Msg("stat file")
			continue
		}
		if st.Size < minFileSize {
			continue
		}
		if err := v.Visit(h, ent.name, st); err != nil {
			logger.Warn().Err(err).Str("path", joinDisplay(root, ent.name)).Str("op", "scan").Msg("scan file")
		}
	}
}
