package swiftgrep

import (
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// walker holds the coordination state for one recursive walk of one root
// path. It is constructed fresh per root per Run call rather than kept as
// package-level globals (see DESIGN.md Open Question #3): the three-atomic
// termination protocol below is the same either way, just scoped to a run
// instead of a process.
type walker struct {
	root string
	skip *skipSet

	minFileSize int64

	cache *dirCache

	// inflight counts workers currently inside scanHandle. first and
	// inited together gate the single root-open; finished is the
	// monotone flag every worker checks before doing any work.
	inflight atomic.Int32
	first    atomic.Bool
	inited   atomic.Bool
	finished atomic.Bool

	logger zerolog.Logger
}

func newWalker(root string, minFileSize int64, skip *skipSet, logger zerolog.Logger) *walker {
	w := &walker{
		root:        root,
		minFileSize: minFileSize,
		skip:        skip,
		cache:       newDirCache(dirCacheSlotCount()),
		logger:      logger,
	}
	w.first.Store(true)
	return w
}

// walkStep does at most one unit of work and reports whether the caller
// should call it again. A return of 0 means the walk for this root is
// over for this worker; 1 means "try again" — either real work was done,
// or this call found the cache transiently empty and the caller should
// retry (other workers may be about to publish more directories).
//
// recursed is true when walkStep is being re-entered immediately after the
// caller's own scanHandle discovered a new subdirectory; it bypasses the
// single-root-open gate, since by construction the cache cannot be empty
// in that case (the caller just inserted into it).
func (w *walker) walkStep(recursed bool, v fileVisitor) int {
	if w.finished.Load() {
		return 0
	}

	var h *dirHandle
	if !recursed && w.cache.entries.Load() == 0 {
		if w.inflight.Load() == 0 && w.inited.Load() {
			w.finished.Store(true)
			return 0
		}
		if !w.first.CompareAndSwap(true, false) {
			return 1
		}

		rh, err := openRootDir(w.root)
		if err != nil {
			w.logger.Error().Err(err).Str("path", w.root).Str("op", "open").Msg("open root")
			w.finished.Store(true)
			return 0
		}
		w.cache.insert(rh)
		w.inited.Store(true)
		h = rh
	} else {
		h = w.cache.fetch1()
		if h == nil {
			return 1
		}
	}

	w.inflight.Add(1)
	w.scanHandle(h, v)
	w.inflight.Add(-1)
	return 1
}

// fileVisitor is whatever the walker should do with each regular file it
// discovers. *Matcher implements it for the regex-matching core; the
// metadata filter implements it with a predicate test instead, reusing
// every bit of traversal, caching, and termination logic below.
type fileVisitor interface {
	Visit(dir *dirHandle, name string, st Stat) error
}

// scanHandle drains h's entries to completion, dispatching each regular
// file to v and opening+inserting each subdirectory before recursing into
// walkStep once per discovery. Multiple workers may call scanHandle on the
// same h concurrently; dirHandle.readdirNext is what makes that safe.
func (w *walker) scanHandle(h *dirHandle, v fileVisitor) {
	defer h.release(w.cache)

	for {
		ent, ok, err := h.readdirNext()
		if err != nil {
			w.logger.Warn().Err(err).Str("path", h.path).Str("op", "readdir").Msg("readdir")
			return
		}
		if !ok {
			return
		}

		switch ent.kind {
		case dirEntDir:
			if w.skip.skip(ent.name) {
				continue
			}
			ch, err := openChildDir(h, ent.name)
			if err != nil {
				w.logger.Warn().Err(err).Str("path", joinDisplay(h.path, ent.name)).Str("op", "open").Msg("open subdirectory")
				continue
			}
			w.cache.insert(ch)
			w.walkStep(true, v)

		case dirEntReg:
			st, err := statAt(h, ent.name)
			if err != nil {
				w.logger.Warn().Err(err).Str("path", joinDisplay(h.path, ent.name)).Str("op", "stat").Msg("stat file")
				continue
			}
			if st.Size < w.minFileSize {
				continue
			}
			if err := v.Visit(h, ent.name, st); err != nil {
				w.logger.Warn().Err(err).Str("path", joinDisplay(h.path, ent.name)).Str("op", "scan").Msg("scan file")
			}
		}
	}
}

func joinDisplay(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// runWorkers spawns cfg.Cores goroutines that cooperatively drain w via
// walkStep until it reports global termination, then waits for all of
// them. Each worker is bound to a distinct CPU where the platform supports
// it, mirroring the "pinned by CPU affinity" design named for the original
// recursive-walk tool this module reimplements.
func runWorkers(w *walker, cores int, newVisitor func() fileVisitor) error {
	if cores <= 0 {
		cores = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	for i := 0; i < cores; i++ {
		i := i
		g.Go(func() error {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			pinToCPU(i)

			v := newVisitor()
			for w.walkStep(false, v) != 0 {
			}
			return nil
		})
	}
	return g.Wait()
}
