package swiftgrep

import "runtime"

// Option configures [Run]. Options are applied in order.
type Option func(*config)

type config struct {
	Cores       int
	Recursive   bool
	ChunkSize   int
	MinFileSize int64
	LowMem      int
	Literal     bool
	Streaming   bool
	SkipDirs    []string
	Flags       MatchFlags
}

// WithCores sets the number of worker goroutines that walk and scan
// concurrently. Each worker is pinned to a distinct CPU where the platform
// supports it (see walker.go).
//
// Values <= 0 (and leaving the option out) use GOMAXPROCS for a recursive
// run and a single worker otherwise. A core count greater than 1 requires
// [WithRecursive]: without it Run and WalkTree return a *ConfigError, since
// a flat, non-recursive run reads its single directory from one goroutine.
func WithCores(n int) Option {
	return func(c *config) { c.Cores = n }
}

// WithRecursive enables recursive directory traversal. When disabled, only
// the entries of the given root paths are scanned.
func WithRecursive() Option {
	return func(c *config) { c.Recursive = true }
}

// WithChunkSize sets the mmap window size used by the File Matcher, in
// bytes. Values <= 0 use the default of 1 GiB. The size is then quartered
// when more than one core is in use and halved once per [WithLowMem];
// neither step takes it below 32 MiB.
func WithChunkSize(n int) Option {
	return func(c *config) { c.ChunkSize = n }
}

// WithMinFileSize skips files smaller than n bytes before they are ever
// opened or mapped.
func WithMinFileSize(n int64) Option {
	return func(c *config) { c.MinFileSize = n }
}

// WithLowMem halves the mmap window size, down to a 32 MiB floor, trading
// fewer pages resident at once for more window transitions per large
// file. Per the CLI's -L flag, it is repeatable: applying it twice halves
// the window twice.
func WithLowMem() Option {
	return func(c *config) { c.LowMem++ }
}

// WithLiteralPattern treats the pattern as a fixed string rather than a
// regular expression. Requires [WithStreamingEngine]: the general engine
// has no literal-only fast path, so Run returns a *ConfigError otherwise.
func WithLiteralPattern() Option {
	return func(c *config) { c.Literal = true }
}

// WithStreamingEngine selects the streaming/DFA-oriented engine variant
// (CLI flag -H) instead of the general JIT engine.
func WithStreamingEngine() Option {
	return func(c *config) { c.Streaming = true }
}

// WithSkipDirs excludes directories whose basename is in names from the
// walk entirely: they are never opened, inserted into the DirCache, or
// recursed into. Matching is done with a single Aho-Corasick automaton
// built once per run, not a per-entry linear scan.
func WithSkipDirs(names []string) Option {
	return func(c *config) { c.SkipDirs = names }
}

// WithMatchFlags sets the File Matcher's output mode (line/offset/count,
// single-match, NUL-separated records).
func WithMatchFlags(f MatchFlags) Option {
	return func(c *config) { c.Flags = f }
}

func defaultConfig() config {
	return config{
		ChunkSize: defaultChunkSize,
	}
}

func applyOptions(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if c.Cores <= 0 {
		c.Cores = 1
		if c.Recursive {
			c.Cores = runtime.GOMAXPROCS(0)
		}
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
	// Multicore runs share the same total page-cache budget across more
	// concurrently mapped windows, so each window quarters.
	if c.Cores > 1 {
		c.ChunkSize >>= 2
		if c.ChunkSize < lowMemChunkFloor {
			c.ChunkSize = lowMemChunkFloor
		}
	}
	for i := 0; i < c.LowMem && c.ChunkSize > lowMemChunkFloor; i++ {
		c.ChunkSize /= 2
		if c.ChunkSize < lowMemChunkFloor {
			c.ChunkSize = lowMemChunkFloor
		}
	}
	return c
}
