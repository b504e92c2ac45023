package swiftgrep

const (
	defaultChunkSize  = 1 << 30 // 1 GiB mmap window
	lowMemChunkFloor  = 32 << 20
	windowOverlap     = 4 << 10
	maxContextBytes   = 511
	seqAdviseThreshold = 16 << 10

	defaultDirCacheSlots = 4096
	maxDirCacheSlots     = 1 << 20

	invertStart = "\x1b[7m"
	invertEnd   = "\x1b[27m"
)
