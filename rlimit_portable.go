//go:build !unix

package swiftgrep

// dirCacheSlotCount has no RLIMIT_NOFILE equivalent to query off unix, so
// the slot table falls back to a fixed size generous enough for ordinary
// trees; see dircache.go's modulo fallback for the (rare) collision case.
func dirCacheSlotCount() int {
	return defaultDirCacheSlots
}
