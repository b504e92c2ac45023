//go:build unix

package swiftgrep

import "golang.org/x/sys/unix"

// dirCacheSlotCount sizes the DirCache slot table to the process's open
// file descriptor limit, so that indexing a slot directly by fd value
// never collides for as long as that fd stays open (see dircache.go).
func dirCacheSlotCount() int {
	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return defaultDirCacheSlots
	}
	n := int(lim.Cur)
	if n <= 0 {
		return defaultDirCacheSlots
	}
	if n > maxDirCacheSlots {
		return maxDirCacheSlots
	}
	return n
}
