//go:build unix && !linux

package swiftgrep

// extraMmapFlags is 0 on non-Linux unix targets: MAP_POPULATE has no
// portable equivalent in golang.org/x/sys/unix outside Linux.
const extraMmapFlags = 0
