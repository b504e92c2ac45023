//go:build linux

package swiftgrep

import "golang.org/x/sys/unix"

// extraMmapFlags adds MAP_POPULATE on Linux, prefaulting the window's pages
// so the first scan pass doesn't take a page fault per page.
const extraMmapFlags = unix.MAP_POPULATE
