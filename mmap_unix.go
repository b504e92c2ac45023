//go:build unix

package swiftgrep

// mmap_unix.go backs the File Matcher's window mapping on every unix
// target (linux, darwin, the BSDs). The mmap/madvise/munmap cycle is
// grounded on calvinalkan-agent-task/pkg/slotcache/open.go's
// mmapAndCreateCache, which uses the same syscall.Mmap(fd, 0, size,
// PROT_READ|PROT_WRITE, MAP_SHARED) idiom for a different durable-cache
// use case; here the mapping is read-only and private.

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mmapFlags is MAP_PRIVATE|MAP_NORESERVE, with MAP_POPULATE folded in on
// platforms where the constant exists. See DESIGN.md Open Question #2:
// the spec this module implements flagged MAP_PRIVATE || MAP_NORESERVE |
// MAP_POPULATE as an unintentional logical-OR; this is the bitwise-OR the
// original author evidently meant.
const mmapFlags = unix.MAP_PRIVATE | unix.MAP_NORESERVE | extraMmapFlags

type fileWindow struct {
	data []byte
}

func mapWindow(fd int, offset int64, length int) (fileWindow, error) {
	if length == 0 {
		return fileWindow{}, nil
	}
	data, err := unix.Mmap(fd, offset, length, unix.PROT_READ, mmapFlags)
	if err != nil {
		return fileWindow{}, fmt.Errorf("mmap offset=%d len=%d: %w", offset, length, err)
	}
	return fileWindow{data: data}, nil
}

func (w fileWindow) bytes() []byte { return w.data }

func (w fileWindow) unmap() error {
	if w.data == nil {
		return nil
	}
	if err := unix.Munmap(w.data); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}

// adviseSequential hints the kernel's readahead for a window that will be
// scanned once, start to end, and not revisited.
func adviseSequential(w fileWindow) {
	if w.data == nil {
		return
	}
	_ = unix.Madvise(w.data, unix.MADV_SEQUENTIAL)
}
