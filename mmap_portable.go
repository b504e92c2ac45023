//go:build !unix

package swiftgrep

// mmap_portable.go backs the File Matcher on platforms without a unix mmap
// (notably Windows). It reads the window into a plain heap buffer with
// ReadAt instead of mapping it, which is correct but forgoes the zero-copy
// page cache sharing the unix backend gets.

import (
	"fmt"
	"os"
	"runtime"
)

type fileWindow struct {
	data []byte
}

func mapWindow(fd int, offset int64, length int) (fileWindow, error) {
	if length == 0 {
		return fileWindow{}, nil
	}
	f := os.NewFile(uintptr(fd), "")
	// f does not own fd (the caller does); detach the finalizer so garbage
	// collecting this wrapper doesn't close a descriptor still in use.
	runtime.SetFinalizer(f, nil)
	buf := make([]byte, length)
	n, err := f.ReadAt(buf, offset)
	if err != nil && n == 0 {
		return fileWindow{}, fmt.Errorf("read offset=%d len=%d: %w", offset, length, err)
	}
	return fileWindow{data: buf[:n]}, nil
}

func (w fileWindow) bytes() []byte { return w.data }

func (w fileWindow) unmap() error { return nil }

func adviseSequential(fileWindow) {}
