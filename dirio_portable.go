//go:build !linux

package swiftgrep

// dirio_portable.go backs every non-Linux platform with os.ReadDir and
// os.Open/os.Lstat, adapted from the teacher's io_unix.go/io_other.go
// fallback tier. It trades the Linux fast path's raw getdents64 parse for
// portability: d_type is never available here, but os.ReadDir has already
// paid for an Lstat per entry, so there is no DT_UNKNOWN-style second
// syscall to avoid.

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

func openRootDir(path string) (*dirHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return newPortableDirHandle(f, path), nil
}

func openChildDir(parent *dirHandle, name string) (*dirHandle, error) {
	childPath := filepath.Join(parent.path, name)
	f, err := os.Open(childPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return newPortableDirHandle(f, childPath), nil
}

// openFileAt opens name relative to parent for reading. uid is accepted for
// signature parity with the Linux fast path's O_NOATIME decision; no
// portable equivalent of that flag exists, so it goes unused here.
func openFileAt(parent *dirHandle, name string, uid uint32) (int, error) {
	_ = uid
	f, err := os.Open(filepath.Join(parent.path, name))
	if err != nil {
		return -1, fmt.Errorf("open %s: %w", name, err)
	}
	return int(f.Fd()), nil
}

func closeFd(fd int) {
	if f := portableDirFiles.remove(fd); f != nil {
		_ = f.Close()
		return
	}
	_ = os.NewFile(uintptr(fd), "").Close()
}

func statAt(parent *dirHandle, name string) (Stat, error) {
	fi, err := os.Lstat(filepath.Join(parent.path, name))
	if err != nil {
		return Stat{}, fmt.Errorf("lstat %s: %w", name, err)
	}
	uid, gid := portableOwner(fi)
	return Stat{Size: fi.Size(), Mode: toRawMode(fi.Mode()), Uid: uid, Gid: gid}, nil
}

// POSIX type bits, reproduced here rather than imported from
// golang.org/x/sys/unix: this file's build tag spans non-unix platforms
// too, so the raw st_mode encoding has to be synthesized from
// fs.FileMode's portable bits instead.
const (
	rawIFREG  = 0100000
	rawIFDIR  = 0040000
	rawIFLNK  = 0120000
	rawIFIFO  = 0010000
	rawIFCHR  = 0020000
	rawIFBLK  = 0060000
	rawIFSOCK = 0140000
)

// toRawMode reconstructs a Linux-style raw st_mode from fs.FileMode so the
// metadata filter's type and permission tests see the same bit layout on
// every platform; fs.FileMode's own permission bits already line up with
// POSIX (the low 9 bits), only the type tag needs translating.
func toRawMode(m fs.FileMode) uint32 {
	raw := uint32(m.Perm())
	switch {
	case m&fs.ModeDir != 0:
		raw |= rawIFDIR
	case m&fs.ModeSymlink != 0:
		raw |= rawIFLNK
	case m&fs.ModeNamedPipe != 0:
		raw |= rawIFIFO
	case m&fs.ModeSocket != 0:
		raw |= rawIFSOCK
	case m&fs.ModeDevice != 0 && m&fs.ModeCharDevice != 0:
		raw |= rawIFCHR
	case m&fs.ModeDevice != 0:
		raw |= rawIFBLK
	default:
		raw |= rawIFREG
	}
	return raw
}

// portableFileTable maps a dirHandle.fd back to the *os.File driving its
// refills; ReadDir doesn't have a raw fd-keyed syscall path the way
// getdents64 does, so the open file has to be kept around for the handle's
// lifetime, not just its numeric descriptor.
type portableFileTable struct {
	mu    sync.Mutex
	files map[int]*os.File
}

func newPortableFileTable() *portableFileTable {
	return &portableFileTable{files: make(map[int]*os.File)}
}

func (t *portableFileTable) register(f *os.File) int {
	fd := int(f.Fd())
	t.mu.Lock()
	t.files[fd] = f
	t.mu.Unlock()
	return fd
}

func (t *portableFileTable) lookup(fd int) *os.File {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.files[fd]
}

func (t *portableFileTable) remove(fd int) *os.File {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := t.files[fd]
	delete(t.files, fd)
	return f
}

var portableDirFiles = newPortableFileTable()

func newPortableDirHandle(f *os.File, path string) *dirHandle {
	fd := portableDirFiles.register(f)
	return newDirHandle(fd, path)
}

func refillDirHandle(h *dirHandle) (n int, done bool, err error) {
	f := portableDirFiles.lookup(h.fd)
	if f == nil {
		return 0, true, fmt.Errorf("refill %s: handle already closed", h.path)
	}

	entries, readErr := f.ReadDir(dirBatchCap)
	count := 0
	for _, e := range entries {
		typ := e.Type()
		if typ&fs.ModeSymlink != 0 {
			continue
		}
		kind := dirEntOther
		switch {
		case typ.IsDir():
			kind = dirEntDir
		case typ.IsRegular():
			kind = dirEntReg
		default:
			continue
		}
		h.batch[count] = dirEnt{name: e.Name(), kind: kind}
		count++
	}

	if readErr != nil { // io.EOF or a genuine error both mean "no more entries"
		return count, true, nil
	}
	return count, len(entries) < dirBatchCap, nil
}
