package swiftgrep

import (
	"sync/atomic"
)

// dirCache is the slot table shared by every worker walking one run: an
// open directory handle is inserted once and can then be fetched by any
// number of workers, each of whom drives its lock-free readdir cursor
// concurrently. Slots are indexed directly by file descriptor value, which
// is unique for as long as the fd stays open, so no hashing or locking is
// needed to find or remove an entry.
type dirCache struct {
	slots   []atomic.Pointer[dirHandle]
	rove    atomic.Uint64
	entries atomic.Int64
}

func newDirCache(slotCount int) *dirCache {
	return &dirCache{slots: make([]atomic.Pointer[dirHandle], slotCount)}
}

func (c *dirCache) slotFor(fd int) int {
	idx := fd % len(c.slots)
	if idx < 0 {
		idx += len(c.slots)
	}
	return idx
}

// insert publishes h so other workers can fetch1 it.
func (c *dirCache) insert(h *dirHandle) {
	c.slots[c.slotFor(h.fd)].Store(h)
	c.entries.Add(1)
}

// fetch1 hands out one more reference to a handle already in the cache, if
// any is available. It does not remove the handle: the same handle can be
// fetched by many workers over its lifetime, which is what lets several
// workers drain one large directory in parallel. Returns nil if the cache
// is (transiently or permanently) empty.
func (c *dirCache) fetch1() *dirHandle {
	n := len(c.slots)
	start := c.rove.Add(1)
	for i := 0; i < n; i++ {
		idx := int((start + uint64(i)) % uint64(n))
		h := c.slots[idx].Swap(nil)
		if h != nil {
			h.refs.Add(1)
			c.slots[idx].Store(h)
			return h
		}
		if c.entries.Load() == 0 {
			return nil
		}
	}
	return nil
}

// erase permanently removes the handle for fd from the cache. It spins
// until the slot yields a non-nil pointer, which guards against a racing
// fetch1 that has temporarily swapped the slot to nil while handing out a
// reference.
func (c *dirCache) erase(fd int) *dirHandle {
	idx := c.slotFor(fd)
	for {
		h := c.slots[idx].Swap(nil)
		if h != nil {
			c.entries.Add(-1)
			return h
		}
	}
}
