package swiftgrep

import (
	"sync"
	"testing"
)

func Test_DirCache_InsertFetchErase_Returns_Same_Handle_When_Slot_Occupied(t *testing.T) {
	t.Parallel()

	c := newDirCache(16)
	h := newDirHandle(3, "/tmp/a")

	c.insert(h)
	if got := c.entries.Load(); got != 1 {
		t.Fatalf("entries after insert: got=%d want=1", got)
	}

	got := c.fetch1()
	if got == nil {
		t.Fatal("fetch1 returned nil after insert")
	}
	if got != h {
		t.Fatalf("fetch1: got=%p want=%p", got, h)
	}
	if refs := got.refs.Load(); refs != 2 {
		t.Fatalf("refs after fetch1: got=%d want=2", refs)
	}

	erased := c.erase(h.fd)
	if erased != h {
		t.Fatalf("erase: got=%p want=%p", erased, h)
	}
	if got := c.entries.Load(); got != 0 {
		t.Fatalf("entries after erase: got=%d want=0", got)
	}
}

func Test_DirCache_Fetch1_Returns_Nil_When_Empty(t *testing.T) {
	t.Parallel()

	c := newDirCache(8)
	if got := c.fetch1(); got != nil {
		t.Fatalf("fetch1 on empty cache: got=%v want=nil", got)
	}
}

func Test_DirCache_Fetch1_Returns_Either_Handle_When_Slot_Collides(t *testing.T) {
	t.Parallel()

	c := newDirCache(4)
	h1 := newDirHandle(1, "/a")
	h2 := newDirHandle(5, "/b") // 5 % 4 == 1, same slot as h1

	c.insert(h1)
	c.insert(h2)
	if got := c.entries.Load(); got != 2 {
		t.Fatalf("entries after two inserts: got=%d want=2", got)
	}

	seen := map[int]bool{}
	for i := 0; i < 4; i++ {
		if h := c.fetch1(); h != nil {
			seen[h.fd] = true
		}
	}
	if !seen[1] && !seen[5] {
		t.Fatalf("neither colliding handle was ever fetched: %v", seen)
	}
}

func Test_DirCache_Fetch1_Returns_Shared_Handle_When_Called_Concurrently(t *testing.T) {
	t.Parallel()

	c := newDirCache(16)
	h := newDirHandle(7, "/tmp/shared")
	c.insert(h)

	var wg sync.WaitGroup
	results := make([]*dirHandle, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.fetch1()
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r != nil && r != h {
			t.Fatalf("result[%d]: got=%p want=%p or nil", i, r, h)
		}
	}
	if refs := h.refs.Load(); refs < 1 {
		t.Fatalf("refs after concurrent fetch1: got=%d want>=1", refs)
	}
}
