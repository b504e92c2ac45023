package swiftgrep

import (
	"sort"
	"strconv"
	"sync"
	"testing"
)

func Test_DirHandle_ReaddirNext_Drains_All_Entries_When_Called_Sequentially(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names := []string{"a.txt", "b.txt", "c.txt"}
	for _, n := range names {
		writeFile(t, dir, n, []byte("x"))
	}

	h, err := openRootDir(dir)
	if err != nil {
		t.Fatalf("openRootDir: %v", err)
	}
	defer closeFd(h.fd)

	var got []string
	for {
		ent, ok, err := h.readdirNext()
		if err != nil {
			t.Fatalf("readdirNext: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, ent.name)
	}

	sort.Strings(got)
	assertStringSlicesEqual(t, got, names)
}

func Test_DirHandle_ReaddirNext_Drains_Every_Entry_Exactly_Once_When_Called_Concurrently(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const n = 200
	want := make([]string, 0, n)
	for i := 0; i < n; i++ {
		base := "f" + strconv.Itoa(i) + ".txt"
		writeFile(t, dir, base, []byte("x"))
		want = append(want, base)
	}

	h, err := openRootDir(dir)
	if err != nil {
		t.Fatalf("openRootDir: %v", err)
	}
	defer closeFd(h.fd)

	var mu sync.Mutex
	var got []string
	var failed error
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				ent, ok, err := h.readdirNext()
				if err != nil {
					mu.Lock()
					if failed == nil {
						failed = err
					}
					mu.Unlock()
					return
				}
				if !ok {
					return
				}
				mu.Lock()
				got = append(got, ent.name)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if failed != nil {
		t.Fatalf("readdirNext: %v", failed)
	}

	sort.Strings(got)
	sort.Strings(want)
	assertStringSlicesEqual(t, got, want)
}

func Test_DirHandle_Release_Closes_Fd_When_Last_Ref_Dropped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h, err := openRootDir(dir)
	if err != nil {
		t.Fatalf("openRootDir: %v", err)
	}

	cache := newDirCache(16)
	cache.insert(h)

	h2 := cache.fetch1()
	if h2 == nil {
		t.Fatal("fetch1 returned nil")
	}
	if refs := h.refs.Load(); refs != 2 {
		t.Fatalf("refs after insert+fetch1: got=%d want=2", refs)
	}

	h.release(cache)
	if refs := h.refs.Load(); refs != 1 {
		t.Fatalf("refs after first release: got=%d want=1", refs)
	}

	h2.release(cache)
	if refs := h.refs.Load(); refs != 0 {
		t.Fatalf("refs after second release: got=%d want=0", refs)
	}
}
