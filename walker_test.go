package swiftgrep

import (
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type recordingVisitor struct {
	mu    sync.Mutex
	paths []string
}

func (v *recordingVisitor) Visit(dir *dirHandle, name string, st Stat) error {
	v.mu.Lock()
	v.paths = append(v.paths, joinDisplay(dir.path, name))
	v.mu.Unlock()
	return nil
}

func Test_Walker_WalkStep_Visits_Every_Regular_File_When_Tree_Has_Subdirectories(t *testing.T) {
	t.Parallel()

	root := buildTree(t, map[string]string{
		"a.txt":        "one",
		"sub/b.txt":    "two",
		"sub/deep/c.c": "three",
	})

	w := newWalker(root, 0, nil, zerolog.Nop())
	v := &recordingVisitor{}
	for w.walkStep(false, v) != 0 {
	}

	sort.Strings(v.paths)
	assertStringSlicesEqual(t, v.paths, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "sub/b.txt"),
		filepath.Join(root, "sub/deep/c.c"),
	})
}

func Test_Walker_WalkStep_Skips_Directory_When_Name_Is_In_SkipSet(t *testing.T) {
	t.Parallel()

	root := buildTree(t, map[string]string{
		"keep/a.txt":         "x",
		"node_modules/b.txt": "y",
	})

	w := newWalker(root, 0, newSkipSet([]string{"node_modules"}), zerolog.Nop())
	v := &recordingVisitor{}
	for w.walkStep(false, v) != 0 {
	}

	assertStringSlicesEqual(t, v.paths, []string{filepath.Join(root, "keep/a.txt")})
}

func Test_Walker_WalkStep_Skips_File_When_Smaller_Than_MinFileSize(t *testing.T) {
	t.Parallel()

	root := buildTree(t, map[string]string{
		"small.txt": "x",
		"big.txt":   "0123456789",
	})

	w := newWalker(root, 5, nil, zerolog.Nop())
	v := &recordingVisitor{}
	for w.walkStep(false, v) != 0 {
	}

	assertStringSlicesEqual(t, v.paths, []string{filepath.Join(root, "big.txt")})
}

func Test_RunWorkers_Visits_Disjoint_Total_When_Multiple_Workers_Share_One_Walker(t *testing.T) {
	t.Parallel()

	const n = 26
	files := map[string]string{}
	for i := 0; i < n; i++ {
		files[filepath.Join("sub", string(rune('a'+i)), "f.txt")] = "x"
	}
	root := buildTree(t, files)

	w := newWalker(root, 0, nil, zerolog.Nop())
	var visitors []*recordingVisitor
	var mu sync.Mutex
	err := runWorkers(w, 4, func() fileVisitor {
		v := &recordingVisitor{}
		mu.Lock()
		visitors = append(visitors, v)
		mu.Unlock()
		return v
	})
	if err != nil {
		t.Fatalf("runWorkers: %v", err)
	}

	total := 0
	distinct := map[string]bool{}
	for _, v := range visitors {
		total += len(v.paths)
		for _, p := range v.paths {
			distinct[p] = true
		}
	}
	if total != n {
		t.Fatalf("total visited files across workers: got=%d want=%d", total, n)
	}
	if len(distinct) != n {
		t.Fatalf("distinct visited files across workers: got=%d want=%d", len(distinct), n)
	}
}
