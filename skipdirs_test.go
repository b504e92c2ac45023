package swiftgrep

import "testing"

func Test_NewSkipSet_Returns_Nil_When_Names_Empty(t *testing.T) {
	t.Parallel()

	if s := newSkipSet(nil); s != nil {
		t.Fatalf("newSkipSet(nil): got=%v want=nil", s)
	}
	if s := newSkipSet([]string{}); s != nil {
		t.Fatalf("newSkipSet([]string{}): got=%v want=nil", s)
	}
}

func Test_SkipSet_Skip_Returns_False_When_Receiver_Is_Nil(t *testing.T) {
	t.Parallel()

	var s *skipSet
	if s.skip("node_modules") {
		t.Fatal("nil skipSet must not skip anything")
	}
}

func Test_SkipSet_Skip_Matches_Exact_Name_When_Configured(t *testing.T) {
	t.Parallel()

	s := newSkipSet([]string{"node_modules", ".git"})
	cases := map[string]bool{
		"node_modules":  true,
		".git":          true,
		"src":           false,
		"node_module":   false,
		"anode_modules": false,
	}
	for name, want := range cases {
		if got := s.skip(name); got != want {
			t.Errorf("skip(%q): got=%v want=%v", name, got, want)
		}
	}
}
