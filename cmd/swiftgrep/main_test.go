package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_Run_Prints_Offset_When_Pattern_Matches_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello needle world"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out, errOut bytes.Buffer
	code := run([]string{"-O", "needle", dir}, &out, &errOut, false)
	if code != 0 {
		t.Fatalf("exit code: got=%d want=0 (stderr=%q)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Match at offset") {
		t.Fatalf("stdout missing offset report: %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected no stderr, got=%q", errOut.String())
	}
}

func Test_Run_Returns_Usage_Error_When_Arguments_Are_Missing(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	code := run([]string{"onlypattern"}, &out, &errOut, false)
	if code != 1 {
		t.Fatalf("exit code: got=%d want=1", code)
	}
}

func Test_Run_Returns_Usage_Error_When_Cores_Exceeds_One_Without_Recursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out, errOut bytes.Buffer
	code := run([]string{"-n", "4", "needle", dir}, &out, &errOut, false)
	if code != 1 {
		t.Fatalf("exit code: got=%d want=1", code)
	}
	if !strings.Contains(errOut.String(), "swiftgrep:") {
		t.Fatalf("stderr missing error prefix: %q", errOut.String())
	}
}

func Test_Run_Returns_Startup_Error_When_Pattern_Does_Not_Compile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out, errOut bytes.Buffer
	code := run([]string{"(unterminated", dir}, &out, &errOut, false)
	if code != -1 {
		t.Fatalf("exit code: got=%d want=-1", code)
	}
}
