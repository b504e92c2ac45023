package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_Run_Prints_Matching_Path_When_Name_Glob_Matches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile(keep.txt): %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "drop.log"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile(drop.log): %v", err)
	}

	var out, errOut bytes.Buffer
	code := run([]string{"--name", "*.txt", dir}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code: got=%d want=0 (stderr=%q)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "keep.txt") {
		t.Fatalf("stdout missing keep.txt: %q", out.String())
	}
	if strings.Contains(out.String(), "drop.log") {
		t.Fatalf("stdout unexpectedly contains drop.log: %q", out.String())
	}
}

func Test_Run_Returns_Usage_Error_When_Roots_Are_Missing(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	code := run([]string{"--name", "*.txt"}, &out, &errOut)
	if code != 1 {
		t.Fatalf("exit code: got=%d want=1", code)
	}
}

func Test_Run_Returns_Usage_Error_When_Type_Flag_Is_Invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out, errOut bytes.Buffer
	code := run([]string{"--type", "q", dir}, &out, &errOut)
	if code != 1 {
		t.Fatalf("exit code: got=%d want=1", code)
	}
	if !strings.Contains(errOut.String(), "invalid -type") {
		t.Fatalf("stderr missing type error: %q", errOut.String())
	}
}

func Test_Run_Returns_Usage_Error_When_Perm_Flag_Is_Invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out, errOut bytes.Buffer
	code := run([]string{"--perm", "xyz", dir}, &out, &errOut)
	if code != 1 {
		t.Fatalf("exit code: got=%d want=1", code)
	}
	if !strings.Contains(errOut.String(), "invalid -perm") {
		t.Fatalf("stderr missing perm error: %q", errOut.String())
	}
}

func Test_ParsePerm_Returns_Mode_And_Bits_When_Prefix_Selects_A_Mode(t *testing.T) {
	t.Parallel()

	mode, bits, err := parsePerm("644")
	if err != nil {
		t.Fatalf("parsePerm(644): %v", err)
	}
	if bits != 0o644 {
		t.Fatalf("bits: got=%o want=644", bits)
	}
	if mode != 0 { // PermExact
		t.Fatalf("mode: got=%d want=PermExact(0)", mode)
	}

	mode, bits, err = parsePerm("/111")
	if err != nil {
		t.Fatalf("parsePerm(/111): %v", err)
	}
	if bits != 0o111 {
		t.Fatalf("bits: got=%o want=111", bits)
	}
	if mode != 1 { // PermAny
		t.Fatalf("mode: got=%d want=PermAny(1)", mode)
	}

	mode, bits, err = parsePerm("-600")
	if err != nil {
		t.Fatalf("parsePerm(-600): %v", err)
	}
	if bits != 0o600 {
		t.Fatalf("bits: got=%o want=600", bits)
	}
	if mode != 2 { // PermAll
		t.Fatalf("mode: got=%d want=PermAll(2)", mode)
	}
}
