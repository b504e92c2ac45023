// Swiftgrep recursively scans files for a regex or literal pattern,
// mapping each file's content window by window rather than reading it
// line by line.
//
// Usage:
//
//	swiftgrep [-rR] [-IOlsSH] [-L] [-c] [-z] [-n N] <pattern> <path> [<path>...]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/nullptr-dev/swiftgrep"
)

func main() {
	isTTY := isatty.IsTerminal(os.Stdout.Fd())
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, isTTY))
}

func run(args []string, out, errOut io.Writer, isTTY bool) int {
	flagSet := flag.NewFlagSet("swiftgrep", flag.ContinueOnError)
	flagSet.SetOutput(errOut)
	flagSet.Usage = func() {
		fmt.Fprintln(errOut, "usage: swiftgrep [-rR] [-IOlsSH] [-L] [-c] [-z] [-n N] <pattern> <path> [<path>...]")
		flagSet.PrintDefaults()
	}

	var recursive bool
	flagSet.BoolVarP(&recursive, "recursive", "r", false, "recurse into directory arguments")
	flagSet.BoolVarP(&recursive, "recursive-upper", "R", false, "alias for -r")
	offset := flagSet.BoolP("offset", "O", false, "print byte offset of each match")
	noLine := flagSet.BoolP("no-line", "l", false, "suppress line reconstruction")
	single := flagSet.BoolP("single", "s", false, "stop after the first match in a file")
	invert := flagSet.BoolP("invert", "I", false, "emit ANSI invert around matches when stdout is a terminal")
	lowMem := flagSet.CountP("low-mem", "L", "halve chunk_size, floor 32 MiB; repeatable")
	cores := flagSet.IntP("cores", "n", 1, "spawn N workers; requires -r/-R")
	streaming := flagSet.BoolP("streaming", "H", false, "select the streaming DFA engine instead of the JIT engine")
	literal := flagSet.BoolP("literal", "S", false, "with -H, treat the pattern as a literal string")
	countOnly := flagSet.BoolP("count", "c", false, "print a per-file match count instead of records")
	nulSep := flagSet.BoolP("nul", "z", false, "terminate records with NUL instead of newline")
	skipDirs := flagSet.StringSlice("skip", nil, "directory basenames to never enter")

	if err := flagSet.Parse(args); err != nil {
		return 1
	}

	rest := flagSet.Args()
	if len(rest) < 2 {
		flagSet.Usage()
		return 1
	}
	pattern := rest[0]
	roots := rest[1:]

	flags := swiftgrep.MatchFlags{
		PrintOffset:  *offset,
		PrintLine:    !*noLine,
		SingleMatch:  *single,
		Invert:       *invert && isTTY,
		CountOnly:    *countOnly,
		NulSeparated: *nulSep,
	}

	opts := []swiftgrep.Option{
		swiftgrep.WithCores(*cores),
		swiftgrep.WithMatchFlags(flags),
		swiftgrep.WithSkipDirs(*skipDirs),
	}
	if recursive {
		opts = append(opts, swiftgrep.WithRecursive())
	}
	for i := 0; i < *lowMem; i++ {
		opts = append(opts, swiftgrep.WithLowMem())
	}
	if *streaming {
		opts = append(opts, swiftgrep.WithStreamingEngine())
	}
	if *literal {
		opts = append(opts, swiftgrep.WithLiteralPattern())
	}

	if err := swiftgrep.Run(context.Background(), out, pattern, roots, opts...); err != nil {
		fmt.Fprintln(errOut, "swiftgrep:", err)
		var cfgErr *swiftgrep.ConfigError
		if errors.As(err, &cfgErr) {
			return 1
		}
		return -1
	}
	return 0
}
