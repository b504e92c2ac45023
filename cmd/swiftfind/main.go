// Swiftfind walks a directory tree printing entries whose metadata
// matches a predicate — uid, gid, type, permission bits, minimum size,
// or a shell-glob name — reusing swiftgrep's parallel walker without
// compiling any pattern.
//
// The walker hands only regular files to the predicate, so a -type other
// than f matches nothing.
//
// Usage:
//
//	swiftfind [-rR] [-n N] [flags] <path> [<path>...]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/nullptr-dev/swiftgrep"
	"github.com/nullptr-dev/swiftgrep/metafilter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	flagSet := flag.NewFlagSet("swiftfind", flag.ContinueOnError)
	flagSet.SetOutput(errOut)
	flagSet.Usage = func() {
		fmt.Fprintln(errOut, "usage: swiftfind [-rR] [-n N] [flags] <path> [<path>...]")
		flagSet.PrintDefaults()
	}

	var recursive bool
	flagSet.BoolVarP(&recursive, "recursive", "r", false, "recurse into directory arguments")
	flagSet.BoolVarP(&recursive, "recursive-upper", "R", false, "alias for -r")
	cores := flagSet.IntP("cores", "n", 1, "spawn N workers; requires -r/-R")
	uid := flagSet.Int("uid", -1, "match this owner uid")
	gid := flagSet.Int("gid", -1, "match this owner gid")
	typ := flagSet.String("type", "", "match file type: b,c,d,p,f,l,s")
	perm := flagSet.String("perm", "", "match permission bits; prefix with / for any, - for all, bare for exact")
	minSize := flagSet.Int64("size", 0, "match files at least this many bytes")
	name := flagSet.String("name", "", "match basename against this shell glob")
	nulSep := flagSet.BoolP("nul", "z", false, "terminate records with NUL instead of newline")
	skipDirs := flagSet.StringSlice("skip", nil, "directory basenames to never enter")

	if err := flagSet.Parse(args); err != nil {
		return 1
	}

	roots := flagSet.Args()
	if len(roots) == 0 {
		flagSet.Usage()
		return 1
	}

	pred, err := buildPredicate(*uid, *gid, *typ, *perm, *minSize, *name)
	if err != nil {
		fmt.Fprintln(errOut, "swiftfind:", err)
		return 1
	}

	opts := []swiftgrep.Option{
		swiftgrep.WithCores(*cores),
		swiftgrep.WithSkipDirs(*skipDirs),
	}
	if recursive {
		opts = append(opts, swiftgrep.WithRecursive())
	}

	sink := swiftgrep.NewSink(out, *nulSep)
	if err := metafilter.Run(context.Background(), sink, pred, roots, opts...); err != nil {
		fmt.Fprintln(errOut, "swiftfind:", err)
		return -1
	}
	return 0
}

func buildPredicate(uid, gid int, typ, perm string, minSize int64, name string) (metafilter.Predicate, error) {
	var pred metafilter.Predicate

	if uid >= 0 {
		u := uint32(uid)
		pred.Uid = &u
	}
	if gid >= 0 {
		g := uint32(gid)
		pred.Gid = &g
	}
	if typ != "" {
		t, err := parseType(typ)
		if err != nil {
			return pred, err
		}
		pred.Type = t
	}
	if perm != "" {
		mode, bits, err := parsePerm(perm)
		if err != nil {
			return pred, err
		}
		pred.HasPerm = true
		pred.PermMode = mode
		pred.Perm = bits
	}
	pred.MinSize = minSize
	pred.NameGlob = name

	return pred, nil
}

func parseType(c string) (uint32, error) {
	if len(c) != 1 {
		return 0, fmt.Errorf("invalid -type %q: want one of b,c,d,p,f,l,s", c)
	}
	switch c[0] {
	case 'b':
		return metafilter.TypeBlock, nil
	case 'c':
		return metafilter.TypeChar, nil
	case 'd':
		return metafilter.TypeDir, nil
	case 'p':
		return metafilter.TypeFifo, nil
	case 'f':
		return metafilter.TypeReg, nil
	case 'l':
		return metafilter.TypeLink, nil
	case 's':
		return metafilter.TypeSock, nil
	default:
		return 0, fmt.Errorf("invalid -type %q: want one of b,c,d,p,f,l,s", c)
	}
}

func parsePerm(p string) (metafilter.PermMode, uint32, error) {
	mode := metafilter.PermExact
	idx := 0
	switch p[0] {
	case '/':
		mode = metafilter.PermAny
		idx = 1
	case '-':
		mode = metafilter.PermAll
		idx = 1
	}
	bits, err := strconv.ParseUint(p[idx:], 8, 32)
	if err != nil {
		return mode, 0, fmt.Errorf("invalid -perm %q: %w", p, err)
	}
	return mode, uint32(bits), nil
}
