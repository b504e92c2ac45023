// Package metafilter implements the metadata-only side use of the
// parallel walker: instead of scanning file content for a regex match,
// it tests each regular file's stat fields against a Predicate and
// prints the ones that pass.
package metafilter

import (
	"path/filepath"

	"github.com/nullptr-dev/swiftgrep"
)

// PermMode selects how Predicate.Perm is compared against a file's
// permission bits, mirroring the three modes the original find-like tool
// exposed through a prefix character on its -perm argument.
type PermMode int

const (
	// PermExact requires the permission bits to match exactly.
	PermExact PermMode = iota
	// PermAny requires at least one of the given bits to be set.
	PermAny
	// PermAll requires every one of the given bits to be set.
	PermAll
)

// Raw POSIX file type tags, compared against the type-bits portion of
// swiftgrep.Stat.Mode (the top 4 bits, S_IFMT-style).
const (
	typeMask  = 0170000
	TypeReg   = 0100000
	TypeDir   = 0040000
	TypeLink  = 0120000
	TypeFifo  = 0010000
	TypeChar  = 0020000
	TypeBlock = 0060000
	TypeSock  = 0140000
)

// Predicate is every metadata test the filter can run against one file,
// each one optional: a zero-value field means "don't test this". Unlike
// the three-state uid/gid/permission flags the original tool's Filter
// class packed into one bitmask, each test here is its own explicit
// pointer or zero value, matching Go's usual "optional field" idiom
// better than a reimplemented flag bitmask would.
type Predicate struct {
	Uid  *uint32
	Gid  *uint32
	Type uint32 // 0 means "no type test"; otherwise one of the Type* constants

	Perm     uint32
	PermMode PermMode
	HasPerm  bool

	MinSize int64

	NameGlob string // shell-glob tested against the basename only
}

// Match reports whether st (and its basename) satisfies every test p has
// set. Unset tests are skipped entirely, so a zero-value Predicate
// matches everything.
func (p Predicate) Match(base string, st swiftgrep.Stat) bool {
	if p.Uid != nil && st.Uid != *p.Uid {
		return false
	}
	if p.Gid != nil && st.Gid != *p.Gid {
		return false
	}
	if p.Type != 0 && st.Mode&typeMask != p.Type {
		return false
	}
	if p.HasPerm {
		bits := st.Mode &^ typeMask
		switch p.PermMode {
		case PermExact:
			if bits != p.Perm {
				return false
			}
		case PermAny:
			if bits&p.Perm == 0 {
				return false
			}
		case PermAll:
			if bits&p.Perm != p.Perm {
				return false
			}
		}
	}
	if p.MinSize > 0 && st.Size < p.MinSize {
		return false
	}
	if p.NameGlob != "" {
		ok, err := filepath.Match(p.NameGlob, base)
		if err != nil || !ok {
			return false
		}
	}
	return true
}
