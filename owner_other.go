//go:build !unix

package swiftgrep

import "io/fs"

// portableOwner has no uid/gid concept to recover on non-unix platforms;
// the metadata filter's uid/gid predicates simply never match there.
func portableOwner(fi fs.FileInfo) (uid, gid uint32) {
	return 0, 0
}
