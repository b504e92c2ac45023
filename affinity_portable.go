//go:build !linux

package swiftgrep

// pinToCPU is a no-op off Linux: golang.org/x/sys/unix's SchedSetaffinity
// is Linux-only, and there's no portable equivalent worth reaching for
// just to pin a handful of walker goroutines.
func pinToCPU(worker int) {}
