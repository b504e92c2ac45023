//go:build linux

package swiftgrep

import "golang.org/x/sys/unix"

// pinToCPU binds the calling OS thread to a single CPU, matching the
// "worker pinned by CPU affinity where the OS supports it" design this
// module's recursive walker follows. Errors are ignored: affinity is a
// throughput optimization, not a correctness requirement, and can fail
// harmlessly on cgroup-restricted CPU sets.
func pinToCPU(worker int) {
	ncpu := numCPU()
	if ncpu <= 0 {
		return
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(worker % ncpu)
	_ = unix.SchedSetaffinity(0, &set)
}

func numCPU() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0
	}
	return set.Count()
}
