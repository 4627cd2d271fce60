//go:build linux

package launcher

import (
	"golang.org/x/sys/unix"

	"github.com/larytet/lockfree-hashtable/tracelog"
)

// pinToCPU pins the calling OS thread to core via sched_setaffinity(2),
// through golang.org/x/sys/unix rather than a raw syscall.
func pinToCPU(core int) {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		tracelog.Warningf("launcher: pin to core %d failed: %v", core, err)
	}
}
