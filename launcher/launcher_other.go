//go:build !linux

package launcher

// pinToCPU is a no-op outside Linux: sched_setaffinity has no portable
// equivalent, so other platforms run every launched task unpinned.
func pinToCPU(core int) {}
