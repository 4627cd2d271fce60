// Package launcher is the thin thread-launching wrapper spec.md names
// as an out-of-scope external collaborator: it owns OS thread creation
// and CPU pinning, nothing about the table itself. It is the
// Go-idiomatic analogue of the source's linux_thread_start /
// linux_thread_start_all — a goroutine locked to its OS thread via
// runtime.LockOSThread stands in for a pthread, and CPU affinity is
// set the same way codewanderer42820-evm_triarb's ring24 package does
// it, just through golang.org/x/sys/unix instead of a raw syscall.
package launcher

import "runtime"

// Task is a unit of work run on its own locked OS thread. It receives
// a channel that is closed when the caller requests shutdown; a Task
// that ignores stop runs until it returns on its own.
type Task func(stop <-chan struct{})

// Handle refers to one launched task.
type Handle struct {
	done chan struct{}
}

// Wait blocks until the task backing h has returned.
func (h *Handle) Wait() {
	<-h.done
}

// Launch starts task on a freshly created, OS-thread-locked goroutine.
// If core is >= 0, the underlying OS thread is pinned to that CPU core
// (a best-effort operation: on Linux a core index the scheduler
// rejects leaves the thread unpinned and logs a warning rather than
// failing the launch; other platforms leave the thread unpinned
// without logging). Launch returns a Handle to
// wait on and a stop function that signals the task to shut down;
// calling stop does not itself wait for the task to exit.
func Launch(core int, task Task) (*Handle, func()) {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if core >= 0 {
			pinToCPU(core)
		}
		defer close(done)
		task(stop)
	}()

	var stopOnce chanCloser
	return &Handle{done: done}, func() { stopOnce.close(stop) }
}

// LaunchAll starts n tasks, one per index in [0,n), each pinned to CPU
// core i%runtime.NumCPU() — the same one-thread-per-core layout the
// source's create_threads(cpus) used. It returns a function that
// signals every task to stop and a function that waits for all of
// them to exit; callers typically call stopAll() and then waitAll().
func LaunchAll(n int, task func(core int, stop <-chan struct{})) (stopAll func(), waitAll func()) {
	handles := make([]*Handle, n)
	stops := make([]func(), n)
	cpus := runtime.NumCPU()

	for i := 0; i < n; i++ {
		i := i
		h, stop := Launch(i%cpus, func(stop <-chan struct{}) { task(i, stop) })
		handles[i] = h
		stops[i] = stop
	}

	stopAll = func() {
		for _, s := range stops {
			s()
		}
	}
	waitAll = func() {
		for _, h := range handles {
			h.Wait()
		}
	}
	return stopAll, waitAll
}

// chanCloser closes a channel at most once, guarding against a stop
// function being called more than once by a caller.
type chanCloser struct {
	closed bool
}

func (c *chanCloser) close(ch chan struct{}) {
	if !c.closed {
		c.closed = true
		close(ch)
	}
}
