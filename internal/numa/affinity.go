//go:build linux

package numa

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// PinCurrentThread binds the calling OS thread to a single CPU. The
// caller must have already called runtime.LockOSThread so that the Go
// scheduler cannot migrate this goroutine to a different OS thread
// afterwards.
func PinCurrentThread(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)

	tid := unix.Gettid()
	if err := unix.SchedSetaffinity(tid, &set); err != nil {
		return fmt.Errorf("numa: SchedSetaffinity(tid=%d, cpu=%d): %w", tid, cpu, err)
	}
	return nil
}

// CurrentThreadID returns the Linux thread ID (not goroutine ID) of the
// calling OS thread.
func CurrentThreadID() int {
	return unix.Gettid()
}
