package pool

import "sync/atomic"

// Barrier is a sense-reversing barrier for a fixed number of participants.
// Unlike sync.WaitGroup, a Barrier is reusable across many Wait calls
// without being reconstructed, which is what a bulk-synchronous-parallel
// superstep loop needs: every worker thread calls Wait once per phase
// boundary, for as many phases as the algorithm driver runs.
//
// No barrier or cyclic-barrier primitive exists in this module's ambient
// dependency stack, so this is hand-written on sync/atomic rather than
// adapted from a third-party library; see DESIGN.md.
type Barrier struct {
	n       int32
	count   atomic.Int32
	sense   atomic.Bool
}

// NewBarrier creates a barrier for n participants.
func NewBarrier(n int) *Barrier {
	if n <= 0 {
		panic("pool: NewBarrier requires a positive participant count")
	}
	return &Barrier{n: int32(n)}
}

// Wait blocks the calling goroutine until n goroutines have called Wait on
// this barrier, then releases all of them. It is safe to call Wait again
// immediately after it returns, from the same set of participants, for the
// next phase boundary.
func (b *Barrier) Wait() {
	localSense := !b.sense.Load()

	if b.count.Add(1) == b.n {
		b.count.Store(0)
		b.sense.Store(localSense)
		return
	}

	for b.sense.Load() != localSense {
		// Spin rather than block: barrier waits sit in the hot path
		// between supersteps and are expected to be short.
	}
}
