package pool

import "sync/atomic"

// Scheduler is the per-NUMA-node dynamic work dispenser: each node has its
// own atomic fetch-add counter handing out fixed-size "units" (each unit
// identifying a contiguous run of edge vectors) to worker threads pinned
// to that node. A thread that exhausts its own node's units steals from
// the next node's counter rather than idling, since the edge list for a
// node may be unevenly sized relative to its vertex range.
//
// Grounded on scheduler.c's sched_pull_units_per_node/sched_pull_units_total
// globals and on workerpool.go's ParallelForAtomicBatched batch-grab loop,
// generalized here to one counter per node instead of one global counter.
type Scheduler struct {
	totalUnits []int64
	next       []atomic.Int64
}

// NewScheduler creates a scheduler with one independent counter per NUMA
// node, where totalUnits[i] is the number of units of work assigned to
// node i.
func NewScheduler(totalUnits []int64) *Scheduler {
	s := &Scheduler{
		totalUnits: append([]int64(nil), totalUnits...),
		next:       make([]atomic.Int64, len(totalUnits)),
	}
	return s
}

// Reset rearms every node's counter back to zero, for the next superstep's
// edge phase.
func (s *Scheduler) Reset() {
	for i := range s.next {
		s.next[i].Store(0)
	}
}

// NextUnit returns the next unit index to process for a thread whose home
// node is preferredNode, preferring that node's own units and falling
// back to work-stealing from other nodes (in round-robin order starting
// just after preferredNode) only once the home node's units are
// exhausted. ok is false once every node's units have been claimed.
func (s *Scheduler) NextUnit(preferredNode int) (node int, unit int, ok bool) {
	n := len(s.totalUnits)
	for offset := 0; offset < n; offset++ {
		node = (preferredNode + offset) % n
		idx := s.next[node].Add(1) - 1
		if idx < s.totalUnits[node] {
			return node, int(idx), true
		}
	}
	return 0, 0, false
}
