// Package pool provides a persistent pool of pinned OS threads with a
// sense-reversing barrier for bulk-synchronous-parallel execution, and a
// per-NUMA-node dynamic work-stealing scheduler for dispensing units of
// work to those threads.
//
// It generalizes the persistent-goroutine, atomic-work-stealing pattern
// of hwy/contrib/workerpool from per-call parallelism over plain
// goroutines to a pool of OS threads pinned for the lifetime of the run,
// because NUMA-local memory access and the cross-superstep barrier both
// require a stable thread-to-core mapping, not just a stable set of
// goroutines for one parallel-for call.
package pool

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/stanford-mast/grazelle/internal/numa"
)

// ThreadInfo mirrors the per-thread identity the original engine assigns
// at spawn time: a global thread ID, the NUMA node ("group") it is pinned
// to, its local index within that node, and the overall shape of the
// pool. Kernel code uses GroupID to index into per-NUMA-node data
// structures (vertex ranges, scheduler counters, reduce buffers).
type ThreadInfo struct {
	ThreadID        int
	GroupID         int
	GroupThreadID   int
	TotalThreads    int
	TotalGroups     int
	ThreadsPerGroup int
}

// Pool is a persistent set of pinned OS threads, one per logical worker,
// grouped by NUMA node.
type Pool struct {
	threads []ThreadInfo
	workC   []chan func()
	barrier *Barrier

	closeOnce sync.Once
	closed    chan struct{}
}

// New spawns one pinned OS thread per CPU named in cpusPerNode, grouped by
// NUMA node in the order given. Each thread is pinned to the CPU at its
// own position in cpusPerNode. altBinding is accepted but not read: no
// alternate, hyperthread-interleaved affinity formula is implemented, so
// both values produce the same binding.
func New(cpusPerNode [][]int, altBinding bool) (*Pool, error) {
	totalGroups := len(cpusPerNode)
	if totalGroups == 0 {
		return nil, fmt.Errorf("pool: New requires at least one NUMA node group")
	}

	threadsPerGroup := len(cpusPerNode[0])
	totalThreads := 0
	for _, cpus := range cpusPerNode {
		totalThreads += len(cpus)
	}
	if totalThreads == 0 {
		return nil, fmt.Errorf("pool: New requires at least one CPU")
	}

	p := &Pool{
		threads: make([]ThreadInfo, 0, totalThreads),
		workC:   make([]chan func(), 0, totalThreads),
		barrier: NewBarrier(totalThreads),
		closed:  make(chan struct{}),
	}

	threadID := 0
	for group, cpus := range cpusPerNode {
		for local, cpu := range cpus {
			info := ThreadInfo{
				ThreadID:        threadID,
				GroupID:         group,
				GroupThreadID:   local,
				TotalThreads:    totalThreads,
				TotalGroups:     totalGroups,
				ThreadsPerGroup: threadsPerGroup,
			}
			ch := make(chan func())
			p.threads = append(p.threads, info)
			p.workC = append(p.workC, ch)

			cpu := cpu
			idx := threadID
			go p.worker(idx, ch, cpu)

			threadID++
		}
	}

	return p, nil
}

// worker is the main loop of one pinned OS thread. It locks itself to the
// calling OS thread, pins that thread to cpu, then loops accepting and
// running submitted functions until the pool is closed — mirroring
// threads_start_func's affinity-then-loop structure, but persistent across
// many phases instead of exiting after one.
func (p *Pool) worker(idx int, ch chan func(), cpu int) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if numa.Available() {
		if err := numa.PinCurrentThread(cpu); err != nil {
			fmt.Printf("pool: warning: failed to pin worker %d to cpu %d: %v\n", idx, cpu, err)
		}
	}

	for {
		select {
		case fn := <-ch:
			fn()
		case <-p.closed:
			return
		}
	}
}

// NumThreads returns the total number of pinned worker threads.
func (p *Pool) NumThreads() int { return len(p.threads) }

// Threads returns the ThreadInfo for every worker, indexed by ThreadID.
func (p *Pool) Threads() []ThreadInfo { return p.threads }

// Run dispatches fn to every worker thread and blocks until all of them
// have finished one pass through fn, with a barrier wait immediately
// before and after fn runs on each thread. This is the Go equivalent of
// threads_start_func's "barrier; func(); barrier" sequencing, and is the
// primitive the algorithm drivers use to run one phase of a superstep
// (edge phase, vertex phase, ...) across the whole pool.
func (p *Pool) Run(fn func(ThreadInfo)) {
	var wg sync.WaitGroup
	wg.Add(len(p.threads))

	for i, info := range p.threads {
		info := info
		p.workC[i] <- func() {
			defer wg.Done()
			p.barrier.Wait()
			fn(info)
			p.barrier.Wait()
		}
	}

	wg.Wait()
}

// Close stops all worker threads. Safe to call multiple times.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.closed)
	})
}
