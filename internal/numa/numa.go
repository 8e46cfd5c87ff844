// Package numa provides NUMA topology discovery, node-local memory
// allocation, and thread affinity for the pinned worker pool in
// internal/pool.
//
// Two Linux backends exist: a cgo binding to libnuma (numa_cgo.go, built
// when cgo is enabled) and a pure-Go sysfs reader (numa_sysfs.go, built
// when it is not). On other platforms numa_other.go supplies stubs that
// report NUMA as unavailable. All of them satisfy the same package-level
// functions so callers never branch on which backend is active.
package numa

import (
	"fmt"
	"sort"
)

// Node describes one NUMA node's CPU membership and memory state.
type Node struct {
	ID          int
	CPUs        []int
	MemTotalKB  uint64
	MemFreeKB   uint64
}

// Topology is a snapshot of the machine's NUMA layout.
type Topology struct {
	Nodes      []Node
	CPUToNode  map[int]int
}

// NumCPUs returns the total number of CPUs across all nodes.
func (t *Topology) NumCPUs() int {
	n := 0
	for _, node := range t.Nodes {
		n += len(node.CPUs)
	}
	return n
}

// NodeOfCPU returns the NUMA node ID that owns the given CPU.
func (t *Topology) NodeOfCPU(cpu int) (int, bool) {
	id, ok := t.CPUToNode[cpu]
	return id, ok
}

// CPUsOnNode returns the sorted CPU list of a node ID, or nil if unknown.
func (t *Topology) CPUsOnNode(node int) []int {
	for _, n := range t.Nodes {
		if n.ID == node {
			cpus := append([]int(nil), n.CPUs...)
			sort.Ints(cpus)
			return cpus
		}
	}
	return nil
}

func (t *Topology) String() string {
	return fmt.Sprintf("numa.Topology{nodes=%d, cpus=%d}", len(t.Nodes), t.NumCPUs())
}
