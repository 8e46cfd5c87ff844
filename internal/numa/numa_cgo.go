//go:build linux && cgo

package numa

/*
#cgo LDFLAGS: -lnuma
#include <numa.h>
#include <stdlib.h>

static void *numa_alloc_onnode_wrapper(size_t size, int node) {
	return numa_alloc_onnode(size, node);
}

static void numa_free_wrapper(void *start, size_t size) {
	numa_free(start, size);
}

static int numa_tonode_memory_wrapper(void *start, size_t size, int node) {
	numa_tonode_memory(start, size, node);
	return 0;
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Available reports whether libnuma believes the running kernel has NUMA
// support compiled in and enabled.
func Available() bool {
	return C.numa_available() >= 0
}

// Discover builds a Topology using libnuma. It returns an error if libnuma
// reports NUMA is unavailable.
func Discover() (*Topology, error) {
	if !Available() {
		return nil, fmt.Errorf("numa: libnuma reports NUMA unavailable on this system")
	}

	numNodes := int(C.numa_num_configured_nodes())
	numCPUs := int(C.numa_num_configured_cpus())
	if numNodes <= 0 || numCPUs <= 0 {
		return nil, fmt.Errorf("numa: libnuma reported invalid topology (nodes=%d cpus=%d)", numNodes, numCPUs)
	}

	topo := &Topology{
		Nodes:     make([]Node, numNodes),
		CPUToNode: make(map[int]int, numCPUs),
	}
	for i := 0; i < numNodes; i++ {
		topo.Nodes[i] = Node{ID: i}
	}
	for cpu := 0; cpu < numCPUs; cpu++ {
		node := int(C.numa_node_of_cpu(C.int(cpu)))
		if node < 0 || node >= numNodes {
			continue
		}
		topo.CPUToNode[cpu] = node
		topo.Nodes[node].CPUs = append(topo.Nodes[node].CPUs, cpu)
	}
	return topo, nil
}

// AllocOnNode allocates size bytes of node-local memory on the given NUMA
// node. The returned slice aliases C-allocated memory; it must be released
// with Free, not left to the garbage collector.
func AllocOnNode(size int, node int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("numa: AllocOnNode: size must be positive, got %d", size)
	}
	ptr := C.numa_alloc_onnode_wrapper(C.size_t(size), C.int(node))
	if ptr == nil {
		return nil, fmt.Errorf("numa: numa_alloc_onnode failed for %d bytes on node %d", size, node)
	}
	return unsafe.Slice((*byte)(ptr), size), nil
}

// Free releases memory previously returned by AllocOnNode. size must match
// the size passed to AllocOnNode.
func Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	C.numa_free_wrapper(unsafe.Pointer(&buf[0]), C.size_t(len(buf)))
}

// MoveToNode migrates an already-allocated buffer's pages to the given
// NUMA node, mirroring the original engine's numanodes_tonode_buffer.
func MoveToNode(buf []byte, node int) error {
	if len(buf) == 0 {
		return nil
	}
	rc := C.numa_tonode_memory_wrapper(unsafe.Pointer(&buf[0]), C.size_t(len(buf)), C.int(node))
	if rc != 0 {
		return fmt.Errorf("numa: numa_tonode_memory failed for node %d", node)
	}
	return nil
}
