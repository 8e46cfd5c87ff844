//go:build linux && !cgo

package numa

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const sysfsNodeRoot = "/sys/devices/system/node"

// Available reports whether the sysfs NUMA node hierarchy is present.
func Available() bool {
	_, err := os.Stat(sysfsNodeRoot)
	return err == nil
}

// Discover builds a Topology by reading /sys/devices/system/node, used
// when cgo (and therefore libnuma) is unavailable. Memory returned by
// AllocOnNode under this backend is ordinary heap memory relying on
// first-touch placement by the pinned thread that uses it, not an
// explicit node-local allocation.
func Discover() (*Topology, error) {
	entries, err := os.ReadDir(sysfsNodeRoot)
	if err != nil {
		return nil, fmt.Errorf("numa: reading %s: %w", sysfsNodeRoot, err)
	}

	topo := &Topology{CPUToNode: make(map[int]int)}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "node") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(name, "node"))
		if err != nil {
			continue
		}

		nodeDir := filepath.Join(sysfsNodeRoot, name)
		cpus, err := parseCPUList(filepath.Join(nodeDir, "cpulist"))
		if err != nil {
			return nil, fmt.Errorf("numa: node %d: %w", id, err)
		}
		memTotal, memFree, err := parseNodeMemInfo(filepath.Join(nodeDir, "meminfo"))
		if err != nil {
			return nil, fmt.Errorf("numa: node %d: %w", id, err)
		}

		node := Node{ID: id, CPUs: cpus, MemTotalKB: memTotal, MemFreeKB: memFree}
		topo.Nodes = append(topo.Nodes, node)
		for _, cpu := range cpus {
			topo.CPUToNode[cpu] = id
		}
	}

	sort.Slice(topo.Nodes, func(i, j int) bool { return topo.Nodes[i].ID < topo.Nodes[j].ID })
	if len(topo.Nodes) == 0 {
		return nil, fmt.Errorf("numa: no nodeN directories found under %s", sysfsNodeRoot)
	}
	return topo, nil
}

// parseCPUList parses the Linux cpulist format, e.g. "0-3,8,10-11".
func parseCPUList(path string) ([]int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cpus []int
	for _, part := range strings.Split(strings.TrimSpace(string(raw)), ",") {
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			loN, err := strconv.Atoi(lo)
			if err != nil {
				return nil, fmt.Errorf("parsing cpulist range %q: %w", part, err)
			}
			hiN, err := strconv.Atoi(hi)
			if err != nil {
				return nil, fmt.Errorf("parsing cpulist range %q: %w", part, err)
			}
			for c := loN; c <= hiN; c++ {
				cpus = append(cpus, c)
			}
		} else {
			c, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("parsing cpulist entry %q: %w", part, err)
			}
			cpus = append(cpus, c)
		}
	}
	return cpus, nil
}

// parseNodeMemInfo extracts MemTotal/MemFree (in kB) from a nodeN/meminfo
// file, whose lines look like "Node 0 MemTotal:       16422912 kB".
func parseNodeMemInfo(path string) (total, free uint64, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	for _, line := range strings.Split(string(raw), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		key := fields[2]
		val, convErr := strconv.ParseUint(fields[3], 10, 64)
		if convErr != nil {
			continue
		}
		switch strings.TrimSuffix(key, ":") {
		case "MemTotal":
			total = val
		case "MemFree":
			free = val
		}
	}
	return total, free, nil
}

// AllocOnNode returns ordinary heap memory. Callers are expected to touch
// it from a thread already pinned to the target node so that first-touch
// page placement lands it there; no explicit node binding is possible
// without libnuma.
func AllocOnNode(size int, node int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("numa: AllocOnNode: size must be positive, got %d", size)
	}
	return make([]byte, size), nil
}

// Free is a no-op under the sysfs backend; memory is reclaimed by the
// garbage collector.
func Free(buf []byte) {}

// MoveToNode is a no-op under the sysfs backend: there is no portable way
// to migrate already-faulted pages without libnuma's move_pages/mbind.
func MoveToNode(buf []byte, node int) error {
	return nil
}
