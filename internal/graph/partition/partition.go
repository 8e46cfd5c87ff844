// Package partition assigns vertex-ID ranges to NUMA nodes.
//
// Each node's raw boundary is initially the highest vertex ID addressed by
// the portion of the edge list assigned to that node; Assign then rounds
// that boundary up to the last vertex of its 512-vertex block so that every
// node's vertex range starts and ends on a 512-vertex-aligned edge, which
// is the width the frontier-combine phase processes per SIMD vector.
// Grounded on graph_helper_numaize_vertices in the original engine's
// graphdata.c.
package partition

import (
	"fmt"

	"github.com/stanford-mast/grazelle/internal/graph/evec"
)

// FrontierBlockSize is the vertex-ID alignment used for inter-node
// boundaries, matching the frontier combine phase's effective vector
// width.
const FrontierBlockSize = 512

// Range is the contiguous, inclusive vertex-ID range assigned to one NUMA
// node.
type Range struct {
	First uint64
	Last  uint64
}

// Count returns the number of vertices in the range.
func (r Range) Count() uint64 { return r.Last - r.First + 1 }

// Assign computes per-node vertex ranges from each node's raw (unaligned)
// upper boundary, except the last node which always extends to
// numVertices-1. rawBoundaries must have one entry per node except the
// last (len(rawBoundaries) == numNodes-1).
func Assign(numVertices uint64, rawBoundaries []uint64) ([]Range, error) {
	numNodes := len(rawBoundaries) + 1
	if numVertices == 0 {
		return nil, fmt.Errorf("partition: numVertices must be positive")
	}

	ranges := make([]Range, numNodes)
	for i := 0; i < numNodes; i++ {
		if i > 0 {
			ranges[i].First = ranges[i-1].Last + 1
		} else {
			ranges[i].First = 0
		}

		if i < numNodes-1 {
			raw := rawBoundaries[i]
			ranges[i].Last = raw + (FrontierBlockSize - 1) - (raw % FrontierBlockSize)
			if ranges[i].Last >= numVertices {
				ranges[i].Last = numVertices - 1
			}
		} else {
			ranges[i].Last = numVertices - 1
		}
	}
	return ranges, nil
}

// RawBoundaries splits a destination-sorted (gather) edge-vector slab into
// numNodes contiguous, roughly edge-count-equal segments and returns each
// segment's raw upper vertex boundary — the shared (destination) ID of the
// last edge vector in that segment — for every node except the last, ready
// to pass to Assign. Grounded on the effect described in
// graph_helper_numaize_vertices: splitting the ingested edge list evenly by
// count across nodes before rounding each boundary to a block edge.
func RawBoundaries(vectors []evec.EdgeVector, numNodes int) []uint64 {
	if numNodes <= 1 || len(vectors) == 0 {
		return nil
	}

	n := len(vectors)
	out := make([]uint64, numNodes-1)
	for i := 0; i < numNodes-1; i++ {
		idx := (i+1)*n/numNodes - 1
		if idx < 0 {
			idx = 0
		}
		out[i] = vectors[idx].SharedID()
	}
	return out
}
