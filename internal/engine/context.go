// Package engine implements the algorithm control flow — PageRank,
// breadth-first search, and connected components — that drives the
// pull/push/vertex phase kernels in internal/graph/kernel over the pinned
// thread pool in internal/pool. Context replaces the original engine's
// file-scope global arrays (graph_vertex_accumulators,
// graph_frontier_has_info, and friends) with a single mutable-state value
// that every driver and kernel call is threaded through explicitly,
// grounded on the module-level state described across execution.c,
// execution_pr.c, and execution_bfs.c.
package engine

import (
	"fmt"
	"sort"

	"github.com/stanford-mast/grazelle/internal/graph/evec"
	"github.com/stanford-mast/grazelle/internal/graph/ingest"
	"github.com/stanford-mast/grazelle/internal/graph/kernel"
	"github.com/stanford-mast/grazelle/internal/graph/partition"
	"github.com/stanford-mast/grazelle/internal/pool"
)

// DefaultUnitSize is the number of edge vectors per scheduling unit absent
// a `-s` override. It is a fixed count: the number of units per node
// follows from the length of that node's slab, not from the number of
// worker threads.
const DefaultUnitSize = 64

// Context is the single mutable-state value threaded through every
// algorithm driver and kernel call: the graph's edge-vector slabs split
// into per-NUMA-node scheduling units, the live property/accumulator
// arrays, and the thread pool, scheduler, and merge/shadow buffers the
// edge phases mutate each superstep.
type Context struct {
	NumVertices uint64
	NumEdges    uint64
	OutDegreeF  []float64

	Prop  []float64
	Accum []float64

	gatherUnits  [][][]evec.EdgeVector
	scatterUnits [][][]evec.EdgeVector

	Pool         *pool.Pool
	gatherSched  *pool.Scheduler
	scatterSched *pool.Scheduler

	mergeBuffers [][]kernel.MergeEntry
	shadow       [][]float64

	UnitSize int
}

// NewContext splits gather and scatter into per-node scheduling units
// according to ranges, and wires a scheduler, merge buffers, and shadow
// accumulators sized to p's thread pool.
func NewContext(numVertices uint64, gather, scatter *ingest.Result, ranges []partition.Range, unitSize int, p *pool.Pool) (*Context, error) {
	if unitSize <= 0 {
		unitSize = DefaultUnitSize
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("engine: NewContext requires at least one NUMA partition range")
	}

	ctx := &Context{
		NumVertices: numVertices,
		NumEdges:    gather.Header.NumEdges,
		OutDegreeF:  make([]float64, numVertices),
		Prop:        make([]float64, numVertices),
		Accum:       make([]float64, numVertices),
		Pool:        p,
		UnitSize:    unitSize,
	}

	for v, d := range gather.Degree {
		ctx.OutDegreeF[v] = float64(d)
	}

	ctx.gatherUnits = splitIntoUnits(gather.Vectors, ranges, unitSize)
	ctx.scatterUnits = splitIntoUnits(scatter.Vectors, ranges, unitSize)

	gatherTotals := make([]int64, len(ranges))
	scatterTotals := make([]int64, len(ranges))
	ctx.mergeBuffers = make([][]kernel.MergeEntry, len(ranges))
	for i := range ranges {
		gatherTotals[i] = int64(len(ctx.gatherUnits[i]))
		scatterTotals[i] = int64(len(ctx.scatterUnits[i]))
		ctx.mergeBuffers[i] = kernel.NewMergeBuffer(len(ctx.gatherUnits[i]))
	}
	ctx.gatherSched = pool.NewScheduler(gatherTotals)
	ctx.scatterSched = pool.NewScheduler(scatterTotals)

	ctx.shadow = kernel.NewShadowAccumulators(p.NumThreads(), numVertices, kernel.SumOp)

	return ctx, nil
}

// splitIntoUnits partitions a SharedID-sorted edge-vector slab into one
// contiguous sub-slice per NUMA node (by binary-searching each range's
// upper vertex boundary) and then chunks each node's sub-slice into
// fixed-size scheduling units, mirroring graph_helper_numaize_vertices
// applied to an already-built edge-vector list.
func splitIntoUnits(vectors []evec.EdgeVector, ranges []partition.Range, unitSize int) [][][]evec.EdgeVector {
	units := make([][][]evec.EdgeVector, len(ranges))

	start := 0
	for i, r := range ranges {
		end := len(vectors)
		if i < len(ranges)-1 {
			end = sort.Search(len(vectors), func(idx int) bool {
				return vectors[idx].SharedID() > r.Last
			})
		}

		nodeVectors := vectors[start:end]
		units[i] = chunk(nodeVectors, unitSize)
		start = end
	}

	return units
}

func chunk(vectors []evec.EdgeVector, unitSize int) [][]evec.EdgeVector {
	if len(vectors) == 0 {
		return nil
	}
	var out [][]evec.EdgeVector
	for i := 0; i < len(vectors); i += unitSize {
		end := i + unitSize
		if end > len(vectors) {
			end = len(vectors)
		}
		out = append(out, vectors[i:end])
	}
	return out
}
