package engine

import (
	"time"

	"github.com/stanford-mast/grazelle/internal/graph/kernel"
	"github.com/stanford-mast/grazelle/internal/pool"
)

// DefaultDamping is the PageRank damping factor the reference engine uses
// absent an override.
const DefaultDamping = 0.85

// InitPageRank sets prop[v] = (1/|V|) / max(outdeg[v], |V|) and zeros
// accum, matching execution_initialize_vertex_prop_pr /
// execution_initialize_vertex_accum_pr.
func (ctx *Context) InitPageRank() {
	n := float64(ctx.NumVertices)
	for v := range ctx.Prop {
		divisor := ctx.OutDegreeF[v]
		if n > divisor {
			divisor = n
		}
		ctx.Prop[v] = (1.0 / n) / divisor
	}
	kernel.ZeroFloat64(ctx.Accum)
}

// PageRank runs a fixed number of iterations of the pull-engine PageRank
// superstep: reset accum, pull phase, merge-reconcile, reduce the global
// normalization correction across threads, vertex phase, repeat.
// Grounded on execution_impl_pr's iteration loop in execution_pr.c.
func (ctx *Context) PageRank(numIterations int, damping float64) Stats {
	start := time.Now()
	stats := Stats{Algorithm: "pagerank"}

	accumPartial := make([]float64, ctx.Pool.NumThreads())
	n := float64(ctx.NumVertices)

	for iter := 0; iter < numIterations; iter++ {
		kernel.ZeroFloat64(ctx.Accum)

		edgeStart := time.Now()
		ctx.runGatherPhase(func(propValue float64) float64 { return propValue }, kernel.SumOp)
		stats.EdgePhaseTime += time.Since(edgeStart)
		stats.IterationsGather++

		// Each thread writes its partial sum of accum[v] to the reduce
		// buffer; the combined total lets every thread recover the single
		// global correction "base" that keeps
		// sum(prop[v]*max(outdeg[v],|V|)) == 1 across iterations, solving
		// n*(1-damping)*base + damping*sum(accum[v]) == 1 for base.
		ctx.Pool.Run(func(info pool.ThreadInfo) {
			first, count := vertexShare(ctx.NumVertices, ctx.Pool.NumThreads(), info.ThreadID)
			var partial float64
			for v := first; v < first+count; v++ {
				partial += ctx.Accum[v]
			}
			accumPartial[info.ThreadID] = partial
		})
		totalAccum := kernel.CombineGlobal(accumPartial, kernel.SumOp)

		var base float64
		if oneMinusDamping := 1 - damping; oneMinusDamping > 0 {
			base = (1 - damping*totalAccum) / (n * oneMinusDamping)
		}

		vertexStart := time.Now()
		ctx.Pool.Run(func(info pool.ThreadInfo) {
			first, count := vertexShare(ctx.NumVertices, ctx.Pool.NumThreads(), info.ThreadID)
			kernel.PageRankVertexUpdate(
				ctx.Prop[first:first+count],
				ctx.Accum[first:first+count],
				ctx.OutDegreeF[first:first+count],
				damping, base, float64(ctx.NumVertices),
			)
		})
		stats.VertexPhaseTime += time.Since(vertexStart)

		stats.IterationsExecuted++
	}

	stats.TotalTime = time.Since(start)
	return stats
}

// vertexShare splits [0, numVertices) into numThreads contiguous shares
// and returns the share owned by threadID; the first
// numVertices%numThreads threads each take one extra vertex.
func vertexShare(numVertices uint64, numThreads, threadID int) (first, count uint64) {
	base := numVertices / uint64(numThreads)
	remainder := numVertices % uint64(numThreads)

	first = uint64(threadID) * base
	if uint64(threadID) < remainder {
		first += uint64(threadID)
	} else {
		first += remainder
	}

	count = base
	if uint64(threadID) < remainder {
		count++
	}
	return first, count
}
