package engine

import (
	"github.com/stanford-mast/grazelle/internal/graph/kernel"
	"github.com/stanford-mast/grazelle/internal/pool"
)

// Contribute computes one edge's contribution to its destination (pull) or
// its per-lane contribution from a shared source (push), given the
// current property value of the edge's other endpoint.
type Contribute func(propValue float64) float64

// runGatherPhase runs one pull (gather) edge phase: every scheduling unit
// across every NUMA node is drained by the pool's worker threads through
// kernel.PullUnit, writing either directly into Accum or into this node's
// merge-buffer slot; after the pool.Run barrier, the merge buffers are
// reconciled single-threaded exactly as phases.c's
// edge_pull_op_merge_with_merge_buffer does for "thread 0" after the edge
// barrier.
func (ctx *Context) runGatherPhase(contribute Contribute, op kernel.ReduceOp) {
	ctx.gatherSched.Reset()
	for _, buf := range ctx.mergeBuffers {
		kernel.ResetMergeBuffer(buf)
	}

	ctx.Pool.Run(func(info pool.ThreadInfo) {
		for {
			node, unit, ok := ctx.gatherSched.NextUnit(info.GroupID)
			if !ok {
				break
			}
			vectors := ctx.gatherUnits[node][unit]
			ctx.mergeBuffers[node][unit] = kernel.PullUnit(vectors, ctx.Prop, ctx.Accum, contribute, op)
		}
	})

	for _, buf := range ctx.mergeBuffers {
		kernel.Reconcile(buf, ctx.Accum, op)
	}
}

// runScatterPhase runs one push (scatter) edge phase: every scheduling
// unit is drained into the calling thread's own shadow accumulator (never
// the shared Accum directly), then all threads' shadows are folded into
// Accum once the phase's threads have all finished, per the per-thread
// shadow accumulator strategy recorded in the design ledger.
func (ctx *Context) runScatterPhase(contribute Contribute, op kernel.ReduceOp) {
	ctx.scatterSched.Reset()
	for _, s := range ctx.shadow {
		kernel.ResetShadow(s, op)
	}

	ctx.Pool.Run(func(info pool.ThreadInfo) {
		shadow := ctx.shadow[info.ThreadID]
		for {
			node, unit, ok := ctx.scatterSched.NextUnit(info.GroupID)
			if !ok {
				break
			}
			vectors := ctx.scatterUnits[node][unit]
			kernel.ScatterUnit(vectors, ctx.Prop, shadow, contribute, op)
		}
	})

	kernel.CombineShadows(ctx.shadow, ctx.Accum, op)
}
