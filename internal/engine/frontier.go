package engine

import (
	"time"

	"github.com/stanford-mast/grazelle/internal/graph/kernel"
	"github.com/stanford-mast/grazelle/internal/pool"
)

// EngineThresholdDenominator is the divisor applied to the edge count to
// decide, each superstep, whether the pull or push engine processes that
// superstep's edge phase: pull is chosen when convergeVote exceeds
// numEdges/EngineThresholdDenominator. Matches execution_bfs.c's
// `engine_threshold = graph_num_edges / 5`.
const EngineThresholdDenominator = 5

// frontierUpdate computes a vertex's next property value from its current
// one and the value the edge phase just combined into Accum for it,
// reporting whether that vertex's state changed this superstep (and
// therefore counts toward the convergence vote).
type frontierUpdate func(propOld, accumVal float64) (propNew float64, changed bool)

// runFrontierAlgorithm implements the shared superstep shape BFS and
// connected components both use: dynamically choose the pull or push
// engine based on the converge-vote/edge-count ratio, run that edge
// phase, apply update to every vertex, tally how many changed into the
// next convergence vote, and repeat until nothing changes. Grounded on
// execution_impl_bfs's main loop in execution_bfs.c; connected components
// reuses this shape because no original connected-components driver
// exists in the retrieved source (only execution_pr.c and
// execution_bfs.c), per the design ledger.
func (ctx *Context) runFrontierAlgorithm(name string, initialConvergeVote int64, makeContribute func(iter int) Contribute, update frontierUpdate) Stats {
	start := time.Now()
	stats := Stats{Algorithm: name}

	convergeVote := initialConvergeVote
	threshold := int64(ctx.NumEdges) / EngineThresholdDenominator
	perThreadVotes := make([]int64, ctx.Pool.NumThreads())

	for iter := 1; ; iter++ {
		kernel.ResetShadow(ctx.Accum, kernel.MinOp)

		useGather := convergeVote > threshold
		contribute := makeContribute(iter)

		edgeStart := time.Now()
		if useGather {
			ctx.runGatherPhase(contribute, kernel.MinOp)
			stats.IterationsGather++
		} else {
			ctx.runScatterPhase(contribute, kernel.MinOp)
			stats.IterationsScatter++
		}
		stats.EdgePhaseTime += time.Since(edgeStart)

		vertexStart := time.Now()
		ctx.Pool.Run(func(info pool.ThreadInfo) {
			first, count := vertexShare(ctx.NumVertices, ctx.Pool.NumThreads(), info.ThreadID)
			var vote int64
			for v := first; v < first+count; v++ {
				newProp, changed := update(ctx.Prop[v], ctx.Accum[v])
				if changed {
					ctx.Prop[v] = newProp
					vote++
				}
			}
			perThreadVotes[info.ThreadID] = vote
		})
		stats.VertexPhaseTime += time.Since(vertexStart)

		convergeVote = kernel.CombineGlobalInt(perThreadVotes)
		stats.IterationsExecuted++
		stats.EdgesProcessed += ctx.NumEdges

		if convergeVote == 0 {
			break
		}
	}

	stats.TotalTime = time.Since(start)
	return stats
}
