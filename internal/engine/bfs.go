package engine

import (
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/algo"
)

// InitBFS sets prop[root] = 0, every other vertex's prop to -1 (not yet
// reached), matching execution_initialize_vertex_prop_bfs /
// execution_initialize_frontier_has_info_bfs: a vertex "has info" exactly
// when its prop is non-negative, so no separate frontier bitmap is kept —
// Prop itself doubles as the HasInfo/WantsInfo state, and Accum doubles as
// the next round's candidate distances, realizing the pointer-swap double
// buffer the reference engine implements with raw pointer aliasing.
func (ctx *Context) InitBFS(root uint64) {
	algo.Fill(ctx.Prop, -1)
	ctx.Prop[root] = 0
}

// BFS runs breadth-first search from root, returning once every reachable
// vertex has been assigned a distance. Each superstep's contribute
// function reports the current hop distance to every inactive neighbor of
// an active (has-info) vertex; MinOp.Identity (+Inf) means "no active
// neighbor touched this vertex yet," matching the effect of the reference
// engine's validity mask on inactive edges. Grounded on execution_bfs.c's
// execution_impl_bfs.
func (ctx *Context) BFS(root uint64) Stats {
	initialVote := int64(ctx.OutDegreeF[root]) + 1

	makeContribute := func(iter int) Contribute {
		dist := float64(iter)
		return func(srcProp float64) float64 {
			if srcProp < 0 {
				return math.Inf(1)
			}
			return dist
		}
	}

	update := func(propOld, accumVal float64) (float64, bool) {
		if propOld >= 0 {
			return propOld, false
		}
		if math.IsInf(accumVal, 1) {
			return propOld, false
		}
		return accumVal, true
	}

	return ctx.runFrontierAlgorithm("bfs", initialVote, makeContribute, update)
}
