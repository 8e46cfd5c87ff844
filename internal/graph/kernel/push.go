package kernel

import (
	"github.com/ajroetker/go-highway/hwy/contrib/algo"
	"github.com/stanford-mast/grazelle/internal/graph/evec"
)

// ScatterUnit processes one scheduling unit's edge vectors against a
// source-sorted slab (the scatter engine). The shared endpoint is the
// source: prop[src] is read once per vector and contribute's result is
// combined with op into shadow[dst] for every valid lane, through the four 48-bit
// destination fields with valid-bit masking.
//
// Unlike the pull engine, the scatter list is not grouped by destination,
// so the same accum[dst] slot can be touched by many different threads in
// one phase with no predictable boundary structure to defer through a
// merge buffer. This implementation resolves that with the per-thread
// shadow accumulator strategy recorded in the design ledger: shadow is a
// scratch buffer private to the calling worker thread, never the shared
// accumulator, and CombineShadows folds every worker's shadow buffer into
// the shared accumulator during the phase's existing reduce step.
func ScatterUnit(vectors []evec.EdgeVector, prop, shadow []float64, contribute func(propValue float64) float64, op ReduceOp) {
	for _, v := range vectors {
		src := v.SharedID()
		contribution := contribute(prop[src])
		for lane := 0; lane < evec.NumLanes; lane++ {
			if !v.Valid(lane) {
				continue
			}
			dst := v.IndividualID(lane)
			shadow[dst] = op.Combine(shadow[dst], contribution)
		}
	}
}

// NewShadowAccumulators allocates one scratch buffer of width numVertices
// per worker thread, each initialized to op's identity element.
func NewShadowAccumulators(numThreads int, numVertices uint64, op ReduceOp) [][]float64 {
	shadows := make([][]float64, numThreads)
	for t := range shadows {
		shadows[t] = make([]float64, numVertices)
		ResetShadow(shadows[t], op)
	}
	return shadows
}

// ResetShadow resets one thread's shadow buffer to op's identity element,
// ready for the next phase.
func ResetShadow(shadow []float64, op ReduceOp) {
	algo.Fill(shadow, op.Identity)
}

// CombineShadows folds every worker thread's shadow accumulator into the
// shared accum slice, one destination vertex at a time. This is the
// scatter engine's equivalent of Reconcile: instead of resolving a handful
// of unit-boundary entries, it combines every thread's full-width scratch
// buffer, since scatter contention is not confined to unit boundaries.
func CombineShadows(shadows [][]float64, accum []float64, op ReduceOp) {
	for v := range accum {
		value := op.Identity
		for _, shadow := range shadows {
			value = op.Combine(value, shadow[v])
		}
		accum[v] = op.Combine(accum[v], value)
	}
}
