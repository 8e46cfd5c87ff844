// Package kernel implements the pull (gather), push (scatter), and vertex
// phase kernels that consume edge-vector slabs and mutate the per-node
// accumulator, property, and merge-buffer arrays, along with the
// reduce-buffer combine step shared by all three phases.
//
// Grounded on the pull/push/vertex phase and phase_op_combine_global_var_from_buf
// functions in the original engine's phases.c.
package kernel

import (
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/vec"
)

// ReduceOp names a binary operator used both inside one edge vector's lanes
// and across per-thread partials at a reduce-buffer combine step.
type ReduceOp struct {
	Name     string
	Combine  func(a, b float64) float64
	Identity float64
}

// SumOp is the reduce operator PageRank uses.
var SumOp = ReduceOp{
	Name:     "sum",
	Combine:  func(a, b float64) float64 { return a + b },
	Identity: 0,
}

// MinOp is the reduce operator BFS and connected components use to
// reconcile competing distance or component-label proposals.
var MinOp = ReduceOp{
	Name: "min",
	Combine: func(a, b float64) float64 {
		if b < a {
			return b
		}
		return a
	},
	Identity: math.Inf(1),
}

// CombineGlobal reduces one per-thread partial value per worker into a
// single scalar using the SIMD-accelerated reduction primitives kept from
// the teacher's hwy/contrib/vec package, mirroring
// phase_op_combine_global_var_from_buf's all-threads-write-then-one-reduce
// shape.
func CombineGlobal(partials []float64, op ReduceOp) float64 {
	if len(partials) == 0 {
		return op.Identity
	}
	switch op.Name {
	case "sum":
		return vec.BaseSum(partials)
	case "min":
		return vec.BaseMin(partials)
	default:
		result := op.Identity
		for _, p := range partials {
			result = op.Combine(result, p)
		}
		return result
	}
}

// CombineGlobalInt reduces per-thread integer counters (the BFS/CC
// "converge vote" tally). This one is small — one entry per worker thread,
// not per vertex — so a plain scalar loop is used rather than routing
// through hwy: there is no vertex-width data here for SIMD to amortize
// against.
func CombineGlobalInt(partials []int64) int64 {
	var total int64
	for _, p := range partials {
		total += p
	}
	return total
}
