package kernel

import (
	"github.com/ajroetker/go-highway/hwy"
	"github.com/ajroetker/go-highway/hwy/contrib/algo"
)

// AffineInPlace computes dst[i] = scale*src[i] + add for every element,
// using hwy's fused multiply-add so the teacher's runtime CPU dispatch
// (AVX2/AVX-512/NEON/scalar fallback) picks the inner loop's instruction
// stream.
func AffineInPlace(dst, src []float64, scale, add float64) {
	n := len(src)
	if len(dst) != n {
		panic("kernel: AffineInPlace requires equal-length slices")
	}

	addVec := hwy.Set(add)
	scaleVec := hwy.Set(scale)
	lanes := hwy.Zero[float64]().NumLanes()

	var i int
	for ; i+lanes <= n; i += lanes {
		v := hwy.Load(src[i:])
		r := hwy.FMA(v, scaleVec, addVec)
		hwy.Store(r, dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = scale*src[i] + add
	}
}

// ZeroFloat64 resets a float64 slice to all zeros, used at EdgeReset to
// clear the per-iteration accumulator before the next edge phase. Built
// on algo.Fill's doubling-copy pattern rather than a per-element loop.
func ZeroFloat64(buf []float64) {
	algo.Fill(buf, 0)
}

// PageRankVertexUpdate computes, for every vertex v,
//
//	prop[v] ← ((1-damping)*base + damping*accum[v]) / max(outdeg[v], numVertices)
//
// outdegF is the per-vertex out-degree pre-converted to float64 (computed
// once when the graph is loaded, not per iteration). Unlike AffineInPlace,
// the divisor varies per vertex, so the numerator's FMA and the per-vertex
// max/divide are both done through hwy so the whole update stays on the
// SIMD path rather than falling back to a scalar loop for the division.
func PageRankVertexUpdate(prop, accum, outdegF []float64, damping, base, numVertices float64) {
	n := len(prop)
	dampingVec := hwy.Set(damping)
	constVec := hwy.Set((1 - damping) * base)
	nVec := hwy.Set(numVertices)
	lanes := hwy.Zero[float64]().NumLanes()

	var i int
	for ; i+lanes <= n; i += lanes {
		a := hwy.Load(accum[i:])
		numer := hwy.FMA(a, dampingVec, constVec)
		od := hwy.Load(outdegF[i:])
		divisor := hwy.Max(od, nVec)
		hwy.Store(hwy.Div(numer, divisor), prop[i:])
	}
	for ; i < n; i++ {
		divisor := outdegF[i]
		if numVertices > divisor {
			divisor = numVertices
		}
		prop[i] = (damping*accum[i] + (1-damping)*base) / divisor
	}
}
