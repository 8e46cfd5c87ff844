package kernel

import (
	"github.com/stanford-mast/grazelle/internal/graph/evec"
)

// group is one run of consecutive edge vectors sharing the same
// destination within a unit.
type group struct {
	dst   uint64
	value float64
}

// PullUnit processes one scheduling unit's edge vectors against a
// destination-sorted slab (the gather engine). For every valid lane it
// reads prop[src] through contribute, combines same-destination lanes and
// vectors with op, and writes each destination's combined value straight
// into accum — except the unit's last destination group, which may
// continue into the next unit processed concurrently by another thread.
// The unit's first group is safe to commit directly (the
// preceding unit, if any, always defers its own last group instead); the
// last group is always deferred into the returned MergeEntry, to be
// resolved by Reconcile after the edge-phase barrier.
//
// Grounded on the pull-phase edge loop and per-unit merge-buffer emission
// described for the reference engine's phases.c.
func PullUnit(vectors []evec.EdgeVector, prop, accum []float64, contribute func(propValue float64) float64, op ReduceOp) MergeEntry {
	groups := collectGroups(vectors, prop, contribute, op)
	if len(groups) == 0 {
		return MergeEntry{InitialVertexID: emptySentinel}
	}

	if len(groups) == 1 {
		g := groups[0]
		return MergeEntry{InitialVertexID: g.dst, FinalVertexID: g.dst, FinalPartialValue: g.value}
	}

	for _, g := range groups[:len(groups)-1] {
		accum[g.dst] = g.value
	}

	last := groups[len(groups)-1]
	return MergeEntry{
		InitialVertexID:   groups[0].dst,
		FinalVertexID:     last.dst,
		FinalPartialValue: last.value,
	}
}

// collectGroups walks vectors in order, combining lanes within a vector
// and vectors within a run of equal destinations.
func collectGroups(vectors []evec.EdgeVector, prop []float64, contribute func(float64) float64, op ReduceOp) []group {
	if len(vectors) == 0 {
		return nil
	}

	var groups []group
	curDst := vectors[0].SharedID()
	curVal := op.Identity

	flush := func() {
		groups = append(groups, group{dst: curDst, value: curVal})
	}

	for _, v := range vectors {
		dst := v.SharedID()
		if dst != curDst {
			flush()
			curDst = dst
			curVal = op.Identity
		}
		for lane := 0; lane < evec.NumLanes; lane++ {
			if !v.Valid(lane) {
				continue
			}
			src := v.IndividualID(lane)
			curVal = op.Combine(curVal, contribute(prop[src]))
		}
	}
	flush()

	return groups
}
