package kernel

// emptySentinel marks a merge-buffer entry that no unit has written to this
// iteration, stored as the high bit of InitialVertexID so no separate
// boolean field is needed (matching the original engine's bit-packed
// sentinel rather than a tagged variant).
const emptySentinel = uint64(1) << 63

// MergeEntry is one scheduling unit's deferred cross-unit contribution.
// Two threads on the same NUMA node can, at a unit boundary, both touch
// the same destination vertex; rather than writing that shared destination
// to the accumulator directly from two threads, each unit defers it into
// its own MergeEntry slot, and a single-threaded reconciliation pass after
// the edge-phase barrier resolves the chain.
type MergeEntry struct {
	InitialVertexID   uint64
	FinalVertexID     uint64
	FinalPartialValue float64
	_                 uint64 // padding to a 32-byte entry
}

// NewMergeBuffer allocates n empty entries, one per scheduling unit.
func NewMergeBuffer(n int) []MergeEntry {
	buf := make([]MergeEntry, n)
	ResetMergeBuffer(buf)
	return buf
}

// ResetMergeBuffer marks every entry empty, reusing the backing array
// across iterations.
func ResetMergeBuffer(buf []MergeEntry) {
	for i := range buf {
		buf[i] = MergeEntry{InitialVertexID: emptySentinel}
	}
}

func (e MergeEntry) empty() bool {
	return e.InitialVertexID&emptySentinel != 0
}

// Reconcile scans the merge buffer in scheduling-unit order and folds each
// deferred chain of same-destination entries into accum, matching the
// scan described for the reference engine's pull-phase reconciliation:
// consecutive entries whose FinalVertexID agree are combined together,
// and if the unit immediately following that run began on the very same
// vertex, the value already committed directly to accum for that vertex
// is folded in too.
func Reconcile(entries []MergeEntry, accum []float64, op ReduceOp) {
	i := 0
	for i < len(entries) {
		if entries[i].empty() {
			i++
			continue
		}

		proposed := entries[i].FinalPartialValue
		finalVertex := entries[i].FinalVertexID

		j := i + 1
		for j < len(entries) && !entries[j].empty() && entries[j].FinalVertexID == finalVertex {
			proposed = op.Combine(proposed, entries[j].FinalPartialValue)
			j++
		}

		if j < len(entries) && !entries[j].empty() && entries[j].InitialVertexID == finalVertex {
			proposed = op.Combine(proposed, accum[finalVertex])
		}

		accum[finalVertex] = proposed
		i = j
	}
}
