package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileSingleUnitChain(t *testing.T) {
	// Unit 0 ends on vertex 7 (deferred), unit 1 begins and ends on vertex 7
	// too (its whole contents are one group), unit 2 begins on vertex 7 but
	// is otherwise unrelated to it (its own last group differs).
	entries := NewMergeBuffer(3)
	entries[0] = MergeEntry{InitialVertexID: 3, FinalVertexID: 7, FinalPartialValue: 1.0}
	entries[1] = MergeEntry{InitialVertexID: 7, FinalVertexID: 7, FinalPartialValue: 2.0}
	entries[2] = MergeEntry{InitialVertexID: 7, FinalVertexID: 9, FinalPartialValue: 5.0}

	accum := make([]float64, 10)
	accum[7] = 10.0 // direct commit already made by unit 2's first group

	Reconcile(entries, accum, SumOp)

	assert.Equal(t, 1.0+2.0+10.0, accum[7])
}

func TestReconcileSkipsEmptyEntries(t *testing.T) {
	entries := NewMergeBuffer(3)
	entries[1] = MergeEntry{InitialVertexID: 2, FinalVertexID: 4, FinalPartialValue: 9.0}

	accum := make([]float64, 6)
	Reconcile(entries, accum, SumOp)

	assert.Equal(t, 9.0, accum[4])
	assert.Equal(t, 0.0, accum[2])
}

func TestReconcileNoFollowingUnitCommitsAlone(t *testing.T) {
	entries := NewMergeBuffer(1)
	entries[0] = MergeEntry{InitialVertexID: 0, FinalVertexID: 0, FinalPartialValue: 4.0}

	accum := make([]float64, 1)
	Reconcile(entries, accum, SumOp)

	assert.Equal(t, 4.0, accum[0])
}
