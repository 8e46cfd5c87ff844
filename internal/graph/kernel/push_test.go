package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stanford-mast/grazelle/internal/graph/evec"
)

func TestScatterUnitAddsIntoShadowNotAccum(t *testing.T) {
	vectors := []evec.EdgeVector{
		evec.Pack(0, [4]uint64{1, 2, 3, 4}, 4),
	}
	prop := []float64{7}
	shadow := make([]float64, 6)

	ScatterUnit(vectors, prop, shadow, identity, SumOp)

	assert.Equal(t, 7.0, shadow[1])
	assert.Equal(t, 7.0, shadow[2])
	assert.Equal(t, 7.0, shadow[3])
	assert.Equal(t, 7.0, shadow[4])
}

func TestCombineShadowsMergesAllThreadsIntoAccum(t *testing.T) {
	shadows := NewShadowAccumulators(3, 2, SumOp)
	shadows[0][1] = 1.0
	shadows[1][1] = 2.0
	shadows[2][1] = 3.0

	accum := make([]float64, 2)
	accum[1] = 10.0 // pull-phase contribution from an earlier step

	CombineShadows(shadows, accum, SumOp)

	assert.Equal(t, 16.0, accum[1])
}

func TestResetShadowRestoresIdentity(t *testing.T) {
	shadow := []float64{1, 2, 3}
	ResetShadow(shadow, SumOp)
	assert.Equal(t, []float64{0, 0, 0}, shadow)

	ResetShadow(shadow, MinOp)
	for _, v := range shadow {
		assert.Equal(t, MinOp.Identity, v)
	}
}
