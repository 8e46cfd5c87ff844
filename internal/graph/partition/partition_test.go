package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignRoundsToBlockBoundary(t *testing.T) {
	// Node 0's raw boundary is vertex 1000, which is not itself a multiple
	// of 512; it should be rounded up to 1023 (the end of the block that
	// contains 1000), and node 1 picks up immediately after.
	ranges, err := Assign(2000, []uint64{1000})
	require.NoError(t, err)
	require.Len(t, ranges, 2)

	assert.Equal(t, uint64(0), ranges[0].First)
	assert.Equal(t, uint64(1023), ranges[0].Last)
	assert.Equal(t, uint64(1024), ranges[1].First)
	assert.Equal(t, uint64(1999), ranges[1].Last)
}

func TestAssignExactBoundaryIsUnchanged(t *testing.T) {
	ranges, err := Assign(2048, []uint64{511})
	require.NoError(t, err)
	assert.Equal(t, uint64(511), ranges[0].Last)
	assert.Equal(t, uint64(512), ranges[1].First)
}

func TestAssignCoversWholeRangeWithNoGaps(t *testing.T) {
	ranges, err := Assign(10000, []uint64{1200, 5300, 7777})
	require.NoError(t, err)
	require.Len(t, ranges, 4)

	assert.Equal(t, uint64(0), ranges[0].First)
	assert.Equal(t, uint64(9999), ranges[3].Last)

	for i := 1; i < len(ranges); i++ {
		assert.Equal(t, ranges[i-1].Last+1, ranges[i].First, "range %d must start immediately after range %d ends", i, i-1)
	}

	var total uint64
	for _, r := range ranges {
		total += r.Count()
	}
	assert.Equal(t, uint64(10000), total)
}
