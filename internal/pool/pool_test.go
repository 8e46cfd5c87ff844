package pool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunVisitsEveryThreadOnce(t *testing.T) {
	p, err := New([][]int{{0, 1}, {2, 3}}, false)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, 4, p.NumThreads())

	var calls atomic.Int32
	seen := make([]atomic.Bool, p.NumThreads())

	p.Run(func(info ThreadInfo) {
		calls.Add(1)
		seen[info.ThreadID].Store(true)
	})

	assert.Equal(t, int32(4), calls.Load())
	for i := range seen {
		assert.True(t, seen[i].Load(), "thread %d was never invoked", i)
	}
}

func TestPoolThreadInfoGrouping(t *testing.T) {
	p, err := New([][]int{{10, 11}, {20, 21}}, false)
	require.NoError(t, err)
	defer p.Close()

	infos := p.Threads()
	require.Len(t, infos, 4)

	assert.Equal(t, 0, infos[0].GroupID)
	assert.Equal(t, 0, infos[1].GroupID)
	assert.Equal(t, 1, infos[2].GroupID)
	assert.Equal(t, 1, infos[3].GroupID)
	assert.Equal(t, 2, infos[0].ThreadsPerGroup)
	assert.Equal(t, 2, infos[0].TotalGroups)
	assert.Equal(t, 4, infos[0].TotalThreads)
}

func TestPoolRunMultiplePhases(t *testing.T) {
	p, err := New([][]int{{0, 1}}, false)
	require.NoError(t, err)
	defer p.Close()

	var total atomic.Int32
	for phase := 0; phase < 5; phase++ {
		p.Run(func(info ThreadInfo) {
			total.Add(1)
		})
	}
	assert.Equal(t, int32(10), total.Load())
}
