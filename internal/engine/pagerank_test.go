package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRankConservesTotalRankOnTriangle(t *testing.T) {
	ctx, p := buildTriangle(t)
	defer p.Close()

	ctx.InitPageRank()
	stats := ctx.PageRank(20, DefaultDamping)

	assert.Equal(t, 20, stats.IterationsExecuted)
	assert.Equal(t, 20, stats.IterationsGather)

	numVertices := float64(len(ctx.Prop))
	var weighted float64
	for v, p := range ctx.Prop {
		divisor := ctx.OutDegreeF[v]
		if numVertices > divisor {
			divisor = numVertices
		}
		weighted += p * divisor
	}
	// sum(prop[v] * max(outdeg[v], |V|)) stays 1 every iteration: the
	// per-iteration global correction is solved for exactly that.
	assert.InDelta(t, 1.0, weighted, 1e-9)

	// A symmetric triangle converges to an equal share per vertex.
	for _, v := range ctx.Prop {
		assert.InDelta(t, 1.0/3.0/3.0, v, 1e-6)
	}
}
