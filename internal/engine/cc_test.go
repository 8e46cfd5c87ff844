package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectedComponentsLabelsTriangleWithSingleComponent(t *testing.T) {
	ctx, p := buildTriangle(t)
	defer p.Close()

	ctx.InitConnectedComponents()
	stats := ctx.ConnectedComponents()

	assert.Equal(t, "connected-components", stats.Algorithm)
	for _, label := range ctx.Prop {
		assert.Equal(t, float64(0), label)
	}
}

func TestConnectedComponentsKeepsDisconnectedVerticesInOwnComponent(t *testing.T) {
	ctx, p := buildDisconnectedPair(t)
	defer p.Close()

	ctx.InitConnectedComponents()
	ctx.ConnectedComponents()

	assert.Equal(t, float64(0), ctx.Prop[0])
	assert.Equal(t, float64(1), ctx.Prop[1])
}
