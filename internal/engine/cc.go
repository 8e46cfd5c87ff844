package engine

// InitConnectedComponents sets prop[v] = v for every vertex, the
// minimum-label-propagation starting point; no connected-components
// driver exists in the retrieved original source, so this initialization
// and the update rule below are taken directly from spec.md's §4.11
// rather than from a C reference.
func (ctx *Context) InitConnectedComponents() {
	for v := range ctx.Prop {
		ctx.Prop[v] = float64(v)
	}
}

// ConnectedComponents runs label propagation to a fixed point: each
// superstep every vertex learns the minimum label among its neighbors,
// adopts it if smaller than its own, and the superstep votes on how many
// labels changed rather than BFS's frontier-emptying condition. Reuses
// the same pull/push engine-selection and superstep machinery as BFS
// (runFrontierAlgorithm), since both share execution_bfs.c's structural
// shape in the absence of an original CC driver.
func (ctx *Context) ConnectedComponents() Stats {
	initialVote := int64(ctx.NumVertices)

	makeContribute := func(int) Contribute {
		return func(srcProp float64) float64 { return srcProp }
	}

	update := func(propOld, accumVal float64) (float64, bool) {
		if accumVal < propOld {
			return accumVal, true
		}
		return propOld, false
	}

	return ctx.runFrontierAlgorithm("connected-components", initialVote, makeContribute, update)
}
