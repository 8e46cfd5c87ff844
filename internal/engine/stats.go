package engine

import "time"

// Stats is run-completion telemetry every algorithm driver returns: how
// many supersteps ran, how many of those chose the pull vs. push engine,
// per-phase wall time, and edges processed. This supplements spec.md,
// which does not specify a statistics surface; it mirrors main.c and
// execution.c's total_iterations_executed / total_iterations_used_gather
// / total_iterations_used_scatter bookkeeping, reported unconditionally
// at program exit rather than gated behind any CLI flag (spec.md's `-s`
// is the scheduling-granularity override, not a statistics toggle).
type Stats struct {
	Algorithm          string
	IterationsExecuted int
	IterationsGather   int
	IterationsScatter  int
	EdgesProcessed     uint64
	EdgePhaseTime      time.Duration
	VertexPhaseTime    time.Duration
	TotalTime          time.Duration
}
