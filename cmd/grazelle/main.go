// Command grazelle runs PageRank, breadth-first search, or connected
// components over a NUMA-partitioned, vectorized in-memory graph engine.
//
// Program sequencing (parse args, load graph, run algorithm, write
// output, report statistics) follows original_source/source/main.c; the
// command-line contract (flags and exit codes) follows
// original_source/source/cmdline.c.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/stanford-mast/grazelle/internal/engine"
	"github.com/stanford-mast/grazelle/internal/graph/ingest"
	"github.com/stanford-mast/grazelle/internal/graph/partition"
	"github.com/stanford-mast/grazelle/internal/numa"
	"github.com/stanford-mast/grazelle/internal/pool"
)

const (
	programName    = "grazelle"
	programVersion = "1.0.0"
)

func main() {
	opts, err := parseArgs(programName, os.Args[1:])
	if err != nil {
		switch e := err.(type) {
		case *helpRequested:
			fmt.Print(e.text)
			os.Exit(exitOK)
		case *cmdlineError:
			// cmdline.c reports its own parse errors via printf, to
			// stdout, not stderr.
			fmt.Println(e.msg)
			fmt.Printf("Try `%s -h' for more information.\n", programName)
			os.Exit(e.code)
		default:
			fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
			os.Exit(exitUnknownOption)
		}
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(exitFileReadFailure)
	}
}

func run(opts *options) error {
	start := time.Now()

	ctx := context.Background()
	gather, err := ingest.Read(ctx, opts.inputGather, ingest.Gather)
	if err != nil {
		return fmt.Errorf("loading gather list: %w", err)
	}
	scatter, err := ingest.Read(ctx, opts.inputScatter, ingest.Scatter)
	if err != nil {
		return fmt.Errorf("loading scatter list: %w", err)
	}
	if gather.Header.NumVertices != scatter.Header.NumVertices {
		return fmt.Errorf("gather and scatter files disagree on vertex count (%d vs %d)", gather.Header.NumVertices, scatter.Header.NumVertices)
	}
	numVertices := gather.Header.NumVertices

	cpusPerNode, err := cpuGroups(opts.numaNodes, int(opts.numThreads))
	if err != nil {
		return fmt.Errorf("building worker thread groups: %w", err)
	}

	p, err := pool.New(cpusPerNode, false)
	if err != nil {
		return fmt.Errorf("starting worker pool: %w", err)
	}
	defer p.Close()

	// -s <uint> names the desired vectors-per-unit directly (spec.md §6);
	// 0 means "use the engine's default granularity."
	unitSize := engine.DefaultUnitSize
	if opts.schedGranularity > 0 {
		unitSize = int(opts.schedGranularity)
	}

	rawBoundaries := partition.RawBoundaries(gather.Vectors, len(cpusPerNode))
	ranges, err := partition.Assign(numVertices, rawBoundaries)
	if err != nil {
		return fmt.Errorf("partitioning vertices across NUMA nodes: %w", err)
	}

	gctx, err := engine.NewContext(numVertices, gather, scatter, ranges, unitSize, p)
	if err != nil {
		return fmt.Errorf("building graph context: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Loading graph took %s.\n", time.Since(start))
	fmt.Fprintln(os.Stderr, "Starting execution.")

	stats := runAlgorithm(gctx, opts)

	if opts.output != "" {
		if err := writeRanks(opts.output, gctx.Prop); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
	}

	reportStats(stats, numVertices)
	return nil
}

// runAlgorithm dispatches to the requested driver. BFS always starts from
// vertex 0, matching original_source/source/execution_bfs.c's SEARCH_ROOT
// constant; there is no command-line override for the search root.
const searchRoot = 0

func runAlgorithm(gctx *engine.Context, opts *options) engine.Stats {
	switch opts.algorithm {
	case algorithmBFS:
		gctx.InitBFS(searchRoot)
		return gctx.BFS(searchRoot)
	case algorithmCC:
		gctx.InitConnectedComponents()
		return gctx.ConnectedComponents()
	default:
		gctx.InitPageRank()
		return gctx.PageRank(int(opts.numIterations), engine.DefaultDamping)
	}
}

// cpuGroups assigns numThreads worker CPUs across the requested NUMA
// nodes, numThreads/len(nodes) per node, matching threads_spawn's
// even per-node distribution. When NUMA topology discovery is unavailable
// it falls back to one synthetic group per requested node, every group
// holding the same logical CPU indices, so the program still runs
// (without real NUMA pinning) on non-Linux hosts or containers lacking
// /sys/devices/system/node.
func cpuGroups(nodes []int, numThreads int) ([][]int, error) {
	if len(nodes) == 0 {
		nodes = []int{0}
	}
	perNode := numThreads / len(nodes)
	if perNode == 0 {
		perNode = 1
	}

	topo, err := numa.Discover()
	if err != nil {
		cpus := make([]int, perNode)
		for i := range cpus {
			cpus[i] = i % runtime.NumCPU()
		}
		groups := make([][]int, len(nodes))
		for i := range groups {
			groups[i] = cpus
		}
		return groups, nil
	}

	groups := make([][]int, len(nodes))
	for i, node := range nodes {
		available := topo.CPUsOnNode(node)
		if len(available) == 0 {
			return nil, fmt.Errorf("numa node %d has no CPUs", node)
		}
		cpus := make([]int, perNode)
		for j := range cpus {
			cpus[j] = available[j%len(available)]
		}
		groups[i] = cpus
	}
	return groups, nil
}

func writeRanks(path string, prop []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for v, value := range prop {
		if _, err := fmt.Fprintf(f, "%d %v\n", v, value); err != nil {
			return err
		}
	}
	return nil
}

func reportStats(stats engine.Stats, numVertices uint64) {
	fmt.Fprintln(os.Stderr, "Execution completed.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "------------ EXECUTION STATISTICS ------------")
	fmt.Fprintf(os.Stderr, "%-25s = %s\n", "Algorithm", stats.Algorithm)
	fmt.Fprintf(os.Stderr, "%-25s = %s\n", "Total Time", stats.TotalTime)
	fmt.Fprintf(os.Stderr, "%-25s = %s\n", "Edge Phase Time", stats.EdgePhaseTime)
	fmt.Fprintf(os.Stderr, "%-25s = %s\n", "Vertex Phase Time", stats.VertexPhaseTime)
	fmt.Fprintf(os.Stderr, "%-25s = %d\n", "Total Iterations", stats.IterationsExecuted)
	fmt.Fprintf(os.Stderr, "%-25s = %d\n", "Pull-Based Iterations", stats.IterationsGather)
	fmt.Fprintf(os.Stderr, "%-25s = %d\n", "Push-Based Iterations", stats.IterationsScatter)
	fmt.Fprintf(os.Stderr, "%-25s = %d\n", "Edges Processed", stats.EdgesProcessed)
	fmt.Fprintln(os.Stderr, "----------------------------------------------")
}
