package engine

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stanford-mast/grazelle/internal/graph/ingest"
	"github.com/stanford-mast/grazelle/internal/graph/partition"
	"github.com/stanford-mast/grazelle/internal/pool"
)

// buildTriangle writes a pull/push file pair for a 3-vertex, 6-edge
// (fully connected, symmetric) triangle graph and returns a ready
// *Context backed by a 1-node, 2-thread pool.
func buildTriangle(t *testing.T) (*Context, *pool.Pool) {
	t.Helper()
	dir := t.TempDir()

	pullPath := filepath.Join(dir, "triangle-pull")
	pushPath := filepath.Join(dir, "triangle-push")

	// Symmetric edges, pre-sorted by destination for the pull file and by
	// source for the push file.
	pullEdges := [][2]uint64{
		{1, 0}, {2, 0},
		{0, 1}, {2, 1},
		{0, 2}, {1, 2},
	}
	pushEdges := [][2]uint64{
		{0, 1}, {0, 2},
		{1, 0}, {1, 2},
		{2, 0}, {2, 1},
	}
	writeEdgeFileSorted(t, pullPath, 3, pullEdges)
	writeEdgeFileSorted(t, pushPath, 3, pushEdges)

	p, err := pool.New([][]int{{0, 1}}, false)
	require.NoError(t, err)

	gather, err := ingest.Read(context.Background(), pullPath, ingest.Gather)
	require.NoError(t, err)
	scatter, err := ingest.Read(context.Background(), pushPath, ingest.Scatter)
	require.NoError(t, err)

	ranges, err := partition.Assign(3, nil)
	require.NoError(t, err)

	ctx, err := NewContext(3, gather, scatter, ranges, 2, p)
	require.NoError(t, err)

	return ctx, p
}

// buildDisconnectedPair writes a pull/push file pair for a 2-vertex graph
// with no edges between them, so BFS/CC starting from vertex 0 can never
// reach vertex 1.
func buildDisconnectedPair(t *testing.T) (*Context, *pool.Pool) {
	t.Helper()
	dir := t.TempDir()

	pullPath := filepath.Join(dir, "pair-pull")
	pushPath := filepath.Join(dir, "pair-push")

	writeEdgeFileSorted(t, pullPath, 2, nil)
	writeEdgeFileSorted(t, pushPath, 2, nil)

	p, err := pool.New([][]int{{0, 1}}, false)
	require.NoError(t, err)

	gather, err := ingest.Read(context.Background(), pullPath, ingest.Gather)
	require.NoError(t, err)
	scatter, err := ingest.Read(context.Background(), pushPath, ingest.Scatter)
	require.NoError(t, err)

	ranges, err := partition.Assign(2, nil)
	require.NoError(t, err)

	ctx, err := NewContext(2, gather, scatter, ranges, 2, p)
	require.NoError(t, err)

	return ctx, p
}

func writeEdgeFileSorted(t *testing.T, path string, numVertices uint64, pairs [][2]uint64) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	var header [16]byte
	binary.LittleEndian.PutUint64(header[0:8], numVertices)
	binary.LittleEndian.PutUint64(header[8:16], uint64(len(pairs)))
	_, err = f.Write(header[:])
	require.NoError(t, err)

	for _, p := range pairs {
		var buf [16]byte
		binary.LittleEndian.PutUint64(buf[0:8], p[0])
		binary.LittleEndian.PutUint64(buf[8:16], p[1])
		_, err := f.Write(buf[:])
		require.NoError(t, err)
	}
}
