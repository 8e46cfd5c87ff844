package ingest

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEdgeFile(t *testing.T, path string, numVertices uint64, pairs [][2]uint64) {
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

func TestReadGatherCoalescesSharedDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph-pull")

	// Destination-sorted: dst=5 appears for 3 consecutive records, dst=7 for 1.
	writeEdgeFile(t, path, 10, [][2]uint64{
		{1, 5}, {2, 5}, {3, 5}, {4, 7},
	})

	result, err := Read(context.Background(), path, Gather)
	require.NoError(t, err)

	require.Len(t, result.Vectors, 2)

	v0 := result.Vectors[0]
	assert.Equal(t, uint64(5), v0.SharedID())
	assert.Equal(t, 3, v0.ValidCount())

	v1 := result.Vectors[1]
	assert.Equal(t, uint64(7), v1.SharedID())
	assert.Equal(t, 1, v1.ValidCount())

	assert.Equal(t, uint64(1), result.Degree[1])
	assert.Equal(t, uint64(1), result.Degree[2])
	assert.Equal(t, uint64(1), result.Degree[3])
	assert.Equal(t, uint64(1), result.Degree[4])
}

func TestReadSplitsAtFiveSharedEdges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph-push")

	// 5 edges sharing src=1: first vector takes 4, second takes the rest.
	writeEdgeFile(t, path, 10, [][2]uint64{
		{1, 2}, {1, 3}, {1, 4}, {1, 5}, {1, 6},
	})

	result, err := Read(context.Background(), path, Scatter)
	require.NoError(t, err)

	require.Len(t, result.Vectors, 2)
	assert.Equal(t, uint64(1), result.Vectors[0].SharedID())
	assert.Equal(t, 4, result.Vectors[0].ValidCount())
	assert.Equal(t, uint64(1), result.Vectors[1].SharedID())
	assert.Equal(t, 1, result.Vectors[1].ValidCount())
}

func TestReadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty-pull")
	writeEdgeFile(t, path, 3, nil)

	result, err := Read(context.Background(), path, Gather)
	require.NoError(t, err)
	assert.Empty(t, result.Vectors)
	assert.Equal(t, uint64(3), result.Header.NumVertices)
}

func TestReadRejectsTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated-pull")

	f, err := os.Create(path)
	require.NoError(t, err)
	var header [16]byte
	binary.LittleEndian.PutUint64(header[0:8], 5)
	binary.LittleEndian.PutUint64(header[8:16], 100)
	_, err = f.Write(header[:])
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Read(context.Background(), path, Gather)
	assert.Error(t, err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(context.Background(), "/nonexistent/path-pull", Gather)
	assert.Error(t, err)
}
