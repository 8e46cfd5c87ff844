//go:build linux && !cgo

package numa

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCPUList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cpulist")
	require.NoError(t, os.WriteFile(path, []byte("0-3,8,10-11\n"), 0o644))

	cpus, err := parseCPUList(path)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 8, 10, 11}, cpus)
}

func TestParseNodeMemInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meminfo")
	content := "Node 0 MemTotal:       16422912 kB\nNode 0 MemFree:         8193024 kB\nNode 0 MemUsed:         8229888 kB\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	total, free, err := parseNodeMemInfo(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(16422912), total)
	assert.Equal(t, uint64(8193024), free)
}
