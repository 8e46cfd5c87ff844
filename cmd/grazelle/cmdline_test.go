package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsRequiresInputAndAlgorithm(t *testing.T) {
	_, err := parseArgs("grazelle", nil)
	require.Error(t, err)
	cerr, ok := err.(*cmdlineError)
	require.True(t, ok)
	assert.Equal(t, exitMissingOption, cerr.code)
}

func TestParseArgsUnknownOption(t *testing.T) {
	_, err := parseArgs("grazelle", []string{"-z"})
	require.Error(t, err)
	cerr, ok := err.(*cmdlineError)
	require.True(t, ok)
	assert.Equal(t, exitUnknownOption, cerr.code)
}

func TestParseArgsMissingValue(t *testing.T) {
	_, err := parseArgs("grazelle", []string{"-i"})
	require.Error(t, err)
	cerr, ok := err.(*cmdlineError)
	require.True(t, ok)
	assert.Equal(t, exitMissingValue, cerr.code)
}

func TestParseArgsExtraneousValue(t *testing.T) {
	// "-h" does not accept a value, so the following token being
	// consumable as one is itself the error, matching
	// cmdline_helper_print_error_extraneous_value_and_exit.
	_, err := parseArgs("grazelle", []string{"-h", "bogus"})
	require.Error(t, err)
	cerr, ok := err.(*cmdlineError)
	require.True(t, ok)
	assert.Equal(t, exitExtraneousValue, cerr.code)
}

func TestParseArgsInvalidAlgorithm(t *testing.T) {
	_, err := parseArgs("grazelle", []string{"-i", "graph", "-a", "dijkstra"})
	require.Error(t, err)
	cerr, ok := err.(*cmdlineError)
	require.True(t, ok)
	assert.Equal(t, exitInvalidValue, cerr.code)
}

func TestParseArgsIncompatibleThreadsAndNodes(t *testing.T) {
	_, err := parseArgs("grazelle", []string{"-i", "graph", "-a", "bfs", "-n", "3", "-u", "0,1"})
	require.Error(t, err)
	cerr, ok := err.(*cmdlineError)
	require.True(t, ok)
	assert.Equal(t, exitIncompatibleOptions, cerr.code)
}

func TestParseArgsSuccess(t *testing.T) {
	opts, err := parseArgs("grazelle", []string{"-i", "graph", "-a", "pagerank", "-N", "10", "-n", "4", "-u", "0,1"})
	require.NoError(t, err)
	assert.Equal(t, "graph-pull", opts.inputGather)
	assert.Equal(t, "graph-push", opts.inputScatter)
	assert.Equal(t, algorithmPageRank, opts.algorithm)
	assert.Equal(t, uint(10), opts.numIterations)
	assert.Equal(t, uint(4), opts.numThreads)
	assert.Equal(t, []int{0, 1}, opts.numaNodes)
}

func TestParseArgsVersion(t *testing.T) {
	_, err := parseArgs("grazelle", []string{"-V"})
	require.Error(t, err)
	_, ok := err.(*helpRequested)
	require.True(t, ok)
}
