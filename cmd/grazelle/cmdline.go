package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Exit codes, matching original_source/source/cmdline.c's
// cmdline_helper_print_error_*_and_exit family exactly.
const (
	exitOK                  = 0
	exitUnknownOption       = 1
	exitInvalidValue        = 2
	exitMissingValue        = 3
	exitExtraneousValue     = 4
	exitMissingOption       = 5
	exitIncompatibleOptions = 6
	exitFileReadFailure     = 255
)

// defaultNumThreads mirrors CMDLINE_DEFAULT_NUM_THREADS: 0 means "compute
// from the requested NUMA nodes at validation time."
const defaultNumThreads = 0

// defaultNumIterations mirrors CMDLINE_DEFAULT_NUM_ITERATIONS.
const defaultNumIterations = 20

// defaultSchedGranularity of 0 means "no vectors-per-unit override": the
// engine's fixed engine.DefaultUnitSize is used. The unit size is not
// derived from the number of threads.
const defaultSchedGranularity = 0

// algorithm names accepted by -a, a flag this binary adds because,
// unlike the reference engine's one-algorithm-per-build compilation, a
// single binary here runs whichever algorithm is requested at runtime.
const (
	algorithmPageRank = "pagerank"
	algorithmBFS      = "bfs"
	algorithmCC       = "cc"
)

// cmdlineError is a fatal command-line error carrying the exit code
// cmdline.c would have used for the equivalent condition.
type cmdlineError struct {
	code int
	msg  string
}

func (e *cmdlineError) Error() string { return e.msg }

// helpRequested signals that -h/-? or -V was given: usage or version text
// was already printed and the program should exit 0 without running.
type helpRequested struct{ text string }

func (h *helpRequested) Error() string { return h.text }

// options is the parsed and validated command-line configuration,
// equivalent to cmdline_opts_t.
type options struct {
	inputGather      string
	inputScatter     string
	output           string
	numThreads       uint
	numIterations    uint
	numaNodes        []int
	schedGranularity uint64
	algorithm        string
}

func isSwitchChar(c byte) bool { return c == '-' }

// isRecognizedOption reports whether c is one of the single-character
// switches this binary understands, per
// cmdline_helper_is_recognized_option.
func isRecognizedOption(c byte) bool {
	switch c {
	case 'h', '?', 'i', 'n', 'N', 'o', 's', 'u', 'V', 'a':
		return true
	default:
		return false
	}
}

// optionRequiresValue mirrors cmdline_helper_option_requires_value.
func optionRequiresValue(c byte) bool {
	switch c {
	case 'i', 'n', 'N', 'u', 'o', 's', 'a':
		return true
	default:
		return false
	}
}

// optionAcceptsValue mirrors cmdline_helper_option_accepts_value: an
// option accepts a value exactly when it requires one, so h, ? and V
// accept none.
func optionAcceptsValue(c byte) bool {
	switch c {
	case 'h', '?':
		return false
	default:
		return optionRequiresValue(c)
	}
}

// parseArgs walks argv (excluding argv[0]) the way
// cmdline_parse_options_or_die does: each token starting with '-' is an
// option switch; if the following token is present and does not itself
// look like a switch, it is consumed as that option's value.
func parseArgs(argv0 string, args []string) (*options, error) {
	opts := &options{
		numThreads:       defaultNumThreads,
		numIterations:    defaultNumIterations,
		schedGranularity: defaultSchedGranularity,
		numaNodes:        []int{0},
	}

	i := 0
	for i < len(args) {
		option := args[i]
		var value *string

		if i+1 < len(args) {
			next := args[i+1]
			if len(next) > 0 && !isSwitchChar(next[0]) {
				value = &args[i+1]
				i++
			}
		}

		if err := parseSingleOption(argv0, option, value, opts); err != nil {
			return nil, err
		}
		i++
	}

	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func parseSingleOption(argv0, option string, value *string, opts *options) error {
	if len(option) != 2 || !isSwitchChar(option[0]) {
		return &cmdlineError{exitUnknownOption, fmt.Sprintf("%s: Unrecognized option `%s'.", argv0, option)}
	}
	c := option[1]

	if !isRecognizedOption(c) {
		return &cmdlineError{exitUnknownOption, fmt.Sprintf("%s: Unrecognized option `%s'.", argv0, option)}
	}
	if optionRequiresValue(c) && value == nil {
		return &cmdlineError{exitMissingValue, fmt.Sprintf("%s: Missing argument for option `%s'.", argv0, option)}
	}
	if !optionAcceptsValue(c) && value != nil {
		return &cmdlineError{exitExtraneousValue, fmt.Sprintf("%s: Option `%s' does not accept an argument.", argv0, option)}
	}

	switch c {
	case 'h', '?':
		return &helpRequested{usageText(argv0)}
	case 'V':
		return &helpRequested{versionText()}
	case 'i':
		opts.inputGather = *value + "-pull"
		opts.inputScatter = *value + "-push"
	case 'n':
		n, err := strconv.ParseUint(*value, 10, 32)
		if err != nil {
			return &cmdlineError{exitInvalidValue, fmt.Sprintf("%s: Invalid value `%s' for option `%s'.", argv0, *value, option)}
		}
		opts.numThreads = uint(n)
	case 'N':
		n, err := strconv.ParseUint(*value, 10, 32)
		if err != nil || n < 1 {
			return &cmdlineError{exitInvalidValue, fmt.Sprintf("%s: Invalid value `%s' for option `%s'.", argv0, *value, option)}
		}
		opts.numIterations = uint(n)
	case 'o':
		opts.output = *value
	case 's':
		n, err := strconv.ParseUint(*value, 10, 64)
		if err != nil || n < 1 {
			return &cmdlineError{exitInvalidValue, fmt.Sprintf("%s: Invalid value `%s' for option `%s'.", argv0, *value, option)}
		}
		opts.schedGranularity = n
	case 'u':
		nodes, err := parseNUMANodeList(*value)
		if err != nil {
			return &cmdlineError{exitInvalidValue, fmt.Sprintf("%s: Invalid value `%s' for option `%s'.", argv0, *value, option)}
		}
		opts.numaNodes = nodes
	case 'a':
		switch *value {
		case algorithmPageRank, algorithmBFS, algorithmCC:
			opts.algorithm = *value
		default:
			return &cmdlineError{exitInvalidValue, fmt.Sprintf("%s: Invalid value `%s' for option `%s'.", argv0, *value, option)}
		}
	default:
		return &cmdlineError{exitUnknownOption, fmt.Sprintf("%s: Unrecognized option `%s'.", argv0, option)}
	}
	return nil
}

// parseNUMANodeList parses a comma-separated list of non-negative node
// IDs, matching cmdline_parse_single_option_or_die's 'u' case.
func parseNUMANodeList(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	nodes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid numa node %q", p)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// validateOptions mirrors cmdline_validate_or_die: required options must
// be present, and thread/node counts must be compatible.
func validateOptions(opts *options) error {
	if opts.inputGather == "" || opts.inputScatter == "" {
		return &cmdlineError{exitMissingOption, "Missing required option `-i'."}
	}
	if opts.algorithm == "" {
		return &cmdlineError{exitMissingOption, "Missing required option `-a'."}
	}

	numNodes := len(opts.numaNodes)
	if numNodes == 0 {
		numNodes = 1
	}

	if opts.numThreads == 0 {
		opts.numThreads = uint(numNodes)
	}
	if opts.numThreads%uint(numNodes) != 0 {
		return &cmdlineError{exitIncompatibleOptions, "Specified option combination is incompatible."}
	}
	return nil
}

func usageText(argv0 string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s [options] -i input-graph -a algorithm\n", argv0)
	fmt.Fprintf(&b, "       %s -h | -?\n", argv0)
	fmt.Fprintf(&b, "       %s -V\n\n", argv0)
	b.WriteString("Required:\n")
	b.WriteString("  -i input-graph\n        Base path of the input graph; -pull and -push are appended.\n")
	b.WriteString("  -a algorithm\n        One of: pagerank, bfs, cc.\n\n")
	b.WriteString("Options:\n")
	b.WriteString("  -h | -?\n        Prints this information and exits.\n")
	b.WriteString("  -n num-threads\n        Number of worker threads. Must be a multiple of the number of NUMA nodes.\n        Specify 0 to use one thread per requested NUMA node.\n")
	fmt.Fprintf(&b, "        Defaults to %d.\n", defaultNumThreads)
	b.WriteString("  -N num-iterations\n        Number of PageRank iterations to execute. Ignored for bfs/cc.\n")
	fmt.Fprintf(&b, "        Defaults to %d.\n", defaultNumIterations)
	b.WriteString("  -o output-file\n        Path of the file to write final per-vertex values to.\n")
	b.WriteString("  -s vectors-per-unit\n        Override the default scheduling granularity (edge vectors per unit) of the pull and push engines.\n")
	b.WriteString("  -u node1[,node2[,...]]\n        Comma-delimited list of NUMA nodes for worker threads.\n        Defaults to node 0 only.\n")
	b.WriteString("  -V\n        Prints version information and exits.\n")
	return b.String()
}

func versionText() string {
	return fmt.Sprintf("%s v%s\n", programName, programVersion)
}
