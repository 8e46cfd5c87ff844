// Package ingest reads the binary edge-list file format and builds
// edge-vector slabs from it.
//
// The file is a sequence of little-endian uint64 words: num_vertices,
// num_edges, then num_edges (src, dst) pairs, pre-sorted so that edges
// sharing the "shared" endpoint for this file (destination for a gather
// file, source for a scatter file) are consecutive. Reading runs a
// double-buffered (ping-pong) producer/consumer pair on separate
// goroutines, coordinated with golang.org/x/sync/errgroup: the producer
// fills one buffer with raw record bytes while the consumer coalesces the
// previously filled buffer's records into edge vectors through a 4-slot
// stash, following graph_helper_edge_vector_list_file_buf_producer and its
// paired consumer functions in the original engine's graphdata.c.
package ingest

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/stanford-mast/grazelle/internal/graph/evec"
)

// Engine selects which endpoint of each (src, dst) pair is the "shared"
// endpoint that edge vectors are grouped by.
type Engine int

const (
	// Gather groups edges by destination (pull list).
	Gather Engine = iota
	// Scatter groups edges by source (push list).
	Scatter
)

// Header is the two-word file preamble.
type Header struct {
	NumVertices uint64
	NumEdges    uint64
}

// Result is the product of ingesting one edge-list file.
type Result struct {
	Header  Header
	Vectors []evec.EdgeVector
	// Degree[v] counts how many records named v as their individual
	// (non-shared) endpoint — out-degree for a gather file, in-degree for
	// a scatter file.
	Degree []uint64
}

// recordBufSize is the number of (src, dst) pairs read into each
// ping-pong buffer per producer iteration.
const recordBufSize = 1 << 16

// Read ingests path under the given engine and returns the coalesced
// edge-vector slab plus per-vertex individual-endpoint degree counts.
func Read(ctx context.Context, path string, engine Engine) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: opening %q: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 1<<20)

	header, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: reading header of %q: %w", path, err)
	}

	result := &Result{
		Header: header,
		Degree: make([]uint64, header.NumVertices),
	}
	if header.NumEdges == 0 {
		return result, nil
	}

	type rawBuf struct {
		data []byte
		n    int // number of valid records
	}

	bufA := make([]byte, recordBufSize*16)
	bufB := make([]byte, recordBufSize*16)

	filled := make(chan rawBuf, 1)
	freed := make(chan []byte, 1)
	freed <- bufB

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(filled)
		remaining := header.NumEdges
		cur := bufA
		for remaining > 0 {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			want := recordBufSize
			if uint64(want) > remaining {
				want = int(remaining)
			}
			byteLen := want * 16
			if _, err := io.ReadFull(r, cur[:byteLen]); err != nil {
				return fmt.Errorf("ingest: short read on %q: %w", path, err)
			}

			select {
			case filled <- rawBuf{data: cur, n: want}:
			case <-gctx.Done():
				return gctx.Err()
			}

			remaining -= uint64(want)

			select {
			case cur = <-freed:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	group.Go(func() error {
		stash := newStash(engine)
		for buf := range filled {
			for i := 0; i < buf.n; i++ {
				off := i * 16
				src := binary.LittleEndian.Uint64(buf.data[off : off+8])
				dst := binary.LittleEndian.Uint64(buf.data[off+8 : off+16])

				shared, individual := src, dst
				if engine == Gather {
					shared, individual = dst, src
				}

				if individual < uint64(len(result.Degree)) {
					result.Degree[individual]++
				}

				if v, ok := stash.add(shared, individual); ok {
					result.Vectors = append(result.Vectors, v)
				}
			}

			select {
			case freed <- buf.data:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		if v, ok := stash.flush(); ok {
			result.Vectors = append(result.Vectors, v)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func readHeader(r io.Reader) (Header, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, err
	}
	return Header{
		NumVertices: binary.LittleEndian.Uint64(buf[0:8]),
		NumEdges:    binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}

// stash coalesces up to 4 consecutive records sharing the same endpoint
// into one edge vector, flushing early if the shared endpoint changes
// before 4 accumulate.
type stash struct {
	engine      Engine
	sharedID    uint64
	individuals [4]uint64
	count       int
	active      bool
}

func newStash(engine Engine) *stash {
	return &stash{engine: engine}
}

// add records one (shared, individual) pair. It returns a completed vector
// and true whenever adding this record causes one to be flushed (either
// because the stash filled up, or because the shared endpoint changed).
func (s *stash) add(shared, individual uint64) (evec.EdgeVector, bool) {
	if s.active && shared != s.sharedID {
		v := s.pack()
		s.reset(shared, individual)
		return v, true
	}

	if !s.active {
		s.reset(shared, individual)
		return evec.EdgeVector{}, false
	}

	s.individuals[s.count] = individual
	s.count++
	if s.count == 4 {
		v := s.pack()
		s.active = false
		return v, true
	}
	return evec.EdgeVector{}, false
}

// flush emits whatever is left in the stash at end of input.
func (s *stash) flush() (evec.EdgeVector, bool) {
	if !s.active || s.count == 0 {
		return evec.EdgeVector{}, false
	}
	v := s.pack()
	s.active = false
	return v, true
}

func (s *stash) pack() evec.EdgeVector {
	return evec.Pack(s.sharedID, s.individuals, s.count)
}

func (s *stash) reset(shared, individual uint64) {
	s.sharedID = shared
	s.individuals = [4]uint64{individual}
	s.count = 1
	s.active = true
}
