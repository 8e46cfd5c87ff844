// Package vindex builds and queries the per-vertex edge-vector start-offset
// index: for each vertex ID, the index into an edge-vector list where that
// vertex's (shared-endpoint) vectors begin.
//
// Two sentinel values distinguish the two ways a vertex can be absent from
// the edge list: GapSentinel marks a vertex below the highest indexed
// vertex that simply has no edges of its own, while AboveMax marks
// a vertex ID above the highest one that appears anywhere in the list.
// Grounded on graph_helper_create_vertex_index in the original engine's
// graphdata.c.
package vindex

import "github.com/stanford-mast/grazelle/internal/graph/evec"

const (
	// GapSentinel marks a vertex ID below the highest indexed vertex
	// (including IDs below the lowest one) that has no edge vectors of
	// its own.
	GapSentinel = uint64(0x7fff_ffff_ffff_ffff)

	// AboveMax marks a vertex ID above the highest vertex present in the
	// edge list this index was built from.
	AboveMax = uint64(0xffff_ffff_ffff_ffff)
)

// Index maps vertex ID -> starting offset into an edge-vector list.
type Index struct {
	buf   []uint64
	Start uint64 // lowest vertex ID with edges in the source list
	End   uint64 // highest vertex ID with edges in the source list
}

// Lookup returns the starting edge-vector-list offset for vertex id, and
// whether that vertex actually has edges (false for both sentinel cases).
func (idx *Index) Lookup(id uint64) (offset uint64, ok bool) {
	v := idx.buf[id]
	if v == GapSentinel || v == AboveMax {
		return 0, false
	}
	return v, true
}

// Len returns the number of vertex slots the index covers.
func (idx *Index) Len() int { return len(idx.buf) }

// Build constructs a vertex index covering vertexBufCount vertex slots from
// an edge-vector list already sorted by shared endpoint ID (ascending).
// edgeList must be non-empty.
//
// The algorithm streams through edgeList once: the first time a new shared
// vertex ID is seen, its edge-list position is recorded; any vertex IDs
// skipped over in between are marked with GapSentinel; everything above
// the last vertex seen in the list is marked with AboveMax. This mirrors
// graph_helper_create_vertex_index exactly, including that function's
// special-cased handling of the first edge in the list.
func Build(edgeList []evec.EdgeVector, vertexBufCount uint64) *Index {
	buf := make([]uint64, vertexBufCount)

	currentVertexID := edgeList[0].SharedID()

	for i := uint64(0); i < currentVertexID; i++ {
		buf[i] = GapSentinel
	}

	buf[currentVertexID] = 0
	lastVertexIndexed := currentVertexID
	start := currentVertexID

	for i := 1; i < len(edgeList); i++ {
		currentVertexID = edgeList[i].SharedID()

		if lastVertexIndexed != currentVertexID {
			for lastVertexIndexed < currentVertexID-1 {
				lastVertexIndexed++
				buf[lastVertexIndexed] = GapSentinel
			}
			buf[currentVertexID] = uint64(i)
			lastVertexIndexed = currentVertexID
		}
	}

	for i := currentVertexID + 1; i < vertexBufCount; i++ {
		buf[i] = AboveMax
	}

	return &Index{buf: buf, Start: start, End: currentVertexID}
}
