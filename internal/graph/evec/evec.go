// Package evec implements the 256-bit edge-vector codec: four edges that
// share one endpoint (the destination in a pull/gather list, the source
// in a push/scatter list), packed into four 64-bit lanes so that a single
// SIMD load/gather touches all four at once.
//
// Each lane holds, from the high bit down: a validity bit, a piece of the
// 48-bit shared endpoint ID, and the lane's individual 48-bit endpoint ID.
// The shared ID is split 15+15+15+3 bits across lanes 0-2-... 3 because
// lane 3 only has 15 non-valid high bits to spare once 12 of them are set
// aside as a reserved metadata field — so lane 3 contributes just the top
// 3 bits of the 48-bit shared ID.
//
// Bit layout per lane (bit 63 is the MSB):
//
//	lane 0, 1, 2: [63: valid][62:48: shared-id piece, 15 bits][47:0: individual id]
//	lane 3:       [63: valid][62:51: reserved, 12 bits][50:48: shared-id piece, 3 bits][47:0: individual id]
//
// Grounded on graph_helper_write_edge_vector and the
// graph_macro_get_shared_vertex/graph_macro_get_unused_field macros in
// the original engine's graphdata.c.
package evec

const (
	validBit = uint64(1) << 63

	individualMask = (uint64(1) << 48) - 1

	sharedPieceMask15 = uint64(0x7fff)
	sharedPieceMask3  = uint64(0x0007)

	reservedMask12 = uint64(0x0fff)
	reservedShift  = 51
)

// EdgeVector holds four edges that share one endpoint.
type EdgeVector [4]uint64

// NumLanes is the fixed width of an edge vector.
const NumLanes = 4

// Pack builds an EdgeVector from a shared 48-bit endpoint ID, up to four
// individual 48-bit endpoint IDs, and a count of how many of those four
// lanes are populated (1-4). Lanes at or beyond count are marked invalid;
// their individual-id field still holds the low 48 bits of the matching
// individualIDs entry.
func Pack(sharedID uint64, individualIDs [4]uint64, count int) EdgeVector {
	pieces := [4]uint64{
		sharedID & sharedPieceMask15,
		(sharedID >> 15) & sharedPieceMask15,
		(sharedID >> 30) & sharedPieceMask15,
		(sharedID >> 45) & sharedPieceMask3,
	}

	var v EdgeVector
	for lane := 0; lane < NumLanes; lane++ {
		var valid uint64
		if lane < count {
			valid = validBit
		}
		v[lane] = valid | (pieces[lane] << 48) | (individualIDs[lane] & individualMask)
	}
	return v
}

// SharedID reassembles the 48-bit shared endpoint ID from all four lanes'
// pieces, matching graph_macro_get_shared_vertex.
func (v EdgeVector) SharedID() uint64 {
	p0 := (v[0] >> 48) & sharedPieceMask15
	p1 := (v[1] >> 48) & sharedPieceMask15
	p2 := (v[2] >> 48) & sharedPieceMask15
	p3 := (v[3] >> 48) & sharedPieceMask3
	return p0 | (p1 << 15) | (p2 << 30) | (p3 << 45)
}

// IndividualID returns the individual (non-shared) 48-bit endpoint ID
// stored in the given lane.
func (v EdgeVector) IndividualID(lane int) uint64 {
	return v[lane] & individualMask
}

// Valid reports whether the given lane holds a real edge.
func (v EdgeVector) Valid(lane int) bool {
	return v[lane]&validBit != 0
}

// ValidCount returns how many of the four lanes hold real edges.
func (v EdgeVector) ValidCount() int {
	n := 0
	for lane := 0; lane < NumLanes; lane++ {
		if v.Valid(lane) {
			n++
		}
	}
	return n
}

// Reserved returns the 12-bit reserved metadata field. The bit layout only
// has room for this field on lane 3; see the package doc comment.
func (v EdgeVector) Reserved() uint16 {
	return uint16((v[3] >> reservedShift) & reservedMask12)
}

// SetReserved sets the 12-bit reserved metadata field on lane 3, leaving
// every other bit of the vector untouched.
func (v *EdgeVector) SetReserved(val uint16) {
	cleared := v[3] &^ (reservedMask12 << reservedShift)
	v[3] = cleared | ((uint64(val) & reservedMask12) << reservedShift)
}
