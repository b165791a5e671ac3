package engine

// MapIndex converts a coordinate in the broadcast output shape into a
// linear column-major offset into an operand of shape s.
//
// Per dimension of s: a size-1 dimension is degenerate and pins to
// index 0 no matter the output coordinate; any other dimension uses the
// output coordinate directly. Dimensions beyond s's own rank are
// implicitly degenerate and contribute nothing. The mapping is pure —
// no state is shared between calls.
func MapIndex(s Shape, coord []int) int {
	strides := s.ComputeStrides()
	return mapIndexStrided(s, strides, coord)
}

// mapIndexStrided is MapIndex with precomputed strides, for callers
// that map many coordinates against the same operand shape.
func mapIndexStrided(s Shape, strides []int, coord []int) int {
	offset := 0
	for d := 0; d < s.Rank(); d++ {
		if s[d] == 1 {
			continue // degenerate: index 0 contributes nothing
		}
		offset += coord[d] * strides[d]
	}
	return offset
}
