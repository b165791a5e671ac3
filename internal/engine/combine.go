package engine

// Combine computes the broadcast shape of any number of operand shapes.
//
// It generalizes the two-operand broadcasting rule to N operands,
// applied independently per dimension position:
//
//  1. Dimensions align from the first position; an operand with rank
//     below the position contributes an implicit size of 1.
//  2. At each position every size must be either 1 or equal to a single
//     common value v; the combined size is v (or 1 when every operand
//     is degenerate there).
//  3. Two different non-1 sizes at the same position are a
//     *ShapeMismatchError carrying all operand shapes.
//
// Zero operands, or all-scalar operands, combine to the rank-0 shape,
// the identity of this operation.
//
// Examples:
//
//	Combine({3, 1}, {1, 4}) → {3, 4}
//	Combine({3}, {3, 3})    → {3, 3}
//	Combine({3}, {4})       → ShapeMismatchError
func Combine(shapes ...Shape) (Shape, error) {
	maxRank := 0
	for _, s := range shapes {
		maxRank = maxInt(maxRank, s.Rank())
	}

	result := make(Shape, maxRank)
	for d := 0; d < maxRank; d++ {
		size := 1
		for _, s := range shapes {
			dim := s.Dim(d)
			switch {
			case dim == 1 || dim == size:
				// degenerate, or agrees with the common value
			case size == 1:
				size = dim
			default:
				return nil, &ShapeMismatchError{Shapes: shapes, Dim: d}
			}
		}
		result[d] = size
	}

	return result, nil
}
