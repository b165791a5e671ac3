// Package engine implements the static-shape broadcast engine: shape
// combination, broadcast index mapping, result type deduction, and
// unrolled elementwise application plans.
package engine

import "fmt"

// Shape represents the dimension sizes of a fixed-shape operand.
// A nil or empty Shape is the rank-0 (scalar) shape.
type Shape []int

// Rank returns the number of declared dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Dim returns the size of dimension d (0-based). Dimensions beyond the
// declared rank are implicitly size 1, so shapes of different rank
// compare as if right-padded with 1s.
func (s Shape) Dim(d int) int {
	if d < 0 || d >= len(s) {
		return 1
	}
	return s[d]
}

// NumElements returns the total number of elements for the shape.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension size is non-negative.
// Zero-sized dimensions are legal and describe an empty iteration space.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal: same rank, pairwise-equal sizes.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates column-major strides for the shape.
// The first subscript varies fastest: stride[0] = 1, and
// stride[i] = stride[i-1] * dim[i-1].
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[0] = 1
	for i := 1; i < len(s); i++ {
		strides[i] = strides[i-1] * s[i-1]
	}
	return strides
}

// Coordinate converts a linear column-major position into a per-dimension
// coordinate (0-based). The inverse of offsetOf for dense shapes.
func (s Shape) Coordinate(linear int) []int {
	coord := make([]int, len(s))
	for d := 0; d < len(s); d++ {
		coord[d] = linear % s[d]
		linear /= s[d]
	}
	return coord
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
