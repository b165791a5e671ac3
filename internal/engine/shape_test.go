package engine

import (
	"fmt"
	"testing"
)

// Test helpers

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

func assertEqualInts(t *testing.T, expected, actual []int, msg string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
		return
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Errorf("%s: expected %v, got %v", msg, expected, actual)
			return
		}
	}
}

func assertEqualFloat32(t *testing.T, expected, actual float32, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// Shape tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{}, 1},         // Scalar
		{Shape{5}, 5},        // 1D
		{Shape{3, 4}, 12},    // 2D
		{Shape{2, 3, 4}, 24}, // 3D
		{Shape{1, 1, 1}, 1},  // Ones
		{Shape{2, 0, 3}, 0},  // Empty iteration space
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.expected)
		}
	}
}

func TestShapeDimPadding(t *testing.T) {
	s := Shape{3, 4}

	if got := s.Dim(0); got != 3 {
		t.Errorf("Dim(0) = %d, want 3", got)
	}
	if got := s.Dim(1); got != 4 {
		t.Errorf("Dim(1) = %d, want 4", got)
	}
	// Beyond the declared rank, dimensions are implicitly 1.
	if got := s.Dim(2); got != 1 {
		t.Errorf("Dim(2) = %d, want 1", got)
	}
	if got := s.Dim(7); got != 1 {
		t.Errorf("Dim(7) = %d, want 1", got)
	}
	if got := Shape(nil).Dim(0); got != 1 {
		t.Errorf("nil shape Dim(0) = %d, want 1", got)
	}
}

func TestShapeEqual(t *testing.T) {
	tests := []struct {
		a, b     Shape
		expected bool
	}{
		{Shape{2, 3}, Shape{2, 3}, true},
		{Shape{2, 3}, Shape{3, 2}, false},
		{Shape{2, 3}, Shape{2, 3, 1}, false}, // Equality does not pad
		{Shape{}, Shape{}, true},
	}

	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.expected {
			t.Errorf("Shape%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 0, 3}).Validate(); err != nil {
		t.Errorf("zero-sized dimension should be valid, got %v", err)
	}
	if err := (Shape{2, -1}).Validate(); err == nil {
		t.Error("negative dimension should be invalid")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected []int
	}{
		{Shape{}, []int{}},
		{Shape{5}, []int{1}},
		{Shape{2, 3}, []int{1, 2}},       // column-major: first varies fastest
		{Shape{2, 3, 4}, []int{1, 2, 6}}, // stride[i] = stride[i-1]*dim[i-1]
	}

	for _, tt := range tests {
		assertEqualInts(t, tt.expected, tt.shape.ComputeStrides(),
			fmt.Sprintf("ComputeStrides %v", tt.shape))
	}
}

func TestShapeCoordinateRoundTrip(t *testing.T) {
	s := Shape{2, 3}
	strides := s.ComputeStrides()

	for linear := 0; linear < s.NumElements(); linear++ {
		coord := s.Coordinate(linear)
		back := 0
		for d := range coord {
			back += coord[d] * strides[d]
		}
		if back != linear {
			t.Errorf("Coordinate(%d) = %v does not round-trip (got %d)", linear, coord, back)
		}
	}

	// First subscript varies fastest.
	assertEqualInts(t, []int{1, 0}, s.Coordinate(1), "Coordinate(1)")
	assertEqualInts(t, []int{0, 1}, s.Coordinate(2), "Coordinate(2)")
}

func TestShapeClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 9
	if s[0] != 2 {
		t.Error("Clone should not share backing storage")
	}
}
