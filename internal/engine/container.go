package engine

import (
	"fmt"
	"unsafe"
)

// Container is a fixed-shape column-major value buffer: the concrete
// storage the out-of-place path returns, and a convenient operand or
// destination for callers that do not bring their own storage.
type Container struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
}

// NewContainer allocates a zeroed container of the given shape and
// element type.
func NewContainer(shape Shape, dtype DataType) (*Container, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &Container{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// FromSlice builds a container from a flat slice in column-major
// element order.
func FromSlice[T DType](shape Shape, data []T) (*Container, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}

	var dummy T
	c, err := NewContainer(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}
	copy(Data[T](c), data)
	return c, nil
}

// Shape returns the container's shape.
func (c *Container) Shape() Shape {
	return c.shape
}

// Strides returns the container's column-major strides.
func (c *Container) Strides() []int {
	return c.stride
}

// DType returns the container's element type.
func (c *Container) DType() DataType {
	return c.dtype
}

// NumElements returns the total number of elements.
func (c *Container) NumElements() int {
	return c.shape.NumElements()
}

// AsFloat32 interprets the data as []float32.
// Panics if the container's dtype is not Float32.
func (c *Container) AsFloat32() []float32 {
	if c.dtype != Float32 {
		panic(fmt.Sprintf("container dtype is %s, not float32", c.dtype))
	}
	return typedView[float32](c)
}

// AsFloat64 interprets the data as []float64.
// Panics if the container's dtype is not Float64.
func (c *Container) AsFloat64() []float64 {
	if c.dtype != Float64 {
		panic(fmt.Sprintf("container dtype is %s, not float64", c.dtype))
	}
	return typedView[float64](c)
}

// AsInt32 interprets the data as []int32.
// Panics if the container's dtype is not Int32.
func (c *Container) AsInt32() []int32 {
	if c.dtype != Int32 {
		panic(fmt.Sprintf("container dtype is %s, not int32", c.dtype))
	}
	return typedView[int32](c)
}

// AsInt64 interprets the data as []int64.
// Panics if the container's dtype is not Int64.
func (c *Container) AsInt64() []int64 {
	if c.dtype != Int64 {
		panic(fmt.Sprintf("container dtype is %s, not int64", c.dtype))
	}
	return typedView[int64](c)
}

// AsUint8 interprets the data as []uint8.
// Panics if the container's dtype is not Uint8.
func (c *Container) AsUint8() []uint8 {
	if c.dtype != Uint8 {
		panic(fmt.Sprintf("container dtype is %s, not uint8", c.dtype))
	}
	return c.data
}

// AsBool interprets the data as []bool.
// Panics if the container's dtype is not Bool.
func (c *Container) AsBool() []bool {
	if c.dtype != Bool {
		panic(fmt.Sprintf("container dtype is %s, not bool", c.dtype))
	}
	return typedView[bool](c)
}

// typedView reinterprets the byte buffer as a typed slice (zero-copy).
func typedView[T any](c *Container) []T {
	if len(c.data) == 0 {
		return nil
	}
	//nolint:gosec // zero-copy view, bounds checked by NumElements()
	return unsafe.Slice((*T)(unsafe.Pointer(&c.data[0])), c.NumElements())
}

// Data returns a typed slice view of the container's storage in
// column-major element order (zero-copy).
//
// WARNING: Modifications to the returned slice modify the container.
func Data[T DType](c *Container) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(c.AsFloat32()).([]T)
	case float64:
		return any(c.AsFloat64()).([]T)
	case int32:
		return any(c.AsInt32()).([]T)
	case int64:
		return any(c.AsInt64()).([]T)
	case uint8:
		return any(c.AsUint8()).([]T)
	case bool:
		return any(c.AsBool()).([]T)
	default:
		panic("unsupported type")
	}
}

// Elem returns the element at a linear column-major offset.
func (c *Container) Elem(offset int) any {
	switch c.dtype {
	case Float32:
		return c.AsFloat32()[offset]
	case Float64:
		return c.AsFloat64()[offset]
	case Int32:
		return c.AsInt32()[offset]
	case Int64:
		return c.AsInt64()[offset]
	case Uint8:
		return c.AsUint8()[offset]
	case Bool:
		return c.AsBool()[offset]
	default:
		panic("unknown data type")
	}
}

// SetElem stores a value at a linear column-major offset. The value's
// type must match the container's element type.
func (c *Container) SetElem(offset int, v any) {
	switch c.dtype {
	case Float32:
		c.AsFloat32()[offset] = v.(float32)
	case Float64:
		c.AsFloat64()[offset] = v.(float64)
	case Int32:
		c.AsInt32()[offset] = v.(int32)
	case Int64:
		c.AsInt64()[offset] = v.(int64)
	case Uint8:
		c.AsUint8()[offset] = v.(uint8)
	case Bool:
		c.AsBool()[offset] = v.(bool)
	default:
		panic("unknown data type")
	}
}

// At returns the element at the given per-dimension indices.
// Panics if indices are out of bounds.
func (c *Container) At(indices ...int) any {
	return c.Elem(c.offsetOf(indices))
}

// Set stores a value at the given per-dimension indices.
// Panics if indices are out of bounds.
func (c *Container) Set(v any, indices ...int) {
	c.SetElem(c.offsetOf(indices), v)
}

func (c *Container) offsetOf(indices []int) int {
	if len(indices) != len(c.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(c.shape), len(indices)))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= c.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, c.shape[i]))
		}
		offset += idx * c.stride[i]
	}
	return offset
}

// Operand exposes the container as an array-like broadcast operand.
func (c *Container) Operand() Operand {
	return ArrayOperand(c.shape, c.dtype, c.Elem)
}

// String returns a human-readable description of the container.
func (c *Container) String() string {
	return fmt.Sprintf("Container[%s]%v", c.dtype, c.shape)
}
