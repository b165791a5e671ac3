// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package bcast

import (
	"github.com/born-ml/bcast/internal/engine"
)

// Type aliases for the public API

// Shape represents the dimension sizes of a fixed-shape operand.
// A nil or empty Shape is the rank-0 (scalar) shape.
type Shape = engine.Shape

// DataType represents the element type of an operand or result.
type DataType = engine.DataType

// Data type constants.
const (
	Float32 DataType = engine.Float32
	Float64 DataType = engine.Float64
	Int32   DataType = engine.Int32
	Int64   DataType = engine.Int64
	Uint8   DataType = engine.Uint8
	Bool    DataType = engine.Bool
)

// DType is a constraint for supported element types.
type DType = engine.DType

// Operand describes one input to a broadcast call: shape, element type,
// array-like or scalar-like kind, and an element accessor.
type Operand = engine.Operand

// ElemFunc is an elementwise function: one scalar in per operand, one
// scalar out, plus a result-type rule queried before any application.
type ElemFunc = engine.ElemFunc

// Container is a fixed-shape column-major value buffer.
type Container = engine.Container

// Plan is a fully unrolled broadcast application.
type Plan = engine.Plan

// Destination is an in-place write target supplied by the caller.
type Destination = engine.Destination

// Unsized is a destination declared without a shape; it adopts the
// broadcast shape on first use.
type Unsized = engine.Unsized

// Error types surfaced to callers.
type (
	// ShapeMismatchError reports operands that do not broadcast.
	ShapeMismatchError = engine.ShapeMismatchError
	// DestinationSizeMismatchError reports a destination whose declared
	// shape disagrees with the broadcast shape.
	DestinationSizeMismatchError = engine.DestinationSizeMismatchError
	// ResultTypeUndefinedError reports a function with no result type
	// for the operand element types.
	ResultTypeUndefinedError = engine.ResultTypeUndefinedError
)

// Built-in elementwise functions with standard numeric promotion.
var (
	Add = engine.Add
	Sub = engine.Sub
	Mul = engine.Mul
	Div = engine.Div
	Neg = engine.Neg
)

// Combine computes the broadcast shape of any number of operand shapes.
func Combine(shapes ...Shape) (Shape, error) {
	return engine.Combine(shapes...)
}

// MapIndex converts a coordinate in the broadcast output shape into a
// linear column-major offset into an operand of shape s.
func MapIndex(s Shape, coord []int) int {
	return engine.MapIndex(s, coord)
}

// Compile runs shape combination and result type deduction over the
// operands and unrolls the broadcast iteration space into a Plan.
func Compile(fn ElemFunc, operands ...Operand) (*Plan, error) {
	return engine.Compile(fn, operands...)
}

// Map applies fn elementwise over the operands, returning a fresh
// container of the combined shape and deduced element type.
func Map(fn ElemFunc, operands ...Operand) (*Container, error) {
	return engine.Map(fn, operands...)
}

// MapInto applies fn elementwise over the operands, writing into dst
// after reconciling its declared shape against the combined shape.
func MapInto(fn ElemFunc, dst Destination, operands ...Operand) error {
	return engine.MapInto(fn, dst, operands...)
}

// ArrayOperand describes an array-like operand: a fixed shape plus an
// accessor returning the element at a linear column-major offset.
func ArrayOperand(shape Shape, dtype DataType, elem func(offset int) any) Operand {
	return engine.ArrayOperand(shape, dtype, elem)
}

// ScalarOperand describes a scalar-like operand: one value contributing
// at every coordinate.
func ScalarOperand(v any) Operand {
	return engine.ScalarOperand(v)
}

// NewContainer allocates a zeroed container of the given shape and
// element type.
func NewContainer(shape Shape, dtype DataType) (*Container, error) {
	return engine.NewContainer(shape, dtype)
}

// NewUnsized creates a shapeless destination of the given element type.
func NewUnsized(dtype DataType) *Unsized {
	return engine.NewUnsized(dtype)
}

// FromSlice builds a container from a flat slice in column-major
// element order.
func FromSlice[T DType](shape Shape, data []T) (*Container, error) {
	return engine.FromSlice(shape, data)
}

// Data returns a typed column-major slice view of a container's
// storage (zero-copy).
func Data[T DType](c *Container) []T {
	return engine.Data[T](c)
}

// FuncOf adapts plain Go closures into an ElemFunc.
func FuncOf(name string,
	resultType func(args ...DataType) (DataType, error),
	call func(args ...any) any,
) ElemFunc {
	return engine.FuncOf(name, resultType, call)
}

// Op looks up a built-in elementwise function by name
// ("add", "sub", "mul", "div", "neg").
func Op(name string) (ElemFunc, bool) {
	return engine.Op(name)
}

// Promote computes the common numeric type of two element types.
func Promote(a, b DataType) (DataType, bool) {
	return engine.Promote(a, b)
}

// ParseDataType converts a type name to its DataType.
func ParseDataType(name string) (DataType, bool) {
	return engine.ParseDataType(name)
}
