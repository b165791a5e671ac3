package engine

// operandKind tags an operand as array-like or scalar-like, resolved
// once per call from the operand's static description.
type operandKind int

const (
	arrayKind operandKind = iota
	scalarKind
)

// Operand describes one input to a broadcast call: its shape, its
// element type, whether it is array-like (indexable by linear offset)
// or scalar-like (one value regardless of coordinate), and the indexing
// capability itself. Operands are immutable once constructed.
type Operand struct {
	shape Shape
	dtype DataType
	kind  operandKind
	elem  func(offset int) any
}

// ArrayOperand describes an array-like operand: a fixed shape plus an
// accessor returning the element at a linear column-major offset.
func ArrayOperand(shape Shape, dtype DataType, elem func(offset int) any) Operand {
	return Operand{shape: shape.Clone(), dtype: dtype, kind: arrayKind, elem: elem}
}

// ScalarOperand describes a scalar-like operand: a single value that
// contributes at every coordinate. Its shape is rank 0.
func ScalarOperand(v any) Operand {
	return Operand{
		dtype: dataTypeOf(v),
		kind:  scalarKind,
		elem:  func(int) any { return v },
	}
}

// Shape returns the operand's declared shape (rank 0 for scalars).
func (o Operand) Shape() Shape {
	return o.shape
}

// DType returns the operand's element type.
func (o Operand) DType() DataType {
	return o.dtype
}

// IsScalar reports whether the operand is scalar-like.
func (o Operand) IsScalar() bool {
	return o.kind == scalarKind
}

// Elem returns the element at a linear offset. For scalar-like
// operands the offset is ignored.
func (o Operand) Elem(offset int) any {
	return o.elem(offset)
}
