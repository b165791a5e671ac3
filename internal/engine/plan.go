package engine

import "fmt"

// Plan is a fully unrolled broadcast application: one precomputed
// operand-offset row per output element, in column-major enumeration
// order. All shape combination, index mapping, and result type
// deduction happen in Compile — executing a plan performs exactly
// NumElements scalar applications with no shape or rank logic left.
//
// A Plan holds only immutable descriptors and may be executed any
// number of times; each execution is independent.
type Plan struct {
	fn       ElemFunc
	operands []Operand
	shape    Shape
	outType  DataType
	offsets  [][]int // [element][operand] linear operand offset
}

// Compile runs the shape combiner and result type deduction over the
// operands and unrolls the broadcast iteration space into a Plan.
//
// Failure modes, all detected here and never mid-application:
//   - *ShapeMismatchError when the operand shapes do not broadcast.
//   - *ResultTypeUndefinedError when fn has no result type for the
//     operand element types.
func Compile(fn ElemFunc, operands ...Operand) (*Plan, error) {
	shapes := make([]Shape, len(operands))
	dtypes := make([]DataType, len(operands))
	for i, op := range operands {
		shapes[i] = op.Shape()
		dtypes[i] = op.DType()
	}

	combined, err := Combine(shapes...)
	if err != nil {
		return nil, err
	}

	outType, err := fn.ResultType(dtypes...)
	if err != nil {
		return nil, err
	}

	strides := make([][]int, len(operands))
	for i, op := range operands {
		strides[i] = op.Shape().ComputeStrides()
	}

	n := combined.NumElements()
	offsets := make([][]int, n)
	for i := 0; i < n; i++ {
		coord := combined.Coordinate(i)
		row := make([]int, len(operands))
		for j, op := range operands {
			if op.IsScalar() {
				continue // scalar-like: always offset 0
			}
			row[j] = mapIndexStrided(op.Shape(), strides[j], coord)
		}
		offsets[i] = row
	}

	return &Plan{
		fn:       fn,
		operands: operands,
		shape:    combined,
		outType:  outType,
		offsets:  offsets,
	}, nil
}

// Shape returns the combined broadcast shape.
func (p *Plan) Shape() Shape {
	return p.shape
}

// ResultType returns the deduced output element type.
func (p *Plan) ResultType() DataType {
	return p.outType
}

// NumApplications returns how many scalar applications the plan
// performs, which is the element count of the combined shape.
func (p *Plan) NumApplications() int {
	return len(p.offsets)
}

// Apply executes the plan out-of-place: it allocates a fresh container
// of the combined shape and deduced element type and fills it with one
// application per element. A zero-element shape yields a well-typed
// empty container with zero applications.
func (p *Plan) Apply() (*Container, error) {
	out, err := NewContainer(p.shape, p.outType)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(p.operands))
	for i, row := range p.offsets {
		for j, op := range p.operands {
			args[j] = op.Elem(row[j])
		}
		out.SetElem(i, p.fn.Call(args...))
	}
	return out, nil
}

// ApplyInto executes the plan in-place: the destination's declared
// shape is reconciled against the combined shape first, then every
// element is written through the destination's own shape and strides.
// No write happens before reconciliation succeeds, so a failed call
// never leaves the destination partially overwritten.
func (p *Plan) ApplyInto(dst Destination) error {
	declared, known := dst.DeclaredShape()
	shape, err := Reconcile(declared, known, p.shape, true)
	if err != nil {
		return err
	}

	if !known {
		adoptable, ok := dst.(Adoptable)
		if !ok {
			return fmt.Errorf("destination has no declared shape and cannot adopt %v", shape)
		}
		if err := adoptable.Adopt(shape); err != nil {
			return fmt.Errorf("adopting shape %v: %w", shape, err)
		}
	}

	dstType := dst.DType()
	if dstType != p.outType && (!dstType.IsNumeric() || !p.outType.IsNumeric()) {
		return fmt.Errorf("cannot store %s result in %s destination", p.outType, dstType)
	}

	// Writes use the destination's own post-reconciliation strides, not
	// the combined shape's, so degenerate-dimension placement can never
	// skew offsets.
	dstStrides := shape.ComputeStrides()

	args := make([]any, len(p.operands))
	for i, row := range p.offsets {
		for j, op := range p.operands {
			args[j] = op.Elem(row[j])
		}

		coord := p.shape.Coordinate(i)
		offset := 0
		for d := range coord {
			offset += coord[d] * dstStrides[d]
		}

		v := p.fn.Call(args...)
		if dstType != p.outType {
			v = convertScalar(toFloat64(v), dstType)
		}
		dst.SetElem(offset, v)
	}
	return nil
}

// Map is the out-of-place convenience entry point: Compile then Apply.
func Map(fn ElemFunc, operands ...Operand) (*Container, error) {
	p, err := Compile(fn, operands...)
	if err != nil {
		return nil, err
	}
	return p.Apply()
}

// MapInto is the in-place convenience entry point: Compile then
// ApplyInto the given destination.
func MapInto(fn ElemFunc, dst Destination, operands ...Operand) error {
	p, err := Compile(fn, operands...)
	if err != nil {
		return err
	}
	return p.ApplyInto(dst)
}
