package engine

import (
	"fmt"
	"strings"
)

// ShapeMismatchError is returned by Combine when two or more operands
// disagree on a non-degenerate dimension size. It carries the full set
// of operand shapes for diagnosis.
type ShapeMismatchError struct {
	Shapes []Shape // all operand shapes handed to the combiner
	Dim    int     // 0-based dimension position where the conflict was found
}

func (e *ShapeMismatchError) Error() string {
	parts := make([]string, len(e.Shapes))
	for i, s := range e.Shapes {
		parts[i] = fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("shapes not compatible for broadcasting at dimension %d: %s",
		e.Dim, strings.Join(parts, " vs "))
}

// DestinationSizeMismatchError is returned by Reconcile when a known
// destination shape disagrees with the shape combined from the operands.
type DestinationSizeMismatchError struct {
	Declared Shape // the destination's own declared shape
	Combined Shape // the shape combined from the operands
}

func (e *DestinationSizeMismatchError) Error() string {
	return fmt.Sprintf("destination shape %v does not match broadcast shape %v",
		e.Declared, e.Combined)
}

// ResultTypeUndefinedError is returned by result type deduction when the
// elementwise function has no defined return type for the given operand
// element types.
type ResultTypeUndefinedError struct {
	Func string     // function name
	Args []DataType // operand element types, in call order
}

func (e *ResultTypeUndefinedError) Error() string {
	parts := make([]string, len(e.Args))
	for i, dt := range e.Args {
		parts[i] = dt.String()
	}
	return fmt.Sprintf("function %q has no result type for operand types (%s)",
		e.Func, strings.Join(parts, ", "))
}
