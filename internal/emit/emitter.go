package emit

import (
	"bytes"
	"fmt"
	"go/format"

	"github.com/born-ml/bcast/internal/engine"
)

// opTokens maps binary built-in ops to their Go operator.
var opTokens = map[string]string{
	"add": "+",
	"sub": "-",
	"mul": "*",
	"div": "/",
}

// Report describes one kernel after shape combination and result type
// deduction, for validation output.
type Report struct {
	Name        string          `json:"name"`
	Op          string          `json:"op"`
	ResultShape engine.Shape    `json:"result_shape"`
	ResultType  engine.DataType `json:"-"`
	TypeName    string          `json:"result_type"`
	Elements    int             `json:"elements"`
}

// Check runs the engine's shape combiner and result type deduction over
// every kernel in the manifest without emitting anything. It fails on
// the first kernel whose shapes do not broadcast or whose result type
// is undefined.
func Check(m *Manifest) ([]Report, error) {
	reports := make([]Report, 0, len(m.Kernels))
	for i := range m.Kernels {
		k := &m.Kernels[i]
		combined, outType, err := resolve(k)
		if err != nil {
			return nil, fmt.Errorf("kernel %q: %w", k.Name, err)
		}
		reports = append(reports, Report{
			Name:        k.Name,
			Op:          k.Op,
			ResultShape: combined,
			ResultType:  outType,
			TypeName:    outType.String(),
			Elements:    combined.NumElements(),
		})
	}
	return reports, nil
}

// Generate renders every kernel in the manifest into one gofmt-formatted
// Go source file. Nothing is emitted unless every kernel resolves: a
// shape mismatch or undefined result type aborts the whole file.
func Generate(m *Manifest) ([]byte, error) {
	if _, err := Check(m); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by bcast generate. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n", m.Package)

	for i := range m.Kernels {
		buf.WriteByte('\n')
		emitKernel(&buf, &m.Kernels[i])
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

// resolve runs Combine and ResultType for a kernel.
func resolve(k *Kernel) (engine.Shape, engine.DataType, error) {
	fn, ok := engine.Op(k.Op)
	if !ok {
		return nil, 0, fmt.Errorf("unknown op %q", k.Op)
	}

	shapes := make([]engine.Shape, len(k.Operands))
	dtypes := make([]engine.DataType, len(k.Operands))
	for i, op := range k.Operands {
		shapes[i] = op.shape()
		dtypes[i] = op.dtype()
	}

	combined, err := engine.Combine(shapes...)
	if err != nil {
		return nil, 0, err
	}
	outType, err := fn.ResultType(dtypes...)
	if err != nil {
		return nil, 0, err
	}
	return combined, outType, nil
}

// emitKernel writes one fully unrolled kernel function: a straight-line
// body with one assignment per output element, operand offsets folded
// to integer constants. The kernel has already resolved in Check.
func emitKernel(buf *bytes.Buffer, k *Kernel) {
	combined, outType, err := resolve(k)
	if err != nil {
		panic("emit of unchecked kernel: " + err.Error())
	}

	fmt.Fprintf(buf, "// %s applies %s elementwise over its operands, fully unrolled\n", k.Name, k.Op)
	fmt.Fprintf(buf, "// for result shape %v (%s). out is column-major.\n", combined, outType)

	fmt.Fprintf(buf, "func %s(", k.Name)
	for j, op := range k.Operands {
		if op.Scalar {
			fmt.Fprintf(buf, "in%d %s, ", j, goType(op.dtype()))
		} else {
			fmt.Fprintf(buf, "in%d []%s, ", j, goType(op.dtype()))
		}
	}
	fmt.Fprintf(buf, "out []%s) {\n", goType(outType))

	strides := make([][]int, len(k.Operands))
	for j, op := range k.Operands {
		strides[j] = op.shape().ComputeStrides()
	}

	n := combined.NumElements()
	for i := 0; i < n; i++ {
		coord := combined.Coordinate(i)
		refs := make([]string, len(k.Operands))
		for j, op := range k.Operands {
			refs[j] = operandRef(j, op, coord)
			if op.dtype() != outType {
				refs[j] = fmt.Sprintf("%s(%s)", goType(outType), refs[j])
			}
		}
		fmt.Fprintf(buf, "\tout[%d] = %s\n", i, applyExpr(k.Op, refs))
	}

	buf.WriteString("}\n")
}

// operandRef renders the access expression for one operand at an output
// coordinate: scalars by value, arrays at their broadcast-mapped
// constant offset.
func operandRef(j int, op OperandSpec, coord []int) string {
	if op.Scalar {
		return fmt.Sprintf("in%d", j)
	}
	return fmt.Sprintf("in%d[%d]", j, engine.MapIndex(op.shape(), coord))
}

// applyExpr renders the scalar application for one output element.
func applyExpr(op string, refs []string) string {
	if op == "neg" {
		return "-" + refs[0]
	}
	return refs[0] + " " + opTokens[op] + " " + refs[1]
}

// goType returns the Go type name for an element type.
func goType(dt engine.DataType) string {
	return dt.String()
}
