package engine

// ElemFunc is an elementwise function applied during broadcast: one
// scalar in per operand, one scalar out. The engine treats the body as
// a black box but queries ResultType before any application is
// generated, so a deduction failure aborts the whole call up front.
type ElemFunc interface {
	// Name identifies the function in diagnostics.
	Name() string

	// ResultType returns the element type the function produces for the
	// given operand element types, or a *ResultTypeUndefinedError when
	// no result type is defined for that tuple.
	ResultType(args ...DataType) (DataType, error)

	// Call applies the function to one scalar per operand. The returned
	// value has the type reported by ResultType for the argument types.
	Call(args ...any) any
}

// Built-in elementwise functions with the standard numeric promotion
// rule: integer and floating-point promote to floating-point, mixed
// widths promote to the wider type, bool is undefined.
var (
	Add ElemFunc = &arithFunc{name: "add", apply: func(x, y float64) float64 { return x + y }}
	Sub ElemFunc = &arithFunc{name: "sub", apply: func(x, y float64) float64 { return x - y }}
	Mul ElemFunc = &arithFunc{name: "mul", apply: func(x, y float64) float64 { return x * y }}
	Div ElemFunc = &arithFunc{name: "div", apply: func(x, y float64) float64 { return x / y }}
	Neg ElemFunc = &negFunc{}
)

// Op looks up a built-in function by name.
func Op(name string) (ElemFunc, bool) {
	switch name {
	case "add":
		return Add, true
	case "sub":
		return Sub, true
	case "mul":
		return Mul, true
	case "div":
		return Div, true
	case "neg":
		return Neg, true
	default:
		return nil, false
	}
}

// arithFunc is a binary numeric function evaluated through float64, the
// widest supported numeric type, then narrowed to the promoted type.
type arithFunc struct {
	name  string
	apply func(x, y float64) float64
}

func (f *arithFunc) Name() string {
	return f.name
}

func (f *arithFunc) ResultType(args ...DataType) (DataType, error) {
	if len(args) != 2 {
		return 0, &ResultTypeUndefinedError{Func: f.name, Args: args}
	}
	out, ok := Promote(args[0], args[1])
	if !ok {
		return 0, &ResultTypeUndefinedError{Func: f.name, Args: args}
	}
	return out, nil
}

func (f *arithFunc) Call(args ...any) any {
	out, _ := Promote(dataTypeOf(args[0]), dataTypeOf(args[1]))
	return convertScalar(f.apply(toFloat64(args[0]), toFloat64(args[1])), out)
}

// negFunc is unary numeric negation; the result type is the operand type.
type negFunc struct{}

func (f *negFunc) Name() string {
	return "neg"
}

func (f *negFunc) ResultType(args ...DataType) (DataType, error) {
	if len(args) != 1 || !args[0].IsNumeric() {
		return 0, &ResultTypeUndefinedError{Func: "neg", Args: args}
	}
	return args[0], nil
}

func (f *negFunc) Call(args ...any) any {
	return convertScalar(-toFloat64(args[0]), dataTypeOf(args[0]))
}

// FuncOf adapts plain Go closures into an ElemFunc, for callers that
// need an elementwise function outside the built-in set.
func FuncOf(name string,
	resultType func(args ...DataType) (DataType, error),
	call func(args ...any) any,
) ElemFunc {
	return &customFunc{name: name, resultType: resultType, call: call}
}

type customFunc struct {
	name       string
	resultType func(args ...DataType) (DataType, error)
	call       func(args ...any) any
}

func (f *customFunc) Name() string { return f.name }

func (f *customFunc) ResultType(args ...DataType) (DataType, error) {
	return f.resultType(args...)
}

func (f *customFunc) Call(args ...any) any {
	return f.call(args...)
}

// dataTypeOf returns the DataType of a scalar value.
func dataTypeOf(v any) DataType {
	switch v.(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported scalar type")
	}
}

// toFloat64 widens a numeric scalar to float64.
func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	default:
		panic("scalar is not numeric")
	}
}

// convertScalar narrows a float64 to a value of the given data type.
func convertScalar(x float64, dt DataType) any {
	switch dt {
	case Float32:
		return float32(x)
	case Float64:
		return x
	case Int32:
		return int32(x)
	case Int64:
		return int64(x)
	case Uint8:
		return uint8(x)
	default:
		panic("cannot convert to " + dt.String())
	}
}
