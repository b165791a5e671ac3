package engine

import (
	"errors"
	"testing"
)

func mustContainer(t *testing.T, shape Shape, data []float32) *Container {
	t.Helper()
	c, err := FromSlice(shape, data)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return c
}

func TestCompileCombinesAndDeduces(t *testing.T) {
	a := mustContainer(t, Shape{3, 1}, []float32{1, 2, 3})
	b := mustContainer(t, Shape{1, 4}, []float32{10, 20, 30, 40})

	p, err := Compile(Add, a.Operand(), b.Operand())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	assertEqualShape(t, Shape{3, 4}, p.Shape(), "combined shape")
	if p.ResultType() != Float32 {
		t.Errorf("result type = %s, want float32", p.ResultType())
	}
	if p.NumApplications() != 12 {
		t.Errorf("NumApplications = %d, want 12", p.NumApplications())
	}
}

func TestCompileShapeMismatch(t *testing.T) {
	a := mustContainer(t, Shape{3}, []float32{1, 2, 3})
	b := mustContainer(t, Shape{4}, []float32{1, 2, 3, 4})

	_, err := Compile(Add, a.Operand(), b.Operand())

	var mismatch *ShapeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ShapeMismatchError, got %v", err)
	}
}

func TestCompileResultTypeUndefined(t *testing.T) {
	a, err := FromSlice(Shape{2}, []bool{true, false})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	b := mustContainer(t, Shape{2}, []float32{1, 2})

	_, err = Compile(Add, a.Operand(), b.Operand())

	var undefined *ResultTypeUndefinedError
	if !errors.As(err, &undefined) {
		t.Fatalf("expected ResultTypeUndefinedError, got %v", err)
	}
}

func TestCompileShapeCheckedBeforeTypes(t *testing.T) {
	// Both the shapes and the types are wrong; the combiner runs first.
	a, err := FromSlice(Shape{3}, []bool{true, false, true})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	b := mustContainer(t, Shape{4}, []float32{1, 2, 3, 4})

	_, err = Compile(Add, a.Operand(), b.Operand())

	var mismatch *ShapeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ShapeMismatchError first, got %v", err)
	}
}

func TestApplyEndToEnd(t *testing.T) {
	// A = [[1,2],[3,4]], B = [[10,20]] broadcast along the rows.
	a := mustContainer(t, Shape{2, 2}, []float32{1, 3, 2, 4})
	b := mustContainer(t, Shape{1, 2}, []float32{10, 20})

	out, err := Map(Add, a.Operand(), b.Operand())
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	assertEqualShape(t, Shape{2, 2}, out.Shape(), "result shape")
	assertEqualFloat32(t, 11, out.At(0, 0).(float32), "result[0,0]")
	assertEqualFloat32(t, 22, out.At(0, 1).(float32), "result[0,1]")
	assertEqualFloat32(t, 13, out.At(1, 0).(float32), "result[1,0]")
	assertEqualFloat32(t, 24, out.At(1, 1).(float32), "result[1,1]")
}

func TestApplyVisitsEveryCoordinateOnce(t *testing.T) {
	a := mustContainer(t, Shape{2, 3}, []float32{0, 1, 2, 3, 4, 5})

	var visited []float64
	record := FuncOf("record",
		func(args ...DataType) (DataType, error) { return args[0], nil },
		func(args ...any) any {
			visited = append(visited, toFloat64(args[0]))
			return args[0]
		},
	)

	out, err := Map(record, a.Operand())
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	if len(visited) != 6 {
		t.Fatalf("expected 6 applications, got %d", len(visited))
	}
	// Column-major enumeration visits linear storage order exactly.
	for i, v := range visited {
		if v != float64(i) {
			t.Errorf("application %d saw element %v, want %d", i, v, i)
		}
	}
	assertEqualShape(t, Shape{2, 3}, out.Shape(), "identity result shape")
}

func TestApplyEmptyShape(t *testing.T) {
	a := mustContainer(t, Shape{0, 3}, nil)
	b := mustContainer(t, Shape{1, 3}, []float32{1, 2, 3})

	calls := 0
	count := FuncOf("count",
		func(args ...DataType) (DataType, error) { return Float32, nil },
		func(args ...any) any {
			calls++
			return float32(0)
		},
	)

	out, err := Map(count, a.Operand(), b.Operand())
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	assertEqualShape(t, Shape{0, 3}, out.Shape(), "empty result shape")
	if out.DType() != Float32 {
		t.Errorf("empty result dtype = %s, want float32", out.DType())
	}
	if calls != 0 {
		t.Errorf("function applied %d times on an empty shape", calls)
	}
}

func TestApplyScalarOperand(t *testing.T) {
	a := mustContainer(t, Shape{2, 2}, []float32{1, 2, 3, 4})

	out, err := Map(Mul, a.Operand(), ScalarOperand(float32(10)))
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	got := out.AsFloat32()
	for i, want := range []float32{10, 20, 30, 40} {
		assertEqualFloat32(t, want, got[i], "scalar broadcast element")
	}
}

func TestApplyTypePromotion(t *testing.T) {
	a, err := FromSlice(Shape{2}, []int32{1, 2})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	out, err := Map(Add, a.Operand(), ScalarOperand(float64(0.5)))
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	if out.DType() != Float64 {
		t.Fatalf("promoted dtype = %s, want float64", out.DType())
	}
	got := out.AsFloat64()
	if got[0] != 1.5 || got[1] != 2.5 {
		t.Errorf("promoted result = %v, want [1.5 2.5]", got)
	}
}

func TestApplyIntoSizedDestination(t *testing.T) {
	a := mustContainer(t, Shape{2, 2}, []float32{1, 3, 2, 4})
	b := mustContainer(t, Shape{1, 2}, []float32{10, 20})
	dst, err := NewContainer(Shape{2, 2}, Float32)
	if err != nil {
		t.Fatalf("NewContainer failed: %v", err)
	}

	if err := MapInto(Add, dst, a.Operand(), b.Operand()); err != nil {
		t.Fatalf("MapInto failed: %v", err)
	}

	assertEqualFloat32(t, 11, dst.At(0, 0).(float32), "dst[0,0]")
	assertEqualFloat32(t, 22, dst.At(0, 1).(float32), "dst[0,1]")
	assertEqualFloat32(t, 13, dst.At(1, 0).(float32), "dst[1,0]")
	assertEqualFloat32(t, 24, dst.At(1, 1).(float32), "dst[1,1]")
}

func TestApplyIntoUnsizedDestination(t *testing.T) {
	a := mustContainer(t, Shape{2, 2}, []float32{1, 2, 3, 4})
	dst := NewUnsized(Float32)

	if err := MapInto(Neg, dst, a.Operand()); err != nil {
		t.Fatalf("MapInto failed: %v", err)
	}

	shape, known := dst.DeclaredShape()
	if !known {
		t.Fatal("destination should have adopted the combined shape")
	}
	assertEqualShape(t, Shape{2, 2}, shape, "adopted shape")
	assertEqualFloat32(t, -1, dst.Container().AsFloat32()[0], "dst[0]")
	assertEqualFloat32(t, -4, dst.Container().AsFloat32()[3], "dst[3]")
}

func TestApplyIntoSizeMismatch(t *testing.T) {
	a := mustContainer(t, Shape{2, 2}, []float32{1, 2, 3, 4})
	dst, err := NewContainer(Shape{2, 3}, Float32)
	if err != nil {
		t.Fatalf("NewContainer failed: %v", err)
	}
	dst.SetElem(0, float32(99))

	err = MapInto(Neg, dst, a.Operand())

	var mismatch *DestinationSizeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DestinationSizeMismatchError, got %v", err)
	}
	// Checked before any write: the destination is untouched.
	assertEqualFloat32(t, 99, dst.AsFloat32()[0], "destination left intact")
}

func TestApplyIntoConvertsResultType(t *testing.T) {
	a, err := FromSlice(Shape{2}, []int32{1, 2})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	dst, err := NewContainer(Shape{2}, Float64)
	if err != nil {
		t.Fatalf("NewContainer failed: %v", err)
	}

	if err := MapInto(Neg, dst, a.Operand()); err != nil {
		t.Fatalf("MapInto failed: %v", err)
	}

	got := dst.AsFloat64()
	if got[0] != -1 || got[1] != -2 {
		t.Errorf("converted result = %v, want [-1 -2]", got)
	}
}

func TestPlanReusable(t *testing.T) {
	a := mustContainer(t, Shape{2}, []float32{1, 2})

	p, err := Compile(Neg, a.Operand())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	first, err := p.Apply()
	if err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}
	a.SetElem(0, float32(5))
	second, err := p.Apply()
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}

	assertEqualFloat32(t, -1, first.AsFloat32()[0], "first run")
	assertEqualFloat32(t, -5, second.AsFloat32()[0], "second run sees fresh operand data")
}
