// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package bcast is a static-shape broadcast engine: given operands
// whose shapes are fully known up front, it combines them under
// NumPy-style broadcasting rules, deduces the result element type, and
// applies an elementwise function through a fully unrolled plan with no
// shape or rank logic left at execution time.
//
// # Basic Usage
//
//	a, _ := bcast.FromSlice(bcast.Shape{2, 2}, []float32{1, 3, 2, 4})
//	b, _ := bcast.FromSlice(bcast.Shape{1, 2}, []float32{10, 20})
//
//	out, err := bcast.Map(bcast.Add, a.Operand(), b.Operand())
//	// out has shape [2 2]: [[11 22] [13 24]]
//
// # In-Place Application
//
//	dst, _ := bcast.NewContainer(bcast.Shape{2, 2}, bcast.Float32)
//	err := bcast.MapInto(bcast.Add, dst, a.Operand(), b.Operand())
//
// Destinations declared without a shape (NewUnsized) adopt the
// broadcast shape on first use; a sized destination that disagrees with
// the broadcast shape fails before any element is written.
//
// # Plans
//
// Compile separates the static work (shape combination, index mapping,
// result type deduction, unrolling) from execution, so one Plan can be
// applied many times:
//
//	p, err := bcast.Compile(bcast.Mul, a.Operand(), bcast.ScalarOperand(float32(2)))
//	out, err := p.Apply()
//
// # Generated Kernels
//
// For shapes known before the build, the bcast CLI (cmd/bcast) emits
// the same unrolled applications as Go source via go:generate, one
// assignment per output element.
//
// Storage order is column-major throughout: the first subscript varies
// fastest, and broadcast enumeration follows the same order.
package bcast
