// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 tensors the training engine
// computes with.
//
// # Overview
//
// This package provides:
//   - Row-major float64 tensors with value semantics for arithmetic
//   - NumPy-style broadcasting for Add, Sub, Mul and Div
//   - Matrix multiplication and transposition backed by gonum
//   - Row and column reductions for rank-2 tensors
//
// # Basic Usage
//
//	import "github.com/born-ml/stepnet/tensor"
//
//	func main() {
//	    x := tensor.Zeros(tensor.Shape{2, 3})
//	    y := tensor.Ones(tensor.Shape{3})
//
//	    z := x.Add(y)              // broadcast over rows
//	    w := z.MatMul(z.T())       // [2, 2]
//	    s := w.SumDim(1, true)     // [2, 1]
//	}
//
// # Views
//
// Row, Reshape and Data share memory with the tensor they come from. Every
// arithmetic method returns a new tensor.
package tensor
