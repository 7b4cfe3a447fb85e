// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Affine, BatchNorm, Dropout
//   - Activations: ReLU, Softmax
//   - Loss functions: CrossEntropyLoss, MSELoss
//   - Utilities: Sequential, Layer interface, Parameter
//   - Initialization: Xavier, XavierUniform, He, Uniform, Zero, Ones, Constant
//   - Regularization: L1, L2, NewL1L2
//
// Every layer implements its own backward pass. There is no autodiff tape:
// Backward takes dL/dOutput, writes each Parameter's gradient and returns
// dL/dInput.
//
// # Basic Usage
//
//	import "github.com/born-ml/stepnet/nn"
//
//	func main() {
//	    model := nn.NewSequential(
//	        nn.NewAffine(784, 128, nn.He{}, nn.Zero{}),
//	        nn.NewBatchNorm(128, nn.Ones{}, nn.Zero{}),
//	        nn.NewReLU(),
//	        nn.NewAffine(128, 10, nn.He{}, nn.Zero{}),
//	        nn.NewSoftmax(),
//	    )
//
//	    probs := model.Forward(input)
//	    model.Backward(criterion.Backward(probs, oneHot))
//	    optimizer.Update(model.Params())
//	}
//
// # Training and Inference
//
// SetTraining(false) switches Dropout to the identity and stops BatchNorm
// from updating its running statistics. Sequential forwards the mode to
// every child.
//
// # Parameters
//
// Each Parameter carries an ID that never changes. Optimizers key their
// per-parameter state by that ID, so the slice returned by Params may be
// rebuilt or reordered between updates.
package nn
