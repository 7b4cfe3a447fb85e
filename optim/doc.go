// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: plain gradient descent
//   - Momentum: gradient descent with velocity
//   - RMSProp: step sizes from a running mean of squared gradients
//   - Adam and AdamW: Adaptive Moment Estimation with bias correction
//   - Optimizer interface and a name-based constructor, New
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/stepnet/nn"
//	    "github.com/born-ml/stepnet/optim"
//	)
//
//	func main() {
//	    model := nn.NewSequential(nn.NewAffine(784, 10, nn.He{}, nn.Zero{}), nn.NewSoftmax())
//	    criterion := nn.NewCrossEntropyLoss()
//
//	    optimizer := optim.NewAdam(optim.AdamConfig{
//	        LR:    0.001,
//	        Betas: [2]float64{0.9, 0.999},
//	    })
//
//	    for epoch := range 10 {
//	        probs := model.Forward(x)
//	        model.Backward(criterion.Backward(probs, y))
//	        optimizer.Update(model.Params())
//	    }
//	}
//
// # State
//
// Momentum, RMSProp and Adam keep accumulators per parameter, keyed by the
// parameter's ID. Passing the parameters in a different order, or a freshly
// collected slice, on every call is fine.
//
// # Adam Step Counter
//
// By default Adam advances its bias-correction counter once per parameter
// processed. Set AdamConfig.Schedule to StepPerUpdate for one advance per
// Update call.
package optim
