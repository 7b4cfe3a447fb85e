// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/stepnet/internal/nn"
	"github.com/born-ml/stepnet/internal/tensor"
)

// Epsilon floors variances and probabilities before sqrt, division and log.
const Epsilon = nn.Epsilon

// Layer is the forward/backward contract shared by every layer.
type Layer = nn.Layer

// Kind names a Layer variant.
type Kind = nn.Kind

// Layer kinds.
const (
	KindAffine     = nn.KindAffine
	KindReLU       = nn.KindReLU
	KindSoftmax    = nn.KindSoftmax
	KindBatchNorm  = nn.KindBatchNorm
	KindDropout    = nn.KindDropout
	KindSequential = nn.KindSequential
)

// Describe renders a one-line summary of a layer and its children.
func Describe(l Layer) string {
	return nn.Describe(l)
}

// CountParams returns the number of scalar values across a layer's parameters.
func CountParams(l Layer) int {
	return nn.CountParams(l)
}

// Parameters

// ID identifies a Parameter for its whole lifetime.
type ID = nn.ID

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with a fresh ID and a zero gradient.
func NewParameter(name string, value *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, value)
}

// ZeroGrads clears the gradients of every parameter.
func ZeroGrads(params []*Parameter) {
	nn.ZeroGrads(params)
}

// Initializers

// Initializer creates a Parameter of a given shape.
type Initializer = nn.Initializer

// Zero initializes every element to 0.
type Zero = nn.Zero

// Ones initializes every element to 1.
type Ones = nn.Ones

// Constant initializes every element to a fixed value.
type Constant = nn.Constant

// Uniform draws every element from U(Low, High).
type Uniform = nn.Uniform

// Xavier draws from N(0, 1/fan_in).
type Xavier = nn.Xavier

// XavierUniform draws from the Glorot uniform distribution.
type XavierUniform = nn.XavierUniform

// He draws from N(0, 2/fan_in).
type He = nn.He

// Regularizers

// Regularizer adjusts a weight gradient given the weight's value.
type Regularizer = nn.Regularizer

// L1 adds λ·sign(w) to the gradient.
type L1 = nn.L1

// L2 adds 2λ·w to the gradient.
type L2 = nn.L2

// Composite chains regularizers in order.
type Composite = nn.Composite

// NewL1L2 combines L1 and L2 penalties.
func NewL1L2(l1, l2 float64) Composite {
	return nn.NewL1L2(l1, l2)
}

// Layers

// Affine represents a fully connected layer, Y = X·W + b.
type Affine = nn.Affine

// NewAffine creates a new fully connected layer.
//
// Example:
//
//	layer := nn.NewAffine(784, 128, nn.He{}, nn.Zero{})
func NewAffine(in, out int, weightInit, biasInit Initializer) *Affine {
	return nn.NewAffine(in, out, weightInit, biasInit)
}

// BatchNorm normalizes each feature over the batch.
type BatchNorm = nn.BatchNorm

// BatchNormCache holds what BatchNorm.Backward uses from the last Forward.
type BatchNormCache = nn.BatchNormCache

// NewBatchNorm creates a batch normalization layer.
//
// Example:
//
//	bn := nn.NewBatchNorm(128, nn.Ones{}, nn.Zero{})
func NewBatchNorm(features int, gammaInit, betaInit Initializer) *BatchNorm {
	return nn.NewBatchNorm(features, gammaInit, betaInit)
}

// Dropout randomly zeroes activations in training mode.
type Dropout = nn.Dropout

// NewDropout creates a dropout layer with drop probability p in [0, 1).
// A nil rng uses a randomly seeded generator.
func NewDropout(p float64, rng *rand.Rand) *Dropout {
	return nn.NewDropout(p, rng)
}

// Sequential chains layers.
type Sequential = nn.Sequential

// NewSequential creates a Sequential container.
func NewSequential(layers ...Layer) *Sequential {
	return nn.NewSequential(layers...)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Softmax normalizes each row into a probability distribution.
type Softmax = nn.Softmax

// NewSoftmax creates a new Softmax layer.
func NewSoftmax() *Softmax {
	return nn.NewSoftmax()
}

// Loss functions

// Loss reduces a prediction and a target to a scalar and its gradient.
type Loss = nn.Loss

// CrossEntropyLoss is cross-entropy over predicted probabilities.
type CrossEntropyLoss = nn.CrossEntropyLoss

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return nn.NewCrossEntropyLoss()
}

// MSELoss is the mean squared error.
type MSELoss = nn.MSELoss

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return nn.NewMSELoss()
}
