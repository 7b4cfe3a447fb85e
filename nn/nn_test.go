// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/born-ml/stepnet/nn"
	"github.com/born-ml/stepnet/tensor"
	"github.com/stretchr/testify/assert"
)

func TestPublicAPI(t *testing.T) {
	var model nn.Layer = nn.NewSequential(
		nn.NewAffine(4, 6, nn.He{}, nn.Zero{}).WithRegularizer(nn.L2{Lambda: 1e-4}),
		nn.NewBatchNorm(6, nn.Ones{}, nn.Zero{}),
		nn.NewReLU(),
		nn.NewDropout(0.1, nil),
		nn.NewAffine(6, 3, nn.Xavier{}, nn.Constant{Value: 0.1}),
		nn.NewSoftmax(),
	)

	assert.Equal(t, nn.KindSequential, model.Kind())
	assert.Equal(t, 4*6+6+6+6+6*3+3, nn.CountParams(model))
	assert.Equal(t,
		"Sequential[Affine(4→6, regularized) → BatchNorm(6) → ReLU → Dropout(p=0.1) → Affine(6→3) → Softmax]",
		nn.Describe(model))

	x := tensor.Full(tensor.Shape{5, 4}, 0.5)
	x.Set(0, 0, 2)
	target := tensor.Zeros(tensor.Shape{5, 3})
	for i := range 5 {
		target.Set(i, i%3, 1)
	}

	ce := nn.NewCrossEntropyLoss()
	probs := model.Forward(x)
	assert.Positive(t, ce.Forward(probs, target))

	gradInput := model.Backward(ce.Backward(probs, target))
	assert.Equal(t, tensor.Shape{5, 4}, gradInput.Shape())

	nn.ZeroGrads(model.Params())
	for _, p := range model.Params() {
		assert.Zero(t, p.Grad().Sum(), p.String())
	}
}
