package nn

import (
	"github.com/born-ml/stepnet/internal/tensor"
)

// Affine implements a fully connected layer.
//
// Performs the transformation: Y = X·W + b
// where:
//   - X is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias vector with shape [out_features], broadcast over rows
//   - Y is the output with shape [batch_size, out_features]
//
// Example:
//
//	layer := nn.NewAffine(784, 128, nn.He{}, nn.Zero{}).
//	    WithRegularizer(nn.L2{Lambda: 1e-4})
//	y := layer.Forward(x) // [32, 784] → [32, 128]
type Affine struct {
	in, out     int
	weight      *Parameter // [in_features, out_features]
	bias        *Parameter // [out_features]
	regularizer Regularizer

	input *tensor.Tensor // cached by Forward
}

// NewAffine creates a new Affine layer with weights drawn from weightInit
// and biases from biasInit.
func NewAffine(in, out int, weightInit, biasInit Initializer) *Affine {
	return &Affine{
		in:     in,
		out:    out,
		weight: weightInit.Initialize("affine.weight", tensor.Shape{in, out}),
		bias:   biasInit.Initialize("affine.bias", tensor.Shape{out}),
	}
}

// WithRegularizer attaches a weight regularizer and returns the layer.
func (a *Affine) WithRegularizer(r Regularizer) *Affine {
	a.regularizer = r
	return a
}

// Forward computes X·W + b and caches X.
func (a *Affine) Forward(input *tensor.Tensor) *tensor.Tensor {
	checkInput("Affine.Forward", input, a.in)
	a.input = input

	return input.MatMul(a.weight.Value()).Add(a.bias.Value())
}

// Backward stores dW = Xᵀ·dY (regularized if configured) and db = colsum(dY),
// and returns dX = dY·Wᵀ.
func (a *Affine) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	mustHaveCache("Affine.Backward", a.input != nil)
	checkGrad("Affine.Backward", gradOutput, tensor.Shape{a.input.Dim(0), a.out})

	gradInput := gradOutput.MatMul(a.weight.Value().T())

	gradWeight := a.input.T().MatMul(gradOutput)
	if a.regularizer != nil {
		gradWeight = a.regularizer.Apply(gradWeight, a.weight.Value())
	}
	a.weight.SetGrad(gradWeight)
	a.bias.SetGrad(gradOutput.SumDim(0, false))

	return gradInput
}

// Params returns [weight, bias].
func (a *Affine) Params() []*Parameter {
	return []*Parameter{a.weight, a.bias}
}

// SetTraining is a no-op; Affine behaves the same in both modes.
func (a *Affine) SetTraining(bool) {}

// Kind returns KindAffine.
func (a *Affine) Kind() Kind { return KindAffine }

func (a *Affine) sealed() {}

// Weight returns the weight parameter.
func (a *Affine) Weight() *Parameter {
	return a.weight
}

// Bias returns the bias parameter.
func (a *Affine) Bias() *Parameter {
	return a.bias
}

// InFeatures returns the number of input features.
func (a *Affine) InFeatures() int {
	return a.in
}

// OutFeatures returns the number of output features.
func (a *Affine) OutFeatures() int {
	return a.out
}
