package nn

import (
	"math"

	"github.com/born-ml/stepnet/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// ReLU is a Rectified Linear Unit activation layer.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// The gradient is 1 where the cached input is strictly positive and 0
// elsewhere, including at exactly zero.
type ReLU struct {
	input *tensor.Tensor
}

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies max(0, x) and caches x.
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	checkInput("ReLU.Forward", input, -1)
	r.input = input

	return input.Apply(func(x float64) float64 { return math.Max(0, x) })
}

// Backward returns dY ⊙ 1[X > 0].
func (r *ReLU) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	mustHaveCache("ReLU.Backward", r.input != nil)
	checkGrad("ReLU.Backward", gradOutput, r.input.Shape())

	gradInput := gradOutput.Clone()
	data := gradInput.Data()
	for i, x := range r.input.Data() {
		if x <= 0 {
			data[i] = 0
		}
	}
	return gradInput
}

// Params returns nil (ReLU has no trainable parameters).
func (r *ReLU) Params() []*Parameter { return nil }

// SetTraining is a no-op.
func (r *ReLU) SetTraining(bool) {}

// Kind returns KindReLU.
func (r *ReLU) Kind() Kind { return KindReLU }

func (r *ReLU) sealed() {}

// Softmax normalizes each row into a probability distribution.
//
// The row maximum is subtracted before exponentiating, so rows of very
// large values such as [1000, 1000, 1000] stay finite.
type Softmax struct {
	output *tensor.Tensor
}

// NewSoftmax creates a new Softmax layer.
func NewSoftmax() *Softmax {
	return &Softmax{}
}

// Forward applies the row-wise softmax and caches the result.
func (s *Softmax) Forward(input *tensor.Tensor) *tensor.Tensor {
	checkInput("Softmax.Forward", input, -1)

	shifted := input.Sub(input.MaxDim(1, true))
	exp := shifted.Exp()
	output := exp.Div(exp.SumDim(1, true))

	s.output = output
	return output
}

// Backward multiplies each gradient row by that row's Jacobian
// diag(y) - y·yᵀ. Rows are independent.
func (s *Softmax) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	mustHaveCache("Softmax.Backward", s.output != nil)
	checkGrad("Softmax.Backward", gradOutput, s.output.Shape())

	rows, n := s.output.Dim(0), s.output.Dim(1)
	gradInput := tensor.ZerosLike(gradOutput)
	jacobian := mat.NewDense(n, n, nil)

	for i := 0; i < rows; i++ {
		y := s.output.Row(i)
		yVec := mat.NewVecDense(n, y)

		// J = diag(y) - y·yᵀ (symmetric, so J·dy == dy·Jᵀ)
		jacobian.Outer(-1, yVec, yVec)
		for k, v := range y {
			jacobian.Set(k, k, jacobian.At(k, k)+v)
		}

		dx := mat.NewVecDense(n, gradInput.Row(i))
		dx.MulVec(jacobian, mat.NewVecDense(n, gradOutput.Row(i)))
	}
	return gradInput
}

// Params returns nil (Softmax has no trainable parameters).
func (s *Softmax) Params() []*Parameter { return nil }

// SetTraining is a no-op.
func (s *Softmax) SetTraining(bool) {}

// Kind returns KindSoftmax.
func (s *Softmax) Kind() Kind { return KindSoftmax }

func (s *Softmax) sealed() {}
