package nn

import (
	"github.com/born-ml/stepnet/internal/tensor"
)

// Regularizer adjusts a weight gradient given the weight's current value.
//
// Affine applies its regularizer to dW right after computing it in
// Backward, so the optimizer only ever sees the penalized gradient.
type Regularizer interface {
	Apply(grad, value *tensor.Tensor) *tensor.Tensor
}

// L2 adds the gradient of λ·Σw²: grad + 2λ·w.
type L2 struct {
	Lambda float64
}

// Apply implements Regularizer.
func (r L2) Apply(grad, value *tensor.Tensor) *tensor.Tensor {
	return grad.Add(value.Scale(2 * r.Lambda))
}

// L1 adds the subgradient of λ·Σ|w|: grad + λ·sign(w).
//
// sign is 1 for positive weights and -1 otherwise, including exactly zero.
type L1 struct {
	Lambda float64
}

// Apply implements Regularizer.
func (r L1) Apply(grad, value *tensor.Tensor) *tensor.Tensor {
	return grad.Add(value.Sign().Scale(r.Lambda))
}

// Composite chains regularizers in order; each sees the previous output.
type Composite []Regularizer

// Apply implements Regularizer.
func (c Composite) Apply(grad, value *tensor.Tensor) *tensor.Tensor {
	for _, r := range c {
		grad = r.Apply(grad, value)
	}
	return grad
}

// NewL1L2 combines L1 and L2 penalties (elastic net).
func NewL1L2(l1, l2 float64) Composite {
	return Composite{L1{Lambda: l1}, L2{Lambda: l2}}
}
