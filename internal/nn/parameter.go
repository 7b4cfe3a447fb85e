package nn

import (
	"fmt"
	"sync/atomic"

	"github.com/born-ml/stepnet/internal/tensor"
)

// ID identifies a Parameter for its whole lifetime. Optimizers key their
// per-parameter state by ID, never by slice position.
type ID uint64

// nextID mints IDs. Safe for concurrent model construction.
var nextID atomic.Uint64

// Parameter represents a trainable tensor in a neural network.
//
// A Parameter pairs a value with a gradient of the same shape. The value is
// only changed by an optimizer; the gradient is only written by the owning
// layer's backward pass, which replaces it rather than accumulating.
//
// Example:
//
//	w := nn.NewParameter("affine.weight", tensor.Zeros(tensor.Shape{4, 3}))
//	w.Value() // current weights
//	w.Grad()  // zeros until the first backward pass
type Parameter struct {
	id    ID
	name  string
	value *tensor.Tensor
	grad  *tensor.Tensor
}

// NewParameter wraps value in a new Parameter with a fresh ID and a zero
// gradient.
func NewParameter(name string, value *tensor.Tensor) *Parameter {
	return &Parameter{
		id:    ID(nextID.Add(1)),
		name:  name,
		value: value,
		grad:  tensor.ZerosLike(value),
	}
}

// ID returns the parameter's stable identity.
func (p *Parameter) ID() ID {
	return p.id
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter tensor.
func (p *Parameter) Value() *tensor.Tensor {
	return p.value
}

// Grad returns the gradient from the most recent backward pass.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// SetGrad replaces the gradient.
//
// Panics if grad does not have the value's shape.
func (p *Parameter) SetGrad(grad *tensor.Tensor) {
	if !grad.Shape().Equal(p.value.Shape()) {
		panic(fmt.Sprintf("Parameter.SetGrad: %s expects gradient shape %v, got %v",
			p.name, p.value.Shape(), grad.Shape()))
	}
	p.grad = grad
}

// ZeroGrad fills the gradient with zeros.
func (p *Parameter) ZeroGrad() {
	clear(p.grad.Data())
}

// String returns "name#id" for logs and test failures.
func (p *Parameter) String() string {
	return fmt.Sprintf("%s#%d", p.name, p.id)
}

// ZeroGrads clears the gradients of every parameter in params.
func ZeroGrads(params []*Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
