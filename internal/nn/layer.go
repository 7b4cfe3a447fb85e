// Package nn implements the layers, parameters, initializers, regularizers
// and losses of the training engine.
//
// Layers compute their own backward rule; there is no autodiff tape. A
// training step is:
//
//	pred := model.Forward(x)
//	loss.Forward(pred, y)                  // reporting only
//	model.Backward(loss.Backward(pred, y)) // fills every Parameter's grad
//	optimizer.Update(model.Params())
package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/stepnet/internal/tensor"
)

// Kind names a Layer variant.
type Kind int

// Layer variants. The set is closed: only this package implements Layer.
const (
	KindAffine Kind = iota
	KindReLU
	KindSoftmax
	KindBatchNorm
	KindDropout
	KindSequential
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindAffine:
		return "Affine"
	case KindReLU:
		return "ReLU"
	case KindSoftmax:
		return "Softmax"
	case KindBatchNorm:
		return "BatchNorm"
	case KindDropout:
		return "Dropout"
	case KindSequential:
		return "Sequential"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Layer is a composable forward/backward transformation of [batch, features]
// tensors.
//
// Forward may cache tensors needed by the next Backward. Backward uses only
// the cache of the immediately preceding Forward, writes gradients into the
// layer's Parameters, and returns the gradient with respect to the input.
// Calling Backward before Forward panics.
//
// Layer is sealed: the variants are Affine, ReLU, Softmax, BatchNorm,
// Dropout and Sequential.
type Layer interface {
	// Forward computes the output for a [batch, in] input.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Backward maps dL/dOutput to dL/dInput.
	Backward(gradOutput *tensor.Tensor) *tensor.Tensor

	// Params returns the layer's learnable parameters. Stateless layers
	// return nil.
	Params() []*Parameter

	// SetTraining switches between training and inference behavior.
	SetTraining(training bool)

	// Kind reports which variant this is.
	Kind() Kind

	sealed()
}

// Describe renders a one-line summary of l and its children.
func Describe(l Layer) string {
	switch l := l.(type) {
	case *Affine:
		if l.regularizer != nil {
			return fmt.Sprintf("Affine(%d→%d, regularized)", l.in, l.out)
		}
		return fmt.Sprintf("Affine(%d→%d)", l.in, l.out)
	case *ReLU:
		return "ReLU"
	case *Softmax:
		return "Softmax"
	case *BatchNorm:
		return fmt.Sprintf("BatchNorm(%d)", l.features)
	case *Dropout:
		return fmt.Sprintf("Dropout(p=%g)", l.p)
	case *Sequential:
		parts := make([]string, len(l.layers))
		for i, child := range l.layers {
			parts[i] = Describe(child)
		}
		return "Sequential[" + strings.Join(parts, " → ") + "]"
	default:
		panic(fmt.Sprintf("nn.Describe: unknown layer %T", l))
	}
}

// CountParams returns the number of scalar values across l's parameters.
func CountParams(l Layer) int {
	n := 0
	for _, p := range l.Params() {
		n += p.Value().NumElements()
	}
	return n
}

// checkInput panics unless x is [batch, width]. width < 0 accepts any width.
func checkInput(op string, x *tensor.Tensor, width int) {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("%s: expected 2D input [batch, features], got shape %v", op, shape))
	}
	if width >= 0 && shape[1] != width {
		panic(fmt.Sprintf("%s: expected input with %d features, got %d", op, width, shape[1]))
	}
}

// checkGrad panics unless grad matches the shape cached by the last Forward.
func checkGrad(op string, grad *tensor.Tensor, want tensor.Shape) {
	if !grad.Shape().Equal(want) {
		panic(fmt.Sprintf("%s: expected gradient shape %v, got %v", op, want, grad.Shape()))
	}
}

func mustHaveCache(op string, ok bool) {
	if !ok {
		panic(op + ": called before Forward")
	}
}
