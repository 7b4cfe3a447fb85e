package nn

import (
	"fmt"

	"github.com/born-ml/stepnet/internal/tensor"
	"github.com/samber/lo"
)

// Sequential is a container layer that chains multiple layers together.
//
// Each layer's output becomes the next layer's input; gradients flow back
// through the layers in reverse order. A Sequential owns its children and is
// itself a Layer, so containers nest.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewAffine(784, 128, nn.He{}, nn.Zero{}),
//	    nn.NewReLU(),
//	    nn.NewAffine(128, 10, nn.He{}, nn.Zero{}),
//	    nn.NewSoftmax(),
//	)
//
//	output := model.Forward(input)
//	model.Backward(lossGrad)
//	optimizer.Update(model.Params())
type Sequential struct {
	layers []Layer
}

// NewSequential creates a new Sequential container.
func NewSequential(layers ...Layer) *Sequential {
	return &Sequential{
		layers: layers,
	}
}

// Forward applies all layers in order.
func (s *Sequential) Forward(input *tensor.Tensor) *tensor.Tensor {
	output := input

	for _, layer := range s.layers {
		output = layer.Forward(output)
	}

	return output
}

// Backward propagates the gradient through all layers in reverse order.
//
// Forward must have run over the full chain first.
func (s *Sequential) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	grad := gradOutput

	for i := len(s.layers) - 1; i >= 0; i-- {
		grad = s.layers[i].Backward(grad)
	}

	return grad
}

// Params returns all trainable parameters, in layer order.
func (s *Sequential) Params() []*Parameter {
	return lo.FlatMap(s.layers, func(layer Layer, _ int) []*Parameter {
		return layer.Params()
	})
}

// SetTraining propagates the mode to every layer.
func (s *Sequential) SetTraining(training bool) {
	for _, layer := range s.layers {
		layer.SetTraining(training)
	}
}

// Kind returns KindSequential.
func (s *Sequential) Kind() Kind { return KindSequential }

func (s *Sequential) sealed() {}

// Add appends a layer to the sequence.
func (s *Sequential) Add(layer Layer) {
	s.layers = append(s.layers, layer)
}

// Len returns the number of layers in the sequence.
func (s *Sequential) Len() int {
	return len(s.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Layer(index int) Layer {
	if index < 0 || index >= len(s.layers) {
		panic(fmt.Sprintf("Sequential.Layer: index %d out of bounds [0, %d)", index, len(s.layers)))
	}
	return s.layers[index]
}
